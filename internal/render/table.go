package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/importcheck/internal/checker"
)

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

// writeTable prints diagnostics grouped by file.
func writeTable(w io.Writer, report *checker.Report, opts Options) error {
	diags := report.Diagnostics()

	tbl := newTable()
	tbl.AppendHeader(table.Row{"File", "Line", "Rule", "Message"})
	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})

	for _, d := range diags {
		line := ""
		if d.Line > 0 {
			line = strconv.Itoa(d.Line)
		}

		tbl.AppendRow(table.Row{d.File, line, d.Rule, d.Message})
	}

	footer := fmt.Sprintf("Total: %d", len(diags))
	if opts.Summary {
		footer = Summary(report)
	}

	tbl.AppendFooter(table.Row{footer})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

// Rules writes the rule catalog. Text and table formats print a table;
// JSON and YAML print the catalog as a list.
func Rules(w io.Writer, rules []checker.RuleInfo, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rules)
	case FormatYAML:
		return writeYAML(w, rules)
	case FormatText, FormatTable, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Rule", "Description", "Bad", "Good"})

	for _, r := range rules {
		tbl.AppendRow(table.Row{r.ID, r.Description, r.BadExample, r.GoodExample})
	}

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write rules: %w", err)
	}

	return nil
}
