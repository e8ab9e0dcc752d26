package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/importcheck/internal/checker"
)

type palette struct {
	prefix   *color.Color
	location *color.Color
	fatal    *color.Color
	summary  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		prefix:   color.New(color.FgRed, color.Bold),
		location: color.New(color.FgCyan),
		fatal:    color.New(color.FgYellow),
		summary:  color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.prefix, p.location, p.fatal, p.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// writeText prints one line per diagnostic. Without color the output is
// byte-for-byte the classic checker format.
func writeText(w io.Writer, report *checker.Report, opts Options) error {
	p := newPalette(opts.Color)

	for _, d := range report.Diagnostics() {
		var err error

		if d.Line == 0 {
			_, err = fmt.Fprintln(w, p.fatal.Sprint(d.Message))
		} else {
			_, err = fmt.Fprintf(w, "%s %s %s\n",
				p.prefix.Sprint(checker.ImportErrorPrefix),
				p.location.Sprintf("%s:%d", d.File, d.Line),
				d.Message,
			)
		}

		if err != nil {
			return fmt.Errorf("write diagnostic: %w", err)
		}
	}

	if !opts.Summary {
		return nil
	}

	_, err := fmt.Fprintln(w, p.summary.Sprint(Summary(report)))
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}
