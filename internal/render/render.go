// Package render writes check reports in the supported output formats.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/importcheck/internal/checker"
)

// Format names an output format.
type Format string

// Output formats.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

const yamlIndent = 2

// ErrUnknownFormat is returned for an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTable}
}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))

	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Options controls report rendering.
type Options struct {
	Format Format
	// Color enables ANSI colors in text output.
	Color bool
	// Summary appends a summary line to text and table output.
	Summary bool
}

// Document is the structured form of a report.
type Document struct {
	Root            string               `json:"root"              yaml:"root"`
	Diagnostics     []checker.Diagnostic `json:"diagnostics"       yaml:"diagnostics"`
	FilesScanned    int                  `json:"files_scanned"     yaml:"files_scanned"`
	FilesWithErrors int                  `json:"files_with_errors" yaml:"files_with_errors"`
}

// NewDocument builds the structured form of report.
func NewDocument(report *checker.Report) Document {
	diags := report.Diagnostics()
	if diags == nil {
		diags = []checker.Diagnostic{}
	}

	return Document{
		Root:            report.Root(),
		Diagnostics:     diags,
		FilesScanned:    report.FilesScanned(),
		FilesWithErrors: report.FilesWithErrors(),
	}
}

// Report writes report to w in the format selected by opts.
func Report(w io.Writer, report *checker.Report, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, NewDocument(report))
	case FormatYAML:
		return writeYAML(w, NewDocument(report))
	case FormatTable:
		return writeTable(w, report, opts)
	case FormatText, "":
		return writeText(w, report, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// Summary describes the outcome of a run in one line.
func Summary(report *checker.Report) string {
	scanned := report.FilesScanned()
	failed := report.FilesWithErrors()
	diags := len(report.Diagnostics())

	return fmt.Sprintf("Checked %s %s, found %s import %s in %s %s",
		humanize.Comma(int64(scanned)), english.PluralWord(scanned, "file", ""),
		humanize.Comma(int64(diags)), english.PluralWord(diags, "error", ""),
		humanize.Comma(int64(failed)), english.PluralWord(failed, "file", ""),
	)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	closeErr := encoder.Close()
	if closeErr != nil {
		return fmt.Errorf("close yaml encoder: %w", closeErr)
	}

	return nil
}
