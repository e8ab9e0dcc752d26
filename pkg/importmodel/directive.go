// Package importmodel defines the data model for C-family import directives
// and the line classifier that recognizes them.
package importmodel

import (
	"errors"
	"fmt"
	"strings"
)

// Directive keywords recognized at the start of a trimmed line.
const (
	KeywordImport  = "#import"
	KeywordInclude = "#include"

	// ModuleImport pulls in a whole module by name and is only valid in
	// Swift Package Manager builds.
	ModuleImport = "@import"
)

// ErrMalformedDirective is returned for an include line without a target token.
var ErrMalformedDirective = errors.New("malformed import directive")

// rawReplacer strips quoting characters from an import target.
var rawReplacer = strings.NewReplacer(`"`, "", "<", "", ">", "")

// QuoteKind is the quoting style of an import target.
type QuoteKind int

const (
	// QuoteNone is any target that is neither double-quoted nor angle-bracketed.
	QuoteNone QuoteKind = iota
	// QuoteDouble is a repo-relative `"path/to/file.h"` target.
	QuoteDouble
	// QuoteAngle is a search-path `<Module/file.h>` target.
	QuoteAngle
)

// String returns the human-readable quote kind.
func (q QuoteKind) String() string {
	switch q {
	case QuoteDouble:
		return "double"
	case QuoteAngle:
		return "angle"
	default:
		return "none"
	}
}

// Directive is one `#import` or `#include` statement found in a source file.
type Directive struct {
	// Target is the first token after the keyword, quotes included.
	Target string
	// Raw is Target with quote and angle-bracket characters removed.
	Raw string
	// Line is the 1-based line number.
	Line int
	// Quote is derived from the first character of Target.
	Quote QuoteKind
}

// IsIncludeLine reports whether a trimmed line starts with an include keyword.
func IsIncludeLine(line string) bool {
	return strings.HasPrefix(line, KeywordImport) || strings.HasPrefix(line, KeywordInclude)
}

// IsModuleImportLine reports whether a trimmed line is a whole-module import.
func IsModuleImportLine(line string) bool {
	return strings.HasPrefix(line, ModuleImport)
}

// ParseDirective extracts the import target from a trimmed include line.
// The line must satisfy IsIncludeLine.
func ParseDirective(line string, lineNum int) (Directive, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Directive{}, fmt.Errorf("%w: %q", ErrMalformedDirective, line)
	}

	target := fields[1]

	return Directive{
		Target: target,
		Raw:    rawReplacer.Replace(target),
		Line:   lineNum,
		Quote:  quoteOf(target),
	}, nil
}

func quoteOf(target string) QuoteKind {
	switch {
	case strings.HasPrefix(target, `"`):
		return QuoteDouble
	case strings.HasPrefix(target, "<"):
		return QuoteAngle
	default:
		return QuoteNone
	}
}
