package checker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/importcheck/pkg/importmodel"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// FileContext holds the immutable facts about one scanned file.
type FileContext struct {
	Path   string
	Public bool
}

// NewFileContext derives the file context from its path.
func NewFileContext(path string) FileContext {
	return FileContext{
		Path:   path,
		Public: IsPublicHeader(path),
	}
}

// Scanner checks the import directives of single files.
type Scanner struct {
	eval *Evaluator
}

// NewScanner creates a scanner backed by the given evaluator.
func NewScanner(eval *Evaluator) *Scanner {
	return &Scanner{eval: eval}
}

// ScanFile reads and checks one file. Read failures become a file-level
// diagnostic; they never abort the run.
func (s *Scanner) ScanFile(file FileContext) FileResult {
	res := FileResult{
		Path:   file.Path,
		Public: file.Public,
	}

	data, err := readText(file.Path)
	if err != nil {
		res.Diagnostics = []Diagnostic{{
			File:    file.Path,
			Rule:    RuleUnreadableFile,
			Message: fmt.Sprintf(msgUnreadableFile, file.Path, err),
		}}

		return res
	}

	res.Lang = enry.GetLanguage(filepath.Base(file.Path), data)
	res.Diagnostics = s.ScanContent(file, string(data))

	return res
}

// ScanContent checks already loaded file content line by line. Diagnostics
// come back in ascending line order.
func (s *Scanner) ScanContent(file FileContext, content string) []Diagnostic {
	var (
		diags []Diagnostic
		state importmodel.ParseState
	)

	for i, rawLine := range strings.Split(content, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(rawLine)

		switch state.Advance(line) {
		case importmodel.ActionSkip:
			continue
		case importmodel.ActionModuleImport:
			diags = append(diags, newDiagnostic(file, lineNum, RuleModuleImport, msgModuleImport))

			continue
		case importmodel.ActionNone:
		}

		if !importmodel.IsIncludeLine(line) {
			continue
		}

		directive, parseErr := importmodel.ParseDirective(line, lineNum)
		if parseErr != nil {
			diags = append(diags, newDiagnostic(file, lineNum, RuleMalformedDirective, fmt.Sprintf(msgMalformedDirective, line)))

			continue
		}

		if d, found := s.eval.Evaluate(file, directive, state.State() == importmodel.StateConditionalElse); found {
			diags = append(diags, d)
		}
	}

	return diags
}

func readText(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}

	return data, nil
}
