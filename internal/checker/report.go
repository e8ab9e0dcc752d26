package checker

import (
	"fmt"
	"sync"
)

// ImportErrorPrefix starts every line-level diagnostic.
const ImportErrorPrefix = "Import Error:"

// Diagnostic is one finding. Line is zero for file-level problems such as an
// unreadable file.
type Diagnostic struct {
	File    string `json:"file"    yaml:"file"`
	Rule    RuleID `json:"rule"    yaml:"rule"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line"    yaml:"line"`
}

// String formats the diagnostic the way it is printed.
func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Message
	}

	return fmt.Sprintf("%s %s:%d %s", ImportErrorPrefix, d.File, d.Line, d.Message)
}

// FileResult holds the outcome of scanning one file.
type FileResult struct {
	Path        string       `json:"path"                  yaml:"path"`
	Lang        string       `json:"lang,omitempty"        yaml:"lang,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Public      bool         `json:"public"                yaml:"public"`
}

// Report is the run context shared by all scans of one run. It is created
// when the run starts and read at the end to pick the exit status.
type Report struct {
	root  string
	files []FileResult
	// general holds diagnostics not tied to a scanned file.
	general []Diagnostic
	mu      sync.Mutex
}

// NewReport creates an empty report for the given repository root.
func NewReport(root string) *Report {
	return &Report{root: root}
}

// Root returns the repository root the report was created for.
func (r *Report) Root() string {
	return r.root
}

// Add merges the result of one scanned file.
func (r *Report) Add(res FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files = append(r.files, res)
}

// AddDiagnostic records a diagnostic that is not tied to a scanned file.
func (r *Report) AddDiagnostic(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.general = append(r.general, d)
}

// FoundError reports whether any diagnostic was recorded.
func (r *Report) FoundError() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.general) > 0 {
		return true
	}

	for _, f := range r.files {
		if len(f.Diagnostics) > 0 {
			return true
		}
	}

	return false
}

// Files returns a copy of all file results in merge order.
func (r *Report) Files() []FileResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FileResult, len(r.files))
	copy(out, r.files)

	return out
}

// FilesScanned returns the number of files that were scanned.
func (r *Report) FilesScanned() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.files)
}

// FilesWithErrors returns the number of scanned files with at least one diagnostic.
func (r *Report) FilesWithErrors() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0

	for _, f := range r.files {
		if len(f.Diagnostics) > 0 {
			n++
		}
	}

	return n
}

// Diagnostics returns every diagnostic: file results in merge order, each in
// ascending line order, followed by general diagnostics.
func (r *Report) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Diagnostic

	for _, f := range r.files {
		out = append(out, f.Diagnostics...)
	}

	return append(out, r.general...)
}
