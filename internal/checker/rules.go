package checker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/importmodel"
)

// RuleID identifies the check that produced a diagnostic.
type RuleID string

// Rule identifiers.
const (
	RuleMissingImport       RuleID = "missing-import"
	RulePublicHeaderPath    RuleID = "public-header-path"
	RuleInternalAngleImport RuleID = "internal-angle-import"
	RuleElseBranchAngle     RuleID = "else-branch-angle"
	RuleModuleImport        RuleID = "module-import"
	RuleMalformedDirective  RuleID = "malformed-directive"
	RuleUnreadableFile      RuleID = "unreadable-file"
	RuleRootListing         RuleID = "root-listing"
)

// Diagnostic messages.
const (
	msgMissingImport       = "Import %s does not exist."
	msgPublicHeaderPath    = `Public header import should not include "/"`
	msgInternalAngleImport = `Imports internal to the repo should use double quotes not "<"`
	msgElseBranchAngle     = `Import in SWIFT_PACKAGE #else should start with "<".`
	msgModuleImport        = "@import should not be used in CocoaPods library code"
	msgMalformedDirective  = "Malformed import directive: %s"
	msgUnreadableFile      = "Could not read %s. %v"
	msgRootListing         = "Failed to get repo contents %s. %v"
)

// RuleInfo documents one rule for the rules listing.
type RuleInfo struct {
	ID          RuleID `json:"id"          yaml:"id"`
	Description string `json:"description" yaml:"description"`
	BadExample  string `json:"bad"         yaml:"bad"`
	GoodExample string `json:"good"        yaml:"good"`
}

// Rules returns the documentation of every import rule in evaluation order.
func Rules() []RuleInfo {
	return []RuleInfo{
		{
			ID:          RuleElseBranchAngle,
			Description: "Imports in the #else branch of a SWIFT_PACKAGE block must be module-style.",
			BadExample:  `#import "FirebaseCore/Sources/Public/FirebaseCore/FIRApp.h"`,
			GoodExample: `#import <FirebaseCore/FIRApp.h>`,
		},
		{
			ID:          RulePublicHeaderPath,
			Description: "Double-quoted imports in public headers must use plain file names.",
			BadExample:  `#import "FirebaseCore/FIRApp.h"`,
			GoodExample: `#import "FIRApp.h"`,
		},
		{
			ID:          RuleMissingImport,
			Description: "Double-quoted imports in private files must name a path relative to the repository root.",
			BadExample:  `#import "FIRApp.h"`,
			GoodExample: `#import "FirebaseCore/Sources/Public/FirebaseCore/FIRApp.h"`,
		},
		{
			ID:          RuleInternalAngleImport,
			Description: "Modules built from this repository must be imported with double quotes.",
			BadExample:  `#import <FirebaseCore/FirebaseCore.h>`,
			GoodExample: `#import "FirebaseCore/Sources/Public/FirebaseCore/FirebaseCore.h"`,
		},
		{
			ID:          RuleModuleImport,
			Description: "@import is only valid in Swift Package Manager builds.",
			BadExample:  `@import FirebaseCore;`,
			GoodExample: `#import "FirebaseCore/Sources/Public/FirebaseCore/FirebaseCore.h"`,
		},
		{
			ID:          RuleMalformedDirective,
			Description: "An include directive must name a target.",
			BadExample:  `#import`,
			GoodExample: `#import "Foo.h"`,
		},
	}
}

// Evaluator applies the import rules to a single directive.
type Evaluator struct {
	exists      func(path string) bool
	root        string
	skipImports []string
}

// NewEvaluator creates an evaluator that resolves repo-relative imports
// against root. extraSkipImports extends DefaultSkipImportPatterns.
func NewEvaluator(root string, extraSkipImports []string) *Evaluator {
	skip := make([]string, 0, len(DefaultSkipImportPatterns)+len(extraSkipImports))
	skip = append(skip, DefaultSkipImportPatterns...)
	skip = append(skip, extraSkipImports...)

	return &Evaluator{
		exists:      pathExists,
		root:        root,
		skipImports: skip,
	}
}

// Evaluate returns at most one diagnostic for the directive. inElse selects
// the reduced rule set of a SWIFT_PACKAGE #else branch.
func (e *Evaluator) Evaluate(file FileContext, d importmodel.Directive, inElse bool) (Diagnostic, bool) {
	if inElse {
		if d.Quote != importmodel.QuoteAngle {
			return newDiagnostic(file, d.Line, RuleElseBranchAngle, msgElseBranchAngle), true
		}

		return Diagnostic{}, false
	}

	switch d.Quote {
	case importmodel.QuoteDouble:
		if file.Public {
			if strings.Contains(d.Target, "/") {
				return newDiagnostic(file, d.Line, RulePublicHeaderPath, msgPublicHeaderPath), true
			}

			return Diagnostic{}, false
		}

		if e.exists(filepath.Join(e.root, filepath.FromSlash(d.Raw))) || hasAnyPrefix(d.Raw, e.skipImports) {
			return Diagnostic{}, false
		}

		return newDiagnostic(file, d.Line, RuleMissingImport, fmt.Sprintf(msgMissingImport, d.Raw)), true
	case importmodel.QuoteAngle:
		if hasAnyPrefix(d.Raw, InternalModulePrefixes) {
			return newDiagnostic(file, d.Line, RuleInternalAngleImport, msgInternalAngleImport), true
		}
	case importmodel.QuoteNone:
	}

	return Diagnostic{}, false
}

func newDiagnostic(file FileContext, line int, rule RuleID, msg string) Diagnostic {
	return Diagnostic{
		File:    file.Path,
		Rule:    rule,
		Message: msg,
		Line:    line,
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
