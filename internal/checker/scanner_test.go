package checker_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/internal/checker"
)

func newScanner(root string) *checker.Scanner {
	return checker.NewScanner(checker.NewEvaluator(root, nil))
}

func rules(diags []checker.Diagnostic) []checker.RuleID {
	out := make([]checker.RuleID, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Rule)
	}

	return out
}

func TestScanContent_SwiftPackageBlock(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})
	file := checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m"))

	content := strings.Join([]string{
		"#if SWIFT_PACKAGE",
		"@import FirebaseCore;",
		`#import "Whatever/Not/Checked.h"`,
		"#else",
		"#import <FirebaseCore/FirebaseCore.h>",
		"#endif",
	}, "\n")

	assert.Empty(t, newScanner(root).ScanContent(file, content))
}

func TestScanContent_ElseBranchRequiresAngle(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})
	file := checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m"))

	content := "#if SWIFT_PACKAGE\n#else\n#import \"FirebaseCore/FIRApp.h\"\n#endif\n"

	diags := newScanner(root).ScanContent(file, content)
	require.Len(t, diags, 1)

	assert.Equal(t, checker.RuleElseBranchAngle, diags[0].Rule)
	assert.Equal(t, 3, diags[0].Line)
}

func TestScanContent_ModuleImportOutsideBlock(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})
	file := checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m"))

	diags := newScanner(root).ScanContent(file, "// header\n@import FirebaseCore;\n")
	require.Len(t, diags, 1)

	assert.Equal(t, checker.RuleModuleImport, diags[0].Rule)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "@import should not be used in CocoaPods library code", diags[0].Message)
}

func TestScanContent_ModuleImportInElseNotFlagged(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})
	file := checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m"))

	content := "#if SWIFT_PACKAGE\n#else\n@import FirebaseCore;\n#endif\n"

	assert.Empty(t, newScanner(root).ScanContent(file, content))
}

func TestScanContent_MalformedDirective(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})
	file := checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m"))

	diags := newScanner(root).ScanContent(file, "#import\n")
	require.Len(t, diags, 1)

	assert.Equal(t, checker.RuleMalformedDirective, diags[0].Rule)
	assert.Equal(t, "Malformed import directive: #import", diags[0].Message)
}

func TestScanContent_IndentedAndCRLF(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{
		"FirebaseCore/Sources/FIRApp.h": "",
	})
	file := checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m"))

	content := "  #import \"FirebaseCore/Sources/FIRApp.h\"\r\n\t#import \"Gone.h\"\r\n"

	diags := newScanner(root).ScanContent(file, content)
	require.Len(t, diags, 1)

	assert.Equal(t, checker.RuleMissingImport, diags[0].Rule)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "Import Gone.h does not exist.", diags[0].Message)
}

func TestScanContent_LineOrder(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})
	file := checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m"))

	content := "#import \"A.h\"\n@import Foo;\n#import <FirebaseCore/FIRApp.h>\n"

	diags := newScanner(root).ScanContent(file, content)

	assert.Equal(t, []checker.RuleID{
		checker.RuleMissingImport,
		checker.RuleModuleImport,
		checker.RuleInternalAngleImport,
	}, rules(diags))
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, 3, diags[2].Line)
}

func TestScanFile_DetectsLanguage(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{
		"FirebaseCore/Sources/FIRApp.m": "#import <Foundation/Foundation.h>\n@implementation FIRApp\n@end\n",
	})

	res := newScanner(root).ScanFile(checker.NewFileContext(repoPath(root, "FirebaseCore/Sources/FIRApp.m")))

	assert.Empty(t, res.Diagnostics)
	assert.NotEmpty(t, res.Lang)
	assert.False(t, res.Public)
}

func TestScanFile_InvalidUTF8(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})
	path := repoPath(root, "FirebaseCore/Sources/Bad.m")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, '\n'}, 0o600))

	res := newScanner(root).ScanFile(checker.NewFileContext(path))
	require.Len(t, res.Diagnostics, 1)

	d := res.Diagnostics[0]
	assert.Equal(t, checker.RuleUnreadableFile, d.Rule)
	assert.Zero(t, d.Line)
	assert.True(t, strings.HasPrefix(d.Message, "Could not read "+path+"."))
	assert.Equal(t, d.Message, d.String())
}

func TestScanFile_Missing(t *testing.T) {
	t.Parallel()

	root := writeRepo(t, map[string]string{})

	res := newScanner(root).ScanFile(checker.NewFileContext(repoPath(root, "Nope/Gone.m")))
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, checker.RuleUnreadableFile, res.Diagnostics[0].Rule)
}
