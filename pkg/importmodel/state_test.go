package importmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/importcheck/pkg/importmodel"
)

func TestParseState_FullBlock(t *testing.T) {
	t.Parallel()

	var ps importmodel.ParseState

	assert.Equal(t, importmodel.ActionNone, ps.Advance("#if SWIFT_PACKAGE"))
	assert.Equal(t, importmodel.StateConditional, ps.State())

	assert.Equal(t, importmodel.ActionSkip, ps.Advance(`#import "Anything.h"`))
	assert.Equal(t, importmodel.ActionSkip, ps.Advance("@import FirebaseCore;"))

	assert.Equal(t, importmodel.ActionNone, ps.Advance("#else"))
	assert.Equal(t, importmodel.StateConditionalElse, ps.State())

	assert.Equal(t, importmodel.ActionNone, ps.Advance("#include <valid/path.h>"))
	assert.Equal(t, importmodel.StateConditionalElse, ps.State())

	assert.Equal(t, importmodel.ActionNone, ps.Advance("#endif  // SWIFT_PACKAGE"))
	assert.Equal(t, importmodel.StateNormal, ps.State())
}

func TestParseState_ModuleImportOutsideBlock(t *testing.T) {
	t.Parallel()

	var ps importmodel.ParseState

	assert.Equal(t, importmodel.ActionModuleImport, ps.Advance("@import FirebaseCore;"))
	assert.Equal(t, importmodel.StateNormal, ps.State())
}

func TestParseState_ModuleImportInElseBranchNotFlagged(t *testing.T) {
	t.Parallel()

	var ps importmodel.ParseState

	ps.Advance("#if SWIFT_PACKAGE")
	ps.Advance("#else")

	assert.Equal(t, importmodel.ActionNone, ps.Advance("@import FirebaseCore;"))
}

func TestParseState_ElseWithoutBlockIgnored(t *testing.T) {
	t.Parallel()

	var ps importmodel.ParseState

	assert.Equal(t, importmodel.ActionNone, ps.Advance("#else"))
	assert.Equal(t, importmodel.StateNormal, ps.State())

	assert.Equal(t, importmodel.ActionNone, ps.Advance("#endif"))
	assert.Equal(t, importmodel.StateNormal, ps.State())
}

func TestParseState_EndifInsideIfBranchStaysConditional(t *testing.T) {
	t.Parallel()

	var ps importmodel.ParseState

	ps.Advance("#if SWIFT_PACKAGE")

	// Without an #else the block never closes; nesting is not supported.
	assert.Equal(t, importmodel.ActionSkip, ps.Advance("#endif"))
	assert.Equal(t, importmodel.StateConditional, ps.State())
}

func TestParseState_OtherConditionalsIgnored(t *testing.T) {
	t.Parallel()

	var ps importmodel.ParseState

	assert.Equal(t, importmodel.ActionNone, ps.Advance("#if TARGET_OS_IOS"))
	assert.Equal(t, importmodel.StateNormal, ps.State())
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "normal", importmodel.StateNormal.String())
	assert.Equal(t, "conditional", importmodel.StateConditional.String())
	assert.Equal(t, "conditional-else", importmodel.StateConditionalElse.String())
}
