package importmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/pkg/importmodel"
)

func TestIsIncludeLine(t *testing.T) {
	t.Parallel()

	assert.True(t, importmodel.IsIncludeLine(`#import "Foo.h"`))
	assert.True(t, importmodel.IsIncludeLine(`#include <stdio.h>`))
	assert.False(t, importmodel.IsIncludeLine(`@import FirebaseCore;`))
	assert.False(t, importmodel.IsIncludeLine(`// #import "Foo.h"`))
	assert.False(t, importmodel.IsIncludeLine(""))
}

func TestParseDirective_DoubleQuoted(t *testing.T) {
	t.Parallel()

	d, err := importmodel.ParseDirective(`#import "FirebaseCore/Sources/FIRApp.h"`, 7)
	require.NoError(t, err)

	assert.Equal(t, `"FirebaseCore/Sources/FIRApp.h"`, d.Target)
	assert.Equal(t, "FirebaseCore/Sources/FIRApp.h", d.Raw)
	assert.Equal(t, importmodel.QuoteDouble, d.Quote)
	assert.Equal(t, 7, d.Line)
}

func TestParseDirective_AngleBracketed(t *testing.T) {
	t.Parallel()

	d, err := importmodel.ParseDirective(`#include <FirebaseCore/FirebaseCore.h>  // umbrella`, 1)
	require.NoError(t, err)

	assert.Equal(t, "FirebaseCore/FirebaseCore.h", d.Raw)
	assert.Equal(t, importmodel.QuoteAngle, d.Quote)
}

func TestParseDirective_ExtraWhitespace(t *testing.T) {
	t.Parallel()

	d, err := importmodel.ParseDirective("#import\t  \"Foo.h\"", 3)
	require.NoError(t, err)

	assert.Equal(t, `"Foo.h"`, d.Target)
	assert.Equal(t, "Foo.h", d.Raw)
}

func TestParseDirective_MacroTarget(t *testing.T) {
	t.Parallel()

	d, err := importmodel.ParseDirective("#include PLATFORM_HEADER", 2)
	require.NoError(t, err)

	assert.Equal(t, importmodel.QuoteNone, d.Quote)
	assert.Equal(t, "PLATFORM_HEADER", d.Raw)
}

func TestParseDirective_MissingTarget(t *testing.T) {
	t.Parallel()

	_, err := importmodel.ParseDirective("#import", 4)
	require.ErrorIs(t, err, importmodel.ErrMalformedDirective)

	_, err = importmodel.ParseDirective(`#include"Foo.h"`, 5)
	require.ErrorIs(t, err, importmodel.ErrMalformedDirective)
}

func TestQuoteKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "double", importmodel.QuoteDouble.String())
	assert.Equal(t, "angle", importmodel.QuoteAngle.String())
	assert.Equal(t, "none", importmodel.QuoteNone.String())
}
