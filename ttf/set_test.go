package ttf

import (
	"testing"
	"unicode"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFontSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	set := NewFontSet(2)
	regular := set.MustAddTtf("Go", StyleNone, goregular.TTF)
	bold := set.MustAddTtf("Go", StyleB|StyleU, gobold.TTF)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "go", set.Key(regular).String())
	assert.Equal(t, "gob", set.Key(bold).String())

	id, ok := set.Lookup("GO", StyleB)
	require.True(t, ok)
	assert.Equal(t, bold, id)

	_, ok = set.Lookup("Go", StyleI)
	assert.False(t, ok)

	info := set.Get(regular)
	gid, width := info.GlyphWidth('W')
	assert.Equal(t, info.Font().GlyphId('W'), gid)
	assert.Equal(t, info.Font().Width(gid), width)
	assert.Positive(t, info.GlyphWidthOnly('i'))
	assert.Equal(t, []rune{'W', 'i'}, info.Usage().Runes())

	sub, err := info.Subset()
	require.NoError(t, err)
	assert.Equal(t, []rune{'W', 'i'}, sub.Chars)
	assert.Equal(t, 0, set.Get(bold).Usage().Len())
}

func TestFontSetErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	set := NewFontSet(1)
	_, err := set.AddTtf("Junk", StyleNone, []byte("not a font"))
	assert.ErrorIs(t, err, ErrUnsupportedFont)
	assert.Equal(t, 0, set.Len())

	assert.Panics(t, func() {
		set.MustAddTtf("Junk", StyleI, nil)
	})
}

func TestStyle(t *testing.T) {
	style := StyleB | StyleI | StyleS | StyleU

	assert.Equal(t, "bi", style.String())
	assert.True(t, style.Strike())
	assert.True(t, style.Underline())
	assert.False(t, StyleI.Underline())
	assert.Equal(t, "", StyleNone.String())
}

func TestUsage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	var usage Usage
	usage.Add("hello")
	usage.AddRune(-1)
	usage.AddRune(0x7ffffff0)
	usage.Add("\U0001f600 world")

	assert.Equal(t, []rune("helo\U0001f600 wrd"), usage.Runes())
	assert.True(t, usage.Has('w'))
	assert.False(t, usage.Has('x'))
	assert.False(t, usage.Has(-1))
	assert.False(t, usage.Has(0x7ffffff0))
	assert.LessOrEqual(t, usage.seen.Len(), uint(unicode.MaxRune)+1)
	assert.Equal(t, 9, usage.Len())

	font := mustParse(t, goregular.TTF)
	sub, err := usage.Subset(font)
	require.NoError(t, err)

	assert.Equal(t, []rune("helo wrd"), sub.Chars)
	require.Len(t, sub.Diagnostics, 1)
	assert.Equal(t, UnmappedCharacter, sub.Diagnostics[0].Kind)
}
