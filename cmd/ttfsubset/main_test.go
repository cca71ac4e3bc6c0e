package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kofi-q/ttfsubset/ttf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseSubsetArgs(t *testing.T) {
	opts, err := parseSubsetArgs([]string{
		"-font", "in.ttf", "-out", "out.ttf", "-text", "abc", "-arabic",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{
		font:   "in.ttf",
		out:    "out.ttf",
		text:   "abc",
		arabic: true,
	}, opts)

	for _, args := range [][]string{
		{"-out", "out.ttf", "-text", "abc"},
		{"-font", "in.ttf", "-text", "abc"},
		{"-font", "in.ttf", "-out", "out.ttf"},
		{"-bogus"},
	} {
		_, err := parseSubsetArgs(args, io.Discard)
		assert.Error(t, err, "%v", args)
	}
}

func TestParseFontArgs(t *testing.T) {
	opts, err := parseFontArgs("info", []string{"a.ttf"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "a.ttf", opts.font)

	opts, err = parseFontArgs("info", []string{"-allow-restricted", "-font", "b.ttf"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "b.ttf", opts.font)
	assert.True(t, opts.allowRestricted)

	_, err = parseFontArgs("info", nil, io.Discard)
	assert.Error(t, err)

	_, err = parseFontArgs("info", []string{"a.ttf", "b.ttf"}, io.Discard)
	assert.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	op, err := parseCommand("glyph 12")
	require.NoError(t, err)
	assert.Equal(t, Op{code: GLYPH, arg: "12"}, op)

	op, err = parseCommand("QUIT")
	require.NoError(t, err)
	assert.Equal(t, QUIT, op.code)

	op, err = parseCommand("subset  hello world ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", op.arg)

	_, err = parseCommand("metrics")
	assert.ErrorIs(t, err, errMissingArg)

	_, err = parseCommand("frobnicate 3")
	assert.Error(t, err)
}

func TestParseChar(t *testing.T) {
	char, err := parseChar("U+0041")
	require.NoError(t, err)
	assert.Equal(t, 'A', char)

	char, err = parseChar("u+1f600")
	require.NoError(t, err)
	assert.Equal(t, '\U0001f600', char)

	char, err = parseChar("ß")
	require.NoError(t, err)
	assert.Equal(t, 'ß', char)

	_, err = parseChar("ab")
	assert.Error(t, err)

	_, err = parseChar("U+110000")
	assert.Error(t, err)

	gid, err := parseGlyphId("0x10")
	require.NoError(t, err)
	assert.Equal(t, uint16(16), gid)

	_, err = parseGlyphId("70000")
	assert.Error(t, err)
}

func TestRunSubset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.ttf")
	out := filepath.Join(dir, "out.ttf")
	textFile := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(in, goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(textFile, []byte("world"), 0o644))

	err := runSubset([]string{"-font", in, "-out", out, "-text", "hello", "-textfile", textFile})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, ttf.Validate(data))

	font, err := ttf.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []rune("dehlorw"), font.Runes())

	assert.NoError(t, runValidate([]string{out}))
	assert.NoError(t, runInfo([]string{out}))
	assert.Error(t, runValidate([]string{textFile}))
}
