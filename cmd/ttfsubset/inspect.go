package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/kofi-q/ttfsubset/ttf"
	"github.com/pterm/pterm"
)

func runInspect(args []string) error {
	opts, err := parseFontArgs("inspect", args, os.Stderr)
	if err != nil {
		return err
	}

	font, err := loadFont(opts)
	if err != nil {
		return err
	}

	repl, err := readline.New("ttf > ")
	if err != nil {
		return err
	}
	defer repl.Close()

	intp := &Intp{font: font, repl: repl}
	pterm.Info.Printf("%s\n", font)
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()

	return nil
}

// Intp is our interpreter object
type Intp struct {
	font *ttf.Font
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}

		op, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}

		quit, err := intp.execute(op)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed inspector command.
type Op struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	TABLES
	GLYPH
	CHAR
	METRICS
	SUBSET
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"tables":  TABLES,
	"glyph":   GLYPH,
	"char":    CHAR,
	"metrics": METRICS,
	"subset":  SUBSET,
}

var opHelp = []string{
	QUIT:    "quit               leave the inspector",
	HELP:    "help               show this list",
	TABLES:  "tables             list the table directory",
	GLYPH:   "glyph <gid>        show a glyph record",
	CHAR:    "char <c|U+XXXX>    show the glyph mapped to a character",
	METRICS: "metrics <gid>      show the metrics of a glyph",
	SUBSET:  "subset <text>      dry-run a subset for some text",
}

var errMissingArg = errors.New("command needs an argument")

func parseCommand(line string) (Op, error) {
	name, arg, _ := strings.Cut(line, " ")
	code, ok := opMap[strings.ToLower(name)]
	if !ok {
		return Op{}, fmt.Errorf("unknown command %q, try 'help'", name)
	}

	op := Op{code: code, arg: strings.TrimSpace(arg)}
	switch code {
	case GLYPH, CHAR, METRICS, SUBSET:
		if op.arg == "" {
			return op, fmt.Errorf("%s: %w", name, errMissingArg)
		}
	}

	return op, nil
}

func (intp *Intp) execute(op Op) (quit bool, err error) {
	tracer().Debugf("op = %v", op)

	switch op.code {
	case QUIT:
		return true, nil

	case HELP:
		for _, line := range opHelp {
			pterm.Println(line)
		}

	case TABLES:
		printDirectory(intp.font.Directory())

	case GLYPH:
		gid, err := parseGlyphId(op.arg)
		if err != nil {
			return false, err
		}
		return false, intp.showGlyph(gid)

	case CHAR:
		char, err := parseChar(op.arg)
		if err != nil {
			return false, err
		}
		gid, ok := intp.font.GlyphIndex(char)
		if !ok {
			return false, fmt.Errorf("%U is not mapped", char)
		}
		pterm.Printf("%U -> glyph %d\n", char, gid)
		return false, intp.showGlyph(gid)

	case METRICS:
		gid, err := parseGlyphId(op.arg)
		if err != nil {
			return false, err
		}
		m, ok := intp.font.Metrics(gid)
		if !ok {
			return false, fmt.Errorf("no glyph %d", gid)
		}
		printMetrics(gid, m)

	case SUBSET:
		sub, err := intp.font.Subset([]rune(op.arg))
		if err != nil {
			return false, err
		}
		printDiagnostics(sub.Diagnostics)
		pterm.Printf("%d glyphs %v, %d bytes\n", sub.GlyphCount(), sub.Glyphs, len(sub.Font))
	}

	return false, nil
}

func (intp *Intp) showGlyph(gid uint16) error {
	if !intp.font.HasOutlines() {
		if bitmap, ok := intp.font.Bitmap(gid, 0); ok {
			pterm.Printf("bitmap %dx%d at %d ppem, %d bytes PNG\n",
				bitmap.Metrics.Width, bitmap.Metrics.Height, bitmap.Ppem, len(bitmap.PNG))
			return nil
		}
	}

	glyph, err := intp.font.Glyph(gid)
	if err != nil {
		return err
	}
	printGlyph(&glyph)

	return nil
}

func parseGlyphId(arg string) (uint16, error) {
	gid, err := strconv.ParseUint(arg, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad glyph index %q", arg)
	}

	return uint16(gid), nil
}

// parseChar accepts a single character or a U+XXXX code point.
func parseChar(arg string) (rune, error) {
	if hex, ok := strings.CutPrefix(strings.ToUpper(arg), "U+"); ok {
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || code > utf8.MaxRune {
			return 0, fmt.Errorf("bad code point %q", arg)
		}
		return rune(code), nil
	}

	if utf8.RuneCountInString(arg) != 1 {
		return 0, fmt.Errorf("expected one character, got %q", arg)
	}
	char, _ := utf8.DecodeRuneInString(arg)

	return char, nil
}
