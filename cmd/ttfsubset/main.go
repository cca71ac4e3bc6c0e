// Command ttfsubset subsets, inspects and validates TrueType fonts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kofi-q/ttfsubset/ttf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'scribe.ttf'
func tracer() tracing.Trace {
	return tracing.Select("scribe.ttf")
}

type command struct {
	name string
	help string
	run  func(args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"subset", "write a font holding only the glyphs for some text", runSubset},
		{"info", "print metadata and the table directory", runInfo},
		{"validate", "check checksums and table layout", runValidate},
		{"inspect", "browse glyphs interactively", runInspect},
	}
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.scribe.ttf": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Usage = usage
	flag.Parse()

	if err := setTraceLevel(*tlevel); err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: ttfsubset [-trace level] <command> [flags]\n\ncommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-9s %s\n", cmd.name, cmd.help)
	}
	fmt.Fprintln(out)
	flag.PrintDefaults()
}

func setTraceLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		return fmt.Errorf("invalid trace level: %s", level)
	}

	return nil
}

func run(name string, args []string) error {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd.run(args)
		}
	}

	return fmt.Errorf("unknown command %q", name)
}

// --- Flags ------------------------------------------------------------

type options struct {
	font     string
	text     string
	textFile string
	out      string

	arabic          bool
	allowRestricted bool
}

func newFlagSet(name string, opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.font, "font", "", "TrueType font file")
	fs.BoolVar(&opts.allowRestricted, "allow-restricted", false, "load fonts whose OS/2 fsType forbids embedding")

	return fs
}

func parseFontArgs(name string, args []string, output io.Writer) (options, error) {
	var opts options
	fs := newFlagSet(name, &opts, output)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.font == "" && fs.NArg() == 1 {
		opts.font = fs.Arg(0)
	}
	if opts.font == "" {
		return opts, errors.New("missing -font")
	}

	return opts, nil
}

func parseSubsetArgs(args []string, output io.Writer) (options, error) {
	var opts options
	fs := newFlagSet("subset", &opts, output)
	fs.StringVar(&opts.text, "text", "", "characters to keep")
	fs.StringVar(&opts.textFile, "textfile", "", "file whose characters to keep")
	fs.StringVar(&opts.out, "out", "", "output file")
	fs.BoolVar(&opts.arabic, "arabic", false, "map Arabic isolated forms to the basic letters' glyphs")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.font == "":
		return opts, errors.New("missing -font")
	case opts.out == "":
		return opts, errors.New("missing -out")
	case opts.text == "" && opts.textFile == "":
		return opts, errors.New("one of -text or -textfile is required")
	}

	return opts, nil
}

// --- Font Loading -----------------------------------------------------

func loadFont(opts options) (*ttf.Font, error) {
	data, err := os.ReadFile(opts.font)
	if err != nil {
		return nil, err
	}

	font, err := ttf.ParseWithOptions(data, ttf.ParseOptions{
		MirrorArabic:    opts.arabic,
		AllowRestricted: opts.allowRestricted,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot load font %s: %w", opts.font, err)
	}
	tracer().Infof("loaded %s", font)

	return font, nil
}

// --- Commands ---------------------------------------------------------

func runSubset(args []string) error {
	opts, err := parseSubsetArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	font, err := loadFont(opts)
	if err != nil {
		return err
	}

	var used ttf.Usage
	used.Add(opts.text)
	if opts.textFile != "" {
		text, err := os.ReadFile(opts.textFile)
		if err != nil {
			return err
		}
		used.Add(string(text))
	}

	sub, err := used.Subset(font)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.out, sub.Font, 0o644); err != nil {
		return err
	}

	printDiagnostics(sub.Diagnostics)
	pterm.Info.Printf(
		"wrote %s: %d of %d glyphs, %d characters, %d bytes\n",
		opts.out,
		sub.GlyphCount(),
		font.GlyphCount,
		len(sub.Chars),
		len(sub.Font),
	)

	return nil
}

func runInfo(args []string) error {
	opts, err := parseFontArgs("info", args, os.Stderr)
	if err != nil {
		return err
	}

	font, err := loadFont(opts)
	if err != nil {
		return err
	}

	printInfo(font)
	printDirectory(font.Directory())
	printStrikes(font.Strikes())
	printDiagnostics(font.Diagnostics())

	return nil
}

func runValidate(args []string) error {
	opts, err := parseFontArgs("validate", args, os.Stderr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.font)
	if err != nil {
		return err
	}

	if err := ttf.Validate(data); err != nil {
		return fmt.Errorf("%s is invalid:\n%w", opts.font, err)
	}
	pterm.Info.Printf("%s is valid\n", opts.font)

	return nil
}
