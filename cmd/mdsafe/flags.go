package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	style    string
	tabWidth int
	disabled bool
}

// styleFlags holds page styling flags for standalone documents.
type styleFlags struct {
	style     string // page style name
	css       string // extra CSS file
	assetPath string // custom asset directory
}

// sanitizeFlags holds allow-list adjustments.
type sanitizeFlags struct {
	forbidTags       []string
	forbidAttributes []string
	allowAttributes  []string
	allowData        bool
	newTab           bool
}

// documentFlags holds standalone document metadata.
type documentFlags struct {
	title string
	lang  string
}

// renderFlags holds all flags for the render and text commands.
type renderFlags struct {
	common    commonFlags
	output    string
	workers   int
	format    string
	exclude   []string
	aliases   map[string]string
	highlight highlightFlags
	style     styleFlags
	sanitize  sanitizeFlags
	document  documentFlags
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	common    commonFlags
	highlight highlightFlags
	style     styleFlags
	page      bool
	list      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing and debug output")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "chroma style for code (default github)")
	fs.IntVar(&f.tabWidth, "tab-width", 0, "spaces per tab in code (1-16, default 4)")
	fs.BoolVar(&f.disabled, "no-highlight", false, "render code blocks as escaped text")
}

// addStyleFlags adds page style flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "page style name for documents (default, minimal)")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended to documents")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addSanitizeFlags adds allow-list flags to a FlagSet.
func addSanitizeFlags(fs *flag.FlagSet, f *sanitizeFlags) {
	fs.StringSliceVar(&f.forbidTags, "forbid-tag", nil, "also remove this tag and its content (repeatable)")
	fs.StringSliceVar(&f.forbidAttributes, "forbid-attr", nil, "also remove this attribute (repeatable)")
	fs.StringSliceVar(&f.allowAttributes, "allow-attr", nil, "also keep this attribute (repeatable)")
	fs.BoolVar(&f.allowData, "allow-data-attrs", false, "keep data-* attributes")
	fs.BoolVar(&f.newTab, "new-tab", false, "open absolute links in a new tab")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first heading)")
	fs.StringVar(&f.lang, "lang", "", "document language tag (default en)")
}

// newRenderFlagSet registers the render command flags on f.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: fragment, document, text")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "skip paths matching this glob, e.g. drafts/** (repeatable)")
	fs.StringToStringVar(&f.aliases, "alias", nil, "extra language alias, e.g. tf=hcl (repeatable)")

	addCommonFlags(fs, &f.common)
	addHighlightFlags(fs, &f.highlight)
	addStyleFlags(fs, &f.style)
	addSanitizeFlags(fs, &f.sanitize)
	addDocumentFlags(fs, &f.document)

	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

// newCSSFlagSet registers the css command flags on f.
func newCSSFlagSet(f *cssFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("css", flag.ContinueOnError)

	fs.BoolVar(&f.page, "page", false, "print the page style before the code style")
	fs.BoolVar(&f.list, "list", false, "list available styles")

	addCommonFlags(fs, &f.common)
	addHighlightFlags(fs, &f.highlight)
	addStyleFlags(fs, &f.style)

	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

// newCommonFlagSet registers the common flags on f under name.
func newCommonFlagSet(name string, f *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, f)

	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCSSFlags parses css command flags.
func parseCSSFlags(args []string) (*cssFlags, error) {
	f := &cssFlags{}
	if err := newCSSFlagSet(f).Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseCommonFlags parses commands that only take the common flags.
func parseCommonFlags(name string, args []string) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newCommonFlagSet(name, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
