package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdsafe/internal/assets"
	"github.com/alnah/go-mdsafe/internal/highlight"
	flag "github.com/spf13/pflag"
)

// runCSS prints the highlight stylesheet, optionally preceded by the page
// style, or lists the available styles.
func runCSS(args []string, env *Environment) error {
	flags, err := parseCSSFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printCSSUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	if flags.list {
		printStyleList(env)
		return nil
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}

	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
	}
	if flags.highlight.tabWidth != 0 {
		cfg.Highlight.TabWidth = flags.highlight.tabWidth
	}
	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.css != "" {
		cfg.CSS.File = flags.style.css
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	if flags.page {
		fmt.Fprintln(env.Stdout, strings.TrimRight(r.PageStylesheet(), "\n"))
		extra, err := readExtraCSS(cfg.CSS.File)
		if err != nil {
			return err
		}
		if extra != "" {
			fmt.Fprintln(env.Stdout, strings.TrimRight(extra, "\n"))
		}
	}
	fmt.Fprintln(env.Stdout, strings.TrimRight(r.Stylesheet(), "\n"))
	return nil
}

// printStyleList prints the chroma and page style names.
func printStyleList(env *Environment) {
	fmt.Fprintln(env.Stdout, "Highlight styles:")
	for _, name := range highlight.StyleNames() {
		fmt.Fprintf(env.Stdout, "  %s\n", name)
	}
	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, "Page styles:")
	for _, name := range assets.NewEmbeddedLoader().StyleNames() {
		fmt.Fprintf(env.Stdout, "  %s\n", name)
	}
}
