package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-mdsafe/internal/hints"
	flag "github.com/spf13/pflag"
)

// ErrUnresolvedLanguage is returned when a queried token matches no language.
var ErrUnresolvedLanguage = errors.New("unresolved language")

// runLangs lists the language table, or resolves the given tokens.
func runLangs(args []string, env *Environment) error {
	flags, tokens, err := parseCommonFlags("langs", args)
	if errors.Is(err, flag.ErrHelp) {
		printLangsUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.quiet, flags.verbose)
	cfg, err := loadConfig(flags.config, loadEnvConfig())
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	if len(tokens) == 0 {
		tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tALIASES")
		for _, lang := range r.Languages() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", lang.ID, lang.DisplayName, strings.Join(r.Aliases(lang.ID), ", "))
		}
		return tw.Flush()
	}

	known := r.SupportedLanguages()
	var unresolved []string
	for _, token := range tokens {
		id, ok := r.ResolveLanguage(token)
		if !ok {
			fmt.Fprintf(env.Stderr, "%s: unknown%s\n", token, hints.ForUnknownLanguage(token, known))
			unresolved = append(unresolved, token)
			continue
		}
		fmt.Fprintf(env.Stdout, "%s\t%s\t%s\n", token, id, r.DisplayName(id))
	}

	if len(unresolved) > 0 {
		return fmt.Errorf("%w: %s", ErrUnresolvedLanguage, strings.Join(unresolved, ", "))
	}
	return nil
}
