package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	mdsafe "github.com/alnah/go-mdsafe"
	"github.com/alnah/go-mdsafe/internal/config"
	"github.com/alnah/go-mdsafe/internal/fileutil"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Sentinel errors for render operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrReadCSS       = errors.New("failed to read CSS file")
	ErrReadMarkdown  = errors.New("failed to read markdown")
	ErrWriteOutput   = errors.New("failed to write output")
	ErrInvalidFormat = errors.New("invalid output format")
)

// Output formats accepted by --format.
const (
	formatFragment = config.FormatFragment
	formatDocument = config.FormatDocument
	formatText     = config.FormatText
)

// stdinArg names standard input as the render source.
const stdinArg = "-"

// Renderer is the subset of the library the render command needs.
type Renderer interface {
	RenderToSafeHTML(markdown string, h mdsafe.SyntaxHighlighter) string
	ExtractPlainText(markdown string) string
	RenderDocument(ctx context.Context, markdown string, doc mdsafe.Document) (string, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*mdsafe.Renderer)(nil)

// renderParams groups settings shared by every file in a run.
type renderParams struct {
	format string
	doc    mdsafe.Document
}

// runRender renders markdown files, a directory tree, or stdin.
// forcedFormat overrides --format for the text command.
func runRender(ctx context.Context, args []string, env *Environment, forcedFormat string) error {
	flags, positional, err := parseRenderFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		if forcedFormat == formatText {
			printTextUsage(env.Stdout)
		} else {
			printRenderUsage(env.Stdout)
		}
		return err
	}
	if err != nil {
		return err
	}
	if forcedFormat != "" {
		flags.format = forcedFormat
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	// maxprocs.Set only fails on a malformed GOMAXPROCS, and the runtime
	// default still applies then.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(logger)))
	warnUnknownEnvVars(logger)

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := validateFormat(cfg.Output.Format); err != nil {
		return err
	}
	if err := validateExcludes(cfg.Input.Exclude); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	renderer, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	extraCSS, err := readExtraCSS(cfg.CSS.File)
	if err != nil {
		return err
	}

	params := &renderParams{
		format: cfg.Output.Format,
		doc: mdsafe.Document{
			Title: cfg.Document.Title,
			Lang:  cfg.Document.Lang,
			CSS:   extraCSS,
		},
	}

	inputPath, err := resolveInputPath(positional, cfg, env)
	if err != nil {
		return err
	}
	if inputPath == stdinArg {
		return renderStdin(ctx, renderer, params, flags.output, env)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverFiles(inputPath, outputDir, outputExtension(params.format), cfg.Input.Exclude)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers, runtime.GOMAXPROCS(0))
	logger.Debug("rendering", "files", len(files), "workers", workers, "format", params.format)

	results := renderBatch(ctx, renderer, files, params, workers)
	if failed := logResults(results, logger); failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	cfg.Input.Exclude = append(cfg.Input.Exclude, flags.exclude...)

	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
	}
	if flags.highlight.tabWidth != 0 {
		cfg.Highlight.TabWidth = flags.highlight.tabWidth
	}
	if flags.highlight.disabled {
		cfg.Highlight.Disabled = true
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

	if len(flags.aliases) > 0 {
		if cfg.Languages.Aliases == nil {
			cfg.Languages.Aliases = make(map[string]string, len(flags.aliases))
		}
		for alias, target := range flags.aliases {
			cfg.Languages.Aliases[alias] = target
		}
	}

	cfg.Sanitize.ForbidTags = append(cfg.Sanitize.ForbidTags, flags.sanitize.forbidTags...)
	cfg.Sanitize.ForbidAttributes = append(cfg.Sanitize.ForbidAttributes, flags.sanitize.forbidAttributes...)
	cfg.Sanitize.AllowAttributes = append(cfg.Sanitize.AllowAttributes, flags.sanitize.allowAttributes...)
	if flags.sanitize.allowData {
		cfg.Sanitize.AllowDataAttributes = true
	}
	if flags.sanitize.newTab {
		cfg.Sanitize.NewTabLinks = true
	}

	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
}

// validateFormat checks an output format name.
func validateFormat(format string) error {
	switch format {
	case formatFragment, formatDocument, formatText:
		return nil
	}
	return fmt.Errorf("%w: %q (must be fragment, document, or text)", ErrInvalidFormat, format)
}

// outputExtension returns the file extension written for format.
func outputExtension(format string) string {
	if format == formatText {
		return ".txt"
	}
	return ".html"
}

// resolveInputPath determines the input from args, config, or a piped stdin.
func resolveInputPath(args []string, cfg *config.Config, env *Environment) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	if env.StdinIsTerminal != nil && !env.StdinIsTerminal() {
		return stdinArg, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// renderStdin renders standard input to output, or to stdout when output
// is empty.
func renderStdin(ctx context.Context, r Renderer, params *renderParams, output string, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	out, err := renderContent(ctx, r, params, string(content))
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := io.WriteString(env.Stdout, out); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteAtomic(output, []byte(out)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// renderContent renders markdown in the requested format. Output always
// ends with a newline unless it is empty.
func renderContent(ctx context.Context, r Renderer, params *renderParams, markdown string) (string, error) {
	var out string
	switch params.format {
	case formatText:
		out = r.ExtractPlainText(markdown)
	case formatDocument:
		doc, err := r.RenderDocument(ctx, markdown, params.doc)
		if err != nil {
			return "", err
		}
		out = doc
	default:
		out = r.RenderToSafeHTML(markdown, nil)
	}

	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}
