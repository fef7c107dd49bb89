package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsafe <command> [flags] [args]")
	fmt.Fprintln(w, "       mdsafe <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render markdown to sanitized HTML")
	fmt.Fprintln(w, "  text        Extract plain text from markdown")
	fmt.Fprintln(w, "  langs       List or resolve code block languages")
	fmt.Fprintln(w, "  css         Print the highlight stylesheet")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdsafe help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsafe render [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to sanitized HTML or plain text.")
	fmt.Fprintln(w)
	printRenderOptions(w)
}

// printTextUsage prints usage for the text command.
func printTextUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsafe text [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extract plain text from markdown files. Same as 'mdsafe render -f text'.")
	fmt.Fprintln(w)
	printRenderOptions(w)
}

// printRenderOptions prints the arguments, flags and environment shared by
// render and text.
func printRenderOptions(w io.Writer) {
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir or stdin is piped)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory (stdin: stdout)")
	fmt.Fprintln(w, "  -f, --format <s>            fragment, document, text")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --exclude <glob>        Skip matching paths in a directory (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style (default github)")
	fmt.Fprintln(w, "      --tab-width <n>         Spaces per tab in code (1-16)")
	fmt.Fprintln(w, "      --no-highlight          Render code blocks as escaped text")
	fmt.Fprintln(w, "      --alias <a=id>          Extra language alias (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sanitizing:")
	fmt.Fprintln(w, "      --forbid-tag <tag>      Also remove this tag and its content")
	fmt.Fprintln(w, "      --forbid-attr <attr>    Also remove this attribute")
	fmt.Fprintln(w, "      --allow-attr <attr>     Also keep this attribute")
	fmt.Fprintln(w, "      --allow-data-attrs      Keep data-* attributes")
	fmt.Fprintln(w, "      --new-tab               Open absolute links in a new tab")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document (--format document):")
	fmt.Fprintln(w, "      --title <s>             Page title (\"\" = first heading)")
	fmt.Fprintln(w, "      --lang <tag>            Page language (default en)")
	fmt.Fprintln(w, "      --style <name>          Page style: default, minimal")
	fmt.Fprintln(w, "      --css <file>            Extra CSS appended to the page")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles and templates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timing and debug output")
	fmt.Fprintln(w)
	printEnvironment(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  mdsafe README.md")
	fmt.Fprintln(w, "  mdsafe render ./docs -o ./site -f document")
	fmt.Fprintln(w, "  cat notes.md | mdsafe text")
}

// printLangsUsage prints usage for the langs command.
func printLangsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsafe langs [token...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without tokens, list every language with its aliases.")
	fmt.Fprintln(w, "With tokens, print the canonical id each one resolves to.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file with custom languages")
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsafe css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the stylesheet for highlighted code.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style (default github)")
	fmt.Fprintln(w, "      --tab-width <n>         Spaces per tab in code (1-16)")
	fmt.Fprintln(w, "      --page                  Also print the page style first")
	fmt.Fprintln(w, "      --style <name>          Page style for --page")
	fmt.Fprintln(w, "      --css <file>            Extra CSS printed with --page")
	fmt.Fprintln(w, "      --list                  List available styles")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsafe config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after the config file and environment")
	fmt.Fprintln(w, "variables are applied.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w)
	printEnvironment(w)
}

// printEnvironment lists the environment variables the CLI reads.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDSAFE_CONFIG            Config file name or path")
	fmt.Fprintln(w, "  MDSAFE_FORMAT            Output format")
	fmt.Fprintln(w, "  MDSAFE_STYLE             Page style")
	fmt.Fprintln(w, "  MDSAFE_HIGHLIGHT_STYLE   Chroma style")
	fmt.Fprintln(w, "  MDSAFE_TAB_WIDTH         Spaces per tab")
	fmt.Fprintln(w, "  MDSAFE_INPUT_DIR         Default input directory")
	fmt.Fprintln(w, "  MDSAFE_OUTPUT_DIR        Default output directory")
	fmt.Fprintln(w, "  MDSAFE_ASSET_PATH        Custom asset directory")
	fmt.Fprintln(w, "  MDSAFE_LANG              Document language tag")
	fmt.Fprintln(w, "  MDSAFE_WORKERS           Parallel workers")
	fmt.Fprintln(w, "  NO_COLOR                 Disable colored logs")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "text":
		printTextUsage(env.Stdout)
	case "langs":
		printLangsUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version", "help":
		printUsage(env.Stdout)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
