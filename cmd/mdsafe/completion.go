package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-mdsafe/internal/assets"
	"github.com/alnah/go-mdsafe/internal/highlight"
	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Repeat   bool     // may be given more than once
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	FilePattern string   // glob for file arguments, empty when none
}

// completionMeta holds completion hints that a FlagSet cannot express.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

const markdownGlob = "*.md,*.markdown"

// flagCompletionMeta maps flag names to their completion metadata. Style
// names are read from the registered styles so the lists never drift.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"format":          {Values: []string{formatFragment, formatDocument, formatText}},
		"highlight-style": {Values: highlight.StyleNames()},
		"style":           {Values: assets.NewEmbeddedLoader().StyleNames()},

		"config": {FileGlob: "*.yaml,*.yml"},
		"css":    {FileGlob: "*.css"},

		"output":     {IsDir: true},
		"asset-path": {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		case "stringSlice", "stringArray", "stringToString":
			fd.Repeat = true
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion. Flags come
// from the same FlagSets the commands parse with.
func getCommands() []commandDef {
	renderFlagDefs := extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{}))
	commonFlagDefs := extractFlagsFromFlagSet(newCommonFlagSet("common", &commonFlags{}))

	return []commandDef{
		{Name: "render", Desc: "Render markdown to sanitized HTML", Flags: renderFlagDefs, FilePattern: markdownGlob},
		{Name: "text", Desc: "Extract plain text from markdown", Flags: renderFlagDefs, FilePattern: markdownGlob},
		{Name: "langs", Desc: "List or resolve code block languages", Flags: commonFlagDefs},
		{Name: "css", Desc: "Print the highlight stylesheet", Flags: extractFlagsFromFlagSet(newCSSFlagSet(&cssFlags{}))},
		{Name: "config", Desc: "Print the effective configuration", Flags: commonFlagDefs},
		{Name: "completion", Desc: "Generate shell completion script", Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: []string{"render", "text", "langs", "css", "config", "completion"}},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()

	var script string
	switch shell {
	case ShellBash:
		script = generateBash(cmds)
	case ShellZsh:
		script = generateZsh(cmds)
	case ShellFish:
		script = generateFish(cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsafe completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a completion script for bash, zsh, or fish.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(mdsafe completion bash)\"           # ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(mdsafe completion zsh)\"            # ~/.zshrc, after compinit")
	fmt.Fprintln(w, "  Fish:  mdsafe completion fish > ~/.config/fish/completions/mdsafe.fish")
}

// ---------------------------------------------------------------------------
// bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder
	names := commandNames(cmds)

	b.WriteString("# bash completion for mdsafe\n")
	b.WriteString("_mdsafe() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")

	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -X %s -- \"$cur\"))\n", strings.Join(names, " "), bashGlob(markdownGlob))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, fd := range uniqueFlags(cmds) {
		var action string
		switch fd.Type {
		case flagEnum:
			action = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(fd.Values, " "))
		case flagFile:
			action = fmt.Sprintf("COMPREPLY=($(compgen -f -X %s -- \"$cur\"))", bashGlob(fd.FileGlob))
		case flagDir:
			action = "COMPREPLY=($(compgen -d -- \"$cur\"))"
		default:
			continue
		}
		fmt.Fprintf(&b, "        %s)\n            %s\n            return\n            ;;\n", flagPattern(fd), action)
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0 && c.FilePattern != "":
			b.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("            else\n")
			fmt.Fprintf(&b, "                COMPREPLY=($(compgen -f -X %s -- \"$cur\"))\n", bashGlob(c.FilePattern))
			b.WriteString("            fi\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Args, " "))
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _mdsafe mdsafe\n")

	return b.String()
}

// bashGlob turns "*.md,*.markdown" into an exclusion pattern for compgen -X
// that keeps directories reachable.
func bashGlob(globs string) string {
	return "'!@(" + strings.ReplaceAll(globs, ",", "|") + ")'"
}

// flagPattern returns the case pattern matching a flag's spellings.
func flagPattern(fd flagDef) string {
	if fd.Short != "" {
		return "--" + fd.Long + "|-" + fd.Short
	}
	return "--" + fd.Long
}

// flagWords lists every spelling of flags.
func flagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)*2)
	for _, fd := range flags {
		words = append(words, "--"+fd.Long)
		if fd.Short != "" {
			words = append(words, "-"+fd.Short)
		}
	}
	return words
}

// ---------------------------------------------------------------------------
// zsh
// ---------------------------------------------------------------------------

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef mdsafe\n\n")
	b.WriteString("_mdsafe() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe -t commands 'mdsafe command' commands\n")
	fmt.Fprintf(&b, "        _files -g '%s'\n", zshGlob(markdownGlob))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    local cmd=$words[2]\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")

	b.WriteString("    case $cmd in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0:
			b.WriteString("            _arguments -s")
			for _, fd := range c.Flags {
				fmt.Fprintf(&b, " \\\n                %s", zshFlagSpec(fd))
			}
			if c.FilePattern != "" {
				fmt.Fprintf(&b, " \\\n                '*:input:_files -g \"%s\"'", zshGlob(c.FilePattern))
			}
			b.WriteString("\n")
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _mdsafe mdsafe\n")

	return b.String()
}

// zshFlagSpec renders one _arguments spec.
func zshFlagSpec(fd flagDef) string {
	var action string
	switch fd.Type {
	case flagBool:
	case flagEnum:
		action = ":" + fd.Long + ":(" + strings.Join(fd.Values, " ") + ")"
	case flagFile:
		action = ":" + fd.Long + ":_files -g \"" + zshGlob(fd.FileGlob) + "\""
	case flagDir:
		action = ":" + fd.Long + ":_files -/"
	default:
		action = ":" + fd.Long + ":"
	}

	repeat := ""
	if fd.Repeat {
		repeat = "*"
	}
	desc := "[" + zshEscape(fd.Desc) + "]"

	if fd.Short != "" && !fd.Repeat {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", fd.Short, fd.Long, fd.Short, fd.Long, desc, action)
	}
	return fmt.Sprintf("'%s--%s%s%s'", repeat, fd.Long, desc, action)
}

// zshGlob turns "*.md,*.markdown" into the zsh glob *.(md|markdown).
func zshGlob(globs string) string {
	parts := strings.Split(globs, ",")
	if len(parts) == 1 {
		return parts[0]
	}
	exts := make([]string, len(parts))
	for i, p := range parts {
		exts[i] = strings.TrimPrefix(p, "*.")
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

var zshEscaper = strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)

func zshEscape(s string) string {
	return zshEscaper.Replace(s)
}

// ---------------------------------------------------------------------------
// fish
// ---------------------------------------------------------------------------

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for mdsafe\n")
	b.WriteString("complete -c mdsafe -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c mdsafe -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c mdsafe -n __fish_use_subcommand -k -a '(__fish_complete_suffix .md)'\n")

	for _, c := range cmds {
		b.WriteString("\n")
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)
		for _, fd := range c.Flags {
			line := "complete -c mdsafe -n " + cond + " -l " + fd.Long
			if fd.Short != "" {
				line += " -s " + fd.Short
			}
			switch fd.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a '" + strings.Join(fd.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += " -d '" + fishEscape(fd.Desc) + "'"
			b.WriteString(line + "\n")
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "complete -c mdsafe -n %s -k -a '(__fish_complete_suffix .md; __fish_complete_suffix .markdown)'\n", cond)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c mdsafe -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}

	return b.String()
}

var fishEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func fishEscape(s string) string {
	return fishEscaper.Replace(s)
}

// ---------------------------------------------------------------------------
// shared
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// uniqueFlags returns every flag across cmds once, in first-seen order.
func uniqueFlags(cmds []commandDef) []flagDef {
	seen := make(map[string]bool)
	var out []flagDef
	for _, c := range cmds {
		for _, fd := range c.Flags {
			if !seen[fd.Long] {
				seen[fd.Long] = true
				out = append(out, fd)
			}
		}
	}
	return out
}
