package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/alnah/go-picode"
	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
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
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a subcommand for completion.
type commandDef struct {
	Name  string
	Desc  string
	Args  []string // fixed positional values
	Flags []flagDef
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta returns completion metadata keyed by flag name.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"style":      {Values: picode.Styles()},
		"config":     {FileGlob: "*.yaml,*.yml"},
		"font-paths": {FileGlob: "*.ttf,*.otf"},
		"output":     {FileGlob: "*.png"},
		"asset-path": {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
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
		case "int", "intSlice":
			fd.Type = flagInt
		default:
			fd.Type = flagString
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

// renderFlagDefs returns the flags of the render command.
func renderFlagDefs() []flagDef {
	return extractFlagsFromFlagSet(buildRenderFlagSet(&renderFlags{}))
}

// getCommands returns the subcommand registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  cmdDoctor,
			Desc:  "Check fonts, styles and environment",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print the report as JSON"}},
		},
		{
			Name: cmdCompletion,
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
		{
			Name: cmdHelp,
			Desc: "Show help for a command",
			Args: []string{cmdDoctor, cmdCompletion, cmdHelp},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// commandNames returns the subcommand names.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// globs splits a comma-separated glob list.
func globs(pattern string) []string {
	return strings.Split(pattern, ",")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	flags := renderFlagDefs()
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("# bash completion for picode\n")
	b.WriteString("_picode_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    if [[ ${COMP_CWORD} -eq 2 ]]; then\n")
	b.WriteString("        case \"${COMP_WORDS[1]}\" in\n")
	for _, c := range cmds {
		words := slices.Clone(c.Args)
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		fmt.Fprintf(&b, "            %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", c.Name, strings.Join(words, " "))
	}
	b.WriteString("        esac\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, f := range flags {
		names := "--" + f.Long
		if f.Short != "" {
			names += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", names, strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", names)
		case flagDir:
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", names)
		case flagString, flagInt:
			fmt.Fprintf(&b, "        %s) return ;;\n", names)
		}
	}
	b.WriteString("    esac\n\n")

	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
	}
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _picode_completions picode\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	flags := renderFlagDefs()
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("#compdef picode\n\n")
	b.WriteString("_picode() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )) && [[ ${words[2]} != -* ]]; then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case ${words[2]} in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, " \\\n                '--%s[%s]'", f.Long, zshEscape(f.Desc))
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, " \\\n                '1:argument:(%s)'", strings.Join(c.Args, " "))
		}
		b.WriteString("\n            return ;;\n")
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    _arguments -s")
	for _, f := range flags {
		fmt.Fprintf(&b, " \\\n        %s", zshFlagSpec(f))
	}
	b.WriteString(" \\\n        '*:file:_files'\n")
	b.WriteString("}\n\n")
	b.WriteString("_picode \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec returns the _arguments spec of a flag.
func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	name := "--" + f.Long
	if f.Short != "" {
		name = fmt.Sprintf("{-%s,--%s}", f.Short, f.Long)
	}

	var action string
	switch f.Type {
	case flagEnum:
		action = fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", strings.Join(globs(f.FileGlob), " "))
	case flagDir:
		action = ":directory:_directories"
	case flagString, flagInt:
		action = ":value:"
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'%s'[%s]%s'", f.Short, f.Long, name, desc, action)
	}
	return fmt.Sprintf("'%s[%s]%s'", name, desc, action)
}

// zshEscape escapes characters special in _arguments descriptions.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	flags := renderFlagDefs()
	cmds := getCommands()
	names := strings.Join(commandNames(cmds), " ")

	var b strings.Builder
	b.WriteString("# fish completion for picode\n\n")
	b.WriteString("function __fish_picode_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_picode_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c picode -n __fish_picode_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c picode -n '__fish_picode_using_command %s' -f -a %s\n", c.Name, fishQuote(strings.Join(c.Args, " ")))
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c picode -n '__fish_picode_using_command %s' -l %s -d %s\n", c.Name, f.Long, fishQuote(f.Desc))
		}
	}
	b.WriteString("\n")

	cond := fmt.Sprintf("'not __fish_seen_subcommand_from %s'", names)
	for _, f := range flags {
		fmt.Fprintf(&b, "complete -c picode -n %s -l %s", cond, f.Long)
		if f.Short != "" {
			fmt.Fprintf(&b, " -s %s", f.Short)
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, " -x -a %s", fishQuote(strings.Join(f.Values, " ")))
		case flagFile:
			b.WriteString(" -r -F")
		case flagDir:
			b.WriteString(" -x -a '(__fish_complete_directories)'")
		case flagString, flagInt:
			b.WriteString(" -x")
		}
		fmt.Fprintf(&b, " -d %s\n", fishQuote(f.Desc))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(w io.Writer) error {
	flags := renderFlagDefs()
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("# PowerShell completion for picode\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName picode -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $completions = @()\n\n")

	b.WriteString("    if ($elements.Count -ge 2) {\n")
	b.WriteString("        switch ($elements[1]) {\n")
	for _, c := range cmds {
		words := slices.Clone(c.Args)
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		fmt.Fprintf(&b, "            '%s' { $completions = @(%s) }\n", c.Name, psList(words))
	}
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")

	b.WriteString("    if ($completions.Count -eq 0) {\n")
	b.WriteString("        if ($wordToComplete -like '-*') {\n")
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
	}
	fmt.Fprintf(&b, "            $completions = @(%s)\n", psList(words))
	b.WriteString("        } else {\n")
	fmt.Fprintf(&b, "            $completions = @(%s)\n", psList(commandNames(cmds)))
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $completions | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// psList formats words as a PowerShell array body.
func psList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + strings.ReplaceAll(w, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: picode completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(picode completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(picode completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    picode completion fish > ~/.config/fish/completions/picode.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    picode completion powershell | Out-String | Invoke-Expression")
}
