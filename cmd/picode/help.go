package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: picode [flags] <file>...")
	fmt.Fprintln(w, "       picode <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render source code files to PNG images.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor       Check fonts, styles and environment")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <names>               Output files, in input order")
	fmt.Fprintln(w, "  -c, --config <name>                Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>                  Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --markdown                     Render each fenced code block of Markdown inputs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Source:")
	fmt.Fprintln(w, "  -l, --language <s>                 Lexer name or alias (default: guessed)")
	fmt.Fprintln(w, "      --strip-all                    Trim leading and trailing whitespace")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Font:")
	fmt.Fprintln(w, "      --font-name <s>                Installed font family")
	fmt.Fprintln(w, "      --font-paths <a,b,c,d>         Regular, italic, bold, bold-italic files")
	fmt.Fprintln(w, "      --font-size <n>                Font size in pixels (default 14)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --margin <n>                   Margin around the code block (default 30)")
	fmt.Fprintln(w, "      --padding <n>                  Padding inside the code block (default 10)")
	fmt.Fprintln(w, "      --space-between-lines <n>      Extra pixels between lines (default 5)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Line Numbers:")
	fmt.Fprintln(w, "      --show-line-numbers            Show line numbers")
	fmt.Fprintln(w, "      --show-line-numbers-bold       Bold line numbers")
	fmt.Fprintln(w, "      --show-line-numbers-italic     Italic line numbers")
	fmt.Fprintln(w, "      --show-line-numbers-separator  Separator between numbers and code")
	fmt.Fprintln(w, "      --line-numbers-padding <n>     Horizontal gutter padding (default 10)")
	fmt.Fprintln(w, "      --lines-highlighted <n,...>    1-based lines to highlight")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Colors (#RRGGBB):")
	fmt.Fprintln(w, "      --line-numbers-background-color  Gutter background (default #151718)")
	fmt.Fprintln(w, "      --line-numbers-color             Line number color (default #6D8A88)")
	fmt.Fprintln(w, "      --highlight-color                Highlighted line color (default #F7F0AB)")
	fmt.Fprintln(w, "      --picture-background-color       Margin color (default #A5B2BD)")
	fmt.Fprintln(w, "      --code-background-color          Code background (default #151718)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>                    Chroma style name or XML file (default monokai)")
	fmt.Fprintln(w, "      --asset-path <dir>             Custom fonts/ and styles/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Information:")
	fmt.Fprintln(w, "      --version                      Print version and exit")
	fmt.Fprintln(w, "      --list-languages               List lexer names and exit")
	fmt.Fprintln(w, "      --list-styles                  List style names and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                        Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                      Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: PICODE_CONFIG, PICODE_STYLE, PICODE_LANGUAGE, PICODE_FONT_NAME,")
	fmt.Fprintln(w, "PICODE_FONT_SIZE, PICODE_OUTPUT_DIR, PICODE_ASSET_PATH, PICODE_WORKERS.")
	fmt.Fprintln(w, "Flags override environment variables, which override the config file.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: picode doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check bundled fonts, installed fonts, styles and environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Print the report as JSON")
}

// runHelp prints help for a specific command.
// Returns ErrUnknownCommand for an unknown topic.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: picode help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
