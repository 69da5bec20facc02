package picode

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// tabWidth is the column stop used to expand tabs.
const tabWidth = 4

// resolveLexer picks the lexer for the resolved input:
//  1. an explicit language is looked up by name or alias;
//  2. a file is matched by name, then by content;
//  3. inline code is matched by content.
//
// When every guess fails the plain-text lexer is used.
func resolveLexer(in *ResolvedInput, code string) (chroma.Lexer, error) {
	var lexer chroma.Lexer

	switch {
	case in.Language != "":
		lexer = lexers.Get(in.Language)
		if lexer == nil {
			return nil, newError(KindUnknownLanguage,
				"There is no lexer for the programming language '%s'.", in.Language)
		}
	case in.FilePath != "":
		lexer = lexers.Match(filepath.Base(in.FilePath))
		if lexer == nil {
			lexer = lexers.Analyse(code)
		}
	default:
		lexer = lexers.Analyse(code)
	}

	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer), nil
}

// prepareCode normalizes line endings and trims the input the way the
// lexer expects it: leading and trailing blank lines are always dropped,
// and all surrounding whitespace when stripAll is set.
func prepareCode(code string, stripAll bool) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")
	if stripAll {
		return strings.TrimSpace(code)
	}
	return strings.Trim(code, "\n")
}

// tokenize runs lexer over code.
func tokenize(lexer chroma.Lexer, code string) ([]chroma.Token, error) {
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root", EnsureLF: true}, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexing, err)
	}
	return it.Tokens(), nil
}

// lexerName returns the display name of lexer.
func lexerName(lexer chroma.Lexer) string {
	if cfg := lexer.Config(); cfg != nil {
		return cfg.Name
	}
	return ""
}

// Languages returns the names of all supported languages, sorted.
func Languages() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}
