package picode

import (
	"errors"
	"slices"
	"testing"
)

func TestResolveLexer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       ResolvedInput
		code     string
		wantName string
		wantErr  error
	}{
		{
			name:     "explicit language with inline code",
			in:       ResolvedInput{Code: "x = 1", Language: "python"},
			code:     "x = 1",
			wantName: "Python",
		},
		{
			name:     "explicit language wins over file name",
			in:       ResolvedInput{FilePath: "script.txt", Language: "go"},
			code:     "package main",
			wantName: "Go",
		},
		{
			name:     "alias lookup",
			in:       ResolvedInput{Code: "x", Language: "golang"},
			code:     "x",
			wantName: "Go",
		},
		{
			name:     "file name match",
			in:       ResolvedInput{FilePath: "/src/app/main.go"},
			code:     "package main\n",
			wantName: "Go",
		},
		{
			name:    "unknown language with file",
			in:      ResolvedInput{FilePath: "a.py", Language: "klingon"},
			code:    "x",
			wantErr: ErrUnknownLanguage,
		},
		{
			name:    "unknown language with inline code",
			in:      ResolvedInput{Code: "x", Language: "klingon"},
			code:    "x",
			wantErr: ErrUnknownLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lexer, err := resolveLexer(&tt.in, tt.code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolveLexer() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveLexer() error = %v", err)
			}
			if got := lexerName(lexer); got != tt.wantName {
				t.Errorf("lexer = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestResolveLexer_UnknownLanguageMessage(t *testing.T) {
	t.Parallel()

	_, err := resolveLexer(&ResolvedInput{Code: "x", Language: "klingon"}, "x")
	want := "There is no lexer for the programming language 'klingon'."
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}

func TestResolveLexer_NeverNil(t *testing.T) {
	t.Parallel()

	lexer, err := resolveLexer(&ResolvedInput{FilePath: "notes.unknownext"}, "\x00\x01")
	if err != nil {
		t.Fatalf("resolveLexer() error = %v", err)
	}
	if lexer == nil {
		t.Fatal("resolveLexer() returned nil lexer")
	}
}

func TestPrepareCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		stripAll bool
		want     string
	}{
		{"blank lines trimmed", "\n\nx = 1\n\n", false, "x = 1"},
		{"indentation kept", "\n    x = 1\n", false, "    x = 1"},
		{"strip all", "\n    x = 1  \n\t", true, "x = 1"},
		{"crlf normalized", "a\r\nb\rc", false, "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := prepareCode(tt.code, tt.stripAll); got != tt.want {
				t.Errorf("prepareCode(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	names := Languages()
	for _, want := range []string{"Go", "Python"} {
		if !slices.Contains(names, want) {
			t.Errorf("Languages() missing %q", want)
		}
	}
	if !slices.IsSorted(names) {
		t.Error("Languages() is not sorted")
	}
}
