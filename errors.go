package picode

import (
	"errors"
	"fmt"
)

// Kind identifies a validation or render failure. Its value is the stable
// numeric code reported to callers and used as the CLI exit status.
type Kind int

// Error kinds.
const (
	KindMissingSource       Kind = 100
	KindConflictingSource   Kind = 101
	KindUnknownLanguage     Kind = 102
	KindConflictingFontSpec Kind = 103
	KindInvalidFontSize     Kind = 104
	KindInvalidColor        Kind = 105
)

func (k Kind) String() string {
	switch k {
	case KindMissingSource:
		return "MissingSource"
	case KindConflictingSource:
		return "ConflictingSource"
	case KindUnknownLanguage:
		return "UnknownLanguage"
	case KindConflictingFontSpec:
		return "ConflictingFontSpec"
	case KindInvalidFontSize:
		return "InvalidFontSize"
	case KindInvalidColor:
		return "InvalidColor"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a typed failure caused by invalid caller input.
// Two errors match under errors.Is when their kinds are equal, so callers
// can compare against the Err* sentinels regardless of the message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Code returns the numeric code of the error.
func (e *Error) Code() int {
	return int(e.Kind)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinel errors for typed failures. Compare with errors.Is; extract the
// code with errors.As into an *Error.
var (
	ErrMissingSource       = &Error{Kind: KindMissingSource, Message: "Please provide a code or the path to a code file."}
	ErrConflictingSource   = &Error{Kind: KindConflictingSource, Message: "Please provide a code or a file name but not both."}
	ErrUnknownLanguage     = &Error{Kind: KindUnknownLanguage, Message: "There is no lexer for this programming language."}
	ErrConflictingFontSpec = &Error{Kind: KindConflictingFontSpec, Message: "Please provide a font name or the font paths but not both."}
	ErrInvalidFontSize     = &Error{Kind: KindInvalidFontSize, Message: "The font size must be >= 1."}
	ErrInvalidColor        = &Error{Kind: KindInvalidColor, Message: "Invalid hexadecimal color."}
)

// Sentinel errors for I/O and setup failures.
var (
	ErrReadSource  = errors.New("failed to read source file")
	ErrEncodeImage = errors.New("failed to encode image")
	ErrLexing      = errors.New("tokenization failed")
	ErrFontLoad    = errors.New("failed to load bundled fonts")

	// Asset loading errors.
	ErrFontNotFound     = errors.New("font not found")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// CodeOf returns the numeric code carried by err, or 0 when err is not a
// typed *Error.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return 0
}
