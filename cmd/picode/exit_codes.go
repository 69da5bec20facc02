package main

import (
	"errors"
	"os"

	"github.com/alnah/go-picode"
	"github.com/alnah/go-picode/internal/config"
)

// Exit codes for picode CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 3=I/O.
// Typed render errors exit with their own code (100-105).
const (
	ExitSuccess = 0 // All inputs rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Typed render errors carry their own code
	if code := picode.CodeOf(err); code != 0 {
		return code
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, picode.ErrReadSource) ||
		errors.Is(err, picode.ErrEncodeImage) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteImage) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, picode.ErrInvalidAssetPath) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrTooManyOutputs) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
