package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-picode"
	"github.com/alnah/go-picode/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader picode.AssetLoader // Used when no asset path is configured
	FontDirs    []string           // nil = platform font directories
	Config      *config.Config     // Loaded once, shared across the batch
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	loader, _ := picode.NewAssetLoader("")
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: loader,
		Config:      config.DefaultConfig(),
	}
}
