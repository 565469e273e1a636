package main

import (
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now       func() time.Time
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard func(text string) error
}

// DefaultEnv returns the process environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Clipboard: clipboard.WriteAll,
	}
}
