package main

import "errors"

// Sentinel errors for CLI commands.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no input specified")
	ErrReadInput    = errors.New("failed to read input")
	ErrWriteOutput  = errors.New("failed to write output")
	ErrListen       = errors.New("failed to listen")
	ErrTooFewFiles  = errors.New("at least two PDF files are required")
	ErrNoValidFiles = errors.New("no valid PDF files")
	ErrMergeFailed  = errors.New("merging PDF files failed")
)
