// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// octetStream is reported when the extension maps to no known type.
const octetStream = "application/octet-stream"

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "toolbox-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// DeclaredContentType returns the media type a file picker would declare
// for name, based on its extension only. Parameters such as charset are
// dropped. Unknown extensions report application/octet-stream.
func DeclaredContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return octetStream
	}
	ct := mime.TypeByExtension(ext)
	if ct == "" {
		return octetStream
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return octetStream
	}
	return mediaType
}

// MediaType strips parameters from a Content-Type header value and lowercases
// it. An empty or malformed value yields "".
func MediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mediaType
}

// SafeBaseName reduces a user-supplied file name to its final element,
// so a multipart filename like "../../etc/passwd" cannot name a path.
func SafeBaseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return ""
	}
	return base
}
