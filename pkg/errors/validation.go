package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxCreatorLength bounds the Creator header of generated documents.
const maxCreatorLength = 256

// ValidateCreator validates the tool name written to the GML Creator line.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters (a newline would split the header line)
//   - Maximum length of 256 characters
func ValidateCreator(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "creator cannot be empty")
	}

	if len(name) > maxCreatorLength {
		return New(ErrCodeInvalidInput, "creator too long (max %d characters)", maxCreatorLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "creator contains invalid control characters")
		}
	}

	return nil
}

// GraphFormat identifies a supported graph input encoding.
type GraphFormat string

const (
	FormatJSON GraphFormat = "json"
	FormatYAML GraphFormat = "yaml"
)

// DetectGraphFormat returns the input format implied by a file name.
// Only .json, .yaml and .yml are accepted (case-insensitive).
func DetectGraphFormat(filename string) (GraphFormat, error) {
	if filename == "" {
		return "", New(ErrCodeInvalidPath, "graph filename cannot be empty")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", New(ErrCodeInvalidFormat, "unsupported graph file %q (want .json, .yaml or .yml)", filepath.Base(filename))
	}
}

// ValidateOutputPath validates a path the GML document will be written to.
// It rejects directories, null bytes, and paths without a file name.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "output path contains invalid characters")
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}
