// Package extract validates resume files and pulls plain text out of them.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSizeMB bounds uploads when no limit is configured.
const DefaultMaxFileSizeMB = 5

var allowedExtensions = map[string]string{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".txt":  FormatTXT,
}

// Validate checks that the file exists, fits the size bound and has a
// supported extension. It returns a validity flag and a human-readable
// reason when invalid; it never reads the file content.
func Validate(path string, maxSizeMB int) (bool, string) {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxFileSizeMB
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, "file does not exist"
	}
	if info.IsDir() {
		return false, "path is a directory, not a file"
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB > float64(maxSizeMB) {
		return false, fmt.Sprintf("file too large: %.1fMB (max: %dMB)", sizeMB, maxSizeMB)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := allowedExtensions[ext]; !ok {
		return false, fmt.Sprintf("unsupported file type: %q (allowed: .pdf, .docx, .txt)", ext)
	}

	return true, ""
}
