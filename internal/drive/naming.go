package drive

import (
	"fmt"
	"strings"
)

// FormatName normalizes a class name for a folder: lowercase, spaces become hyphens.
func FormatName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// FolderName builds the ordinal folder name, e.g. "03-math".
func FolderName(baseName string, count int) string {
	return fmt.Sprintf("%02d-%s", count, baseName)
}
