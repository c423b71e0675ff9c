package constants

import "strings"

// FileTypes holds the allowed source-document formats.
var FileTypes = []string{"PDF"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDFExt reports whether the extension names a PDF document.
func IsPDFExt(ext string) bool {
	return NormalizeExt(ext) == "pdf"
}
