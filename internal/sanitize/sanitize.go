// Package sanitize holds pure input-cleaning and validation helpers applied
// at the HTTP boundary before anything touches storage.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// Compiled patterns for injection detection.
var (
	tagPattern = regexp.MustCompile(`<[^>]*>?`)

	// Suspicious content patterns (reject on match).
	suspiciousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript\s*:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)data:text/html`),
	}
)

// dangerousChars are stripped from free text along with tag-like sequences.
const dangerousChars = `<>'"&`

// Clean strips HTML tag-like sequences and the characters < > ' " & from
// text, then trims surrounding whitespace. Empty input yields an empty
// string, never an error.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	cleaned := tagPattern.ReplaceAllString(text, "")
	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		if strings.ContainsRune(dangerousChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Result is the outcome of a validation. Callers must check IsValid; warnings
// alone do not make input invalid.
type Result struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateText checks free text against length bounds and suspicious content
// patterns. Text shorter than 10 characters produces a warning, not an error.
func ValidateText(text string, maxLength int) Result {
	res := Result{Errors: []string{}, Warnings: []string{}}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		res.Errors = append(res.Errors, "text must not be empty")
	}
	if maxLength > 0 && len(text) > maxLength {
		res.Errors = append(res.Errors, fmt.Sprintf("text exceeds maximum length of %d characters", maxLength))
	}
	for _, p := range suspiciousPatterns {
		if p.MatchString(text) {
			res.Errors = append(res.Errors, "text contains disallowed content: "+p.String())
		}
	}
	if trimmed != "" && len(trimmed) < 10 {
		res.Warnings = append(res.Warnings, "text is shorter than 10 characters")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// allowedImageTypes is the MIME allow-list for uploaded prescription images.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
	"image/heic": true,
	"image/gif":  true,
}

// maxFileNameLength caps filenames per common filesystem limits.
const maxFileNameLength = 255

// largeFileWarnBytes is the size past which uploads draw a non-fatal warning.
const largeFileWarnBytes = 2 * 1024 * 1024

// ValidateFileUpload checks uploaded file metadata against the size limit
// (maxSizeMB), the image MIME allow-list, and filename constraints. Files over
// 2MB produce a warning, not an error.
func ValidateFileUpload(fileName, contentType string, size int64, maxSizeMB int) Result {
	res := Result{Errors: []string{}, Warnings: []string{}}

	maxBytes := int64(maxSizeMB) * 1024 * 1024
	if size > maxBytes {
		res.Errors = append(res.Errors, fmt.Sprintf("file size %d exceeds limit of %dMB", size, maxSizeMB))
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		res.Errors = append(res.Errors, "content type is not an allowed image type: "+contentType)
	}
	if fileName == "" {
		res.Errors = append(res.Errors, "file name is required")
	} else if len(fileName) > maxFileNameLength {
		res.Errors = append(res.Errors, fmt.Sprintf("file name exceeds %d characters", maxFileNameLength))
	}
	if size > largeFileWarnBytes && size <= maxBytes {
		res.Warnings = append(res.Warnings, "file is larger than 2MB; processing may be slow")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
