package errors

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateSource checks that a dataset source is either an http(s) URL or a
// plain local path. Control characters and other URL schemes are rejected.
func ValidateSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidSource, "source cannot be empty")
	}
	for _, r := range src {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "source contains invalid control characters")
		}
	}
	if !strings.Contains(src, "://") {
		return nil
	}
	u, err := url.Parse(src)
	if err != nil {
		return Wrap(ErrCodeInvalidSource, err, "parse source URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidSource, "unsupported source scheme %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidSource, "source URL has no host")
	}
	return nil
}

// IsRemote reports whether src names an http(s) resource.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// ValidateOutputPath ensures an output path points at a file rather than a
// directory and has no traversal into the parent of the working directory
// when given relatively.
func ValidateOutputPath(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidInput, "output path %q is a directory", path)
	}
	if !filepath.IsAbs(path) {
		clean := filepath.Clean(path)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return New(ErrCodeInvalidInput, "output path %q escapes the working directory", path)
		}
	}
	return nil
}
