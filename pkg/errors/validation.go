package errors

import (
	"net"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength caps control labels, counted in runes.
const MaxLabelLength = 64

// ValidateLabel checks that a control label is printable text of at most
// MaxLabelLength runes with no leading or trailing space.
func ValidateLabel(label string) error {
	switch {
	case label == "":
		return New(ErrCodeInvalidScenario, "control label cannot be empty")
	case utf8.RuneCountInString(label) > MaxLabelLength:
		return New(ErrCodeInvalidScenario, "control label longer than %d characters", MaxLabelLength)
	case strings.TrimSpace(label) != label:
		return New(ErrCodeInvalidScenario, "control label %q has surrounding space", label)
	case strings.IndexFunc(label, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidScenario, "control label %q contains control characters", label)
	}
	return nil
}

// ValidateFilename validates an artifact filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateRange checks that v lies in [lo, hi] and reports field by name
// under the given code.
func ValidateRange(code Code, field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(code, "%s must be between %d and %d, got %d", field, lo, hi, v)
	}
	return nil
}

// ValidateAddr validates a "host:port" network address. The host may be
// empty to listen on all interfaces.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "address cannot be empty")
	}

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid address %q", addr)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return New(ErrCodeInvalidConfig, "invalid port in address %q", addr)
	}

	return nil
}
