package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r counts as part of an identifier for mention
// boundary checks.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsLanguageRune reports whether r may appear in a code block language class.
func IsLanguageRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

// SanitizeLanguage keeps only [0-9A-Za-z_-] from a fence info string.
func SanitizeLanguage(language string) string {
	if language == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(language))
	for _, r := range language {
		if IsLanguageRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeNewlines rewrites \r\n and lone \r as \n.
func NormalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// HasPrefixFold is strings.HasPrefix with ASCII case folding.
func HasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// RuneBefore returns the rune ending at byte offset i, or utf8.RuneError
// with ok=false at the start of the string.
func RuneBefore(s string, i int) (rune, bool) {
	if i <= 0 {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r, true
}

// RuneAt returns the rune starting at byte offset i, or ok=false at the end.
func RuneAt(s string, i int) (rune, bool) {
	if i >= len(s) {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r, true
}
