// Package slug validates and normalizes client identifiers before they are
// used to compose filesystem paths.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/nineteen58/pitchgen/internal/errors"
)

// Normalize canonicalizes a raw client identifier: Unicode NFC, lowercased,
// surrounding whitespace trimmed. The result is what all path composition
// uses, so "Old-Mutual " and "old-mutual" address the same client.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(norm.NFC.String(raw))
	s = strings.ToLower(s)
	if err := validate(s); err != nil {
		return "", err
	}
	return s, nil
}

func validate(s string) error {
	if s == "" {
		return errors.InvalidSlug(s, "empty identifier")
	}
	if strings.ContainsAny(s, "/\\") {
		return errors.InvalidSlug(s, "path separators are not allowed")
	}
	if s == "." || s == ".." || strings.HasPrefix(s, ".") {
		return errors.InvalidSlug(s, "identifier may not start with a dot")
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			continue
		}
		return errors.InvalidSlug(s, "identifier may only contain letters, digits, '-', '_' and '.'")
	}
	return nil
}
