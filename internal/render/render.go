// Package render performs literal placeholder substitution of {{dotted.key}}
// tokens in the page template. This is deliberately not a templating
// language: values are inserted verbatim with no re-substitution.
package render

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches any placeholder-shaped token, resolved or not. The
// key is the literal text between the braces.
var tokenPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Substitute replaces every literal {{key}} occurrence for keys present in
// the mapping and returns the rendered text together with the distinct
// placeholder tokens still present afterwards, sorted for determinism.
//
// Substitution is a single pass over the template, so the result is
// independent of key order and a value that itself looks like a token is
// inserted verbatim, never expanded. A failed lookup backs off by one
// character rather than skipping the whole brace run, so {{{key}}} resolves
// the token starting at the second brace and renders {value}. The unresolved
// scan runs over the rendered text; it can still pick up token-shaped values
// on purpose, since those surface in the output exactly like a missed
// placeholder would.
func Substitute(templateText string, mapping map[string]string) (string, []string) {
	var b strings.Builder
	rest := templateText
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[open+2:], "}}")
		if end < 0 {
			b.WriteString(rest)
			break
		}
		key := rest[open+2 : open+2+end]
		if value, ok := mapping[key]; ok {
			b.WriteString(rest[:open])
			b.WriteString(value)
			rest = rest[open+2+end+2:]
			continue
		}
		// No mapping entry for this span. A literal token may still start
		// one brace further in, so emit a single character and rescan.
		b.WriteString(rest[:open+1])
		rest = rest[open+1:]
	}
	rendered := b.String()
	return rendered, ScanUnresolved(rendered)
}

// ScanUnresolved returns the sorted distinct placeholder tokens in text.
func ScanUnresolved(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		seen[m] = struct{}{}
	}
	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}
