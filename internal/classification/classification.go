// Package classification handles dot-delimited hierarchical account codes
// such as "3.01.02".
package classification

import (
	"strings"
	"unicode"
)

const separator = "."

// Normalize canonicalizes a classification code so that formatting noise in
// exports does not split one report line into two.
//
// "3.01."  -> "3.01"
// " 3.01 " -> "3.01"
// "3. 01"  -> "3.01"
//
// A code without any digit normalizes to "", which callers treat as
// unclassified.
func Normalize(code string) string {
	parts := strings.Split(code, separator)
	kept := parts[:0]
	hasDigit := false
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.IndexFunc(p, unicode.IsDigit) >= 0 {
			hasDigit = true
		}
		kept = append(kept, p)
	}
	if !hasDigit {
		return ""
	}
	return strings.Join(kept, separator)
}

// Depth returns the number of segments in a normalized classification.
func Depth(normalized string) int {
	if normalized == "" {
		return 0
	}
	return strings.Count(normalized, separator) + 1
}

// Parent strips the last segment. Returns "" for a root classification.
// "3.01.02" -> "3.01"
func Parent(normalized string) string {
	i := strings.LastIndex(normalized, separator)
	if i < 0 {
		return ""
	}
	return normalized[:i]
}

// Ancestors returns every ancestor, nearest first.
// "3.01.02" -> ["3.01", "3"]
func Ancestors(normalized string) []string {
	var out []string
	for p := Parent(normalized); p != ""; p = Parent(p) {
		out = append(out, p)
	}
	return out
}
