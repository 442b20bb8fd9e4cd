// internal/careerfit/matcher.go
package careerfit

import "strings"

// ContainsKeyword reports whether needle occurs in haystack, ignoring case.
// Matching is plain substring matching, so "design" also hits "system design".
func ContainsKeyword(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// mentions expects text to be lowercased already.
func mentions(text, keyword string) bool {
	return strings.Contains(text, strings.ToLower(keyword))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if mentions(text, k) {
			return true
		}
	}
	return false
}
