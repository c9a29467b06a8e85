package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownLabel replaces aliases that are not usable strings.
const UnknownLabel = "Unknown"

// SanitizeLabel normalizes a display alias to trimmed title case. Non-string
// values and blank strings become UnknownLabel. Applying it twice changes
// nothing.
func SanitizeLabel(v any) string {
	s, ok := v.(string)
	if !ok {
		return UnknownLabel
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownLabel
	}

	return cases.Title(language.Und).String(strings.ToLower(s))
}

// SanitizeLabels normalizes every alias, keeping order.
func SanitizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, SanitizeLabel(l))
	}
	return out
}
