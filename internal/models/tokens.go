package models

import "strings"

// NormalizeTokens canonicalizes a token set (promotion types, collaboration
// types) to UPPER_SNAKE form, dropping empties and duplicates while
// preserving order.
func NormalizeTokens(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		t = strings.ToUpper(t)
		t = strings.ReplaceAll(t, " ", "_")
		t = strings.ReplaceAll(t, "-", "_")
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
