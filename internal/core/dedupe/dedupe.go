package dedupe

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const keySeparator = "\x1f"

// Normalize trims s and puts it in Unicode normalization form C. Names are
// stored normalized so the store compares them the way Key does.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Key builds a grouping key from normalized parts.
// It returns "" when every part is empty, which DuplicateIndices ignores.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	empty := true
	for i, p := range parts {
		normalized[i] = Normalize(p)
		if normalized[i] != "" {
			empty = false
		}
	}
	if empty {
		return ""
	}
	return strings.Join(normalized, keySeparator)
}

// DuplicateIndices groups keys and returns the index of every item that
// shares its key with at least one sibling.
func DuplicateIndices(keys []string) map[int]bool {
	groups := make(map[string][]int)
	for i, k := range keys {
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], i)
	}

	duplicates := make(map[int]bool)
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		for _, i := range members {
			duplicates[i] = true
		}
	}
	return duplicates
}
