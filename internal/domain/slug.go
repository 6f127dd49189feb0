package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the canonical slug for a tag from free text: lowercase,
// runs of non-alphanumeric characters collapsed to a single hyphen, leading
// and trailing hyphens trimmed. Deterministic and idempotent.
// Returns ErrValidation if the result is empty.
func Slugify(value string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	cleaned = slugInvalid.ReplaceAllString(cleaned, "-")
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		return "", fmt.Errorf("%w: tag slug cannot be empty", ErrValidation)
	}
	return cleaned, nil
}

// NormalizeAliases trims each alias, collapses internal whitespace to single
// spaces, drops empties, and dedupes case-insensitively while preserving the
// first spelling and its position.
func NormalizeAliases(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	aliases := []string{}
	for _, value := range values {
		cleaned := strings.Join(strings.Fields(value), " ")
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		aliases = append(aliases, cleaned)
	}
	return aliases
}

// DedupePreserveOrder removes duplicates and empty strings from values,
// keeping the first occurrence of each and the original insertion order.
func DedupePreserveOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	ordered := []string{}
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		ordered = append(ordered, value)
	}
	return ordered
}
