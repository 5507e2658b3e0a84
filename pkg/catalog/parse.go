package catalog

import "strings"

// DefaultDelimiter separates ingredients and tags in catalog and profile sources
const DefaultDelimiter = ";"

// ParseIngredients splits a delimiter-joined ingredient list into trimmed tokens.
// Blank tokens are dropped; case is preserved.
func ParseIngredients(raw, sep string) []string {
	if sep == "" {
		sep = DefaultDelimiter
	}
	parts := strings.Split(raw, sep)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// ParseTags splits a ";"-joined tag list
func ParseTags(raw string) []string {
	return ParseIngredients(raw, DefaultDelimiter)
}

// ParseFreeText splits user input where ingredients are given one per line or comma separated
func ParseFreeText(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if token := strings.TrimSpace(field); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
