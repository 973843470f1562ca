package report

import (
	"strings"
	"unicode"
)

// normalizeOperator lowercases and strips whitespace and underscores so that
// "DOES_NOT_EQUAL", "does not equal" and "notEqual"'s label all compare equal.
func normalizeOperator(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// ResolveOperator normalizes a caller-supplied operator for a field to the
// canonical operator name of that field's data type.
//
// Matching order: normalized name, then normalized label, then an exact
// match against a canonical name. Anything still unmatched falls back to
// the first valid operator; this leniency is intentional and callers must
// not rely on strict operator validation here.
func (ix *FieldIndex) ResolveOperator(apiName, operator string) string {
	dataType := ix.dataTypes[apiName]
	if dataType == "" {
		return operator
	}
	valid, ok := ix.operators[dataType]
	if !ok {
		return operator
	}

	normalized := normalizeOperator(operator)
	for _, entry := range valid {
		if normalizeOperator(entry.Name) == normalized {
			return entry.Name
		}
	}
	for _, entry := range valid {
		if normalizeOperator(entry.Label) == normalized {
			return entry.Name
		}
	}
	for _, entry := range valid {
		if entry.Name == operator {
			return operator
		}
	}
	if len(valid) > 0 {
		return valid[0].Name
	}
	return operator
}
