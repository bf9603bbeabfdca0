// Package filter matches free text against lists of disqualifying terms.
package filter

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// CompiledTerm is a folded substring to look for.
type CompiledTerm struct {
	raw   string // term as configured, reported back on a match
	plain string // folded substring
}

// String returns the term as it was configured.
func (t CompiledTerm) String() string {
	return t.raw
}

// Fold lowercases text and transliterates it to ASCII so "Violación" and
// "violacion" compare equal.
func Fold(text string) string {
	return strings.ToLower(unidecode.Unidecode(text))
}

// CompileTerms pre-folds a list of term strings into CompiledTerms.
// Empty/whitespace-only terms are skipped.
func CompileTerms(terms []string) []CompiledTerm {
	compiled := make([]CompiledTerm, 0, len(terms))
	for _, raw := range terms {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		compiled = append(compiled, CompiledTerm{raw: trimmed, plain: Fold(trimmed)})
	}
	return compiled
}

// FirstMatch returns the first term found in text.
func FirstMatch(text string, terms []CompiledTerm) (CompiledTerm, bool) {
	if len(terms) == 0 || text == "" {
		return CompiledTerm{}, false
	}
	folded := Fold(text)
	for _, t := range terms {
		if strings.Contains(folded, t.plain) {
			return t, true
		}
	}
	return CompiledTerm{}, false
}
