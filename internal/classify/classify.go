package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases text and strips diacritics so that "Designer Gráfico"
// and "designer grafico" match the same vocabulary entry.
func Fold(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// Classifier decides whether a block of text describes a job opening in
// the target domain. Vocabularies are data-driven so they can be tuned
// without touching the decision logic.
type Classifier struct {
	include []string
	exclude []string
}

// New builds a Classifier from an inclusion vocabulary (target role
// terms) and an exclusion vocabulary (adjacent roles we don't want).
// Terms are matched case- and accent-insensitively as substrings.
func New(include, exclude []string) *Classifier {
	return &Classifier{
		include: foldAll(include),
		exclude: foldAll(exclude),
	}
}

// Relevant reports whether text describes a matching opening.
//
// Exclusion is soft: an exclusion term only rejects when no inclusion
// term co-occurs, so composite roles like "Product Designer (ex-Engineer)"
// survive. The exclude-unless-included check must run before the include
// check; reversing the order changes the outcome on ambiguous text.
func (c *Classifier) Relevant(text string) bool {
	folded := Fold(text)

	for _, term := range c.exclude {
		if strings.Contains(folded, term) {
			if !containsAny(folded, c.include) {
				return false
			}
		}
	}

	return containsAny(folded, c.include)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func foldAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		out = append(out, Fold(term))
	}
	return out
}
