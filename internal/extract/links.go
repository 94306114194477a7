package extract

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlRegex   = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\])(']+`)
)

// Emails returns the syntactically valid addresses found in text, in
// order of appearance. Placeholder addresses ("example") are excluded.
func Emails(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range emailRegex.FindAllString(text, -1) {
		if strings.Contains(strings.ToLower(m), "example") {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// CanonicalLink normalizes a URL by dropping the query string (tracking
// params make the same listing look like different URLs) and trailing
// sentence punctuation. Idempotent: canonicalizing a canonical link
// returns it unchanged.
func CanonicalLink(raw string) string {
	link, _, _ := strings.Cut(raw, "?")
	return strings.TrimRight(link, ".,;:!?")
}

// ExternalLinks returns the distinct canonical absolute URLs in text
// that do not point back at the source platform itself, in order of
// appearance.
func ExternalLinks(text, platformDomain string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range urlRegex.FindAllString(text, -1) {
		link := CanonicalLink(m)
		if link == "" {
			continue
		}
		if platformDomain != "" && strings.Contains(strings.ToLower(link), platformDomain) {
			continue
		}
		if seen[link] {
			continue
		}
		seen[link] = true
		out = append(out, link)
	}
	return out
}
