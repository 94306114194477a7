// Field extraction: ordered pattern rules that pull a structured record
// out of an accepted block of feed text.

package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go-vagas-automation/internal/classify"
	"go-vagas-automation/internal/collector"
	"go-vagas-automation/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titlePatterns is the ladder of role-shaped phrasings, tried in order
// against lowercased text; the first match wins.
var titlePatterns = []*regexp.Regexp{
	//explicit opening announcements
	regexp.MustCompile(`(?:vaga|oportunidade|contratando|hiring)[:\s-]+(?:de\s+)?([a-z][a-z\s/-]+(?:jr|pleno|sênior|senior|remoto)?)`),
	//designer with qualifier
	regexp.MustCompile(`\b((?:product |ux |ui |ux/ui |ui/ux |service )?designer(?:\s+(?:jr|pleno|sênior|senior|remoto))?)\b`),
	//manager/owner
	regexp.MustCompile(`\b(product (?:manager|owner)(?:\s+(?:jr|pleno|sênior|senior))?)\b`),
	//head of area
	regexp.MustCompile(`\b(head (?:de |of )?(?:produto|product|design|ux))\b`),
	//research
	regexp.MustCompile(`\b(ux research(?:er)?)\b`),
}

var (
	leadingDecorRegex  = regexp.MustCompile(`^[:\s\-•→🔹📣🚀💼✨|]+`)
	trailingDecorRegex = regexp.MustCompile(`[:\s\-•→🔹📣🚀💼✨|]+$`)
	companyRegex       = regexp.MustCompile(`(?:@|na|at)[:\s]+([A-Z][a-zA-Z0-9\s&-]{2,30})`)
)

// roleIndicators qualifies a "designer" line as an actual title in the
// line-scan fallback, so bare mentions of design work don't count.
var roleIndicators = []string{
	"ux", "ui", "product", "manager", "head de", "head of",
	"sênior", "senior", "pleno", "júnior", "junior", "jr",
}

// chromeWords mark lines that are platform UI rather than post content.
var chromeWords = []string{"instagram", "curtir", "comentar", "seguir"}

// DetectModality classifies the work arrangement. The first matching
// keyword in this priority order wins.
func DetectModality(text string) models.Modality {
	t := classify.Fold(text)
	switch {
	case strings.Contains(t, "remoto") || strings.Contains(t, "remote"):
		return models.ModalityRemote
	case strings.Contains(t, "hibrido"):
		return models.ModalityHybrid
	case strings.Contains(t, "presencial"):
		return models.ModalityOnSite
	}
	return models.ModalityUnspecified
}

// DetectCategory runs the fixed category ladder. The default is
// deliberate: a block that passed relevance classification is assumed
// product-adjacent even when no specific category term appears.
func DetectCategory(text string) string {
	t := classify.Fold(text)
	switch {
	case strings.Contains(t, "product manager") || strings.Contains(t, "product owner"):
		return models.CategoryProductManager
	case strings.Contains(t, "head") && strings.Contains(t, "produto"):
		return models.CategoryHeadDeProduto
	case strings.Contains(t, "service designer"):
		return models.CategoryServiceDesigner
	case strings.Contains(t, "ux/ui") || strings.Contains(t, "ui/ux"):
		return models.CategoryUXUIDesigner
	case strings.Contains(t, "ui designer"):
		return models.CategoryUIDesigner
	case strings.Contains(t, "ux designer") || strings.Contains(t, "ux"):
		return models.CategoryUXDesigner
	case strings.Contains(t, "product designer") || strings.Contains(t, "designer de produto"):
		return models.CategoryProductDesigner
	}
	return models.CategoryProductDesigner
}

// Company extracts "@ Name" / "na Name" / "at Name" phrasings. Never
// inferred from anything else; absent means absent.
func Company(text string) string {
	m := companyRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	if utf8.RuneCountInString(name) > 50 {
		name = string([]rune(name)[:50])
	}
	return name
}

// AuthorName picks the author display name out of the post byline, which
// platforms render as "Name • 2nd · 3h" in the first lines.
func AuthorName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}
	for _, line := range lines {
		if name, _, ok := strings.Cut(line, "•"); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

// ResolveProfile matches a detected author name against profile-link
// anchors by case-insensitive containment in either direction (anchors
// often carry "Name · 2nd degree" suffixes, bylines often truncate).
func ResolveProfile(author string, profiles map[string]string) string {
	if author == "" {
		return ""
	}
	al := strings.ToLower(author)
	for name, url := range profiles {
		nl := strings.ToLower(name)
		if strings.Contains(nl, al) || strings.Contains(al, nl) {
			return url
		}
	}
	return ""
}

// Fields pulls structured record fields out of accepted block text using
// the ordered pattern rules. Phrase lists are injected from config.
type Fields struct {
	source         models.Source
	platformDomain string
	contactPhrases []string
	boilerplate    []string
	caser          cases.Caser
}

func NewFields(source models.Source, platformDomain string, contactPhrases, boilerplate []string) *Fields {
	folded := make([]string, 0, len(contactPhrases))
	for _, p := range contactPhrases {
		folded = append(folded, classify.Fold(p))
	}
	return &Fields{
		source:         source,
		platformDomain: platformDomain,
		contactPhrases: folded,
		boilerplate:    boilerplate,
		caser:          cases.Title(language.BrazilianPortuguese),
	}
}

// Extract builds a record from one block. Fields that cannot be
// determined stay empty; only the title is always synthesized.
func (f *Fields) Extract(blk collector.Block) *models.JobRecord {
	text := blk.Text
	emails := Emails(text)
	external := ExternalLinks(text, f.platformDomain)

	applyLink := ""
	if len(external) > 0 {
		applyLink = external[0]
	} else if shortened := blk.Page.TakeShortened(); shortened != "" {
		applyLink = CanonicalLink(shortened)
	}

	//author identity is surfaced ONLY when the post explicitly asks the
	//reader to reach out; otherwise commenters would be exposed as contacts
	profile := ""
	if blk.Page != nil && f.asksForContact(text) {
		if author := AuthorName(text); author != "" {
			profile = ResolveProfile(author, blk.Page.Profiles)
		}
	}

	channel := models.ContactUndefined
	switch {
	case applyLink != "":
		channel = models.ContactLink
	case len(emails) > 0:
		channel = models.ContactEmail
	case profile != "":
		channel = models.ContactMessage
	}

	email := ""
	if len(emails) > 0 {
		email = emails[0]
	}

	return &models.JobRecord{
		Title:         f.Title(text),
		Company:       Company(text),
		Category:      DetectCategory(text),
		Source:        f.source,
		ApplyLink:     applyLink,
		Modality:      DetectModality(text),
		Channel:       channel,
		Email:         email,
		AuthorProfile: profile,
		CollectedAt:   time.Now(),
	}
}

// Title runs the pattern ladder, then the line-scan fallback, then
// synthesizes from category and modality. Never returns empty.
func (f *Fields) Title(text string) string {
	lower := strings.ToLower(text)
	for _, re := range titlePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if title := f.cleanTitle(m[1]); utf8.RuneCountInString(title) > 5 {
			return f.caser.String(title)
		}
	}

	//secondary heuristic: a title-shaped line in the post opening
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		ll := strings.ToLower(line)
		if strings.HasPrefix(ll, "http") {
			continue
		}
		if n := utf8.RuneCountInString(line); n < 8 || n > 100 {
			continue
		}
		if containsAny(ll, chromeWords) {
			continue
		}
		if strings.Contains(ll, "designer") && containsAny(ll, roleIndicators) {
			if title := f.cleanTitle(line); utf8.RuneCountInString(title) > 8 {
				return title
			}
		}
	}

	//final fallback: synthesize from what classification already knows
	category := DetectCategory(text)
	if modality := DetectModality(text); modality != models.ModalityUnspecified {
		return fmt.Sprintf("%s (%s)", category, f.caser.String(string(modality)))
	}
	return category
}

// cleanTitle strips decorative glyphs and rejects anything that is not a
// plausible title: URL-ish tokens, fewer than 5 alphanumeric characters,
// known boilerplate phrases. Returns "" on rejection.
func (f *Fields) cleanTitle(raw string) string {
	title := leadingDecorRegex.ReplaceAllString(raw, "")
	title = trailingDecorRegex.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	lower := strings.ToLower(title)
	if strings.HasPrefix(lower, "http") || strings.Contains(lower, "lnkd.in") {
		return ""
	}
	if alnumCount(title) < 5 {
		return ""
	}
	for _, phrase := range f.boilerplate {
		if strings.Contains(lower, phrase) {
			return ""
		}
	}

	if utf8.RuneCountInString(title) > 100 {
		title = strings.TrimSpace(string([]rune(title)[:100]))
	}
	return title
}

func (f *Fields) asksForContact(text string) bool {
	folded := classify.Fold(text)
	return containsAny(folded, f.contactPhrases)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func alnumCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
