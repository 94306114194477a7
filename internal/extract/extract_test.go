package extract

import (
	"context"
	"testing"

	"go-vagas-automation/internal/classify"
	"go-vagas-automation/internal/collector"
	"go-vagas-automation/internal/dedup"
	"go-vagas-automation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testContactPhrases = []string{
		"entre em contato", "mande mensagem", "me chama", "chama no", "inbox",
	}
	testBoilerplate = []string{
		"link do instagram", "vale a pena", "passando na sua", "ajudaria muito",
	}
	testInclude = []string{
		"product designer", "product manager", "ux designer", "ui designer",
		"ux/ui", "service designer", "head de produto", "product owner",
		"vaga ux", "ux research", "design ops",
	}
	testExclude = []string{
		"developer", "desenvolvedor", "engineer", "engenheiro", "qa",
		"designer gráfico", "marketing", "backend", "frontend",
	}
)

func newTestFields() *Fields {
	return NewFields(models.SourceLinkedInPosts, "linkedin.com", testContactPhrases, testBoilerplate)
}

func blockOf(text string) collector.Block {
	return collector.Block{Text: text, Page: &collector.PageLinks{Profiles: map[string]string{}}}
}

func TestCanonicalLink(t *testing.T) {
	assert.Equal(t, "https://x.com/job", CanonicalLink("https://x.com/job?utm=1"))
	assert.Equal(t, "https://x.com/job", CanonicalLink("https://x.com/job?utm=2"))
	assert.Equal(t, "https://x.com/job", CanonicalLink("https://x.com/job.,;"))

	//idempotent: canonicalizing a canonical link changes nothing
	canon := CanonicalLink("https://acme.gupy.io/vaga/42?src=share")
	assert.Equal(t, canon, CanonicalLink(canon))
}

func TestEmails(t *testing.T) {
	text := "Envie para rh@acme.com ou talento@acme.com. Modelo: nome@example.com"
	emails := Emails(text)
	assert.Equal(t, []string{"rh@acme.com", "talento@acme.com"}, emails)
}

func TestExternalLinksSkipPlatform(t *testing.T) {
	text := "Post: https://www.linkedin.com/feed/update/1 candidatura em https://acme.gupy.io/vaga?ref=li"
	links := ExternalLinks(text, "linkedin.com")
	assert.Equal(t, []string{"https://acme.gupy.io/vaga"}, links)
}

func TestDetectModalityPriority(t *testing.T) {
	tests := []struct {
		text string
		want models.Modality
	}{
		{"vaga 100% remota, remote first", models.ModalityRemote},
		{"modelo híbrido em São Paulo", models.ModalityHybrid},
		{"trabalho presencial na sede", models.ModalityOnSite},
		{"remoto ou presencial, você escolhe", models.ModalityRemote},
		{"vaga de designer", models.ModalityUnspecified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectModality(tt.text), tt.text)
	}
}

func TestDetectCategoryLadder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"procuramos product manager", models.CategoryProductManager},
		{"vaga de head de produto", models.CategoryHeadDeProduto},
		{"service designer para consultoria", models.CategoryServiceDesigner},
		{"designer ux/ui pleno", models.CategoryUXUIDesigner},
		{"ui designer para design system", models.CategoryUIDesigner},
		{"ux designer remoto", models.CategoryUXDesigner},
		{"product designer na fintech", models.CategoryProductDesigner},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectCategory(tt.text), tt.text)
	}
}

func TestDetectCategoryDefault(t *testing.T) {
	//accepted blocks are assumed product-adjacent
	assert.Equal(t, models.CategoryProductDesigner, DetectCategory("vaga para o time de design da empresa"))
}

func TestCompany(t *testing.T) {
	assert.Equal(t, "Acme", Company("Product Designer remoto na Acme. Envie CV"))
	assert.Equal(t, "Nubank", Company("Contratando UX @ Nubank"))
	assert.Equal(t, "", Company("vaga sem empresa mencionada"))
}

func TestTitleLadder(t *testing.T) {
	f := newTestFields()

	title := f.Title("Vaga: Product Designer remoto na Acme. Envie CV para rh@acme.com")
	assert.Contains(t, title, "Product Designer")

	title = f.Title("Nosso time busca um ux researcher para discovery contínuo")
	assert.Contains(t, title, "Ux Research")
}

func TestTitleRejectsBoilerplate(t *testing.T) {
	f := newTestFields()
	//"vale a pena" phrasing must never become a title; synthesis kicks in
	title := f.Title("Oportunidade: vale a pena conferir, time de produto, modelo presencial")
	assert.NotContains(t, title, "vale a pena")
	assert.NotEmpty(t, title)
}

func TestTitleSynthesisFallback(t *testing.T) {
	f := newTestFields()
	title := f.Title("time de produto crescendo, modalidade hibrido, papo reto")
	assert.Equal(t, "Product Designer (Hibrido)", title)

	title = f.Title("time de produto crescendo, papo reto")
	assert.Equal(t, "Product Designer", title)
}

func TestAuthorName(t *testing.T) {
	assert.Equal(t, "Maria Silva", AuthorName("Maria Silva • 2h\nEstamos contratando!"))
	assert.Equal(t, "", AuthorName("post sem byline nenhuma\nsó texto"))
}

func TestResolveProfile(t *testing.T) {
	profiles := map[string]string{"Maria Silva · 1º": "https://www.linkedin.com/in/msilva"}

	assert.Equal(t, "https://www.linkedin.com/in/msilva", ResolveProfile("Maria Silva", profiles))
	assert.Equal(t, "", ResolveProfile("João Souza", profiles))
	assert.Equal(t, "", ResolveProfile("", profiles))
}

func TestExtractScenarioDirectEmail(t *testing.T) {
	f := newTestFields()
	rec := f.Extract(blockOf("Vaga: Product Designer remoto na Acme. Envie CV para rh@acme.com"))

	assert.Contains(t, rec.Title, "Product Designer")
	assert.Equal(t, "Acme", rec.Company)
	assert.Equal(t, models.ModalityRemote, rec.Modality)
	assert.Equal(t, models.ContactEmail, rec.Channel)
	assert.Equal(t, "rh@acme.com", rec.Email)
	assert.Equal(t, models.SourceLinkedInPosts, rec.Source)
	assert.False(t, rec.CollectedAt.IsZero())
}

func TestExtractContactChannelPriority(t *testing.T) {
	f := newTestFields()
	//a link and an email together must resolve to link, never email
	rec := f.Extract(blockOf("Vaga ux designer! Candidate-se em https://jobs.acme.com/ux?src=li ou mande CV para talentos@acme.com"))

	assert.Equal(t, models.ContactLink, rec.Channel)
	assert.Equal(t, "https://jobs.acme.com/ux", rec.ApplyLink)
	assert.Equal(t, "talentos@acme.com", rec.Email)
}

func TestExtractProfileOnlyWhenAsked(t *testing.T) {
	f := newTestFields()
	profiles := map[string]string{"Maria Silva": "https://www.linkedin.com/in/msilva"}

	asked := collector.Block{
		Text: "Maria Silva • 2h\nEstamos com vaga de ux designer!\nMe chama no inbox para saber mais",
		Page: &collector.PageLinks{Profiles: profiles},
	}
	rec := f.Extract(asked)
	assert.Equal(t, models.ContactMessage, rec.Channel)
	assert.Equal(t, "https://www.linkedin.com/in/msilva", rec.AuthorProfile)

	silent := collector.Block{
		Text: "Maria Silva • 2h\nEstamos com vaga de ux designer no nosso time de produto",
		Page: &collector.PageLinks{Profiles: profiles},
	}
	rec = f.Extract(silent)
	assert.Equal(t, models.ContactUndefined, rec.Channel)
	assert.Empty(t, rec.AuthorProfile)
}

func TestExtractUsesShortenedLinkPool(t *testing.T) {
	f := newTestFields()
	blk := collector.Block{
		Text: "Vaga ux designer remoto, link nos comentários",
		Page: &collector.PageLinks{Shortened: []string{"https://lnkd.in/abc?trk=1", "https://lnkd.in/def"}},
	}

	rec := f.Extract(blk)
	assert.Equal(t, models.ContactLink, rec.Channel)
	assert.Equal(t, "https://lnkd.in/abc", rec.ApplyLink)

	//the pool is consumed in order
	rec = f.Extract(collector.Block{Text: "Outra vaga ui designer, confira o link", Page: blk.Page})
	assert.Equal(t, "https://lnkd.in/def", rec.ApplyLink)
}

func TestHeuristicProcessBlock(t *testing.T) {
	cls := classify.New(testInclude, testExclude)
	ledger := dedup.NewLedger()
	h := NewHeuristic(cls, ledger, newTestFields())
	ctx := context.Background()

	//exclusion term with no inclusion term: rejected, zero records
	recs, err := h.ProcessBlock(ctx, blockOf("Estamos contratando Backend Developer pleno para a squad"))
	require.NoError(t, err)
	assert.Empty(t, recs)

	//no contact channel at all: silently dropped
	recs, err = h.ProcessBlock(ctx, blockOf("Vaga de product designer, detalhes em breve"))
	require.NoError(t, err)
	assert.Empty(t, recs)

	//valid listing goes through
	recs, err = h.ProcessBlock(ctx, blockOf("Vaga de product designer remoto, CV para rh@acme.com"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.ContactEmail, recs[0].Channel)
}

func TestHeuristicReservesApplicationLink(t *testing.T) {
	cls := classify.New(testInclude, testExclude)
	ledger := dedup.NewLedger()
	h := NewHeuristic(cls, ledger, newTestFields())
	ctx := context.Background()

	first, err := h.ProcessBlock(ctx, blockOf("Vaga ux designer! Aplique em https://acme.gupy.io/vaga/42?utm=1"))
	require.NoError(t, err)
	require.Len(t, first, 1)

	//differently worded post, same canonical application link
	second, err := h.ProcessBlock(ctx, blockOf("Galera, procuramos ui designer: https://acme.gupy.io/vaga/42?utm=2"))
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestHeuristicFlushIsEmpty(t *testing.T) {
	h := NewHeuristic(classify.New(testInclude, testExclude), dedup.NewLedger(), newTestFields())
	recs, err := h.Flush(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, recs)
}
