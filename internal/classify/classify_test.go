package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	includeTerms = []string{
		"product designer", "product manager", "ux designer", "ui designer",
		"ux/ui", "service designer", "head de produto", "product owner",
		"vaga ux", "ux research",
	}
	excludeTerms = []string{
		"developer", "desenvolvedor", "engineer", "engenheiro", "qa",
		"designer gráfico", "marketing", "backend", "frontend",
	}
)

func TestRelevant(t *testing.T) {
	c := New(includeTerms, excludeTerms)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "plain product role",
			text: "Vaga aberta: Product Designer para squad de pagamentos",
			want: true,
		},
		{
			name: "excluded engineering role",
			text: "Estamos contratando Backend Developer pleno",
			want: false,
		},
		{
			name: "composite role survives soft exclusion",
			text: "Procuramos Product Designer (ex-Engineer) para liderar discovery",
			want: true,
		},
		{
			name: "accented exclusion term",
			text: "Oportunidade para Designer Gráfico em agência",
			want: false,
		},
		{
			name: "no vocabulary hit at all",
			text: "Bom dia rede! Hoje completo cinco anos de empresa",
			want: false,
		},
		{
			name: "inclusion term with accents folded",
			text: "VAGA UX — venha trabalhar com a gente",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Relevant(tt.text))
		})
	}
}

func TestRelevantIsIdempotent(t *testing.T) {
	c := New(includeTerms, excludeTerms)
	text := "Vaga UX Designer remoto, time de produto"

	first := c.Relevant(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Relevant(text))
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "hibrido", Fold("Híbrido"))
	assert.Equal(t, "designer grafico senior", Fold("Designer Gráfico Sênior"))
}
