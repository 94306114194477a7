package ai

import (
	"encoding/json"
	"fmt"

	"go-vagas-automation/internal/models"
)

// Prompt size is bounded per item: 300 characters of text and 5 links
// keep a 20-item batch inside a cheap model's context.
const (
	promptTextLimit  = 300
	promptLinksLimit = 5
)

const promptTemplate = `Analyze job posts for UX/Product roles. For each item return:
- is_relevant: true only for a UX/Product Design opening, false otherwise
- title: the role title
- contact_method: "link"|"email"|"contact"|"undefined"
- url: the application link (pick the most relevant from links)
- email: application email, if present in the text
- profile: author profile URL, ONLY if the text asks readers to reach out
- company: company name, if mentioned
- modality: remoto/hibrido/presencial/indefinido

Items: %s
Reply with ONLY a JSON array, one object per input id.`

func buildPrompt(batch []models.Capture) (string, error) {
	trimmed := make([]models.Capture, 0, len(batch))
	for _, c := range batch {
		c.Text = truncateRunes(c.Text, promptTextLimit)
		if len(c.Links) > promptLinksLimit {
			c.Links = c.Links[:promptLinksLimit]
		}
		trimmed = append(trimmed, c)
	}

	payload, err := json.Marshal(trimmed)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(promptTemplate, string(payload)), nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
