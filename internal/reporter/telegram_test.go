package reporter

import (
	"testing"

	"go-vagas-automation/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatRecordByChannel(t *testing.T) {
	link := formatRecord(models.JobRecord{
		Title: "Product Designer", Company: "Acme", Category: models.CategoryProductDesigner,
		Modality: models.ModalityRemote, Channel: models.ContactLink, ApplyLink: "https://acme.gupy.io/vaga/1",
	})
	assert.Contains(t, link, "<b>Product Designer</b>")
	assert.Contains(t, link, "Remoto")
	assert.Contains(t, link, `href="https://acme.gupy.io/vaga/1"`)

	email := formatRecord(models.JobRecord{
		Title: "UX Designer", Category: models.CategoryUXDesigner,
		Modality: models.ModalityUnspecified, Channel: models.ContactEmail, Email: "rh@acme.com",
	})
	assert.Contains(t, email, "rh@acme.com")
	assert.NotContains(t, email, "🏢")

	message := formatRecord(models.JobRecord{
		Title: "UX Lead", Category: models.CategoryUXDesigner,
		Modality: models.ModalityHybrid, Channel: models.ContactMessage, AuthorProfile: "https://www.linkedin.com/in/lead",
	})
	assert.Contains(t, message, "linkedin.com/in/lead")
}

func TestFormatRecordEscapesHTML(t *testing.T) {
	out := formatRecord(models.JobRecord{
		Title: "Designer <Sênior> & Pleno", Category: models.CategoryUXDesigner,
		Modality: models.ModalityRemote, Channel: models.ContactEmail, Email: "rh@acme.com",
	})
	assert.Contains(t, out, "&lt;Sênior&gt; &amp; Pleno")
}

func TestNilReporterIsNoOp(t *testing.T) {
	var r *TelegramReporter
	assert.NoError(t, r.SendMessage("ignored"))
	assert.NoError(t, r.SendRecord(models.JobRecord{}))
}
