package models

import "time"

// Source identifies which feed a record was collected from.
type Source string

const (
	SourceIndeed        Source = "indeed"
	SourceLinkedInJobs  Source = "linkedin_jobs"
	SourceLinkedInPosts Source = "linkedin_posts"
)

// Modality is the work arrangement stated in the listing.
type Modality string

const (
	ModalityRemote      Modality = "remoto"
	ModalityHybrid      Modality = "hibrido"
	ModalityOnSite      Modality = "presencial"
	ModalityUnspecified Modality = "nao_especificado"
)

// ContactChannel is the mechanism by which a candidate should apply.
type ContactChannel string

const (
	ContactLink      ContactChannel = "link"
	ContactEmail     ContactChannel = "email"
	ContactMessage   ContactChannel = "mensagem"
	ContactUndefined ContactChannel = "indefinido"
)

// Job categories, in first-match priority order.
const (
	CategoryProductManager  = "Product Manager"
	CategoryHeadDeProduto   = "Head de Produto"
	CategoryServiceDesigner = "Service Designer"
	CategoryUXUIDesigner    = "UX/UI Designer"
	CategoryUIDesigner      = "UI Designer"
	CategoryUXDesigner      = "UX Designer"
	CategoryProductDesigner = "Product Designer"
)

// JobRecord is the pipeline's output unit. Constructed once per accepted
// block and immutable afterwards; the persistence layer runs its own
// duplicate check before insert.
type JobRecord struct {
	Title         string         `json:"titulo"`
	Company       string         `json:"empresa,omitempty"`
	Category      string         `json:"tipo_vaga"`
	Source        Source         `json:"fonte"`
	ApplyLink     string         `json:"link_vaga,omitempty"`
	Modality      Modality       `json:"modalidade"`
	Channel       ContactChannel `json:"forma_contato"`
	Email         string         `json:"email_contato,omitempty"`
	AuthorProfile string         `json:"perfil_autor,omitempty"`
	CollectedAt   time.Time      `json:"data_coleta"`
}

// Capture is one raw unit handed to the extraction model: a truncated
// block text plus the candidate links found near it on the page.
type Capture struct {
	ID    int      `json:"id"`
	Text  string   `json:"text"`
	Links []string `json:"links,omitempty"`
}
