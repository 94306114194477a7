package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-vagas-automation/internal/ai"
	"go-vagas-automation/internal/models"
)

// Manual round-trip check against the extraction model.
func main() {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		log.Println("GROQ_API_KEY environment variable not set. Please set it to test the model.")
		return
	}

	client := ai.NewChatClient(apiKey, "", "")

	batch := []models.Capture{
		{
			ID:    1,
			Text:  "Vaga: Product Designer remoto na Acme. Envie CV para rh@acme.com",
			Links: nil,
		},
		{
			ID:    2,
			Text:  "Estamos contratando Backend Developer pleno para a squad de pagamentos",
			Links: nil,
		},
		{
			ID:    3,
			Text:  "Oportunidade UX Designer híbrido, candidate-se pelo link",
			Links: []string{"https://acme.gupy.io/vaga/42"},
		},
	}

	fmt.Println("Sending batch to the extraction model...")

	verdicts, err := client.AnalyzeBatch(context.Background(), batch)
	if err != nil {
		log.Fatalf("AnalyzeBatch failed: %v", err)
	}

	fmt.Printf("\nSuccess! %d verdicts:\n", len(verdicts))
	for _, v := range verdicts {
		fmt.Printf("  id=%d relevant=%t title=%q contact=%s\n", v.ID, v.IsRelevant, v.Title, v.ContactMethod)
	}
}
