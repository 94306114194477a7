package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-vagas-automation/internal/models"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel   = "llama-3.3-70b-versatile"
)

// Verdict is the extraction model's judgment on one captured block.
// An item is accepted only when IsRelevant is true and ContactMethod is
// a usable value; anything else (including a missing field) rejects it.
type Verdict struct {
	ID            int    `json:"id"`
	IsRelevant    bool   `json:"is_relevant"`
	Title         string `json:"title,omitempty"`
	ContactMethod string `json:"contact_method,omitempty"`
	URL           string `json:"url,omitempty"`
	Email         string `json:"email,omitempty"`
	Profile       string `json:"profile,omitempty"`
	Company       string `json:"company,omitempty"`
	Modality      string `json:"modality,omitempty"`
}

// Analyzer is the contract with the external extraction model: one call
// per batch of raw captures, one verdict per input id.
type Analyzer interface {
	AnalyzeBatch(ctx context.Context, batch []models.Capture) ([]Verdict, error)
}

type chatClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewChatClient returns an Analyzer backed by an OpenAI-compatible chat
// completions endpoint. Empty model/baseURL fall back to Groq defaults.
func NewChatClient(apiKey, model, baseURL string) Analyzer {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &chatClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AnalyzeBatch submits one batch synchronously. Any failure, from
// transport to an unparseable response, is a total batch failure; the
// caller decides whether to continue with other batches.
func (c *chatClient) AnalyzeBatch(ctx context.Context, batch []models.Capture) ([]Verdict, error) {
	prompt, err := buildPrompt(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to build batch prompt: %w", err)
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1, //low temperature for consistency
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from model API")
	}

	cleaned := cleanMarkdownJSON(chatResp.Choices[0].Message.Content)

	var verdicts []Verdict
	if err := json.Unmarshal([]byte(cleaned), &verdicts); err != nil {
		return nil, fmt.Errorf("response is not the expected verdict array: %w", err)
	}

	return verdicts, nil
}

// cleanMarkdownJSON removes backticks and the "json" prefix if the model
// tries to be helpful.
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
