package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"campushub_backend/internals/configs"
)

var ErrGeneratorUnavailable = errors.New("answer generator is not configured")

// QA is one generated question/answer pair.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generator produces answers for a batch of questions in one call.
type Generator interface {
	Generate(ctx context.Context, questions []string) ([]QA, error)
}

// =======================
// HTTP implementation (OpenAI-compatible chat endpoint)
// =======================

type HTTPGenerator struct {
	Client *http.Client
	URL    string
	APIKey string
	Model  string
}

func NewHTTPGenerator() *HTTPGenerator {
	return &HTTPGenerator{
		Client: &http.Client{Timeout: 30 * time.Second},
		URL:    configs.AIApiURL,
		APIKey: configs.AIApiKey,
		Model:  configs.AIModel,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You answer frequently asked questions for a campus community app. " +
	"Reply with a JSON array of objects {\"question\": ..., \"answer\": ...}, one per input question, " +
	"answers concise and factual. Reply with JSON only."

func (g *HTTPGenerator) Generate(ctx context.Context, questions []string) ([]QA, error) {
	if g.URL == "" {
		return nil, ErrGeneratorUnavailable
	}

	payload, err := json.Marshal(chatRequest{
		Model: g.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: strings.Join(questions, "\n")},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("generator response malformed: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("generator returned no choices")
	}

	return parseQAList(parsed.Choices[0].Message.Content)
}

// parseQAList decodes the model output, tolerating a markdown code fence
// around the JSON array.
func parseQAList(content string) ([]QA, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var pairs []QA
	if err := json.Unmarshal([]byte(content), &pairs); err != nil {
		return nil, fmt.Errorf("generator answers malformed: %w", err)
	}
	return pairs, nil
}
