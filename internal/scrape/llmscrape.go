package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/enexcook/enexcook/internal/extract"
	"github.com/enexcook/enexcook/internal/llm"
	"github.com/enexcook/enexcook/internal/recipe"
)

// maxPromptChars bounds how much note text is sent to the model.
const maxPromptChars = 24000

const llmSystemPrompt = `You extract recipe data from web page text. ` +
	`Respond with a single JSON object and nothing else, using exactly these keys: ` +
	`"title" (string), "description" (string), "ingredients" (array of strings), ` +
	`"instructions" (array of strings, one step each), "prepMinutes" (integer), ` +
	`"cookMinutes" (integer), "totalMinutes" (integer), "yield" (string). ` +
	`Use "" for unknown strings, [] for unknown arrays and 0 for unknown minutes. ` +
	`Do not invent content that is not in the page.`

// LLM asks an OpenAI-compatible model to pull recipe fields out of the
// note text. It is an optional, config-gated capability; any transport or
// decode failure is just a tier miss.
type LLM struct {
	Client llm.Client
	Model  string
}

type llmResult struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepMinutes  int      `json:"prepMinutes"`
	CookMinutes  int      `json:"cookMinutes"`
	TotalMinutes int      `json:"totalMinutes"`
	Yield        string   `json:"yield"`
}

// Scrape implements recipe.Scraper.
func (s *LLM) Scrape(ctx context.Context, input, sourceURL string) (*recipe.Scraped, error) {
	if s.Client == nil || strings.TrimSpace(s.Model) == "" {
		return nil, errors.New("llm scraper not configured")
	}

	text := extract.PlainText(input)
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	user := fmt.Sprintf("Source URL: %s\n\nPage text:\n%s", sourceURL, text)

	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return nil, fmt.Errorf("llm extraction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("llm returned no choices")
	}

	var out llmResult
	payload := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, fmt.Errorf("decode llm response: %w", err)
	}

	return &recipe.Scraped{
		Title:        out.Title,
		Description:  out.Description,
		Ingredients:  out.Ingredients,
		Instructions: out.Instructions,
		PrepMinutes:  out.PrepMinutes,
		CookMinutes:  out.CookMinutes,
		TotalMinutes: out.TotalMinutes,
		Yield:        out.Yield,
	}, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat
// models add despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
