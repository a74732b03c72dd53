package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned by every call when OPENAI_API_KEY is unset.
var ErrNotConfigured = errors.New("llm: OPENAI_API_KEY not set")

const requestTimeout = 30 * time.Second

// InferredLocation is one place the model found in citizen report text.
type InferredLocation struct {
	LocationName string `json:"location_name"`
	Sentiment    string `json:"sentiment"`
	Category     string `json:"category"`
	Description  string `json:"description"`
}

// Client wraps an OpenAI chat client.
type Client struct {
	openai *openai.Client
	model  string
}

// NewClient builds a client. An empty key gives a client that fails every
// call with ErrNotConfigured.
func NewClient(apiKey, model string) *Client {
	if apiKey == "" {
		log.Println("[AI] OPENAI_API_KEY missing, inference and chat are disabled")
		return &Client{model: model}
	}
	return &Client{openai: openai.NewClient(apiKey), model: model}
}

// NewClientWithConfig is used to point the client at another endpoint.
func NewClientWithConfig(cfg openai.ClientConfig, model string) *Client {
	return &Client{openai: openai.NewClientWithConfig(cfg), model: model}
}

// InferLocations asks the model for map markers based only on the report excerpt.
func (c *Client) InferLocations(ctx context.Context, city, reportsExcerpt string) ([]InferredLocation, error) {
	prompt := fmt.Sprintf(`City: %s
Citizen Reports: %s

TASK: Return a JSON array of map markers based ONLY on the citizen reports.
Each element must be an object with the keys "location_name", "sentiment", "category" and "description".
- Use specific location names found in the reports.
- sentiment is one of "negative", "neutral" or "positive".

JSON ONLY.`, city, reportsExcerpt)

	content, err := c.complete(ctx,
		"You extract named locations and sentiment from citizen issue reports and answer with JSON only.",
		prompt, 0.4, 800)
	if err != nil {
		return nil, err
	}
	return ParseLocations(content)
}

// Answer replies to a user question using only the supplied context.
func (c *Client) Answer(ctx context.Context, system, prompt string) (string, error) {
	return c.complete(ctx, system, prompt, 0.4, 400)
}

func (c *Client) complete(ctx context.Context, system, prompt string, temperature float32, maxTokens int) (string, error) {
	if c.openai == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
