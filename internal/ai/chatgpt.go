package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You help people learn Finnish. Write short, natural example sentences in everyday Finnish."

// ChatGPT represents a client for an OpenAI compatible chat API
type ChatGPT struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// New creates a new ChatGPT client. baseURL may be empty for the public API.
func New(apiKey, baseURL, model string) (*ChatGPT, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is not set")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	return &ChatGPT{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		maxTokens:   100,
		temperature: 0.7,
	}, nil
}

// ExampleSentence generates a Finnish example sentence for a word
func (c *ChatGPT) ExampleSentence(ctx context.Context, finnish, english string) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short, practical Finnish sentence that naturally uses the word '%s' (meaning '%s' in English). Return only the sentence.",
		finnish, english,
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to generate example for %q", finnish)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices returned")
	}

	// Clean up the response
	example := strings.TrimSpace(resp.Choices[0].Message.Content)
	example = strings.Trim(example, "\"")
	if example == "" {
		return "", errors.New("empty example returned")
	}
	return example, nil
}
