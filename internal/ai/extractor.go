package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a task extraction assistant. Extract actionable tasks from the given text. " +
	"Return a JSON array of tasks with 'title', 'description', and 'priority' (low/medium/high) fields. " +
	"Be concise and clear."

const requestTimeout = 30 * time.Second

// Task is one actionable item extracted from free text.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ChatClient is the slice of the OpenAI client the extractor needs.
// *openai.Client satisfies it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Extractor struct {
	client ChatClient
	model  string
}

func NewExtractor(apiKey, model string) *Extractor {
	return &Extractor{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewExtractorWithClient lets tests plug in a stub client.
func NewExtractorWithClient(client ChatClient, model string) *Extractor {
	return &Extractor{client: client, model: model}
}

// Extract asks the model for a JSON array of tasks and parses it. The raw
// model reply is returned alongside the tasks so callers can pass it
// through. sessionID keys the conversation per user.
func (e *Extractor) Extract(ctx context.Context, sessionID, text string) ([]Task, string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Extract tasks from this text and return ONLY a valid JSON array:\n\n%s\n\nFormat: [{'title': '...', 'description': '...', 'priority': 'medium'}]",
		text,
	)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		User:  sessionID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, "", err
	}
	if len(resp.Choices) == 0 {
		return nil, "", errors.New("empty completion response")
	}

	raw := resp.Choices[0].Message.Content

	var tasks []Task
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &tasks); err != nil {
		return nil, raw, err
	}

	return tasks, raw, nil
}

// stripCodeFence drops a surrounding Markdown code fence, which chat models
// like to wrap JSON in.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}
