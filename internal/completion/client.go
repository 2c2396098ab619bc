// Package completion wraps an OpenAI-compatible chat-completion endpoint.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avoronin/interviewd/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// Message is a single role-tagged message in a completion request.
type Message struct {
	Role    string
	Content string
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: openai.ChatMessageRoleSystem, Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: openai.ChatMessageRoleUser, Content: content}
}

// TransportError indicates the completion endpoint was unreachable, timed
// out, or returned a non-success status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Completer is the collaborator interface consumed by the interview service.
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
}

// Client calls a Groq (OpenAI-compatible) chat-completion endpoint.
// A single attempt per call, bounded by a fixed timeout; no retries.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Client from Groq configuration.
func NewClient(cfg config.GroqConfig) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	apiConfig.BaseURL = cfg.BaseURL

	return &Client{
		api:     openai.NewClientWithConfig(apiConfig),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Complete sends the messages to the chat-completion endpoint and returns
// the generated text. Failures surface as *TransportError.
func (c *Client) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &TransportError{Err: fmt.Errorf("empty choices in response")}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &TransportError{Err: fmt.Errorf("empty completion text")}
	}
	return text, nil
}
