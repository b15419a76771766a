// Package recommend integrates the OpenAI chat completion API for
// recommendation text generation.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/westleygroup/card-advisor/internal/advisor"
	"github.com/westleygroup/card-advisor/internal/model"
)

const (
	temperature = 0.7
	maxTokens   = 1500
)

// Error tags a generation failure with an explicit transient/fatal
// discriminant so callers never sniff error text.
type Error struct {
	StatusCode int
	Err        error
}

func (e *Error) Error() string { return fmt.Sprintf("generation failed: %v", e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Fatal reports whether the failure is a configuration or request bug
// that a retry cannot fix. Auth and malformed-request rejections are
// fatal; rate limits, provider outages, and transport failures are
// transient.
func (e *Error) Fatal() bool {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

// Client generates recommendation text via the OpenAI API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds an OpenAI client bound to a model identifier.
func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// GenerateRecommendation requests a completion for the profile prompt.
// The five content demands (rank three cards, commit to one, explain
// the weaker two, warn against bad fits, end with a next action) are
// part of the prompt contract; the output is not post-validated.
func (c *Client) GenerateRecommendation(ctx context.Context, profile model.UserProfile) (model.RecommendationResult, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: advisor.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: advisor.BuildUserPrompt(profile)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return model.RecommendationResult{}, classify(err)
	}
	if len(resp.Choices) == 0 {
		return model.RecommendationResult{}, &Error{Err: errors.New("completion returned no choices")}
	}
	return model.RecommendationResult{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
		Model:      c.model,
	}, nil
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	// Transport-level failures carry no status and stay transient.
	return &Error{Err: err}
}
