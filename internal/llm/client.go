package llm

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/provider"
)

// ProviderName identifies the reasoning provider in classified errors and logs.
const ProviderName = "groq"

// zeroTemperature stands in for 0, which the SDK omits from the request and
// the provider then replaces with its own default.
const zeroTemperature = math.SmallestNonzeroFloat32

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("no response generated from AI")

// Client is a client for an OpenAI-compatible chat completions API (Groq by default).
type Client struct {
	BaseURL string
	Model   string
	client  *openai.Client
}

// NewClient creates a new reasoning client. An empty baseURL uses the SDK default.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		BaseURL: cfg.BaseURL,
		Model:   model,
		client:  openai.NewClientWithConfig(cfg),
	}
}

// ChatWithMessages sends the full message list and returns the first choice's content.
// Failures are classified with the provider package so callers can detect rate limits
// and credential errors.
func (c *Client) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	model := params.Model
	if model == "" {
		model = c.Model
	}

	temperature := params.Temperature
	if temperature == 0 {
		temperature = zeroTemperature
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		MaxTokens:   params.MaxTokens,
		Temperature: temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	logger.DebugContext(ctx, "sending chat completion", "model", model, "messages", len(messages))

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return provider.Classify(ProviderName, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return provider.Classify(ProviderName, reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return provider.Classify(ProviderName, 0, fmt.Sprintf("failed to send request: %v", err), err)
}
