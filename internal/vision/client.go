// Package vision describes images with an OpenAI-compatible vision model.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/provider"
)

const (
	// ProviderName identifies the vision provider in classified errors and logs.
	ProviderName = "vision"

	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 1024
)

// Client calls the chat completions endpoint with an image content part.
type Client struct {
	model  string
	client openai.Client
}

// NewClient creates a vision client. SDK-level retries are disabled; callers own the retry policy.
func NewClient(baseURL, apiKey, model string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = defaultModel
	}

	return &Client{
		model:  model,
		client: openai.NewClient(opts...),
	}
}

// DescribeImage sends image with prompt and returns the model's description.
func (c *Client) DescribeImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	logger.DebugContext(ctx, "sending image to vision model", "model", c.model, "mime_type", mimeType, "bytes", len(image))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
		MaxTokens: openai.Int(defaultMaxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", provider.Classify(ProviderName, apiErr.StatusCode, apiErr.Message, err)
		}
		return "", provider.Classify(ProviderName, 0, "", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
