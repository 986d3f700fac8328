package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reasoning_client.go -package=mocks humata-ai/internal/service ReasoningClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_content_extractor.go -package=mocks humata-ai/internal/service ContentExtractor
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService humata-ai/internal/service ChatService

import (
	"context"
	"errors"
	"strings"
	"time"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/extract"
	"humata-ai/internal/llm"
	"humata-ai/internal/markdown"
	"humata-ai/internal/provider"
	"humata-ai/internal/retry"
)

// BaseSystemPrompt is sent as the first system message of every conversation.
const BaseSystemPrompt = `You are Humata AI. In 'Scientific Mode', explain concepts step-by-step. In 'Doctor Mode', provide guidance with disclaimers. In 'Khedive Mode', speak historically.

IMPORTANT LANGUAGE REQUIREMENT: You must output ONLY in standard Arabic (العربية الفصحى). Do not use Chinese, English, Latin, or any other non-Arabic characters whatsoever. Translate ALL technical terms to Arabic. Ensure the text is 100% pure Arabic script only. Never mix languages.

CRITICAL OUTPUT REQUIREMENT: Your responses MUST be clean, readable, professional prose. AVOID using any decorative Markdown characters like asterisks (*), hashtags (#), backticks (` + "`" + `), or excessive formatting symbols. Focus on clear, clean text only. Use simple line breaks for paragraph separation instead of Markdown formatting.

When processing OCR text from images, please clean up any recognition errors and understand the context to provide accurate responses.`

const (
	defaultFileName    = "file"
	fileContentHeader  = "[محتوى الملف/الصورة]:\n"
	userQuestionHeader = "[سؤال المستخدم]:\n"
)

// ReasoningClient is an interface for the remote reasoning model.
// This interface is defined from the service layer's perspective (consumer-first).
type ReasoningClient interface {
	// ChatWithMessages sends the conversation and returns the reply text.
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// ContentExtractor turns an attached file into prompt text.
type ContentExtractor interface {
	// Extract returns the text content of f.
	Extract(ctx context.Context, f extract.File) (string, error)
}

// Turn is one prior message of the conversation.
type Turn struct {
	Role    string
	Content string
}

// ChatOptions carries the optional parts of a chat request.
type ChatOptions struct {
	// SystemPrompt is appended to BaseSystemPrompt.
	SystemPrompt string
	// File is a single attachment. It is read only when both data and MIME type are set.
	File extract.File
	// Files are further attachments, read in order after File.
	Files []extract.File
	// EnableGrounding is accepted for compatibility and only logged.
	EnableGrounding bool
}

func (o ChatOptions) hasSingleFile() bool {
	return o.File.Base64Data != "" && o.File.MimeType != ""
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	Message string
	History []Turn
	Options ChatOptions
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Reply string
}

// ChatSettings is the configuration injected into the chat service.
type ChatSettings struct {
	// APIKey is the reasoning credential. Empty fails every request before any I/O.
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	// Retry bounds retries of rate-limited reasoning calls.
	Retry retry.Policy
	// PlainTextReplies strips markdown decoration from replies.
	PlainTextReplies bool
}

// DefaultChatRetryPolicy retries maxRetries times with a fixed delay.
func DefaultChatRetryPolicy(maxRetries int, delay time.Duration) retry.Policy {
	return retry.Policy{
		MaxRetries: maxRetries,
		Backoff:    retry.Fixed(delay),
	}
}

// ChatService provides chat functionality.
type ChatService interface {
	// SendMessage extracts attached files, forwards the conversation to the
	// reasoning model and returns its reply.
	SendMessage(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// chatService implements ChatService.
type chatService struct {
	reasoning ReasoningClient
	extractor ContentExtractor
	settings  ChatSettings
}

// NewChatService creates a new ChatService.
func NewChatService(reasoning ReasoningClient, extractor ContentExtractor, settings ChatSettings) ChatService {
	return &chatService{
		reasoning: reasoning,
		extractor: extractor,
		settings:  settings,
	}
}

// SendMessage processes a chat request.
func (s *chatService) SendMessage(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if s.settings.APIKey == "" {
		logger.ErrorContext(ctx, "reasoning credential not configured")
		return ChatResponse{}, &LocalizedError{Kind: ErrMissingCredential, Message: msgMissingCredential}
	}

	if err := validateChatRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid chat request", "error", err)
		return ChatResponse{}, err
	}

	fileContent, err := s.buildFileContent(ctx, req.Options)
	if err != nil {
		logger.ErrorContext(ctx, "failed to extract file content", "error", err)
		return ChatResponse{}, classifyError(err)
	}

	messages := buildMessages(req, fileContent)
	params := llm.ChatParams{
		Model:       s.settings.Model,
		MaxTokens:   s.settings.MaxTokens,
		Temperature: s.settings.Temperature,
	}

	logger.InfoContext(ctx, "sending chat to reasoning model",
		"messages_count", len(messages),
		"has_file_content", fileContent != "",
		"enable_grounding", req.Options.EnableGrounding,
	)

	var reply string
	onRetry := func(attempt int, delay time.Duration, err error) {
		logger.WarnContext(ctx, "reasoning model rate limited, retrying", "attempt", attempt, "delay", delay, "error", err)
	}
	err = retry.Do(ctx, s.settings.Retry, provider.IsRateLimited, onRetry, func(ctx context.Context) error {
		var callErr error
		reply, callErr = s.reasoning.ChatWithMessages(ctx, messages, params)
		return callErr
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get reasoning response", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ChatResponse{}, WrapError(ctxErr, "chat request aborted")
		}
		return ChatResponse{}, classifyError(err)
	}

	if s.settings.PlainTextReplies {
		reply = markdown.ToPlainText(reply)
	}

	logger.InfoContext(ctx, "chat request processed successfully", "message_length", len(req.Message), "reply_length", len(reply))
	return ChatResponse{Reply: reply}, nil
}

// buildFileContent extracts the single file, then each listed file, and joins
// the results as "[name]\ncontent" blocks separated by blank lines.
func (s *chatService) buildFileContent(ctx context.Context, opts ChatOptions) (string, error) {
	files := make([]extract.File, 0, len(opts.Files)+1)
	if opts.hasSingleFile() {
		files = append(files, opts.File)
	}
	files = append(files, opts.Files...)

	blocks := make([]string, 0, len(files))
	for _, f := range files {
		if f.FileName == "" {
			f.FileName = defaultFileName
		}
		content, err := s.extractor.Extract(ctx, f)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, "["+f.FileName+"]\n"+content)
	}
	return strings.Join(blocks, "\n\n"), nil
}

// buildMessages assembles the system prompt, the history and the final user turn.
func buildMessages(req ChatRequest, fileContent string) []llm.Message {
	systemPrompt := BaseSystemPrompt
	if req.Options.SystemPrompt != "" {
		systemPrompt += "\n\n" + req.Options.SystemPrompt
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range req.History {
		messages = append(messages, llm.Message{Role: NormalizeRole(turn.Role), Content: turn.Content})
	}

	userMessage := req.Message
	if fileContent != "" {
		userMessage = fileContentHeader + fileContent + "\n\n" + userQuestionHeader + req.Message
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	return messages
}

// NormalizeRole maps role to system, user or assistant. Anything else becomes user.
func NormalizeRole(role string) string {
	switch role {
	case llm.RoleSystem, llm.RoleUser, llm.RoleAssistant:
		return role
	default:
		return llm.RoleUser
	}
}

// classifyError maps a failure to the error returned to callers.
func classifyError(err error) error {
	switch {
	case errors.Is(err, ErrExtraction):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return WrapError(err, "chat request aborted")
	case provider.IsRateLimited(err):
		return &LocalizedError{Kind: ErrRateLimitExhausted, Message: msgRateLimitExhausted, Err: err}
	case provider.IsUnauthorized(err):
		return &LocalizedError{Kind: ErrInvalidCredential, Message: msgInvalidCredential, Err: err}
	}

	msg := err.Error()
	var provErr *provider.Error
	if errors.As(err, &provErr) {
		msg = provErr.Message
	}
	if msg == "" {
		msg = msgProcessingFailed
	}
	return &LocalizedError{Kind: ErrExternalService, Message: msg, Err: err}
}
