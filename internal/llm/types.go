package llm

// Chat roles accepted by the reasoning model.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn sent to the reasoning model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams overrides the client defaults for a single completion.
type ChatParams struct {
	// Model falls back to the client's model when empty.
	Model string

	// MaxTokens caps the reply length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature is passed through unchanged; replies use a low value.
	Temperature float32
}
