// Package llm abstracts the text-generation backend used to draft blog posts.
// Providers are consumed as opaque remote collaborators: one prompt in, one
// text response or error out.
package llm

import "context"

// ChatMessage is a single turn in a conversation history.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", or "system"
	Content string `json:"content"`
}

// Provider generates text content from prompts.
type Provider interface {
	// GenerateContent returns the raw model output for a single prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// GenerateChatResponse returns the assistant reply for a conversation
	// history, optionally guided by a system prompt.
	GenerateChatResponse(ctx context.Context, messages []ChatMessage, systemPrompt string) (string, error)
}

// ImageResult is the outcome of an image generation call.
type ImageResult struct {
	ImageData string // base64
	MimeType  string
	Model     string
}

// ImageProvider generates images from prompts. No implementation ships here;
// the admin panel only declares the contract.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt, model, aspectRatio string) (*ImageResult, error)
}
