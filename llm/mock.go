package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Mock is a placeholder provider for local development. It never calls an
// external model and always returns a valid draft JSON document.
type Mock struct{}

func (Mock) GenerateContent(_ context.Context, prompt string) (string, error) {
	source := prompt
	if i := strings.LastIndex(prompt, "Source material:\n"); i >= 0 {
		source = prompt[i+len("Source material:\n"):]
	}
	b, _ := json.Marshal(Draft{
		Title:   "Generated Draft",
		Summary: "A draft generated by the mock provider.",
		Tags:    []string{"draft"},
		Content: "# Generated Draft\n\n" + strings.TrimSpace(source) + "\n",
	})
	return string(b), nil
}

func (Mock) GenerateChatResponse(_ context.Context, messages []ChatMessage, _ string) (string, error) {
	if len(messages) == 0 {
		return "", nil
	}
	return messages[len(messages)-1].Content, nil
}
