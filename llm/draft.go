package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Draft is the structured result of a content generation call. Title and
// Content are always present; Summary and Tags are optional.
type Draft struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Content string   `json:"content"`
}

const draftSystemPrompt = `You are a blog editor. Given source material, write a complete blog post.

Output as JSON only, no other text:
{
  "title": "post title",
  "summary": "one or two sentence summary",
  "tags": ["up to five lowercase topic tags"],
  "content": "the full post body in Markdown"
}`

// DraftPrompt builds the generation prompt for one content source.
// kind is "text", "url", or "pdf"; payload is the source material itself.
func DraftPrompt(kind, payload string) string {
	var label string
	switch kind {
	case "url":
		label = "The source material below was fetched from a web page."
	case "pdf":
		label = "The source material below was extracted from a PDF document."
	default:
		label = "The source material below was pasted by the author."
	}
	return fmt.Sprintf("%s\n\n%s\n\nSource material:\n%s", draftSystemPrompt, label, payload)
}

// ParseDraft decodes a model response into a Draft. It tolerates responses
// wrapped in Markdown code fences but requires title and content.
func ParseDraft(raw string) (Draft, error) {
	cleaned := CleanJSONResponse(raw)
	var d Draft
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		return Draft{}, fmt.Errorf("parse draft response: %w", err)
	}
	if strings.TrimSpace(d.Title) == "" {
		return Draft{}, errors.New("draft response missing title")
	}
	if strings.TrimSpace(d.Content) == "" {
		return Draft{}, errors.New("draft response missing content")
	}
	return d, nil
}

// CleanJSONResponse strips Markdown code fences that models wrap around JSON.
func CleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
