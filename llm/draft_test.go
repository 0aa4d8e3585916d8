package llm

import (
	"strings"
	"testing"
)

func TestParseDraft(t *testing.T) {
	raw := `{"title":"T","summary":"S","tags":["a","b"],"content":"# Body"}`
	d, err := ParseDraft(raw)
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}
	if d.Title != "T" || d.Summary != "S" || len(d.Tags) != 2 || d.Content != "# Body" {
		t.Errorf("draft = %+v", d)
	}
}

func TestParseDraftFenced(t *testing.T) {
	raw := "```json\n{\"title\":\"T\",\"content\":\"body\"}\n```"
	d, err := ParseDraft(raw)
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}
	if d.Title != "T" || d.Content != "body" {
		t.Errorf("draft = %+v", d)
	}
}

func TestParseDraftErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "sorry, I cannot do that"},
		{"missing title", `{"content":"body"}`},
		{"missing content", `{"title":"T"}`},
		{"blank title", `{"title":"  ","content":"body"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDraft(tt.raw); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := CleanJSONResponse(tt.input); got != tt.want {
			t.Errorf("CleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDraftPromptCarriesPayload(t *testing.T) {
	for _, kind := range []string{"text", "url", "pdf"} {
		p := DraftPrompt(kind, "the material")
		if !strings.Contains(p, "the material") {
			t.Errorf("prompt for %q missing payload", kind)
		}
	}
}
