package draftpress

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello, World!!", "hello-world"},
		{"  --Foo--Bar--  ", "foo-bar"},
		{"My First Post", "my-first-post"},
		{"already-a-slug", "already-a-slug"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"under_scores kept", "under_scores-kept"},
		{"Numbers 123 too", "numbers-123-too"},
		{"!!!", ""},
		{"", ""},
		{"---", ""},
		{"CAPS AND   SPACES", "caps-and-spaces"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Hello, World!!", "  --Foo--Bar--  ", "My First Post", "x", ""}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent on %q: %q -> %q", in, once, twice)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"x, y ,,z", []string{"x", "y", "z"}},
		{"", nil},
		{" , , ", nil},
		{"solo", []string{"solo"}},
		{"dup, dup", []string{"dup", "dup"}},
	}
	for _, tt := range tests {
		if got := SplitCSV(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitCSV(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJoinCSV(t *testing.T) {
	if got := JoinCSV([]string{"go", "web"}); got != "go, web" {
		t.Errorf("JoinCSV = %q, want %q", got, "go, web")
	}
}
