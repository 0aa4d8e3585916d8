package draftpress

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestCreatePost(t *testing.T) {
	s := newTestStore(t)
	slug, err := createPost(s, CreatePostRequest{
		Title:   "  Hello World  ",
		Date:    "2026-02-03",
		Tags:    []string{"go"},
		Content: "# Hi",
	})
	if err != nil {
		t.Fatalf("createPost: %v", err)
	}
	if slug != "hello-world" {
		t.Errorf("slug = %q, want derived from title", slug)
	}
	got, err := s.GetPost("hello-world")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Hello World" {
		t.Errorf("stored title = %q, want trimmed", got.Title)
	}
}

func TestCreatePostDefaultsDate(t *testing.T) {
	s := newTestStore(t)
	if _, err := createPost(s, CreatePostRequest{Title: "T", Slug: "t"}); err != nil {
		t.Fatalf("createPost: %v", err)
	}
	got, err := s.GetPost("t")
	if err != nil {
		t.Fatal(err)
	}
	if got.Date != time.Now().Format("2006-01-02") {
		t.Errorf("date = %q, want today", got.Date)
	}
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreatePostRequest
		msg  string
	}{
		{"no title", CreatePostRequest{Slug: "x", Date: "2026-01-01"}, "Title is required"},
		{"bad date", CreatePostRequest{Title: "T", Date: "Jan 1 2026"}, "Invalid date format. Use YYYY-MM-DD."},
		{"no slug", CreatePostRequest{Title: "!!!", Date: "2026-01-01"}, "Slug is required. Add a title or slug."},
	}
	s := newTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createPost(s, tt.req)
			var se *SubmitError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *SubmitError", err)
			}
			if se.Message != tt.msg {
				t.Errorf("message = %q, want %q", se.Message, tt.msg)
			}
			if se.Status != http.StatusBadRequest {
				t.Errorf("status = %d", se.Status)
			}
		})
	}
}
