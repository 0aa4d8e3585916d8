package draftpress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPCreatorSuccess(t *testing.T) {
	var gotAuth string
	var gotReq CreatePostRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreatePostResponse{Slug: "server-slug"})
	}))
	defer srv.Close()

	creator := &HTTPCreator{Endpoint: srv.URL, Token: "secret"}
	slug, err := creator.CreatePost(context.Background(), CreatePostRequest{Title: "Hi", Slug: "hi"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if slug != "server-slug" {
		t.Errorf("slug = %q", slug)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Title != "Hi" {
		t.Errorf("request title = %q", gotReq.Title)
	}
}

func TestHTTPCreatorServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIError{Message: "Title is required"})
	}))
	defer srv.Close()

	creator := &HTTPCreator{Endpoint: srv.URL}
	_, err := creator.CreatePost(context.Background(), CreatePostRequest{})
	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SubmitError", err)
	}
	if se.Message != "Title is required" || se.Status != http.StatusBadRequest {
		t.Errorf("SubmitError = %+v", se)
	}
}

func TestHTTPCreatorOpaqueFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	creator := &HTTPCreator{Endpoint: srv.URL}
	_, err := creator.CreatePost(context.Background(), CreatePostRequest{Title: "Hi"})
	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SubmitError", err)
	}
	if se.Message != "Failed to create post" {
		t.Errorf("message = %q, want the generic fallback", se.Message)
	}
}
