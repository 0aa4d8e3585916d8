package draftpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PostCreator is the creation endpoint collaborator: it accepts a finished
// post record and returns the server-assigned slug.
type PostCreator interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (string, error)
}

// SubmitError carries the server-provided failure message for inline display.
type SubmitError struct {
	Message string
	Status  int
}

func (e *SubmitError) Error() string { return e.Message }

// HTTPCreator submits drafts to a remote creation endpoint as JSON. Token, if
// set, is sent as a bearer credential.
type HTTPCreator struct {
	Endpoint string
	Token    string
	Client   *http.Client
}

func (h *HTTPCreator) CreatePost(ctx context.Context, req CreatePostRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if h.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr APIError
		_ = json.Unmarshal(data, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = "Failed to create post"
		}
		return "", &SubmitError{Message: apiErr.Message, Status: resp.StatusCode}
	}

	var ok CreatePostResponse
	if err := json.Unmarshal(data, &ok); err != nil {
		return "", fmt.Errorf("create post: decode response: %w", err)
	}
	return ok.Slug, nil
}
