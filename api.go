package draftpress

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// createPost validates and persists a creation request, returning the final
// slug. Validation failures come back as *SubmitError with a 4xx status.
func createPost(store *Store, req CreatePostRequest) (string, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		req.Slug = Slugify(req.Title)
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}
	if err := validate.Struct(req); err != nil {
		return "", &SubmitError{Message: validationMessage(err), Status: http.StatusBadRequest}
	}
	if req.Slug == "" {
		return "", &SubmitError{Message: "Slug is required. Add a title or slug.", Status: http.StatusBadRequest}
	}
	if err := store.SavePost(BlogPost{
		Slug:    req.Slug,
		Title:   req.Title,
		Date:    req.Date,
		Tags:    req.Tags,
		Authors: req.Authors,
		Draft:   req.Draft,
		Summary: req.Summary,
		Content: req.Content,
	}); err != nil {
		return "", err
	}
	return req.Slug, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Date":
			return "Invalid date format. Use YYYY-MM-DD."
		default:
			return verrs[0].Field() + " is required"
		}
	}
	return "Invalid post data"
}

// StoreCreator implements PostCreator against the local post store. It is the
// default collaborator when the panel runs in the same process as the CMS.
type StoreCreator struct {
	Store *Store
}

func (s *StoreCreator) CreatePost(_ context.Context, req CreatePostRequest) (string, error) {
	return createPost(s.Store, req)
}

// handleCreatePost is the JSON creation endpoint (POST /api/posts/create).
func (a *App) handleCreatePost(c echo.Context) error {
	if !IsAdmin(c) && !a.apiTokenOK(c) {
		return c.JSON(http.StatusUnauthorized, APIError{Message: "Unauthorized"})
	}
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body"})
	}
	slug, err := createPost(a.Store, req)
	if err != nil {
		var se *SubmitError
		if errors.As(err, &se) {
			return c.JSON(se.Status, APIError{Message: se.Message})
		}
		c.Logger().Errorf("create post: %v", err)
		return c.JSON(http.StatusInternalServerError, APIError{Message: "Failed to create post"})
	}
	return c.JSON(http.StatusCreated, CreatePostResponse{Slug: slug})
}

func (a *App) apiTokenOK(c echo.Context) bool {
	if a.Config.APIToken == "" {
		return false
	}
	auth := c.Request().Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(auth), []byte("Bearer "+a.Config.APIToken)) == 1
}
