package draftpress

// BlogPost is the stored content type backing the creation API and admin pages.
type BlogPost struct {
	Slug    string
	Title   string
	Date    string
	Tags    []string
	Authors []string
	Draft   bool
	Summary string
	Content string
}

// PostDraft is the working record held by a form session. Tags and authors
// stay in comma-separated display form until submission.
type PostDraft struct {
	Title   string
	Slug    string
	Date    string // ISO calendar date, defaults to the day the form opened
	Tags    string
	Authors string
	Draft   bool
	Summary string
	Content string // Markdown body
}

// CreatePostRequest is the JSON body sent to the creation endpoint.
type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Slug    string   `json:"slug"`
	Date    string   `json:"date" validate:"required,datetime=2006-01-02"`
	Tags    []string `json:"tags"`
	Authors []string `json:"authors"`
	Draft   bool     `json:"draft"`
	Summary string   `json:"summary"`
	Content string   `json:"content"`
}

// CreatePostResponse is the creation endpoint's success body.
type CreatePostResponse struct {
	Slug string `json:"slug"`
}

// APIError is the creation endpoint's failure body.
type APIError struct {
	Message string `json:"message"`
}
