// Package relay transports a generated draft between the admin page that
// produced it and the new-post form that displays it. Small fields travel in
// the query string of the navigation; a large content body goes through a
// side-channel stash under a fixed key and is consumed exactly once.
package relay

import (
	"net/url"
	"strings"
)

// StashKey is the well-known side-channel key for relayed content bodies.
const StashKey = "generatedBlogContent"

// MaxQueryContent is the largest content body carried directly in the query
// string. Anything bigger goes through the stash so the redirect URL stays
// well under browser and proxy limits.
const MaxQueryContent = 1500

// Payload is the generated-content bundle handed to the new-post form.
type Payload struct {
	Title   string
	Summary string
	Tags    []string
	Content string
}

// Encode converts a payload into navigation query parameters. Content small
// enough to fit travels inline; otherwise it is written to the stash and the
// query carries hasContent=true. When the stash write fails the small fields
// still relay and the error is returned for logging.
func Encode(p Payload, stash Stash) (url.Values, error) {
	q := url.Values{}
	q.Set("title", p.Title)
	if p.Summary != "" {
		q.Set("summary", p.Summary)
	}
	if len(p.Tags) > 0 {
		q.Set("tags", strings.Join(p.Tags, ","))
	}
	if p.Content == "" {
		return q, nil
	}
	if len(p.Content) <= MaxQueryContent {
		q.Set("content", p.Content)
		return q, nil
	}
	if err := stash.Put(StashKey, p.Content); err != nil {
		return q, err
	}
	q.Set("hasContent", "true")
	return q, nil
}

// Params is the decoded query-string half of a relayed payload.
type Params struct {
	Title      string
	Summary    string
	Tags       string // comma-separated, as displayed in the form
	Content    string // only present for small bodies
	HasContent bool   // content body waits in the stash
}

// ParseParams reads relay parameters from a navigation query. The second
// return is false when no title is present, meaning this is a plain new-post
// navigation and no initialization should happen.
func ParseParams(q url.Values) (Params, bool) {
	title := q.Get("title")
	if title == "" {
		return Params{}, false
	}
	return Params{
		Title:      title,
		Summary:    q.Get("summary"),
		Tags:       q.Get("tags"),
		Content:    q.Get("content"),
		HasContent: q.Get("hasContent") == "true",
	}, true
}
