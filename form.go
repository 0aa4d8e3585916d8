package draftpress

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/allset/draftpress/llm"
	"github.com/allset/draftpress/relay"
)

// initState tracks one-time initialization from navigation parameters.
// The only legal path is Uninitialized -> Initializing -> Initialized.
type initState int

const (
	initUninitialized initState = iota
	initInitializing
	initInitialized
)

// Bounds for polling the side channel after a navigation announced content.
// The delay tolerates the write-read race across the navigation boundary.
const (
	stashPollDelay    = 200 * time.Millisecond
	stashPollAttempts = 3
)

var closedInit = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// FormSession owns the mutable draft of one new-post form: field updates,
// one-time initialization from relay parameters, and submission.
type FormSession struct {
	mu         sync.Mutex
	draft      PostDraft
	state      initState
	done       chan struct{}
	generating bool
}

// NewFormSession creates a form session with default field values. The date
// defaults to the day the form was opened.
func NewFormSession() *FormSession {
	return &FormSession{
		draft: PostDraft{Date: time.Now().Format("2006-01-02")},
	}
}

// Draft returns a copy of the current working record.
func (f *FormSession) Draft() PostDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// UpdateField is the generic form setter. The draft checkbox takes a bool,
// every other field a string. No validation happens at this layer; unknown
// names are ignored.
func (f *FormSession) UpdateField(name string, value any) {
	s, _ := value.(string)
	b, _ := value.(bool)

	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case "title":
		f.draft.Title = s
	case "slug":
		f.draft.Slug = s
	case "date":
		f.draft.Date = s
	case "tags":
		f.draft.Tags = s
	case "authors":
		f.draft.Authors = s
	case "summary":
		f.draft.Summary = s
	case "content":
		f.draft.Content = s
	case "draft":
		f.draft.Draft = b
	}
}

// Generating reports whether a generation call is outstanding for this form.
func (f *FormSession) Generating() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generating
}

func (f *FormSession) beginGeneration() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generating {
		return false
	}
	f.generating = true
	return true
}

func (f *FormSession) endGeneration() {
	f.mu.Lock()
	f.generating = false
	f.mu.Unlock()
}

// Initialize applies relayed navigation parameters to the draft, at most once
// per session no matter how many times it is called. Title, summary, and tags
// merge synchronously before it returns; a stashed content body is fetched
// asynchronously. The returned channel closes once initialization has fully
// settled, including the async content merge.
//
// A query without a title is a plain new-post navigation: nothing happens and
// the session stays uninitialized.
func (f *FormSession) Initialize(q url.Values, stash relay.Stash) <-chan struct{} {
	f.mu.Lock()
	if f.state != initUninitialized {
		done := f.done
		f.mu.Unlock()
		if done == nil {
			done = closedInit
		}
		return done
	}

	p, ok := relay.ParseParams(q)
	if !ok {
		f.mu.Unlock()
		return closedInit
	}

	// The guard transitions before any asynchronous work begins, so a
	// concurrent or repeated call can never apply the merge twice.
	f.state = initInitializing
	done := make(chan struct{})
	f.done = done

	f.draft.Title = p.Title
	f.draft.Slug = Slugify(p.Title)
	if p.Summary != "" {
		f.draft.Summary = p.Summary
	}
	if p.Tags != "" {
		f.draft.Tags = p.Tags
	}
	if p.Content != "" {
		f.draft.Content = p.Content
	}

	if !p.HasContent {
		f.state = initInitialized
		f.mu.Unlock()
		close(done)
		return done
	}
	f.mu.Unlock()

	go f.fetchRelayedContent(stash, done)
	return done
}

// fetchRelayedContent polls the side channel for the content body, writes
// only the content field, and removes the key from every channel so a later
// visit never replays stale content. A missing or failing stash degrades to a
// no-op; the query-string fields are already applied.
func (f *FormSession) fetchRelayedContent(stash relay.Stash, done chan struct{}) {
	defer func() {
		f.mu.Lock()
		f.state = initInitialized
		f.mu.Unlock()
		close(done)
	}()

	if stash == nil {
		return
	}
	for attempt := 0; attempt < stashPollAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(stashPollDelay)
		}
		content, ok, err := stash.Get(relay.StashKey)
		if err != nil {
			return
		}
		if !ok {
			continue
		}
		f.mu.Lock()
		f.draft.Content = content
		f.mu.Unlock()
		_ = stash.Delete(relay.StashKey)
		return
	}
}

// ApplyGenerated merges a generation result into the draft. Title, slug, and
// content are always overwritten; summary and tags only when the generation
// produced them.
func (f *FormSession) ApplyGenerated(d llm.Draft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Title = d.Title
	f.draft.Slug = Slugify(d.Title)
	f.draft.Content = d.Content
	if d.Summary != "" {
		f.draft.Summary = d.Summary
	}
	if len(d.Tags) > 0 {
		f.draft.Tags = JoinCSV(d.Tags)
	}
}

// Submit normalizes the draft into a creation request and sends it through
// the creation collaborator, returning the server-assigned slug. The draft is
// left untouched either way, so a failed submission can be corrected and
// resent.
func (f *FormSession) Submit(ctx context.Context, creator PostCreator) (string, error) {
	d := f.Draft()
	req := CreatePostRequest{
		Title:   d.Title,
		Slug:    d.Slug,
		Date:    d.Date,
		Tags:    SplitCSV(d.Tags),
		Authors: SplitCSV(d.Authors),
		Draft:   d.Draft,
		Summary: d.Summary,
		Content: d.Content,
	}
	return creator.CreatePost(ctx, req)
}
