package draftpress

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/allset/draftpress/llm"
	"github.com/allset/draftpress/relay"
)

type fakeCreator struct {
	req  CreatePostRequest
	slug string
	err  error
}

func (f *fakeCreator) CreatePost(ctx context.Context, req CreatePostRequest) (string, error) {
	f.req = req
	return f.slug, f.err
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("initialization did not settle")
	}
}

func TestInitializeFromQueryParams(t *testing.T) {
	form := NewFormSession()
	q := url.Values{}
	q.Set("title", "My Generated Post")
	q.Set("summary", "A short summary.")
	q.Set("tags", "go,web")

	waitDone(t, form.Initialize(q, nil))

	d := form.Draft()
	if d.Title != "My Generated Post" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Slug != "my-generated-post" {
		t.Errorf("Slug = %q, want derived slug", d.Slug)
	}
	if d.Summary != "A short summary." {
		t.Errorf("Summary = %q", d.Summary)
	}
	if d.Tags != "go,web" {
		t.Errorf("Tags = %q", d.Tags)
	}
	if d.Content != "" {
		t.Errorf("Content = %q, want empty", d.Content)
	}
}

func TestInitializeInlineContent(t *testing.T) {
	form := NewFormSession()
	q := url.Values{}
	q.Set("title", "Short One")
	q.Set("content", "# Inline body")

	waitDone(t, form.Initialize(q, nil))

	if got := form.Draft().Content; got != "# Inline body" {
		t.Errorf("Content = %q", got)
	}
}

func TestInitializeStashedContent(t *testing.T) {
	stash := relay.NewMemoryStash(time.Minute)
	if err := stash.Put(relay.StashKey, "# Large body"); err != nil {
		t.Fatal(err)
	}

	form := NewFormSession()
	q := url.Values{}
	q.Set("title", "Big Post")
	q.Set("hasContent", "true")

	waitDone(t, form.Initialize(q, stash))

	if got := form.Draft().Content; got != "# Large body" {
		t.Errorf("Content = %q, want stashed body", got)
	}
	// Consumed exactly once.
	if _, ok, _ := stash.Get(relay.StashKey); ok {
		t.Error("stash key still present after the merge")
	}
}

func TestInitializeMissingStashedContent(t *testing.T) {
	stash := relay.NewMemoryStash(time.Minute)

	form := NewFormSession()
	q := url.Values{}
	q.Set("title", "Big Post")
	q.Set("hasContent", "true")

	waitDone(t, form.Initialize(q, stash))

	d := form.Draft()
	if d.Title != "Big Post" {
		t.Errorf("Title = %q, query fields must still apply", d.Title)
	}
	if d.Content != "" {
		t.Errorf("Content = %q, want empty when the stash never fills", d.Content)
	}
}

func TestInitializeAppliesOnce(t *testing.T) {
	form := NewFormSession()
	q := url.Values{}
	q.Set("title", "First Title")
	waitDone(t, form.Initialize(q, nil))

	form.UpdateField("title", "User Edited")

	again := url.Values{}
	again.Set("title", "Second Title")
	waitDone(t, form.Initialize(again, nil))

	if got := form.Draft().Title; got != "User Edited" {
		t.Errorf("Title = %q, repeated initialization must not reapply", got)
	}
}

func TestInitializeWithoutTitleIsNoop(t *testing.T) {
	form := NewFormSession()
	form.UpdateField("summary", "typed by hand")

	q := url.Values{}
	q.Set("summary", "relayed")
	waitDone(t, form.Initialize(q, nil))

	if got := form.Draft().Summary; got != "typed by hand" {
		t.Errorf("Summary = %q, a query without a title must not initialize", got)
	}
}

func TestNewFormSessionDefaultsDate(t *testing.T) {
	form := NewFormSession()
	if got := form.Draft().Date; got != time.Now().Format("2006-01-02") {
		t.Errorf("Date = %q, want today", got)
	}
}

func TestUpdateField(t *testing.T) {
	form := NewFormSession()
	form.UpdateField("title", "T")
	form.UpdateField("draft", true)
	form.UpdateField("nonsense", "ignored")

	d := form.Draft()
	if d.Title != "T" || !d.Draft {
		t.Errorf("draft after updates = %+v", d)
	}
}

func TestApplyGenerated(t *testing.T) {
	form := NewFormSession()
	form.UpdateField("summary", "keep me")
	form.UpdateField("tags", "keep, me")

	form.ApplyGenerated(llm.Draft{Title: "New Title", Content: "# Body"})

	d := form.Draft()
	if d.Title != "New Title" || d.Slug != "new-title" || d.Content != "# Body" {
		t.Errorf("overwritten fields = %+v", d)
	}
	if d.Summary != "keep me" || d.Tags != "keep, me" {
		t.Errorf("summary/tags must survive when generation omits them: %+v", d)
	}

	form.ApplyGenerated(llm.Draft{Title: "T2", Content: "c", Summary: "s2", Tags: []string{"a", "b"}})
	d = form.Draft()
	if d.Summary != "s2" || d.Tags != "a, b" {
		t.Errorf("produced summary/tags must overwrite: %+v", d)
	}
}

func TestSubmit(t *testing.T) {
	form := NewFormSession()
	form.UpdateField("title", "Hello")
	form.UpdateField("slug", "hello")
	form.UpdateField("date", "2026-01-02")
	form.UpdateField("tags", "go, web ,,")
	form.UpdateField("authors", "Ann")
	form.UpdateField("content", "# Hi")

	creator := &fakeCreator{slug: "hello"}
	slug, err := form.Submit(context.Background(), creator)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if slug != "hello" {
		t.Errorf("slug = %q", slug)
	}
	if got := creator.req.Tags; len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Errorf("request tags = %v", got)
	}
	if len(creator.req.Authors) != 1 || creator.req.Authors[0] != "Ann" {
		t.Errorf("request authors = %v", creator.req.Authors)
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	form := NewFormSession()
	form.UpdateField("title", "Hello")
	form.UpdateField("content", "# Hi")

	creator := &fakeCreator{err: errors.New("boom")}
	if _, err := form.Submit(context.Background(), creator); err == nil {
		t.Fatal("want error")
	}
	d := form.Draft()
	if d.Title != "Hello" || d.Content != "# Hi" {
		t.Errorf("draft changed after failed submit: %+v", d)
	}
}

func TestFormRegistry(t *testing.T) {
	reg := NewFormRegistry(time.Minute)
	id, form := reg.Create()
	if id == "" || form == nil {
		t.Fatal("Create returned empty session")
	}
	got, ok := reg.Get(id)
	if !ok || got != form {
		t.Fatal("Get did not return the created session")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) = true")
	}
	reg.Drop(id)
	if _, ok := reg.Get(id); ok {
		t.Error("session still present after Drop")
	}
}
