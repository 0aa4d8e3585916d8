package draftpress

import (
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	post := BlogPost{
		Slug:    "first-post",
		Title:   "First Post",
		Date:    "2026-01-15",
		Tags:    []string{"Go", "Web"},
		Authors: []string{"Ann"},
		Draft:   true,
		Summary: "sum",
		Content: "# Body",
	}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost: %v", err)
	}

	got, err := s.GetPost("first-post")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, []string{"go", "web"}) {
		t.Errorf("tags = %v, want lowercased", got.Tags)
	}
	if got.Title != post.Title || got.Date != post.Date || !got.Draft {
		t.Errorf("got = %+v", got)
	}
	if !reflect.DeepEqual(got.Authors, []string{"Ann"}) {
		t.Errorf("authors = %v", got.Authors)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetPost("nope"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreUpsert(t *testing.T) {
	s := newTestStore(t)
	post := BlogPost{Slug: "p", Title: "v1", Date: "2026-01-01", Summary: "", Content: ""}
	if err := s.SavePost(post); err != nil {
		t.Fatal(err)
	}
	post.Title = "v2"
	if err := s.SavePost(post); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetPost("p")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "v2" {
		t.Errorf("title = %q after upsert", got.Title)
	}
}

func TestStoreListOrder(t *testing.T) {
	s := newTestStore(t)
	for _, p := range []BlogPost{
		{Slug: "old", Title: "Old", Date: "2025-01-01"},
		{Slug: "new", Title: "New", Date: "2026-06-01"},
		{Slug: "mid", Title: "Mid", Date: "2026-01-01"},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatal(err)
		}
	}
	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	if !reflect.DeepEqual(slugs, []string{"new", "mid", "old"}) {
		t.Errorf("order = %v", slugs)
	}
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)
	if err := s.SavePost(BlogPost{Slug: "p", Title: "T", Date: "2026-01-01"}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePost("p"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, err := s.GetPost("p"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListRoundTrip(t *testing.T) {
	tests := []struct {
		vals []string
	}{
		{nil},
		{[]string{"go"}},
		{[]string{"go", "web"}},
	}
	for _, tt := range tests {
		if got := parseList(joinList(tt.vals)); !reflect.DeepEqual(got, tt.vals) {
			t.Errorf("parseList(joinList(%v)) = %v", tt.vals, got)
		}
	}
}
