package draftpress

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database and provides CRUD operations for blog posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of returning SQLITE_BUSY; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    authors TEXT NOT NULL DEFAULT ',,',
    draft INTEGER NOT NULL DEFAULT 0,
    summary TEXT NOT NULL,
    content TEXT NOT NULL
);
`)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`ALTER TABLE posts ADD COLUMN authors TEXT NOT NULL DEFAULT ',,';`); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return err
		}
	}
	return nil
}

// ListPosts returns every post ordered by date descending.
func (s *Store) ListPosts() ([]BlogPost, error) {
	rows, err := s.db.Query(`SELECT slug, title, date, tags, authors, draft, summary, content FROM posts ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single post by slug, draft or not.
func (s *Store) GetPost(slug string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT slug, title, date, tags, authors, draft, summary, content FROM posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// SavePost upserts a blog post. Tags are normalized to lowercase.
func (s *Store) SavePost(p BlogPost) error {
	normalizedTags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	draft := 0
	if p.Draft {
		draft = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (slug, title, date, tags, authors, draft, summary, content) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, joinList(normalizedTags), joinList(p.Authors), draft, p.Summary, p.Content)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (BlogPost, error) {
	var slug, title, date, tags, authors, summary, content string
	var draft int
	if err := row.Scan(&slug, &title, &date, &tags, &authors, &draft, &summary, &content); err != nil {
		return BlogPost{}, err
	}
	return BlogPost{
		Slug:    slug,
		Title:   title,
		Date:    date,
		Tags:    parseList(tags),
		Authors: parseList(authors),
		Draft:   draft == 1,
		Summary: summary,
		Content: content,
	}, nil
}

// joinList stores a slice as a comma-delimited string with sentinel commas
// (e.g. ",go,web,") so substring matching on tags stays exact.
func joinList(vals []string) string {
	return "," + strings.Join(vals, ",") + ","
}

// parseList splits a comma-delimited stored string (e.g. ",go,web,") into a slice.
func parseList(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
