package draftpress

import (
	"log"
	"os"
	"time"
)

// SiteConfig holds all configuration for the admin panel.
type SiteConfig struct {
	Name string // Site name (default "Blog")
	URL  string // Canonical URL (default "http://localhost:3000")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")
	RelayPath    string // Badger dir for the fallback relay channel; "" disables it

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	APIToken      string // Optional bearer token for the creation API
	CookieSecure  bool   // Set true for HTTPS

	// CreateEndpoint points submissions at an external creation API.
	// Empty means posts are created in the local store.
	CreateEndpoint string

	OpenAIAPIKey  string // Enables the OpenAI generation provider
	OpenAIModel   string
	OpenAIBaseURL string

	RelayTTL time.Duration // Stashed relay content TTL (default 10min)
	FormTTL  time.Duration // Idle form session TTL (default 1h)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.RelayTTL == 0 {
		c.RelayTTL = 10 * time.Minute
	}
	if c.FormTTL == 0 {
		c.FormTTL = time.Hour
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithDispatcher replaces the default generation dispatcher, e.g. to inject a
// different provider, URL fetcher, or PDF extractor.
func WithDispatcher(d *Dispatcher) Option {
	return func(a *App) {
		a.Dispatcher = d
	}
}

// WithCreator replaces the creation endpoint collaborator.
func WithCreator(creator PostCreator) Option {
	return func(a *App) {
		a.creator = creator
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("draftpress: required environment variable %s is not set", key)
	}
	return v
}
