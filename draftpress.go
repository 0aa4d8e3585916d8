// Package draftpress is the admin panel of a blog content-management app,
// built with Go, Echo, and templ. It provides the "new post" authoring form
// with LLM-backed draft generation from text, a URL, or an uploaded PDF, a
// cross-navigation relay for generated content, and a post creation API.
//
// Users provide their own templ components via the ViewFuncs struct, and
// draftpress handles the handler logic, middleware, and database operations.
package draftpress

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/allset/draftpress/llm"
	"github.com/allset/draftpress/relay"
)

// NewPostView bundles everything the new-post form renders.
type NewPostView struct {
	FormID          string
	Draft           PostDraft
	Generating      bool
	GenerationError string
	Error           string
	SuccessSlug     string // set after creation; the view redirects to the edit page
	CSRFToken       string
}

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []BlogPost, message string, csrfToken string) templ.Component
	NewPostForm    func(v NewPostView) templ.Component
	EditPostForm   func(post BlogPost, message string, csrfToken string) templ.Component
	Writer         func(errorMsg string, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central draftpress application. It wires together the store,
// relay, dispatcher, handlers, middleware, and user-provided templates.
type App struct {
	Config     SiteConfig
	Echo       *echo.Echo
	Store      *Store
	Views      ViewFuncs
	Forms      *FormRegistry
	Relay      relay.Tiered
	Dispatcher *Dispatcher

	creator       PostCreator
	loginLimiter  *LoginLimiter
	relayFallback *relay.BadgerStash
	customRoutes  []func(*App)
}

// New creates a new draftpress App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, relay channels, dispatcher, middleware,
// routes, and starts the server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("draftpress: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("draftpress: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("draftpress: init store: %w", err)
	}
	a.Store = store

	// Session-scoped relay channel, with the durable Badger channel as
	// fallback when a path is configured.
	a.Relay = relay.Tiered{Session: relay.NewMemoryStash(a.Config.RelayTTL)}
	if a.Config.RelayPath != "" {
		fallback, err := relay.OpenBadgerStash(a.Config.RelayPath, a.Config.RelayTTL)
		if err != nil {
			return fmt.Errorf("draftpress: init relay fallback: %w", err)
		}
		a.relayFallback = fallback
		a.Relay.Fallback = fallback
	}

	a.Forms = NewFormRegistry(a.Config.FormTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Dispatcher == nil {
		provider, err := a.defaultProvider()
		if err != nil {
			return err
		}
		a.Dispatcher = &Dispatcher{Provider: provider}
	}

	if a.creator == nil {
		if a.Config.CreateEndpoint != "" {
			a.creator = &HTTPCreator{Endpoint: a.Config.CreateEndpoint, Token: a.Config.APIToken}
		} else {
			a.creator = &StoreCreator{Store: a.Store}
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) defaultProvider() (llm.Provider, error) {
	if a.Config.OpenAIAPIKey == "" {
		a.Echo.Logger.Warn("no OpenAI API key configured, using the mock generation provider")
		return llm.Mock{}, nil
	}
	provider, err := llm.NewOpenAI(a.Config.OpenAIAPIKey, a.Config.OpenAIModel, a.Config.OpenAIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("draftpress: init provider: %w", err)
	}
	return provider, nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	e.GET("/admin/posts/new/", a.handleNewPost)
	e.POST("/admin/posts/new/generate/", a.handleGenerate)
	e.POST("/admin/posts/new/create/", a.handleSubmit)
	e.GET("/admin/posts/edit/", a.handleEditPost)
	e.POST("/admin/posts/edit/save/", a.handleEditSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)

	e.GET("/admin/writer/", a.handleWriter)
	e.POST("/admin/writer/generate/", a.handleWriterGenerate)
	e.POST("/admin/posts/preview/", a.handlePreview)

	e.POST("/api/posts/create", a.handleCreatePost)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.relayFallback != nil {
		a.relayFallback.Close()
	}
	return nil
}
