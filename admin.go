package draftpress

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/allset/draftpress/markdown"
	"github.com/allset/draftpress/relay"
)

// How long a page render waits for the async relay content merge before
// painting without it. The merge still lands in the live session afterwards.
const initRenderWait = time.Second

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, msg, CsrfToken(c)))
}

// handleNewPost serves the new-post form. A navigation carrying relay
// parameters initializes a fresh form session from them; a bare navigation
// starts with defaults. The fid query parameter rebinds a previously issued
// session across the generate/submit round-trips.
func (a *App) handleNewPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	q := c.QueryParams()
	fid := q.Get("fid")
	form, ok := a.Forms.Get(fid)
	if !ok {
		fid, form = a.Forms.Create()
	}

	done := form.Initialize(q, a.Relay)
	select {
	case <-done:
	case <-time.After(initRenderWait):
		// Paint without the relayed body; the merge lands in the live
		// session and shows on the next refresh.
	}

	return Render(c, a.Views.NewPostForm(NewPostView{
		FormID:          fid,
		Draft:           form.Draft(),
		Generating:      form.Generating(),
		GenerationError: c.QueryParam("generr"),
		CSRFToken:       CsrfToken(c),
	}))
}

// handleGenerate runs one generation request against the form's live session
// and redirects back to the form. User edits posted with the request are
// applied first so generation merges into the current draft.
func (a *App) handleGenerate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	fid := c.FormValue("fid")
	form, ok := a.Forms.Get(fid)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/posts/new/")
	}
	applyFormFields(form, c)

	target := "/admin/posts/new/?fid=" + url.QueryEscape(fid)
	src, err := readSource(c)
	if err == nil {
		err = a.Dispatcher.Generate(c.Request().Context(), form, src)
	}
	if err != nil {
		c.Logger().Warnf("generate: %v", err)
		target += "&generr=" + url.QueryEscape(generationMessage(err))
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// handleSubmit sends the draft to the creation collaborator. Success renders
// the form in its terminal state, which redirects to the edit view; failure
// re-renders with the message and the draft intact.
func (a *App) handleSubmit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	fid := c.FormValue("fid")
	form, ok := a.Forms.Get(fid)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/posts/new/")
	}
	applyFormFields(form, c)

	slug, err := form.Submit(c.Request().Context(), a.creator)
	if err != nil {
		c.Logger().Warnf("create post: %v", err)
		return Render(c, a.Views.NewPostForm(NewPostView{
			FormID:    fid,
			Draft:     form.Draft(),
			Error:     submitMessage(err),
			CSRFToken: CsrfToken(c),
		}))
	}

	a.Forms.Drop(fid)
	return Render(c, a.Views.NewPostForm(NewPostView{
		Draft:       form.Draft(),
		SuccessSlug: slug,
		CSRFToken:   CsrfToken(c),
	}))
}

func (a *App) handleEditPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.QueryParam("slug")
	post, err := a.Store.GetPost(slug)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.EditPostForm(post, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleEditSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	if err := a.Store.SavePost(BlogPost{
		Slug:    slug,
		Title:   title,
		Date:    date,
		Tags:    SplitCSV(c.FormValue("tags")),
		Authors: SplitCSV(c.FormValue("authors")),
		Draft:   c.FormValue("draft") != "",
		Summary: c.FormValue("summary"),
		Content: c.FormValue("content"),
	}); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/posts/edit/?slug="+url.QueryEscape(slug)+"&msg=saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleWriter(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.Writer("", CsrfToken(c)))
}

// handleWriterGenerate produces a draft from the writer tool and hands it to
// the new-post form through the relay: small fields in the redirect query,
// a large content body through the stash.
func (a *App) handleWriterGenerate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	src, err := readSource(c)
	if err != nil {
		return Render(c, a.Views.Writer(generationMessage(err), CsrfToken(c)))
	}
	d, err := a.Dispatcher.Produce(c.Request().Context(), src)
	if err != nil {
		c.Logger().Warnf("writer generate: %v", err)
		return Render(c, a.Views.Writer(generationMessage(err), CsrfToken(c)))
	}

	q, err := relay.Encode(relay.Payload{
		Title:   d.Title,
		Summary: d.Summary,
		Tags:    d.Tags,
		Content: d.Content,
	}, a.Relay)
	if err != nil {
		// Title, summary, and tags still relay through the query string.
		c.Logger().Errorf("relay stash write: %v", err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/posts/new/?"+q.Encode())
}

func (a *App) handlePreview(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	return Render(c, markdown.Component(c.FormValue("content")))
}

// applyFormFields copies every posted form field into the session so user
// edits survive the generate and submit round-trips. An empty slug is derived
// from the title.
func applyFormFields(form *FormSession, c echo.Context) {
	title := c.FormValue("title")
	form.UpdateField("title", title)
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	form.UpdateField("slug", slug)
	for _, name := range []string{"date", "tags", "authors", "summary", "content"} {
		form.UpdateField(name, c.FormValue(name))
	}
	form.UpdateField("draft", c.FormValue("draft") != "")
}

// readSource builds a GenerationSource from the posted form, including the
// multipart PDF upload.
func readSource(c echo.Context) (GenerationSource, error) {
	kind := SourceKind(c.FormValue("source"))
	switch kind {
	case SourceText:
		return GenerationSource{Kind: SourceText, Text: c.FormValue("text")}, nil
	case SourceURL:
		return GenerationSource{Kind: SourceURL, URL: c.FormValue("url")}, nil
	case SourcePDF:
		fh, err := c.FormFile("pdf")
		if err != nil {
			return GenerationSource{}, &ValidationError{"Please upload a PDF file"}
		}
		pdf := &PDFFile{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
		}
		if fh.Size <= MaxPDFSize {
			f, err := fh.Open()
			if err != nil {
				return GenerationSource{}, err
			}
			defer f.Close()
			data, err := io.ReadAll(io.LimitReader(f, MaxPDFSize))
			if err != nil {
				return GenerationSource{}, err
			}
			pdf.Data = data
		}
		return GenerationSource{Kind: SourcePDF, PDF: pdf}, nil
	}
	return GenerationSource{}, &ValidationError{"Unknown generation source"}
}

// generationMessage maps a generation failure to its inline display text.
func generationMessage(err error) string {
	var verr *ValidationError
	var gerr *GenerationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, ErrGenerationBusy):
		return "Generation is already in progress"
	case errors.As(err, &gerr):
		return gerr.Error()
	}
	return "Failed to generate content"
}

// submitMessage maps a creation failure to its inline display text.
func submitMessage(err error) string {
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Message
	}
	return "An error occurred while creating the post"
}
