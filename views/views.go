// Package views provides default templ components for the admin pages. They
// are deliberately plain; applications override any of them through
// draftpress.ViewFuncs.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/allset/draftpress"
)

// Default returns the built-in view set.
func Default() draftpress.ViewFuncs {
	return draftpress.ViewFuncs{
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		NewPostForm:    NewPostForm,
		EditPostForm:   EditPostForm,
		Writer:         Writer,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

func esc(s string) string { return html.EscapeString(s) }

func page(title, head, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
		b.WriteString(esc(title))
		b.WriteString("</title>")
		b.WriteString(head)
		b.WriteString("</head><body>")
		b.WriteString(body)
		b.WriteString("</body></html>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func csrfField(token string) string {
	return `<input type="hidden" name="_csrf" value="` + esc(token) + `">`
}

func textInput(name, label, value string) string {
	return fmt.Sprintf(`<p><label for=%q>%s</label><br><input type="text" id=%q name=%q value="%s"></p>`,
		name, esc(label), name, name, value)
}

func textArea(name, label, value string, rows int) string {
	return fmt.Sprintf(`<p><label for=%q>%s</label><br><textarea id=%q name=%q rows="%d">%s</textarea></p>`,
		name, esc(label), name, name, rows, esc(value))
}

// AdminLogin renders the password prompt.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Admin</h1>")
	if showError {
		b.WriteString(`<p class="error">Wrong password.</p>`)
	}
	b.WriteString(`<form method="post" action="/admin/login/">`)
	b.WriteString(csrfField(csrfToken))
	b.WriteString(`<input type="password" name="password" autofocus>`)
	b.WriteString(`<button type="submit">Log in</button></form>`)
	return page("Admin Login", "", b.String())
}

// AdminDashboard lists every post with edit links.
func AdminDashboard(posts []draftpress.BlogPost, message, csrfToken string) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Posts</h1>")
	if message != "" {
		b.WriteString(`<p class="message">` + esc(message) + `</p>`)
	}
	b.WriteString(`<p><a href="/admin/posts/new/">New post</a> | <a href="/admin/writer/">Writer</a></p>`)
	b.WriteString("<ul>")
	for _, p := range posts {
		b.WriteString(`<li><a href="/admin/posts/edit/?slug=` + url.QueryEscape(p.Slug) + `">` + esc(p.Title) + `</a> (` + esc(p.Date) + `)`)
		if p.Draft {
			b.WriteString(" [draft]")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	b.WriteString(`<form method="post" action="/admin/logout/">` + csrfField(csrfToken) + `<button type="submit">Log out</button></form>`)
	return page("Admin", "", b.String())
}

func draftFields(d draftpress.PostDraft) string {
	var b strings.Builder
	b.WriteString(textInput("title", "Title", esc(d.Title)))
	b.WriteString(textInput("slug", "Slug", esc(d.Slug)))
	b.WriteString(fmt.Sprintf(`<p><label for="date">Date</label><br><input type="date" id="date" name="date" value="%s"></p>`, esc(d.Date)))
	b.WriteString(textInput("tags", "Tags (comma separated)", esc(d.Tags)))
	b.WriteString(textInput("authors", "Authors (comma separated)", esc(d.Authors)))
	b.WriteString(textArea("summary", "Summary", d.Summary, 3))
	b.WriteString(textArea("content", "Content (Markdown)", d.Content, 14))
	checked := ""
	if d.Draft {
		checked = " checked"
	}
	b.WriteString(`<p><label><input type="checkbox" name="draft"` + checked + `> Save as draft</label></p>`)
	return b.String()
}

// NewPostForm renders the authoring form with the generation panel. After a
// successful creation it shows the confirmation and redirects to the edit
// view shortly after.
func NewPostForm(v draftpress.NewPostView) templ.Component {
	head := ""
	var b strings.Builder
	b.WriteString("<h1>Create New Post</h1>")
	b.WriteString(`<p><a href="/admin/">Back to Posts</a></p>`)

	if v.SuccessSlug != "" {
		editURL := "/admin/posts/edit/?slug=" + url.QueryEscape(v.SuccessSlug)
		head = `<meta http-equiv="refresh" content="1.5;url=` + esc(editURL) + `">`
		b.WriteString(`<p class="success">Post created successfully!</p>`)
		b.WriteString(`<p><a href="` + esc(editURL) + `">Continue to the editor</a></p>`)
		return page("New Post", head, b.String())
	}
	if v.Error != "" {
		b.WriteString(`<p class="error">` + esc(v.Error) + `</p>`)
	}

	b.WriteString(`<form method="post" action="/admin/posts/new/create/">`)
	b.WriteString(csrfField(v.CSRFToken))
	b.WriteString(`<input type="hidden" name="fid" value="` + esc(v.FormID) + `">`)
	b.WriteString(draftFields(v.Draft))
	b.WriteString(`<button type="submit">Create Post</button></form>`)

	b.WriteString("<h2>Generate Content</h2>")
	if v.GenerationError != "" {
		b.WriteString(`<p class="error">` + esc(v.GenerationError) + `</p>`)
	}
	disabled := ""
	if v.Generating {
		disabled = " disabled"
		b.WriteString(`<p>Generating&hellip;</p>`)
	}
	b.WriteString(`<form method="post" action="/admin/posts/new/generate/" enctype="multipart/form-data">`)
	b.WriteString(csrfField(v.CSRFToken))
	b.WriteString(`<input type="hidden" name="fid" value="` + esc(v.FormID) + `">`)
	b.WriteString(`<p><label><input type="radio" name="source" value="text" checked> Text input</label>`)
	b.WriteString(` <label><input type="radio" name="source" value="url"> URL</label>`)
	b.WriteString(` <label><input type="radio" name="source" value="pdf"> PDF upload</label></p>`)
	b.WriteString(`<p><textarea name="text" rows="5" placeholder="Paste your text here..."></textarea></p>`)
	b.WriteString(`<p><input type="url" name="url" placeholder="https://example.com"></p>`)
	b.WriteString(`<p><input type="file" name="pdf" accept="application/pdf"> (PDF, max 10MB)</p>`)
	b.WriteString(`<button type="submit"` + disabled + `>Generate Content</button></form>`)

	return page("New Post", head, b.String())
}

// EditPostForm renders the editor for an existing post.
func EditPostForm(post draftpress.BlogPost, message, csrfToken string) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Edit Post</h1>")
	b.WriteString(`<p><a href="/admin/">Back to Posts</a></p>`)
	if message != "" {
		b.WriteString(`<p class="message">` + esc(message) + `</p>`)
	}
	draft := draftpress.PostDraft{
		Title:   post.Title,
		Slug:    post.Slug,
		Date:    post.Date,
		Tags:    draftpress.JoinCSV(post.Tags),
		Authors: draftpress.JoinCSV(post.Authors),
		Draft:   post.Draft,
		Summary: post.Summary,
		Content: post.Content,
	}
	b.WriteString(`<form method="post" action="/admin/posts/edit/save/">`)
	b.WriteString(csrfField(csrfToken))
	b.WriteString(draftFields(draft))
	b.WriteString(`<button type="submit">Save</button></form>`)
	return page("Edit Post", "", b.String())
}

// Writer renders the standalone generation tool that relays its result into
// the new-post form.
func Writer(errorMsg, csrfToken string) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Writer</h1>")
	b.WriteString(`<p><a href="/admin/">Back to Posts</a></p>`)
	if errorMsg != "" {
		b.WriteString(`<p class="error">` + esc(errorMsg) + `</p>`)
	}
	b.WriteString(`<form method="post" action="/admin/writer/generate/" enctype="multipart/form-data">`)
	b.WriteString(csrfField(csrfToken))
	b.WriteString(`<p><label><input type="radio" name="source" value="text" checked> Text input</label>`)
	b.WriteString(` <label><input type="radio" name="source" value="url"> URL</label>`)
	b.WriteString(` <label><input type="radio" name="source" value="pdf"> PDF upload</label></p>`)
	b.WriteString(`<p><textarea name="text" rows="8" placeholder="Paste your text here..."></textarea></p>`)
	b.WriteString(`<p><input type="url" name="url" placeholder="https://example.com"></p>`)
	b.WriteString(`<p><input type="file" name="pdf" accept="application/pdf"> (PDF, max 10MB)</p>`)
	b.WriteString(`<button type="submit">Generate Draft</button></form>`)
	return page("Writer", "", b.String())
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return page("Not Found", "", "<h1>404</h1><p>Page not found.</p>")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return page("Server Error", "", "<h1>500</h1><p>Something went wrong.</p>")
}
