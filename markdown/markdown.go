// Package markdown renders post Markdown to HTML for admin previews.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
)

// ToHTML converts a Markdown body to HTML.
func ToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component returns a templ component that renders md as HTML.
func Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := ToHTML(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	})
}
