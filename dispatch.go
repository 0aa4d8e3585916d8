package draftpress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/allset/draftpress/llm"
)

// SourceKind identifies what kind of material a generation starts from.
type SourceKind string

const (
	SourceText SourceKind = "text"
	SourceURL  SourceKind = "url"
	SourcePDF  SourceKind = "pdf"
)

// MaxPDFSize caps uploaded PDFs at 10 MB.
const MaxPDFSize = 10 << 20

// PDFFile is an uploaded PDF waiting for text extraction.
type PDFFile struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// GenerationSource is the tagged input of one generation request. Exactly one
// of Text, URL, or PDF is meaningful, selected by Kind.
type GenerationSource struct {
	Kind SourceKind
	Text string
	URL  string
	PDF  *PDFFile
}

// ValidationError is a local input problem. It is shown inline and the
// request never reaches the remote collaborator.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// ErrGenerationBusy is returned while another generation call for the same
// form is still outstanding.
var ErrGenerationBusy = errors.New("a generation request is already running for this form")

// GenerationError collapses remote errors, transport failures, and malformed
// responses into a single user-facing condition. There is no retry.
type GenerationError struct {
	err error
}

func (e *GenerationError) Error() string { return "generation failed: " + e.err.Error() }
func (e *GenerationError) Unwrap() error { return e.err }

// URLFetcher retrieves readable text for a web page.
type URLFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// PDFExtractor extracts plain text from an uploaded PDF.
type PDFExtractor interface {
	Extract(ctx context.Context, f *PDFFile) (string, error)
}

// Dispatcher turns a GenerationSource into draft field updates through the
// generation collaborator.
type Dispatcher struct {
	Provider  llm.Provider
	Fetcher   URLFetcher   // nil means a plain HTTP GET
	Extractor PDFExtractor // nil disables the PDF source
}

// Generate validates the source, makes exactly one provider call, and merges
// the result into form. A second request while one is outstanding fails with
// ErrGenerationBusy. On any failure no draft field is touched.
func (d *Dispatcher) Generate(ctx context.Context, form *FormSession, src GenerationSource) error {
	if err := validateSource(src); err != nil {
		return err
	}
	if !form.beginGeneration() {
		return ErrGenerationBusy
	}
	defer form.endGeneration()

	draft, err := d.produce(ctx, src)
	if err != nil {
		return err
	}
	form.ApplyGenerated(draft)
	return nil
}

// Produce runs a generation without touching any form state. The writer
// hand-off page uses it to build a relay payload.
func (d *Dispatcher) Produce(ctx context.Context, src GenerationSource) (llm.Draft, error) {
	if err := validateSource(src); err != nil {
		return llm.Draft{}, err
	}
	return d.produce(ctx, src)
}

func (d *Dispatcher) produce(ctx context.Context, src GenerationSource) (llm.Draft, error) {
	payload, err := d.resolve(ctx, src)
	if err != nil {
		return llm.Draft{}, &GenerationError{err}
	}
	raw, err := d.Provider.GenerateContent(ctx, llm.DraftPrompt(string(src.Kind), payload))
	if err != nil {
		return llm.Draft{}, &GenerationError{err}
	}
	draft, err := llm.ParseDraft(raw)
	if err != nil {
		return llm.Draft{}, &GenerationError{err}
	}
	return draft, nil
}

func (d *Dispatcher) resolve(ctx context.Context, src GenerationSource) (string, error) {
	switch src.Kind {
	case SourceText:
		return strings.TrimSpace(src.Text), nil
	case SourceURL:
		fetcher := d.Fetcher
		if fetcher == nil {
			fetcher = defaultFetcher
		}
		return fetcher.Fetch(ctx, strings.TrimSpace(src.URL))
	case SourcePDF:
		if d.Extractor == nil {
			return "", errors.New("pdf extraction is not configured")
		}
		return d.Extractor.Extract(ctx, src.PDF)
	}
	return "", fmt.Errorf("unknown source kind %q", src.Kind)
}

func validateSource(src GenerationSource) error {
	switch src.Kind {
	case SourceText:
		if strings.TrimSpace(src.Text) == "" {
			return &ValidationError{"Please enter some text"}
		}
	case SourceURL:
		u, err := url.Parse(strings.TrimSpace(src.URL))
		if err != nil || !u.IsAbs() || u.Host == "" {
			return &ValidationError{"Please enter a valid URL"}
		}
	case SourcePDF:
		if src.PDF == nil || src.PDF.MimeType != "application/pdf" {
			return &ValidationError{"Please upload a PDF file"}
		}
		if src.PDF.Size > MaxPDFSize {
			return &ValidationError{"PDF must be under 10MB"}
		}
	default:
		return &ValidationError{"Unknown generation source"}
	}
	return nil
}

var defaultFetcher URLFetcher = &HTTPFetcher{}

const maxFetchBody = 2 << 20

// HTTPFetcher fetches a page body with a plain GET. Deployments that need
// readability-style extraction inject their own URLFetcher instead.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
