package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Kind selects how Input is interpreted.
type Kind string

const (
	KindURL     Kind = "url"
	KindContent Kind = "content"
)

const (
	// MinContentChars is the smallest accepted pasted text, counted after trimming.
	MinContentChars = 100

	defaultUserAgent = "BlogSummarizer/1.0"
	defaultMaxBytes  = 5 << 20
)

// Input is a single summarize source.
type Input struct {
	Kind Kind
	URL  string
	Text string
}

// Acquirer turns an Input into plain text.
type Acquirer struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxBytes   int64
	Timeout    time.Duration
}

// New returns an Acquirer using the default user agent. A zero timeout leaves
// the fetch bounded only by the request context.
func New(timeout time.Duration, maxBytes int64) *Acquirer {
	return &Acquirer{
		HTTPClient: &http.Client{},
		UserAgent:  defaultUserAgent,
		MaxBytes:   maxBytes,
		Timeout:    timeout,
	}
}

// Acquire returns the text to summarize. Pasted content is returned unchanged;
// fetched pages are reduced to whitespace-collapsed visible text.
func (a *Acquirer) Acquire(ctx context.Context, in Input) (string, error) {
	switch in.Kind {
	case KindURL:
		if strings.TrimSpace(in.URL) == "" {
			return "", fmt.Errorf("%w: URL is required", ErrValidation)
		}
		return a.fetch(ctx, in.URL)
	case KindContent:
		if utf8.RuneCountInString(strings.TrimSpace(in.Text)) < MinContentChars {
			return "", fmt.Errorf("%w: Content must be at least %d characters", ErrValidation, MinContentChars)
		}
		return in.Text, nil
	default:
		return "", fmt.Errorf("%w: Invalid type", ErrValidation)
	}
}

func (a *Acquirer) fetch(ctx context.Context, rawURL string) (string, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	ua := a.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := a.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: Failed to fetch URL: %d", ErrFetch, resp.StatusCode)
	}

	limit := a.MaxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	text, err := HTMLToText(io.LimitReader(resp.Body, limit))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return text, nil
}

// HTMLToText drops script and style elements, joins the remaining text with
// single spaces and trims the result.
func HTMLToText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style").Remove()

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
