package acquire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAcquireContentValidation(t *testing.T) {
	a := New(0, 0)
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "too short", text: strings.Repeat("x", 99), wantErr: true},
		{name: "padding does not count", text: "   " + strings.Repeat("x", 99) + "\n\n", wantErr: true},
		{name: "exactly minimum", text: strings.Repeat("x", 100)},
		{name: "multibyte counted as characters", text: strings.Repeat("é", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Acquire(context.Background(), Input{Kind: KindContent, Text: tt.text})
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.text {
				t.Fatalf("expected content unchanged")
			}
		})
	}
}

func TestAcquireContentReturnedUntrimmed(t *testing.T) {
	text := "  " + strings.Repeat("word ", 30) + "  "
	got, err := New(0, 0).Acquire(context.Background(), Input{Kind: KindContent, Text: text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != text {
		t.Fatalf("expected untrimmed content, got %q", got)
	}
}

func TestAcquireRejectsMissingURLAndUnknownKind(t *testing.T) {
	a := New(0, 0)
	_, err := a.Acquire(context.Background(), Input{Kind: KindURL, URL: "  "})
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "URL is required") {
		t.Fatalf("expected URL is required, got %v", err)
	}
	_, err = a.Acquire(context.Background(), Input{Kind: "pdf"})
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "Invalid type") {
		t.Fatalf("expected Invalid type, got %v", err)
	}
}

func TestAcquireURLStripsScriptAndStyle(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><style>body { color: red; }</style>
<script>var secret = "do not leak";</script></head>
<body><h1>Hello</h1><p>World   of
<b>Go</b></p><script type="module">alert(1)</script></body></html>`))
	}))
	defer srv.Close()

	got, err := New(0, 0).Acquire(context.Background(), Input{Kind: KindURL, URL: srv.URL})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got != "Hello World of Go" {
		t.Fatalf("unexpected text %q", got)
	}
	if gotUA != "BlogSummarizer/1.0" {
		t.Fatalf("unexpected user agent %q", gotUA)
	}
	for _, leak := range []string{"secret", "color", "alert"} {
		if strings.Contains(got, leak) {
			t.Fatalf("script/style text %q leaked into %q", leak, got)
		}
	}
}

func TestAcquireURLNon2xxIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(0, 0).Acquire(context.Background(), Input{Kind: KindURL, URL: srv.URL})
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestAcquireURLTransportErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(0, 0).Acquire(context.Background(), Input{Kind: KindURL, URL: url})
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestAcquireURLRespectsMaxBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>" + strings.Repeat("a", 50) + " " + strings.Repeat("b", 50) + "</p>"))
	}))
	defer srv.Close()

	got, err := New(0, 20).Acquire(context.Background(), Input{Kind: KindURL, URL: srv.URL})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if strings.Contains(got, "b") {
		t.Fatalf("expected body truncated at limit, got %q", got)
	}
}
