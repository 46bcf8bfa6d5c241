package summaries

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"summarizer-backend/internal/acquire"
	"summarizer-backend/internal/extract"
	"summarizer-backend/internal/shared/telemetry"
)

const modelReply = "```json\n" + `{"title":"Why Go","summary":"Go is a small language.","keyPoints":["fast builds","simple tooling"],"tags":["go","languages"]}` + "\n```"

type staticLLM struct {
	reply string
	err   error
	calls int
}

func (s *staticLLM) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func quietLogs(t *testing.T) {
	t.Helper()
	restore := telemetry.SetOutput(io.Discard)
	t.Cleanup(restore)
}

func newTestService(t *testing.T, model *staticLLM) (*Service, *MemoryRepo) {
	t.Helper()
	quietLogs(t)
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:      repo,
		Acquirer:  acquire.New(0, 0),
		Extractor: &extract.Extractor{LLM: model},
		SiteURL:   "https://summaries.example",
		Now:       func() time.Time { return fixedNow },
	}
	return svc, repo
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func seed(t *testing.T, repo *MemoryRepo, s Summary) Summary {
	t.Helper()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = fixedNow
	}
	saved, err := repo.Create(context.Background(), s)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return saved
}
