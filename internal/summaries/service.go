package summaries

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"summarizer-backend/internal/acquire"
	"summarizer-backend/internal/extract"
	"summarizer-backend/internal/llm"
	"summarizer-backend/internal/shared/metrics"
	"summarizer-backend/internal/shared/telemetry"
	"summarizer-backend/internal/shared/util"
)

// ContentAcquirer turns a summarize input into plain text.
type ContentAcquirer interface {
	Acquire(ctx context.Context, in acquire.Input) (string, error)
}

// SummaryExtractor produces the structured summary for text.
type SummaryExtractor interface {
	Extract(ctx context.Context, text string) (extract.Result, error)
}

// Service contains business logic for summaries.
type Service struct {
	Repo      Repo
	Acquirer  ContentAcquirer
	Extractor SummaryExtractor
	SiteURL   string
	Now       func() time.Time
}

const topTagsLimit = 5

// Summarize runs acquire, extract and persist for one input. The returned
// Progress is populated even on failure.
func (s *Service) Summarize(ctx context.Context, userID string, in acquire.Input) (Summary, *Progress, error) {
	progress := newProgress()
	start := time.Now()
	metrics.IncSummarizeStarted()

	fail := func(err error) (Summary, *Progress, error) {
		progress.advance(StageFailed)
		metrics.IncSummarizeFailed(failureReason(err))
		metrics.ObserveSummarizeDurationMs(float64(time.Since(start).Milliseconds()))
		return Summary{}, progress, err
	}

	progress.advance(StageAcquiring)
	text, err := s.Acquirer.Acquire(ctx, in)
	if err != nil {
		return fail(err)
	}
	metrics.ObserveContentLength(len([]rune(text)))

	progress.advance(StageExtracting)
	result, err := s.Extractor.Extract(ctx, text)
	if err != nil {
		return fail(err)
	}

	progress.advance(StagePersisting)
	now := s.now()
	record := Summary{
		UserID:          userID,
		Title:           result.Title,
		OriginalContent: text,
		Summary:         result.Summary,
		KeyPoints:       result.KeyPoints,
		Tags:            result.Tags,
		ReadingTime:     extract.ReadingTime(text),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.Kind == acquire.KindURL {
		u := in.URL
		record.OriginalURL = &u
	}
	saved, err := s.Repo.Create(ctx, record)
	if err != nil {
		return fail(fmt.Errorf("save summary: %w", err))
	}

	progress.advance(StageDone)
	metrics.IncSummarizeCompleted()
	metrics.ObserveSummarizeDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("summary.created", map[string]any{
		"summary_id":   saved.ID,
		"user_id":      userID,
		"source_kind":  string(in.Kind),
		"reading_time": saved.ReadingTime,
	})
	return saved, progress, nil
}

// Get returns one owned summary.
func (s *Service) Get(ctx context.Context, userID, id string) (Summary, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns a user's summaries per q. Unknown sort values fall back to newest.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Summary, error) {
	q.Sort = normalizeSort(string(q.Sort))
	return s.Repo.List(ctx, q)
}

// Stats aggregates every summary the user owns.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	items, err := s.Repo.List(ctx, ListQuery{UserID: userID, Sort: SortNewest})
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{TotalSummaries: len(items), TopTags: []string{}}
	unique := uniqueTags(items)
	for _, item := range items {
		stats.TotalReadingTime += item.ReadingTime
	}
	if stats.TotalSummaries > 0 {
		stats.AverageReadingTime = int(math.Round(float64(stats.TotalReadingTime) / float64(stats.TotalSummaries)))
	}
	stats.UniqueTags = len(unique)
	if len(unique) > topTagsLimit {
		unique = unique[:topTagsLimit]
	}
	stats.TopTags = append(stats.TopTags, unique...)
	return stats, nil
}

// Tags returns every distinct tag the user has used, sorted.
func (s *Service) Tags(ctx context.Context, userID string) ([]string, error) {
	items, err := s.Repo.List(ctx, ListQuery{UserID: userID, Sort: SortNewest})
	if err != nil {
		return nil, err
	}
	tags := uniqueTags(items)
	sort.Strings(tags)
	return tags, nil
}

// Update applies p to one owned summary. Present fields are stored as given.
func (s *Service) Update(ctx context.Context, userID, id string, p Patch) (Summary, error) {
	return s.Repo.Update(ctx, userID, id, p, s.now())
}

// Delete removes one owned summary. Missing or foreign ids are not an error.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	n, err := s.Repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	telemetry.Info("summary.deleted", map[string]any{"summary_id": id, "user_id": userID, "deleted": n})
	return nil
}

// BulkDelete removes every owned summary among ids and returns how many went.
func (s *Service) BulkDelete(ctx context.Context, userID string, ids []string) (int64, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids are required", ErrInvalidInput)
	}
	n, err := s.Repo.DeleteMany(ctx, userID, ids)
	if err != nil {
		return 0, err
	}
	telemetry.Info("summary.bulk_deleted", map[string]any{"user_id": userID, "requested": len(ids), "deleted": n})
	return n, nil
}

// Share returns a share URL for id. The token is not stored.
func (s *Service) Share(_ context.Context, userID, id string) (string, error) {
	token, err := shareToken(id, s.now())
	if err != nil {
		return "", err
	}
	telemetry.Info("summary.shared", map[string]any{"summary_id": id, "user_id": userID})
	return shareURL(s.SiteURL, id, token), nil
}

// Export renders one owned summary.
func (s *Service) Export(ctx context.Context, userID, id string, format ExportFormat) (Export, error) {
	item, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Export{}, err
	}
	if format == FormatPDF {
		return exportPDF([]Summary{item}, util.ExportFileName(item.Title, "pdf"))
	}
	return exportMarkdown(item), nil
}

// BulkExport renders the owned summaries among ids as a zip of Markdown files
// or a single PDF.
func (s *Service) BulkExport(ctx context.Context, userID string, ids []string, format ExportFormat) (Export, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return Export{}, fmt.Errorf("%w: ids are required", ErrInvalidInput)
	}
	items, err := s.Repo.GetMany(ctx, userID, ids)
	if err != nil {
		return Export{}, err
	}
	if len(items) == 0 {
		return Export{}, fmt.Errorf("%w: no summaries found for export", ErrInvalidInput)
	}
	if format == FormatPDF {
		return exportPDF(items, bulkExportBase+".pdf")
	}
	data, err := zipMarkdown(items)
	if err != nil {
		return Export{}, err
	}
	return Export{FileName: bulkExportBase + ".zip", ContentType: "application/zip", Data: data}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, acquire.ErrValidation):
		return "validation"
	case errors.Is(err, acquire.ErrFetch):
		return "fetch"
	case errors.Is(err, llm.ErrNotConfigured):
		return "configuration"
	case errors.Is(err, extract.ErrExtraction):
		return "extraction"
	case errors.Is(err, extract.ErrCompletion):
		return "completion"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "storage"
	}
}

// uniqueTags returns tags in first-seen order across items.
func uniqueTags(items []Summary) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, item := range items {
		for _, tag := range item.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
