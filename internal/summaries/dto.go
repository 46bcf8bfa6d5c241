package summaries

import "summarizer-backend/internal/acquire"

type summarizeRequest struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func (r summarizeRequest) input() acquire.Input {
	return acquire.Input{Kind: acquire.Kind(r.Type), URL: r.URL, Text: r.Content}
}

type summarizeResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"keyPoints"`
	Tags        []string `json:"tags"`
	ReadingTime int      `json:"readingTime"`
}

func newSummarizeResponse(s Summary) summarizeResponse {
	return summarizeResponse{
		ID:          s.ID,
		Title:       s.Title,
		Summary:     s.Summary,
		KeyPoints:   nonNil(s.KeyPoints),
		Tags:        nonNil(s.Tags),
		ReadingTime: s.ReadingTime,
	}
}

type patchRequest struct {
	Title     *string   `json:"title"`
	Summary   *string   `json:"summary"`
	KeyPoints *[]string `json:"key_points"`
	Tags      *[]string `json:"tags"`
}

func (r patchRequest) patch() Patch {
	return Patch{Title: r.Title, Summary: r.Summary, KeyPoints: r.KeyPoints, Tags: r.Tags}
}

type bulkRequest struct {
	IDs    []string `json:"ids"`
	Format string   `json:"format"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
