package summaries

import "time"

// Summary is a stored, user-owned summary of one article.
type Summary struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	OriginalURL     *string   `json:"original_url"`
	OriginalContent string    `json:"original_content"`
	Summary         string    `json:"summary"`
	KeyPoints       []string  `json:"key_points"`
	Tags            []string  `json:"tags"`
	ReadingTime     int       `json:"reading_time"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Patch holds the editable fields of a Summary. Nil fields are left untouched.
type Patch struct {
	Title     *string
	Summary   *string
	KeyPoints *[]string
	Tags      *[]string
}

// SortOrder names a list ordering.
type SortOrder string

const (
	SortNewest      SortOrder = "newest"
	SortOldest      SortOrder = "oldest"
	SortTitle       SortOrder = "title"
	SortReadingTime SortOrder = "reading-time"
)

// ListQuery filters and pages a user's summaries. Search matches title,
// summary or any tag case-insensitively; Tag requires an exact tag.
type ListQuery struct {
	UserID string
	Search string
	Tag    string
	Sort   SortOrder
	Limit  int
	Offset int
}

// Stats aggregates a user's summaries for the dashboard.
type Stats struct {
	TotalSummaries     int      `json:"totalSummaries"`
	TotalReadingTime   int      `json:"totalReadingTime"`
	AverageReadingTime int      `json:"averageReadingTime"`
	UniqueTags         int      `json:"uniqueTags"`
	TopTags            []string `json:"topTags"`
}

// Stage is a step of a summarize call.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageAcquiring  Stage = "acquiring"
	StageExtracting Stage = "extracting"
	StagePersisting Stage = "persisting"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

func normalizeSort(raw string) SortOrder {
	switch SortOrder(raw) {
	case SortOldest, SortTitle, SortReadingTime:
		return SortOrder(raw)
	default:
		return SortNewest
	}
}
