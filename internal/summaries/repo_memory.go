package summaries

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MemoryRepo stores summaries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Summary
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Summary)}
}

// Create stores s under a fresh ID.
func (r *MemoryRepo) Create(ctx context.Context, s Summary) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	s.ID = uuid.NewString()
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	s = clone(s)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	r.order = append(r.order, s.ID)
	return clone(s), nil
}

// GetByID returns one owned summary.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return Summary{}, ErrNotFound
	}
	return clone(s), nil
}

// GetMany returns the owned summaries among ids, newest first.
func (r *MemoryRepo) GetMany(ctx context.Context, userID string, ids []string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := r.collect(func(s Summary) bool {
		_, ok := want[s.ID]
		return ok && s.UserID == userID
	})
	sortSummaries(out, SortNewest)
	return out, nil
}

// List returns a user's summaries filtered, sorted and paged per q.
func (r *MemoryRepo) List(ctx context.Context, q ListQuery) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := r.collect(func(s Summary) bool {
		if s.UserID != q.UserID {
			return false
		}
		if q.Tag != "" && !containsString(s.Tags, q.Tag) {
			return false
		}
		return search == "" || matchesSearch(s, search)
	})
	sortSummaries(out, q.Sort)

	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Summary{}, nil
	}
	end := len(out)
	if q.Limit > 0 && offset+q.Limit < end {
		end = offset + q.Limit
	}
	return out[offset:end], nil
}

// Update applies p to one owned summary and refreshes UpdatedAt.
func (r *MemoryRepo) Update(ctx context.Context, userID, id string, p Patch, now time.Time) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return Summary{}, ErrNotFound
	}
	s = applyPatch(s, p)
	s.UpdatedAt = now
	r.byID[id] = clone(s)
	return clone(s), nil
}

// Delete removes one owned summary and reports how many rows went away.
func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	return r.DeleteMany(ctx, userID, []string{id})
}

// DeleteMany removes every owned summary among ids. Unowned or unknown ids
// are skipped.
func (r *MemoryRepo) DeleteMany(ctx context.Context, userID string, ids []string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		s, ok := r.byID[id]
		if !ok || s.UserID != userID {
			continue
		}
		delete(r.byID, id)
		n++
	}
	if n > 0 {
		kept := r.order[:0]
		for _, id := range r.order {
			if _, ok := r.byID[id]; ok {
				kept = append(kept, id)
			}
		}
		r.order = kept
	}
	return n, nil
}

// collect returns matches in reverse insertion order so ties sort newest first.
func (r *MemoryRepo) collect(keep func(Summary) bool) []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		s := r.byID[r.order[i]]
		if keep(s) {
			out = append(out, clone(s))
		}
	}
	return out
}

func sortSummaries(items []Summary, order SortOrder) {
	switch order {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case SortTitle:
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			if c := col.CompareString(items[i].Title, items[j].Title); c != 0 {
				return c < 0
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case SortReadingTime:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ReadingTime > items[j].ReadingTime
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

func matchesSearch(s Summary, needle string) bool {
	if strings.Contains(strings.ToLower(s.Title), needle) || strings.Contains(strings.ToLower(s.Summary), needle) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func applyPatch(s Summary, p Patch) Summary {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Summary != nil {
		s.Summary = *p.Summary
	}
	if p.KeyPoints != nil {
		s.KeyPoints = append([]string{}, (*p.KeyPoints)...)
	}
	if p.Tags != nil {
		s.Tags = append([]string{}, (*p.Tags)...)
	}
	return s
}

func clone(s Summary) Summary {
	if s.OriginalURL != nil {
		u := *s.OriginalURL
		s.OriginalURL = &u
	}
	s.KeyPoints = append([]string{}, s.KeyPoints...)
	s.Tags = append([]string{}, s.Tags...)
	return s
}
