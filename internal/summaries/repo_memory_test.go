package summaries

import (
	"context"
	"strings"
	"testing"
	"time"
)

func titles(items []Summary) string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Title
	}
	return strings.Join(out, ",")
}

func TestMemoryRepoListSortsAndFilters(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, repo, Summary{UserID: "u", Title: "banana", ReadingTime: 3, Tags: []string{"fruit"}, CreatedAt: base})
	seed(t, repo, Summary{UserID: "u", Title: "Apple", ReadingTime: 1, Summary: "crisp", Tags: []string{"fruit", "red"}, CreatedAt: base.Add(time.Hour)})
	seed(t, repo, Summary{UserID: "u", Title: "cherry", ReadingTime: 7, Tags: []string{"Stone"}, CreatedAt: base.Add(2 * time.Hour)})
	seed(t, repo, Summary{UserID: "other", Title: "durian", CreatedAt: base.Add(3 * time.Hour)})

	tests := []struct {
		name string
		q    ListQuery
		want string
	}{
		{name: "newest", q: ListQuery{UserID: "u"}, want: "cherry,Apple,banana"},
		{name: "oldest", q: ListQuery{UserID: "u", Sort: SortOldest}, want: "banana,Apple,cherry"},
		{name: "title", q: ListQuery{UserID: "u", Sort: SortTitle}, want: "Apple,banana,cherry"},
		{name: "reading time", q: ListQuery{UserID: "u", Sort: SortReadingTime}, want: "cherry,banana,Apple"},
		{name: "tag", q: ListQuery{UserID: "u", Tag: "fruit"}, want: "Apple,banana"},
		{name: "search summary", q: ListQuery{UserID: "u", Search: "CRISP"}, want: "Apple"},
		{name: "search tag", q: ListQuery{UserID: "u", Search: "stone"}, want: "cherry"},
		{name: "paged", q: ListQuery{UserID: "u", Limit: 1, Offset: 1}, want: "Apple"},
		{name: "past end", q: ListQuery{UserID: "u", Offset: 10}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repo.List(ctx, tt.q)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if got := titles(items); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMemoryRepoTitleSortIgnoresCase(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, repo, Summary{UserID: "u", Title: "go", CreatedAt: base})
	seed(t, repo, Summary{UserID: "u", Title: "Zig", CreatedAt: base.Add(time.Hour)})
	seed(t, repo, Summary{UserID: "u", Title: "GO", CreatedAt: base.Add(2 * time.Hour)})
	seed(t, repo, Summary{UserID: "u", Title: "ada", CreatedAt: base.Add(3 * time.Hour)})

	items, err := repo.List(context.Background(), ListQuery{UserID: "u", Sort: SortTitle})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// Equal titles fall back to newest first, matching the Postgres ordering.
	if got := titles(items); got != "ada,GO,go,Zig" {
		t.Fatalf("expected ada,GO,go,Zig, got %q", got)
	}
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryRepo()
	s := seed(t, repo, Summary{UserID: "u", Title: "T", Tags: []string{"a"}})
	s.Tags[0] = "mutated"

	got, err := repo.GetByID(context.Background(), "u", s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Tags[0] != "a" {
		t.Fatalf("expected stored tags unaffected, got %v", got.Tags)
	}
	if _, err := repo.GetByID(context.Background(), "someone-else", s.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound across owners, got %v", err)
	}
}

func TestMemoryRepoUpdateAndDelete(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	s := seed(t, repo, Summary{UserID: "u", Title: "T", Summary: "S", KeyPoints: []string{"k"}})

	empty := ""
	later := fixedNow.Add(time.Hour)
	updated, err := repo.Update(ctx, "u", s.ID, Patch{Summary: &empty}, later)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Summary != "" || updated.Title != "T" || len(updated.KeyPoints) != 1 {
		t.Fatalf("unexpected update %+v", updated)
	}
	if !updated.UpdatedAt.Equal(later) || !updated.CreatedAt.Equal(s.CreatedAt) {
		t.Fatalf("unexpected timestamps %+v", updated)
	}

	n, err := repo.Delete(ctx, "u", s.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	n, err = repo.Delete(ctx, "u", s.ID)
	if err != nil || n != 0 {
		t.Fatalf("second Delete: n=%d err=%v", n, err)
	}
	items, _ := repo.List(ctx, ListQuery{UserID: "u"})
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d", len(items))
	}
}
