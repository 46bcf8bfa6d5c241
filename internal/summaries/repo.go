package summaries

import (
	"context"
	"time"
)

// Repo defines persistence operations for summaries. Every method is scoped
// to the owning user.
type Repo interface {
	Create(ctx context.Context, s Summary) (Summary, error)
	GetByID(ctx context.Context, userID, id string) (Summary, error)
	GetMany(ctx context.Context, userID string, ids []string) ([]Summary, error)
	List(ctx context.Context, q ListQuery) ([]Summary, error)
	Update(ctx context.Context, userID, id string, p Patch, now time.Time) (Summary, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
	DeleteMany(ctx context.Context, userID string, ids []string) (int64, error)
}
