package summaries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const summaryColumns = `id, user_id, title, original_url, original_content, summary, key_points, tags, reading_time, created_at, updated_at`

var orderBy = map[SortOrder]string{
	SortNewest:      "created_at DESC, id DESC",
	SortOldest:      "created_at ASC, id ASC",
	SortTitle:       "lower(title) ASC, created_at DESC",
	SortReadingTime: "reading_time DESC, created_at DESC",
}

// Create inserts s and returns it with the database-assigned ID.
func (r *PGRepo) Create(ctx context.Context, s Summary) (Summary, error) {
	const query = `
INSERT INTO summaries (user_id, title, original_url, original_content, summary, key_points, tags, reading_time, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	keyPoints, err := marshalJSONB(s.KeyPoints)
	if err != nil {
		return Summary{}, err
	}
	tags, err := marshalJSONB(s.Tags)
	if err != nil {
		return Summary{}, err
	}
	var originalURL any
	if s.OriginalURL != nil {
		originalURL = *s.OriginalURL
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	err = r.DB.QueryRowContext(ctx, query,
		s.UserID,
		s.Title,
		originalURL,
		s.OriginalContent,
		s.Summary,
		keyPoints,
		tags,
		s.ReadingTime,
		s.CreatedAt,
		s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return Summary{}, fmt.Errorf("insert summary: %w", err)
	}
	return s, nil
}

// GetByID returns one owned summary.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Summary, error) {
	if !validID(id) {
		return Summary{}, ErrNotFound
	}
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE id = $1 AND user_id = $2 LIMIT 1`
	s, err := scanSummary(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	return s, nil
}

// GetMany returns the owned summaries among ids, newest first.
func (r *PGRepo) GetMany(ctx context.Context, userID string, ids []string) ([]Summary, error) {
	ids = filterValidIDs(ids)
	if len(ids) == 0 {
		return []Summary{}, nil
	}
	args := []any{userID}
	in := placeholders(&args, ids)
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE user_id = $1 AND id IN (` + in + `) ORDER BY ` + orderBy[SortNewest]
	return r.query(ctx, query, args...)
}

// List returns a user's summaries filtered, sorted and paged per q.
func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Summary, error) {
	args := []any{q.UserID}
	where := []string{"user_id = $1"}

	if search := strings.TrimSpace(q.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR summary ILIKE $%d OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS t(tag) WHERE t.tag ILIKE $%d))",
			n, n, n))
	}
	if q.Tag != "" {
		args = append(args, q.Tag)
		where = append(where, fmt.Sprintf("tags @> jsonb_build_array($%d::text)", len(args)))
	}

	order, ok := orderBy[q.Sort]
	if !ok {
		order = orderBy[SortNewest]
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + summaryColumns + ` FROM summaries WHERE `)
	b.WriteString(strings.Join(where, " AND "))
	b.WriteString(" ORDER BY " + order)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return r.query(ctx, b.String(), args...)
}

// Update applies p to one owned summary and refreshes updated_at.
func (r *PGRepo) Update(ctx context.Context, userID, id string, p Patch, now time.Time) (Summary, error) {
	if !validID(id) {
		return Summary{}, ErrNotFound
	}
	args := []any{}
	var sets []string
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Summary != nil {
		set("summary", *p.Summary)
	}
	if p.KeyPoints != nil {
		payload, err := marshalJSONB(*p.KeyPoints)
		if err != nil {
			return Summary{}, err
		}
		set("key_points", payload)
	}
	if p.Tags != nil {
		payload, err := marshalJSONB(*p.Tags)
		if err != nil {
			return Summary{}, err
		}
		set("tags", payload)
	}
	set("updated_at", now)

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE summaries SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), summaryColumns)
	s, err := scanSummary(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	return s, nil
}

// Delete removes one owned summary and reports how many rows went away.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	if !validID(id) {
		return 0, nil
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM summaries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteMany removes every owned summary among ids in one statement.
func (r *PGRepo) DeleteMany(ctx context.Context, userID string, ids []string) (int64, error) {
	ids = filterValidIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	args := []any{userID}
	in := placeholders(&args, ids)
	res, err := r.DB.ExecContext(ctx, `DELETE FROM summaries WHERE user_id = $1 AND id IN (`+in+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Summary, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (Summary, error) {
	var s Summary
	var originalURL sql.NullString
	var keyPoints, tags []byte
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Title,
		&originalURL,
		&s.OriginalContent,
		&s.Summary,
		&keyPoints,
		&tags,
		&s.ReadingTime,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return Summary{}, err
	}
	if originalURL.Valid {
		s.OriginalURL = &originalURL.String
	}
	s.KeyPoints = unmarshalStrings(keyPoints)
	s.Tags = unmarshalStrings(tags)
	return s, nil
}

func marshalJSONB(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}

func unmarshalStrings(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

func placeholders(args *[]any, ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		*args = append(*args, id)
		parts[i] = fmt.Sprintf("$%d", len(*args))
	}
	return strings.Join(parts, ", ")
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func filterValidIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
