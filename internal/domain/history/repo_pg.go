package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn() queryable { return r.pool }

const itemCols = `id, original_text, simplified_text, prescription, image_url,
	processing_status, tags, created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.OriginalText, &it.SimplifiedText, &it.Prescription,
		&it.ImageURL, &it.ProcessingStatus, &it.Tags, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if it.Tags == nil {
		it.Tags = []string{}
	}
	return &it, nil
}

func (r *repoPG) Create(ctx context.Context, item *Item) error {
	item.ID = uuid.New()
	// NOW() is evaluated once per statement, so created_at and updated_at
	// come back equal on insert.
	row := r.conn().QueryRow(ctx, `
		INSERT INTO history_item (id, original_text, simplified_text, prescription,
			image_url, processing_status, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`,
		item.ID, item.OriginalText, item.SimplifiedText, item.Prescription,
		item.ImageURL, item.ProcessingStatus, item.Tags)
	if err := row.Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("insert history item: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	it, err := scanItem(r.conn().QueryRow(ctx, `SELECT `+itemCols+` FROM history_item WHERE id = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get history item: %w", err)
	}
	return it, nil
}

func (r *repoPG) Update(ctx context.Context, id string, patch Patch) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	// updated_at refreshes on every successful mutation, including an empty
	// patch. id and created_at have no corresponding SET clause.
	set := []string{"updated_at = NOW()"}
	args := []interface{}{uid}
	n := 2
	add := func(col string, val interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, val)
		n++
	}
	if patch.OriginalText != nil {
		add("original_text", *patch.OriginalText)
	}
	if patch.SimplifiedText != nil {
		add("simplified_text", *patch.SimplifiedText)
	}
	if patch.Prescription != nil {
		add("prescription", patch.Prescription)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.ProcessingStatus != nil {
		add("processing_status", *patch.ProcessingStatus)
	}
	if patch.Tags != nil {
		add("tags", *patch.Tags)
	}

	it, err := scanItem(r.conn().QueryRow(ctx,
		`UPDATE history_item SET `+strings.Join(set, ", ")+` WHERE id = $1 RETURNING `+itemCols,
		args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update history item: %w", err)
	}
	return it, nil
}

func (r *repoPG) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	tag, err := r.conn().Exec(ctx, `DELETE FROM history_item WHERE id = $1`, uid)
	if err != nil {
		return false, fmt.Errorf("delete history item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Search unions a full-text match with substring matches over the text
// fields, prescription diagnosis, line-item medicine names, and tags. The
// UNION de-duplicates by id before the limit applies.
func (r *repoPG) Search(ctx context.Context, query string, limit int) ([]*Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*Item{}, nil
	}
	like := "%" + query + "%"

	rows, err := r.conn().Query(ctx, `
		SELECT `+itemCols+` FROM history_item
		WHERE id IN (
			SELECT id FROM history_item
			WHERE to_tsvector('english', original_text || ' ' || simplified_text)
				@@ plainto_tsquery('english', $1)
			UNION
			SELECT id FROM history_item
			WHERE original_text ILIKE $2
				OR simplified_text ILIKE $2
				OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $2)
				OR EXISTS (
					SELECT 1 FROM jsonb_array_elements_text(coalesce(prescription->'diagnosis', '[]'::jsonb)) AS d
					WHERE d ILIKE $2)
				OR EXISTS (
					SELECT 1 FROM jsonb_array_elements(coalesce(prescription->'medicines', '[]'::jsonb)) AS m
					WHERE m->>'name' ILIKE $2)
		)
		ORDER BY created_at DESC
		LIMIT $3`, query, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Item, int, error) {
	var total int
	if err := r.conn().QueryRow(ctx, `SELECT COUNT(*) FROM history_item`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history items: %w", err)
	}

	rows, err := r.conn().Query(ctx, `
		SELECT `+itemCols+` FROM history_item
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list history items: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.conn().QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '30 days'),
			COUNT(*) FILTER (WHERE processing_status = 'pending'),
			COUNT(*) FILTER (WHERE processing_status = 'completed'),
			COUNT(*) FILTER (WHERE processing_status = 'failed')
		FROM history_item`).
		Scan(&s.Total, &s.ThisWeek, &s.ThisMonth, &s.Pending, &s.Completed, &s.Failed)
	if err != nil {
		return nil, fmt.Errorf("aggregate history stats: %w", err)
	}
	return &s, nil
}

func (r *repoPG) Backup(ctx context.Context) ([]*Item, error) {
	rows, err := r.conn().Query(ctx, `SELECT `+itemCols+` FROM history_item ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("backup history: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
