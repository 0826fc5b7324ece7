package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"url-to-post/postcreate/domain"
)

// PGPostStore persiste posts em Postgres.
//
// A criação é transacional: post + vínculos de categoria + registro no
// log de atividade entram juntos ou nada entra.
type PGPostStore struct {
	Pool *pgxpool.Pool
}

func NewPGPostStore(pool *pgxpool.Pool) *PGPostStore { return &PGPostStore{Pool: pool} }

// Create implementa domain.PostStore.
func (r *PGPostStore) Create(ctx context.Context, d domain.Draft) (domain.Post, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Post{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // no-op após Commit

	p := domain.Post{Title: d.Title, Content: d.Content, Tags: d.Tags}
	err = tx.QueryRow(ctx,
		`INSERT INTO posts(title, content, status, tags) VALUES ($1,$2,$3,$4) RETURNING id, created_at`,
		d.Title, d.Content, d.Status, d.Tags,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return domain.Post{}, fmt.Errorf("insert post: %w", err)
	}

	for _, catID := range d.Categories {
		if _, err := tx.Exec(ctx,
			`INSERT INTO post_categories(post_id, category_id) VALUES ($1,$2)`,
			p.ID, catID,
		); err != nil {
			return domain.Post{}, fmt.Errorf("insert post category: %w", err)
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO activity_logs(action, post_id) VALUES ($1,$2)`,
		"new_post", p.ID,
	); err != nil {
		return domain.Post{}, fmt.Errorf("insert activity log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Post{}, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

// GetByID lê um post persistido (usado por ferramentas e verificação).
func (r *PGPostStore) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT id, title, content, tags, created_at FROM posts WHERE id=$1`, id)
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Tags, &p.CreatedAt); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}
