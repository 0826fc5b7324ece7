package infra

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGOptions resolve a categoria padrão a partir da tabela options
// (name/value), lida a cada requisição.
type PGOptions struct {
	Pool *pgxpool.Pool
}

func NewPGOptions(pool *pgxpool.Pool) *PGOptions { return &PGOptions{Pool: pool} }

// DefaultCategory implementa domain.CategorySource.
// Opção ausente ou com valor não numérico vira ok=false, não erro.
func (o *PGOptions) DefaultCategory(ctx context.Context) (int64, bool, error) {
	var raw string
	err := o.Pool.QueryRow(ctx,
		`SELECT value FROM options WHERE name='default_category'`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil || id <= 0 {
		return 0, false, nil
	}
	return id, true, nil
}

// StaticCategory é um domain.CategorySource fixo (configuração direta).
type StaticCategory int64

func (c StaticCategory) DefaultCategory(context.Context) (int64, bool, error) {
	if c <= 0 {
		return 0, false, nil
	}
	return int64(c), true, nil
}
