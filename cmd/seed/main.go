// Seed tool: cria o schema e a configuração mínima no Postgres.
// - tabelas: posts, categories, post_categories, options, activity_logs
// - insere a categoria "General" e aponta a option default_category para ela
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'publish',
		tags TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_tags ON posts USING GIN (tags)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS post_categories (
		post_id BIGINT NOT NULL REFERENCES posts(id),
		category_id BIGINT NOT NULL REFERENCES categories(id),
		PRIMARY KEY (post_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS options (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id BIGSERIAL PRIMARY KEY,
		action TEXT NOT NULL,
		post_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func main() {
	_ = godotenv.Load()

	var categoryName string
	flag.StringVar(&categoryName, "category", "General", "name of the default category")
	flag.Parse()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		log.Fatal("PG_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	start := time.Now()
	for _, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			log.Fatalf("schema error: %v", err)
		}
	}

	var catID int64
	err = conn.QueryRow(ctx,
		`INSERT INTO categories(name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, categoryName,
	).Scan(&catID)
	if err != nil {
		log.Fatalf("category insert error: %v", err)
	}

	if _, err := conn.Exec(ctx,
		`INSERT INTO options(name, value) VALUES ('default_category', $1)
		 ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`, strconv.FormatInt(catID, 10),
	); err != nil {
		log.Fatalf("option insert error: %v", err)
	}

	log.Printf("seeded: default_category=%d (%s) in %s", catID, categoryName, time.Since(start).Truncate(time.Millisecond))
}
