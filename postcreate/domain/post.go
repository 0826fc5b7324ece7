package domain

import (
	"context"
	"time"
)

// StatusPublished é o único status emitido pelo endpoint de criação.
const StatusPublished = "publish"

// Draft é o pedido de criação enviado ao PostStore.
// Os campos já chegam sanitizados e escapados pela camada de aplicação.
type Draft struct {
	Title      string
	Content    string
	Tags       []string
	Status     string
	Categories []int64
}

// Post é o registro persistido.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
}

// PostStore cria posts. A implementação pode ser Postgres, memória, etc.
type PostStore interface {
	Create(ctx context.Context, d Draft) (Post, error)
}

// CategorySource resolve a categoria padrão do blog.
// ok=false indica configuração ausente (não é erro de infra).
type CategorySource interface {
	DefaultCategory(ctx context.Context) (id int64, ok bool, err error)
}

// PostIndexer indexa posts criados para busca.
//
// O chamador deve tratar erro como best-effort (não derrubar a criação).
type PostIndexer interface {
	Index(ctx context.Context, p Post) error
}
