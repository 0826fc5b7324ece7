package application

import (
	"context"
	"strconv"
	"strings"

	"url-to-post/postcreate/domain"
)

// Service concentra a regra de aplicação da criação de posts.
//
// Ele não sabe nada sobre HTTP (status/headers/redirect), apenas retorna
// um Outcome. A ordem de avaliação é fixa:
//
//  1. autorização (usuário + capability publish_posts)
//  2. guard de criação em andamento
//  3. cooldown por usuário
//  4. sanitização + completude dos parâmetros
//  5. categoria padrão
//  6. criação no PostStore
//  7. registro do timestamp + redirect
//
// Efeitos colaterais só acontecem ao marcar o guard (2) e no caminho de
// sucesso (7); todas as recusas são leituras puras.
type Service struct {
	Store      domain.PostStore
	Categories domain.CategorySource
	Guard      Guard
	Cooldown   Cooldown
	Sanitizer  *Sanitizer

	// Indexer é opcional; falha de indexação não falha a criação.
	Indexer domain.PostIndexer

	// Permalink monta o destino do redirect para um post criado.
	// Se nil, usa "/posts/<id>".
	Permalink func(domain.Post) string
}

var requiredParams = allowedParams

// Create executa a operação ponta a ponta.
//
// O error de retorno é reservado para falhas de infraestrutura
// (KV inacessível, etc.); recusas de negócio chegam no Outcome.
func (s Service) Create(ctx context.Context, auth domain.AuthContext, raw map[string]string) (domain.Outcome, error) {
	if !auth.Authenticated() || !auth.Can(domain.CapPublishPosts) {
		return domain.Outcome{Reason: domain.ReasonUnauthorized}, nil
	}

	ok, err := s.Guard.TryEnter(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	if !ok {
		return domain.Outcome{Reason: domain.ReasonBusy, RetryAfter: s.Guard.ttl()}, nil
	}

	limited, err := s.Cooldown.Limited(ctx, auth.UserID)
	if err != nil {
		return domain.Outcome{}, err
	}
	if limited {
		rem, err := s.Cooldown.Remaining(ctx, auth.UserID)
		if err != nil {
			return domain.Outcome{}, err
		}
		return domain.Outcome{Reason: domain.ReasonRateLimited, RetryAfter: rem}, nil
	}

	san := s.Sanitizer
	if san == nil {
		san = NewSanitizer()
	}
	valid := san.Params(raw)
	for _, p := range requiredParams {
		// ausente, ou esvaziado pela sanitização, rejeita a requisição
		// inteira: criação parcial nunca acontece
		if valid[p] == "" {
			return domain.Outcome{Reason: domain.ReasonMissingParams}, nil
		}
	}

	catID, found, err := s.Categories.DefaultCategory(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	if !found {
		return domain.Outcome{Reason: domain.ReasonNoDefaultCategory}, nil
	}

	post, err := s.Store.Create(ctx, domain.Draft{
		Title:      EscapeForStore(valid["title"]),
		Content:    EscapeForStore(valid["content"]),
		Tags:       strings.Split(valid["tags"], ","),
		Status:     domain.StatusPublished,
		Categories: []int64{catID},
	})
	if err != nil {
		// criação é tentada exatamente uma vez; falha do store é terminal
		return domain.Outcome{Reason: domain.ReasonStoreFailed}, nil
	}

	// best-effort: o post já existe, então o registro do cooldown e a
	// indexação não podem desfazer o sucesso
	_ = s.Cooldown.Record(ctx, auth.UserID)
	if s.Indexer != nil {
		_ = s.Indexer.Index(ctx, post)
	}

	return domain.Outcome{Created: true, Post: post, Location: s.permalink(post)}, nil
}

func (s Service) permalink(p domain.Post) string {
	if s.Permalink != nil {
		return s.Permalink(p)
	}
	return "/posts/" + strconv.FormatInt(p.ID, 10)
}
