package application

import (
	"context"
	"time"

	"url-to-post/postcreate/domain"
)

// DefaultGuardTTL é a expiração do flag de criação em andamento.
const DefaultGuardTTL = 10 * time.Second

// DefaultGuardKey é a chave do flag no ExpiringKV.
//
// O flag é global: serializa criações de todos os usuários, não só do
// requisitante. Um guard por usuário seria Key por usuário; o escopo
// global é mantido de propósito (ver DESIGN.md).
const DefaultGuardKey = "post_creation_in_progress"

// Guard impede a reentrada concorrente da operação de criação dentro de
// uma janela curta.
//
// O flag nunca é liberado explicitamente; a expiração (TTL) encerra a
// janela. A proteção depende do SetIfAbsent atômico do KV.
type Guard struct {
	KV domain.ExpiringKV

	// TTL do flag. Se 0, usa DefaultGuardTTL.
	TTL time.Duration

	// Key do flag. Se vazio, usa DefaultGuardKey.
	Key string
}

func (g Guard) ttl() time.Duration {
	if g.TTL > 0 {
		return g.TTL
	}
	return DefaultGuardTTL
}

func (g Guard) key() string {
	if g.Key != "" {
		return g.Key
	}
	return DefaultGuardKey
}

// TryEnter tenta marcar o início de uma criação.
// Retorna true se o chamador pode prosseguir; false se já existe uma
// criação em andamento.
func (g Guard) TryEnter(ctx context.Context) (bool, error) {
	return g.KV.SetIfAbsent(ctx, g.key(), "1", g.ttl())
}
