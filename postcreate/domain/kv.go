package domain

import (
	"context"
	"time"
)

// ExpiringKV é um armazenamento chave-valor com expiração por chave.
//
// É usado tanto para o flag de criação em andamento quanto para o
// timestamp da última criação por usuário.
//
// Contrato importante: SetIfAbsent precisa ser test-and-set atômico.
// Duas chamadas concorrentes para a mesma chave ausente devem admitir
// exatamente uma. Sem essa garantia o guard de submissões duplicadas
// não protege nada.
//
// ttl <= 0 significa sem expiração.
type ExpiringKV interface {
	// Get retorna o valor e se a chave existe (não expirada).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set grava o valor incondicionalmente.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetIfAbsent grava somente se a chave não existir.
	// Retorna true se gravou (a chave era ausente).
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}
