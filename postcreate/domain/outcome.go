package domain

import "time"

// Reason classifica o desfecho de uma tentativa de criação que não
// resultou em post. ReasonNone acompanha o sucesso.
type Reason int

const (
	ReasonNone Reason = iota

	// ReasonUnauthorized: sem usuário ou sem a capability publish_posts.
	ReasonUnauthorized

	// ReasonBusy: outra criação em andamento (guard negou a entrada).
	ReasonBusy

	// ReasonRateLimited: o usuário ainda está dentro da janela de cooldown.
	ReasonRateLimited

	// ReasonMissingParams: faltou algum dos parâmetros obrigatórios.
	ReasonMissingParams

	// ReasonNoDefaultCategory: categoria padrão não configurada.
	ReasonNoDefaultCategory

	// ReasonStoreFailed: o PostStore não devolveu um post.
	ReasonStoreFailed
)

// Outcome é o resultado da operação de criação: ou um post criado com o
// destino do redirect, ou uma razão de recusa com eventual retry-after.
//
// Recusas são valores, não errors: o fluxo de controle é retorno simples,
// sem exceções. O adapter HTTP traduz Reason para status/mensagem.
type Outcome struct {
	Created  bool
	Post     Post
	Location string

	Reason Reason
	// RetryAfter acompanha ReasonBusy e ReasonRateLimited.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}
