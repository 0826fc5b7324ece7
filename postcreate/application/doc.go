// Package application contém os casos de uso da criação de posts.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Create(ctx, auth, params) retorna um Outcome
// (criado + destino do redirect, ou razão da recusa + retry-after).
package application
