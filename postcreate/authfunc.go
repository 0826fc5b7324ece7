package postcreate

import (
	"net/http"
	"strings"

	"url-to-post/postcreate/domain"
)

// AuthFunc extrai o AuthContext de uma requisição. Um AuthContext zero
// (sem UserID) significa requisitante não autenticado.
type AuthFunc func(r *http.Request) domain.AuthContext

// HeaderAuthFunc confia em headers preenchidos por um proxy de
// autenticação à frente do serviço: userHeader carrega o id do usuário e
// capsHeader as capabilities separadas por vírgula.
func HeaderAuthFunc(userHeader, capsHeader string) AuthFunc {
	return func(r *http.Request) domain.AuthContext {
		user := strings.TrimSpace(r.Header.Get(userHeader))
		if user == "" {
			return domain.AuthContext{}
		}
		return domain.AuthContext{
			UserID: user,
			Caps:   parseCaps(r.Header.Get(capsHeader)),
		}
	}
}

// TokenAuthFunc resolve um token opaco (header) em um AuthContext via
// diretório estático. Token desconhecido resulta em contexto vazio.
func TokenAuthFunc(tokenHeader string, directory map[string]domain.AuthContext) AuthFunc {
	return func(r *http.Request) domain.AuthContext {
		tok := strings.TrimSpace(r.Header.Get(tokenHeader))
		if tok == "" {
			return domain.AuthContext{}
		}
		return directory[tok]
	}
}

// ParseTokenDirectory interpreta o formato de configuração
// "token=user:cap|cap,token2=user2:cap" em um diretório de tokens.
// Entradas malformadas são ignoradas.
func ParseTokenDirectory(raw string) map[string]domain.AuthContext {
	dir := make(map[string]domain.AuthContext)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tok, rest, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		user, caps, _ := strings.Cut(rest, ":")
		tok = strings.TrimSpace(tok)
		user = strings.TrimSpace(user)
		if tok == "" || user == "" {
			continue
		}
		auth := domain.AuthContext{UserID: user}
		for _, c := range strings.Split(caps, "|") {
			if c = strings.TrimSpace(c); c != "" {
				auth.Caps = append(auth.Caps, domain.Capability(c))
			}
		}
		dir[tok] = auth
	}
	return dir
}

func parseCaps(raw string) []domain.Capability {
	var caps []domain.Capability
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			caps = append(caps, domain.Capability(c))
		}
	}
	return caps
}
