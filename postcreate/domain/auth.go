package domain

// Capability é uma permissão nomeada do usuário (ex: publicar posts).
type Capability string

// CapPublishPosts é a capability exigida para criar posts pelo endpoint.
const CapPublishPosts Capability = "publish_posts"

// AuthContext carrega a identidade e as permissões do requisitante.
//
// Ele é um valor explícito passado para a camada de aplicação: nada aqui
// consulta sessão/estado global. Quem constrói o AuthContext (header de
// um proxy de autenticação, diretório de tokens, etc.) é o adapter HTTP.
type AuthContext struct {
	UserID string
	Caps   []Capability
}

// Authenticated informa se há um usuário identificado.
func (a AuthContext) Authenticated() bool { return a.UserID != "" }

// Can informa se o usuário possui a capability.
func (a AuthContext) Can(c Capability) bool {
	for _, got := range a.Caps {
		if got == c {
			return true
		}
	}
	return false
}
