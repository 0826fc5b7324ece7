// Package postcreate fornece o adapter HTTP (net/http) do endpoint de
// criação de posts via URL.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (guard, cooldown, sanitização, criação)
//   - infra: implementações concretas (redis, postgres, elasticsearch, memória)
//   - postcreate (este pacote): handler HTTP + extração de AuthContext +
//     tradução de Outcome para status/headers/redirect
//
// Fluxo da requisição GET /post/create?title=&content=&tags=:
//
//  1. Extrai o AuthContext do request (AuthFunc)
//  2. Chama a camada application para executar a criação
//  3. Recusa vira 403/429/400 com a mensagem correspondente
//  4. Sucesso vira 302 para o permalink do post criado
//
// Variáveis de ambiente do binário (cmd/server) controlam o
// comportamento, como COOLDOWN, GUARD_TTL e DEFAULT_CATEGORY_ID.
package postcreate
