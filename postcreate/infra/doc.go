// Package infra contém implementações concretas (infraestrutura) para os
// contratos definidos no pacote domain.
//
// Exemplos:
//   - MemoryKV / RedisKV: chave-valor com expiração (guard + cooldown)
//   - PGPostStore / MemoryPostStore: persistência de posts
//   - PGOptions / StaticCategory: categoria padrão
//   - ESIndexer: indexação best-effort para busca
package infra
