// Package burst fornece um middleware HTTP de proteção contra rajadas,
// com um token bucket por cliente (IP/header).
//
// Ele fica à frente do endpoint de criação e barra clientes que martelam
// a URL mais rápido do que o cooldown por usuário consegue sequer agir
// (ex: requisições não autenticadas em loop). A decisão aqui é por
// cliente de transporte; o cooldown por usuário é regra de negócio e
// vive em postcreate/application.
package burst
