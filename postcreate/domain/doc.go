// Package domain define contratos e tipos de domínio para a criação de posts.
//
// Este pacote não depende de net/http nem de implementações concretas
// (redis, postgres, elasticsearch). A intenção é permitir testes de
// unidade puros e desacoplar regras de negócio de detalhes de
// infraestrutura.
package domain
