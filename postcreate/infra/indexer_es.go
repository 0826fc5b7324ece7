package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	es8 "github.com/elastic/go-elasticsearch/v8"

	"url-to-post/postcreate/domain"
)

// ESIndexer indexa posts criados no Elasticsearch.
//
// Toda chamada é best-effort do ponto de vista do fluxo de criação:
// quem chama decide descartar o erro.
type ESIndexer struct {
	Client    *es8.Client
	IndexName string
}

func NewESIndexer(esURL, index string) (*ESIndexer, error) {
	cli, err := es8.NewClient(es8.Config{Addresses: []string{esURL}})
	if err != nil {
		return nil, err
	}
	return &ESIndexer{Client: cli, IndexName: index}, nil
}

// EnsureIndex cria o índice com mapping simples; se já existir, o ES
// responde 400 e o chamador pode ignorar.
func (e *ESIndexer) EnsureIndex(ctx context.Context) error {
	mapping := `{
	  "mappings": {
	    "properties": {
	      "title":   {"type":"text"},
	      "content": {"type":"text"},
	      "tags":    {"type":"keyword"}
	    }
	  }
	}`
	res, err := e.Client.Indices.Create(e.IndexName,
		e.Client.Indices.Create.WithBody(bytes.NewBufferString(mapping)),
		e.Client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return nil
}

// Index implementa domain.PostIndexer.
func (e *ESIndexer) Index(ctx context.Context, p domain.Post) error {
	doc := map[string]any{
		"id":      p.ID,
		"title":   p.Title,
		"content": p.Content,
		"tags":    p.Tags,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := e.Client.Index(e.IndexName, bytes.NewReader(b),
		e.Client.Index.WithDocumentID(strconv.FormatInt(p.ID, 10)),
		e.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.IsError() {
		return fmt.Errorf("index post %d: %s", p.ID, res.Status())
	}
	return nil
}
