package application

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Parâmetros reconhecidos pelo endpoint; tudo fora disso é ignorado.
var allowedParams = []string{"title", "content", "tags"}

// Sanitizer mapeia parâmetros crus para valores seguros por tipo de campo:
//
//   - title: texto puro, sem markup
//   - content: subconjunto seguro de markup (política UGC)
//   - tags: lista separada por vírgula, cada fragmento como texto puro
//
// Função pura: campos ausentes ficam de fora do resultado, sem default e
// sem erro.
type Sanitizer struct {
	plain *bluemonday.Policy
	body  *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		plain: bluemonday.StrictPolicy(),
		body:  bluemonday.UGCPolicy(),
	}
}

// Params sanitiza os parâmetros reconhecidos presentes em raw.
func (s *Sanitizer) Params(raw map[string]string) map[string]string {
	out := make(map[string]string, len(allowedParams))
	for _, p := range allowedParams {
		v, ok := raw[p]
		if !ok {
			continue
		}
		switch p {
		case "title":
			out[p] = s.PlainText(v)
		case "content":
			out[p] = s.PostBody(v)
		case "tags":
			out[p] = s.TagList(v)
		}
	}
	return out
}

// PlainText remove todo markup, mantendo só texto.
func (s *Sanitizer) PlainText(v string) string {
	return s.plain.Sanitize(v)
}

// PostBody mantém o subconjunto de markup permitido em corpo de post.
func (s *Sanitizer) PostBody(v string) string {
	return s.body.Sanitize(v)
}

// TagList sanitiza cada fragmento separado por vírgula de forma
// independente e rejunta preservando ordem e quantidade. Fragmentos
// vazios permanecem vazios (nada é descartado nem deduplicado aqui).
func (s *Sanitizer) TagList(v string) string {
	tags := strings.Split(v, ",")
	for i, t := range tags {
		tags[i] = s.plain.Sanitize(t)
	}
	return strings.Join(tags, ",")
}

// EscapeForStore aplica percent-decode e escapa entidades HTML antes de
// entregar o valor ao PostStore, para que o texto não volte a ser
// interpretado como markup mais adiante.
func EscapeForStore(v string) string {
	decoded, err := url.QueryUnescape(v)
	if err != nil {
		// encoding inválido: escapa o valor como veio
		decoded = v
	}
	return html.EscapeString(decoded)
}
