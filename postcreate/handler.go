package postcreate

import (
	"fmt"
	"log"
	"net/http"

	"url-to-post/postcreate/application"
	"url-to-post/postcreate/domain"
)

// Mensagens visíveis ao usuário, uma por desfecho.
const (
	msgUnauthorized      = "You are not authorized to create posts."
	msgRateLimited       = "Rate limit exceeded. You can create a new post in %d seconds."
	msgBusy              = "Another post is being created. Try again in a few seconds."
	msgMissingParams     = "Missing or invalid parameters. Required parameters: title, content, tags."
	msgNoDefaultCategory = "Default category not found"
	msgStoreFailed       = "Error creating the post"
)

type Options struct {
	Service application.Service
	AuthFn  AuthFunc
}

// Handler monta o http.Handler do endpoint de criação.
//
// Só GET é aceito. O handler não contém regra de negócio: extrai o
// AuthContext e os query params, delega ao Service e traduz o Outcome.
func Handler(opts Options) http.Handler {
	if opts.AuthFn == nil {
		opts.AuthFn = HeaderAuthFunc("X-Auth-User", "X-Auth-Caps")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		auth := opts.AuthFn(r)

		raw := make(map[string]string)
		for name, vals := range r.URL.Query() {
			if len(vals) > 0 {
				raw[name] = vals[0]
			}
		}

		out, err := opts.Service.Create(r.Context(), auth, raw)
		if err != nil {
			log.Printf("post create error: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if out.Created {
			http.Redirect(w, r, out.Location, http.StatusFound)
			return
		}

		switch out.Reason {
		case domain.ReasonUnauthorized:
			http.Error(w, msgUnauthorized, http.StatusForbidden)
		case domain.ReasonBusy:
			w.Header().Set("Retry-After", formatInt(retryAfterSeconds(out.RetryAfter)))
			http.Error(w, msgBusy, http.StatusTooManyRequests)
		case domain.ReasonRateLimited:
			secs := retryAfterSeconds(out.RetryAfter)
			w.Header().Set("Retry-After", formatInt(secs))
			http.Error(w, fmt.Sprintf(msgRateLimited, secs), http.StatusTooManyRequests)
		case domain.ReasonMissingParams:
			http.Error(w, msgMissingParams, http.StatusBadRequest)
		case domain.ReasonNoDefaultCategory:
			http.Error(w, msgNoDefaultCategory, http.StatusBadRequest)
		case domain.ReasonStoreFailed:
			http.Error(w, msgStoreFailed, http.StatusBadRequest)
		default:
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}
