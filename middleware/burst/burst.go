package burst

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// KeyFunc identifica o cliente de uma requisição para fins de limite.
type KeyFunc func(r *http.Request) string

type Options struct {
	Store              *Store
	KeyFn              KeyFunc
	KeyHeader          string
	TrustXForwardedFor bool
	RejectStatus       int
	RetryAfter         time.Duration
}

// DefaultKeyFunc resolve a chave do cliente: header (se configurado),
// primeiro IP do X-Forwarded-For (se confiável), senão RemoteAddr.
func DefaultKeyFunc(keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return v
			}
		}

		if trustXFF {
			// primeiro IP do X-Forwarded-For = cliente original
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				ip := strings.TrimSpace(strings.Split(xff, ",")[0])
				if ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

// Middleware barra requisições de clientes que estouram o token bucket.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}

	return func(next http.Handler) http.Handler {
		if opts.Store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !opts.Store.Allow(opts.KeyFn(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(opts.RetryAfter.Seconds())))
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
