package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"url-to-post/middleware/burst"
	"url-to-post/postcreate"
	"url-to-post/postcreate/application"
	"url-to-post/postcreate/domain"
	"url-to-post/postcreate/infra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// ---- KV com expiração (guard + cooldown): redis ou memória
	var kv domain.ExpiringKV
	if cfg.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancelPing()
		if err != nil {
			log.Fatalf("redis ping error: %v", err)
		}
		kv = infra.NewRedisKV(rdb, infra.WithKVPrefix(cfg.kvPrefix))
	} else {
		mem := infra.NewMemoryKV()
		mem.StartJanitor(ctx)
		kv = mem
		log.Printf("REDIS_ADDR empty: using in-memory KV (single-instance only)")
	}

	// ---- PostStore + categoria padrão: postgres ou memória
	var store domain.PostStore
	var categories domain.CategorySource
	if cfg.pgDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.pgDSN)
		if err != nil {
			log.Fatalf("db open error: %v", err)
		}
		defer pool.Close()

		pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
		err = pool.Ping(pingCtx)
		cancelPing()
		if err != nil {
			log.Fatalf("db ping error: %v", err)
		}

		store = infra.NewPGPostStore(pool)
		categories = infra.NewPGOptions(pool)
	} else {
		store = infra.NewMemoryPostStore()
		categories = infra.StaticCategory(cfg.defaultCategoryID)
		log.Printf("PG_DSN empty: using in-memory post store")
	}

	// ---- Indexação best-effort
	var indexer domain.PostIndexer
	if cfg.esAddr != "" {
		es, err := infra.NewESIndexer(cfg.esAddr, cfg.esIndex)
		if err != nil {
			log.Fatalf("es init error: %v", err)
		}
		// se o índice já existe o ES responde 400; seguimos em frente
		_ = es.EnsureIndex(ctx)
		indexer = es
	}

	svc := application.Service{
		Store:      store,
		Categories: categories,
		Guard:      application.Guard{KV: kv, TTL: cfg.guardTTL},
		Cooldown: application.Cooldown{
			KV:        kv,
			Window:    cfg.cooldown,
			Retention: cfg.cooldownRetention,
		},
		Sanitizer: application.NewSanitizer(),
		Indexer:   indexer,
		Permalink: func(p domain.Post) string {
			return cfg.permalinkBase + "/" + strconv.FormatInt(p.ID, 10)
		},
	}

	var authFn postcreate.AuthFunc
	if cfg.authTokens != "" {
		authFn = postcreate.TokenAuthFunc(cfg.authTokenHeader, postcreate.ParseTokenDirectory(cfg.authTokens))
	} else {
		authFn = postcreate.HeaderAuthFunc(cfg.authUserHeader, cfg.authCapsHeader)
	}

	mux := http.NewServeMux()
	mux.Handle("/post/create", postcreate.Handler(postcreate.Options{
		Service: svc,
		AuthFn:  authFn,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	h := http.Handler(mux)
	if cfg.burstEnabled {
		bstore := burst.NewStore(cfg.burstRPS, cfg.burstBurst)
		bstore.StartJanitor(ctx)
		h = burst.Middleware(burst.Options{
			Store:              bstore,
			TrustXForwardedFor: cfg.trustXFF,
			RejectStatus:       http.StatusTooManyRequests,
		})(h)
	}

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("url-to-post listening on %s", cfg.listenAddr)
	log.Printf("cooldown=%s retention=%s guardTTL=%s", cfg.cooldown, cfg.cooldownRetention, cfg.guardTTL)
	log.Printf("burst: enabled=%v rps=%.3f burst=%d trustXFF=%v", cfg.burstEnabled, cfg.burstRPS, cfg.burstBurst, cfg.trustXFF)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

type config struct {
	listenAddr string

	pgDSN string

	redisAddr     string
	redisPassword string
	redisDB       int
	kvPrefix      string

	esAddr  string
	esIndex string

	cooldown          time.Duration
	cooldownRetention time.Duration
	guardTTL          time.Duration

	defaultCategoryID infra.StaticCategory
	permalinkBase     string

	authUserHeader  string
	authCapsHeader  string
	authTokenHeader string
	authTokens      string

	burstEnabled bool
	burstRPS     float64
	burstBurst   int
	trustXFF     bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")

	cfg.pgDSN = os.Getenv("PG_DSN")

	cfg.redisAddr = os.Getenv("REDIS_ADDR")
	cfg.redisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("REDIS_DB", 0)
	cfg.kvPrefix = getenvDefault("KV_PREFIX", "urltopost")

	cfg.esAddr = os.Getenv("ES_ADDR")
	cfg.esIndex = getenvDefault("ES_INDEX", "posts")

	cfg.cooldown = getenvDurationDefault("COOLDOWN", application.DefaultCooldownWindow)
	cfg.cooldownRetention = getenvDurationDefault("COOLDOWN_RETENTION", 24*time.Hour)
	cfg.guardTTL = getenvDurationDefault("GUARD_TTL", application.DefaultGuardTTL)

	cfg.defaultCategoryID = infra.StaticCategory(getenvIntDefault("DEFAULT_CATEGORY_ID", 0))
	cfg.permalinkBase = getenvDefault("PERMALINK_BASE", "/posts")

	cfg.authUserHeader = getenvDefault("AUTH_USER_HEADER", "X-Auth-User")
	cfg.authCapsHeader = getenvDefault("AUTH_CAPS_HEADER", "X-Auth-Caps")
	cfg.authTokenHeader = getenvDefault("AUTH_TOKEN_HEADER", "X-Auth-Token")
	cfg.authTokens = os.Getenv("AUTH_TOKENS")

	cfg.burstEnabled = getenvBoolDefault("BURST_ENABLED", true)
	cfg.burstRPS = getenvFloatDefault("BURST_RPS", 5)
	cfg.burstBurst = getenvIntDefault("BURST_BURST", 10)
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)

	if cfg.cooldown <= 0 {
		return config{}, errors.New("COOLDOWN must be > 0")
	}
	if cfg.guardTTL <= 0 {
		return config{}, errors.New("GUARD_TTL must be > 0")
	}
	if cfg.burstEnabled && (cfg.burstRPS <= 0 || cfg.burstBurst <= 0) {
		return config{}, errors.New("BURST_RPS and BURST_BURST must be > 0 when BURST_ENABLED=true")
	}
	if cfg.pgDSN == "" && cfg.defaultCategoryID <= 0 {
		return config{}, errors.New("DEFAULT_CATEGORY_ID is required when PG_DSN is empty")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
