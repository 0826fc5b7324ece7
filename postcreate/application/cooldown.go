package application

import (
	"context"
	"strconv"
	"time"

	"url-to-post/postcreate/domain"
)

// DefaultCooldownWindow é o intervalo mínimo entre criações por usuário.
const DefaultCooldownWindow = 300 * time.Second

const lastCreationKeyPrefix = "last_post_creation_time_"

// Cooldown decide se um usuário pode criar um post agora e, se não,
// quanto falta para poder.
//
// O estado é um timestamp por usuário no ExpiringKV. Registro ausente ou
// expirado significa "nunca criou" — nunca é erro.
type Cooldown struct {
	KV domain.ExpiringKV

	// Window é a janela de cooldown. Se 0, usa DefaultCooldownWindow.
	Window time.Duration

	// Retention é o TTL do timestamp gravado. Se 0, grava sem expiração.
	// Qualquer valor >= Window preserva o comportamento.
	Retention time.Duration

	// Now permite injetar relógio nos testes. Se nil, usa time.Now.
	Now func() time.Time
}

func (c Cooldown) window() time.Duration {
	if c.Window > 0 {
		return c.Window
	}
	return DefaultCooldownWindow
}

func (c Cooldown) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Cooldown) key(userID string) string {
	return lastCreationKeyPrefix + userID
}

// Limited informa se o usuário ainda está dentro da janela.
// O limite vale enquanto now-last < Window (na fronteira exata, libera).
func (c Cooldown) Limited(ctx context.Context, userID string) (bool, error) {
	last, ok, err := c.lastCreation(ctx, userID)
	if err != nil || !ok {
		return false, err
	}
	return c.now().Sub(last) < c.window(), nil
}

// Remaining retorna quanto falta de cooldown (0 se o usuário pode criar).
func (c Cooldown) Remaining(ctx context.Context, userID string) (time.Duration, error) {
	last, ok, err := c.lastCreation(ctx, userID)
	if err != nil || !ok {
		return 0, err
	}
	rem := c.window() - c.now().Sub(last)
	if rem < 0 {
		rem = 0
	}
	return rem, nil
}

// Record sobrescreve incondicionalmente o timestamp da última criação.
func (c Cooldown) Record(ctx context.Context, userID string) error {
	v := strconv.FormatInt(c.now().Unix(), 10)
	return c.KV.Set(ctx, c.key(userID), v, c.Retention)
}

func (c Cooldown) lastCreation(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, ok, err := c.KV.Get(ctx, c.key(userID))
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// valor corrompido conta como ausente
		return time.Time{}, false, nil
	}
	return time.Unix(sec, 0), true, nil
}
