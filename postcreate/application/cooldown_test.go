package application

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeKV é um domain.ExpiringKV mínimo para os testes desta camada.
// Expiração é ignorada de propósito: o relógio vem do Cooldown.Now.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) SetIfAbsent(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value
	return true, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCooldown_FreshUserIsNotLimited(t *testing.T) {
	c := Cooldown{KV: newFakeKV(), Now: fixedClock(time.Unix(1000, 0))}

	limited, err := c.Limited(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("expected fresh user to not be limited")
	}

	rem, err := c.Remaining(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rem != 0 {
		t.Fatalf("expected remaining=0, got %s", rem)
	}
}

func TestCooldown_WindowBoundary(t *testing.T) {
	kv := newFakeKV()
	t0 := time.Unix(1000, 0)

	c := Cooldown{KV: kv, Now: fixedClock(t0)}
	if err := c.Record(context.Background(), "u1"); err != nil {
		t.Fatalf("record error: %v", err)
	}

	// 1 segundo antes da fronteira: ainda limitado
	c.Now = fixedClock(t0.Add(299 * time.Second))
	limited, err := c.Limited(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limited {
		t.Fatalf("expected limited at t0+299s")
	}

	// na fronteira exata: liberado
	c.Now = fixedClock(t0.Add(300 * time.Second))
	limited, err = c.Limited(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("expected not limited at t0+300s")
	}
}

func TestCooldown_RemainingInsideWindow(t *testing.T) {
	kv := newFakeKV()
	t0 := time.Unix(1000, 0)

	c := Cooldown{KV: kv, Now: fixedClock(t0)}
	if err := c.Record(context.Background(), "u1"); err != nil {
		t.Fatalf("record error: %v", err)
	}

	c.Now = fixedClock(t0.Add(40 * time.Second))
	rem, err := c.Remaining(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rem != 260*time.Second {
		t.Fatalf("expected remaining=260s, got %s", rem)
	}

	// depois da janela nunca fica negativo
	c.Now = fixedClock(t0.Add(1000 * time.Second))
	rem, err = c.Remaining(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rem != 0 {
		t.Fatalf("expected remaining=0 after window, got %s", rem)
	}
}

func TestCooldown_RecordOverwrites(t *testing.T) {
	kv := newFakeKV()
	t0 := time.Unix(1000, 0)

	c := Cooldown{KV: kv, Now: fixedClock(t0)}
	if err := c.Record(context.Background(), "u1"); err != nil {
		t.Fatalf("record error: %v", err)
	}

	// novo registro reinicia a janela
	t1 := t0.Add(400 * time.Second)
	c.Now = fixedClock(t1)
	if err := c.Record(context.Background(), "u1"); err != nil {
		t.Fatalf("record error: %v", err)
	}

	c.Now = fixedClock(t1.Add(100 * time.Second))
	limited, err := c.Limited(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limited {
		t.Fatalf("expected limited 100s after the second record")
	}
}

func TestCooldown_CustomWindow(t *testing.T) {
	kv := newFakeKV()
	t0 := time.Unix(1000, 0)

	c := Cooldown{KV: kv, Window: 5 * time.Second, Now: fixedClock(t0)}
	if err := c.Record(context.Background(), "u1"); err != nil {
		t.Fatalf("record error: %v", err)
	}

	c.Now = fixedClock(t0.Add(5 * time.Second))
	limited, err := c.Limited(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("expected not limited after custom window")
	}
}

func TestCooldown_CorruptValueCountsAsAbsent(t *testing.T) {
	kv := newFakeKV()
	kv.data[lastCreationKeyPrefix+"u1"] = "not-a-number"

	c := Cooldown{KV: kv, Now: fixedClock(time.Unix(1000, 0))}
	limited, err := c.Limited(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("expected corrupt record to count as absent")
	}
}
