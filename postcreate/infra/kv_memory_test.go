package infra

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryKV_SetGet(t *testing.T) {
	kv := NewMemoryKV()

	if err := kv.Set(context.Background(), "k", "v", 0); err != nil {
		t.Fatalf("set error: %v", err)
	}
	got, ok, err := kv.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !ok || got != "v" {
		t.Fatalf("expected v, got %q ok=%v", got, ok)
	}
}

func TestMemoryKV_GetAbsent(t *testing.T) {
	kv := NewMemoryKV()

	_, ok, err := kv.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if ok {
		t.Fatalf("expected absent key")
	}
}

func TestMemoryKV_TTLExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	kv := NewMemoryKV(WithMemoryClock(func() time.Time { return now }))

	if err := kv.Set(context.Background(), "k", "v", 10*time.Second); err != nil {
		t.Fatalf("set error: %v", err)
	}

	now = now.Add(9 * time.Second)
	if _, ok, _ := kv.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected key alive before TTL")
	}

	now = now.Add(1 * time.Second)
	if _, ok, _ := kv.Get(context.Background(), "k"); ok {
		t.Fatalf("expected key expired at TTL")
	}
}

func TestMemoryKV_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	kv := NewMemoryKV(WithMemoryClock(func() time.Time { return now }))

	if err := kv.Set(context.Background(), "k", "v", 0); err != nil {
		t.Fatalf("set error: %v", err)
	}
	now = now.Add(1000 * time.Hour)
	if _, ok, _ := kv.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected key without TTL to survive")
	}
}

func TestMemoryKV_SetIfAbsent(t *testing.T) {
	kv := NewMemoryKV()

	ok, err := kv.SetIfAbsent(context.Background(), "k", "a", 0)
	if err != nil {
		t.Fatalf("setifabsent error: %v", err)
	}
	if !ok {
		t.Fatalf("expected first SetIfAbsent to win")
	}

	ok, err = kv.SetIfAbsent(context.Background(), "k", "b", 0)
	if err != nil {
		t.Fatalf("setifabsent error: %v", err)
	}
	if ok {
		t.Fatalf("expected second SetIfAbsent to lose")
	}

	got, _, _ := kv.Get(context.Background(), "k")
	if got != "a" {
		t.Fatalf("expected original value kept, got %q", got)
	}
}

func TestMemoryKV_SetIfAbsentAfterExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	kv := NewMemoryKV(WithMemoryClock(func() time.Time { return now }))

	if ok, _ := kv.SetIfAbsent(context.Background(), "k", "a", 5*time.Second); !ok {
		t.Fatalf("expected first SetIfAbsent to win")
	}
	now = now.Add(6 * time.Second)
	if ok, _ := kv.SetIfAbsent(context.Background(), "k", "b", 5*time.Second); !ok {
		t.Fatalf("expected SetIfAbsent to win after expiry")
	}
}

// propriedade de concorrência: entre N corridas pela mesma chave ausente,
// exatamente uma vence.
func TestMemoryKV_SetIfAbsentAdmitsExactlyOne(t *testing.T) {
	kv := NewMemoryKV()

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := kv.SetIfAbsent(context.Background(), "flag", "1", time.Minute)
			if err != nil {
				t.Errorf("setifabsent error: %v", err)
				return
			}
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for ok := range wins {
		if ok {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
}

func TestMemoryKV_CleanupRemovesExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	kv := NewMemoryKV(WithMemoryClock(func() time.Time { return now }))

	_ = kv.Set(context.Background(), "a", "1", 5*time.Second)
	_ = kv.Set(context.Background(), "b", "2", 0)

	now = now.Add(10 * time.Second)
	kv.Cleanup()

	kv.mu.Lock()
	_, hasA := kv.entries["a"]
	_, hasB := kv.entries["b"]
	kv.mu.Unlock()

	if hasA {
		t.Fatalf("expected expired entry to be removed")
	}
	if !hasB {
		t.Fatalf("expected entry without TTL to stay")
	}
}
