package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func TestMemoryKV(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	kv := NewMemoryKV()
	kv.Now = func() time.Time { return now }

	if err := kv.Set(ctx, "a", []byte("1"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set(ctx, "forever", []byte("2"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := kv.Get(ctx, "a")
	if err != nil || string(got) != "1" {
		t.Fatalf("expected 1, got %q (%v)", got, err)
	}
	got[0] = 'x'
	if again, _ := kv.Get(ctx, "a"); string(again) != "1" {
		t.Fatal("expected Get to return a copy")
	}

	now = now.Add(time.Minute)
	if _, err := kv.Get(ctx, "a"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected expired key, got %v", err)
	}
	if _, err := kv.Get(ctx, "forever"); err != nil {
		t.Fatalf("expected key without ttl to survive, got %v", err)
	}

	if err := kv.Del(ctx, "forever", "missing"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if _, err := kv.Get(ctx, "forever"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected deleted key, got %v", err)
	}
}

func TestRedisKV(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	kv := NewRedisKV(client, "auth:")

	if err := kv.Set(ctx, "session:1", []byte(`{"id":"1"}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !mr.Exists("auth:session:1") {
		t.Fatal("expected key to be stored under the prefix")
	}
	got, err := kv.Get(ctx, "session:1")
	if err != nil || string(got) != `{"id":"1"}` {
		t.Fatalf("expected stored value, got %q (%v)", got, err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := kv.Get(ctx, "session:1"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected expired key, got %v", err)
	}

	_ = kv.Set(ctx, "a", []byte("1"), 0)
	_ = kv.Set(ctx, "b", []byte("2"), 0)
	if err := kv.Del(ctx, "a", "b"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if mr.Exists("auth:a") || mr.Exists("auth:b") {
		t.Fatal("expected keys to be deleted")
	}
	if err := kv.Del(ctx); err != nil {
		t.Fatalf("expected empty Del to be a no-op, got %v", err)
	}
}
