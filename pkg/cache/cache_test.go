package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %v, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "frame:1"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "frame:1", []byte("png"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "frame:1")
	if err != nil || !hit || string(data) != "png" {
		t.Errorf("Get = %q, %v, %v; want png hit", data, hit, err)
	}

	if err := c.Delete(ctx, "frame:1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "frame:1"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "frame:1"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("a"), time.Minute)
	_ = c.Set(ctx, "long", []byte("b"), time.Hour)
	_ = c.Set(ctx, "forever", []byte("c"), 0)

	now = now.Add(10 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}

	now = now.Add(2 * time.Hour)
	removed, err := c.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should survive")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear removed %d, want 3", removed)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("cleared entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt Get = %v, %v; want silent miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open(none): %v", err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(none) = %T, want NullCache", c)
	}

	c, err = Open(ctx, Options{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if _, ok := c.(*hooked); !ok {
		t.Errorf("Open(file) = %T, want hooked cache", c)
	}

	if _, err := Open(ctx, Options{Backend: "memcached"}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Open(memcached) error = %v, want %v", err, errors.ErrCodeInvalidConfig)
	}
}

type countingHooks struct {
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestWithHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := WithHooks(fc)

	_, _, _ = c.Get(ctx, "k")
	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _, _ = c.Get(ctx, "k")

	if h.hits != 1 || h.misses != 1 || h.sets != 1 {
		t.Errorf("hooks = %+v, want one of each", *h)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("RELGRAPH_TEST_REDIS")
	if addr == "" {
		t.Skip("RELGRAPH_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "relgraph-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	_ = c.Delete(ctx, "k")
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestFrameKey(t *testing.T) {
	base := FrameKeyOpts{GraphVersion: "v1", Format: "png", Theme: "light", Width: 800, Height: 600}
	k := FrameKey(base)
	if k != FrameKey(base) {
		t.Error("FrameKey should be deterministic")
	}

	variants := []func(*FrameKeyOpts){
		func(o *FrameKeyOpts) { o.GraphVersion = "v2" },
		func(o *FrameKeyOpts) { o.Format = "svg" },
		func(o *FrameKeyOpts) { o.Hovered = "ada" },
		func(o *FrameKeyOpts) { o.Highlighted = "ada" },
		func(o *FrameKeyOpts) { o.CameraX = 1 },
		func(o *FrameKeyOpts) { o.Scale = 2 },
		func(o *FrameKeyOpts) { o.Labels = "bold" },
	}
	for i, mod := range variants {
		o := base
		mod(&o)
		if FrameKey(o) == k {
			t.Errorf("variant %d should change the key", i)
		}
	}
}

func TestLayoutKey(t *testing.T) {
	k := LayoutKey("v1", "neato")
	if !strings.HasPrefix(k, "layout:") {
		t.Errorf("LayoutKey = %q, want layout: prefix", k)
	}
	if k == LayoutKey("v1", "fdp") || k == LayoutKey("v2", "neato") {
		t.Error("LayoutKey should depend on graph version and engine")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	cause := os.ErrDeadlineExceeded
	err := Retryable(cause)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != cause.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(cause) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = time.Second })
	ctx := context.Background()
	permanent := os.ErrPermission

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return permanent }); err != permanent || calls != 1 {
		t.Errorf("permanent: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(os.ErrDeadlineExceeded)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("transient: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(os.ErrDeadlineExceeded) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(os.ErrDeadlineExceeded)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
