package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/config"
)

func writeConfig(t *testing.T, path, name string) {
	t.Helper()
	content := "name: " + name + "\nversion: \"1.0\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestWatcherInitialLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	writeConfig(t, path, "first")

	var mu sync.Mutex
	var loaded []*config.AgentConfig

	w, err := NewWatcher(path, func(cfg *config.AgentConfig) {
		mu.Lock()
		defer mu.Unlock()
		loaded = append(loaded, cfg)
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(loaded) != 1 {
		t.Fatalf("reload count = %d, want 1", len(loaded))
	}
	if loaded[0].Name != "first" {
		t.Errorf("loaded Name = %q, want first", loaded[0].Name)
	}
}

func TestWatcherReloadOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	writeConfig(t, path, "first")

	var mu sync.Mutex
	var names []string

	w, err := NewWatcher(path, func(cfg *config.AgentConfig) {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, cfg.Name)
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	writeConfig(t, path, "second")

	deadline := time.Now().Add(3 * time.Second)
	for {
		mu.Lock()
		n := len(names)
		mu.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for reload")
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if names[len(names)-1] != "second" {
		t.Errorf("last reload Name = %q, want second", names[len(names)-1])
	}
}

func TestWatcherBadChangeKeepsOldConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	writeConfig(t, path, "first")

	var mu sync.Mutex
	var reloads int
	var errCount int

	w, err := NewWatcher(path, func(cfg *config.AgentConfig) {
		mu.Lock()
		defer mu.Unlock()
		reloads++
	},
		WithDebounce(10*time.Millisecond),
		WithErrorFunc(func(err error) {
			mu.Lock()
			defer mu.Unlock()
			errCount++
		}),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	// Invalid YAML triggers the error callback, not a reload.
	if err := os.WriteFile(path, []byte("name: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		mu.Lock()
		e := errCount
		r := reloads
		mu.Unlock()
		if e >= 1 {
			if r != 1 {
				t.Errorf("reloads = %d, want 1 (initial only)", r)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for error callback")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherStartFailsOnMissingFile(t *testing.T) {
	t.Parallel()

	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), func(*config.AgentConfig) {})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Start(context.Background()); err == nil {
		t.Error("Start() error = nil, want load failure")
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	writeConfig(t, path, "first")

	w, err := NewWatcher(path, func(*config.AgentConfig) {})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() twice error = %v", err)
	}
}
