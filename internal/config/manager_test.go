package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseYAML(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `
token: "123:abc"
page_size: 5
log:
  level: debug
  console: true
`)
	cfg, err := NewManager(path).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Token != "123:abc" || cfg.PageSize != 5 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `token: "123:abc"`)
	cfg, err := NewManager(path).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("page_size default = %d, want 10", cfg.PageSize)
	}
	if cfg.GuardCapacity != 256 {
		t.Fatalf("guard_capacity default = %d, want 256", cfg.GuardCapacity)
	}
	if cfg.RefreshSpec != "@hourly" {
		t.Fatalf("refresh_spec default = %q", cfg.RefreshSpec)
	}
	if !cfg.Log.Console {
		t.Fatalf("console logging should default on when no sink is configured")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `
token: "123:abc"
pagesize: 5
`)
	if _, err := NewManager(path).Parse(); err == nil {
		t.Fatalf("unknown field accepted")
	}
}

func TestParseRejectsMissingToken(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `page_size: 5`)
	if _, err := NewManager(path).Parse(); err == nil {
		t.Fatalf("missing token accepted")
	}
}

func TestParseJSON(t *testing.T) {
	path := writeConfig(t, "bot.json", `{"token":"123:abc","page_size":7}`)
	cfg, err := NewManager(path).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.PageSize != 7 {
		t.Fatalf("page_size = %d", cfg.PageSize)
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	path := writeConfig(t, "bot.json", `{"token":"123:abc"}{"token":"x"}`)
	if _, err := NewManager(path).Parse(); err == nil {
		t.Fatalf("trailing data accepted")
	}
}

func TestLoadCommits(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `token: "123:abc"`)
	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Get() == nil || m.Get().Token != "123:abc" {
		t.Fatalf("Get after Load = %+v", m.Get())
	}
}

func TestWatchReloadsOnContentChange(t *testing.T) {
	body := "token: \"123:abc\"\npage_size: 5\n"
	path := writeConfig(t, "bot.yaml", body)
	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	changed := make(chan *Config, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = m.Watch(ctx, func(cfg *Config) { changed <- cfg })
	}()
	// give the watcher time to register before touching the file
	time.Sleep(150 * time.Millisecond)

	// rewriting identical content must not fan out
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	select {
	case cfg := <-changed:
		t.Fatalf("unchanged content triggered reload: %+v", cfg)
	case <-time.After(3 * watchDebounce):
	}

	if err := os.WriteFile(path, []byte("token: \"123:abc\"\npage_size: 9\n"), 0o644); err != nil {
		t.Fatalf("update config: %v", err)
	}
	select {
	case cfg := <-changed:
		if cfg.PageSize != 9 {
			t.Fatalf("reloaded page_size = %d, want 9", cfg.PageSize)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("changed content never triggered reload")
	}
	if m.Get().PageSize != 9 {
		t.Fatalf("committed page_size = %d, want 9", m.Get().PageSize)
	}

	cancel()
	<-done
}

func TestWatchKeepsPreviousOnBadReload(t *testing.T) {
	path := writeConfig(t, "bot.yaml", "token: \"123:abc\"\npage_size: 5\n")
	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = m.Watch(ctx, nil)
	}()
	time.Sleep(150 * time.Millisecond)

	if err := os.WriteFile(path, []byte("token: [broken\n"), 0o644); err != nil {
		t.Fatalf("update config: %v", err)
	}
	time.Sleep(5 * watchDebounce)
	if got := m.Get(); got == nil || got.PageSize != 5 {
		t.Fatalf("bad reload replaced config: %+v", got)
	}

	cancel()
	<-done
}
