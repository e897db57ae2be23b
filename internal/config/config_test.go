package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".quadlens.yml", `
primary_store_url: postgresql://localhost/quadlens
quality_fork_url: postgresql://localhost/quality
failure_policy: best_effort
max_bytes: 2048
`)
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.PrimaryStoreURL == nil || *cfg.PrimaryStoreURL != "postgresql://localhost/quadlens" {
		t.Fatalf("primary_store_url not parsed: %+v", cfg)
	}
	if cfg.FailurePolicy == nil || *cfg.FailurePolicy != "best_effort" {
		t.Fatalf("failure_policy not parsed: %+v", cfg)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 2048 {
		t.Fatalf("max_bytes not parsed: %+v", cfg)
	}
	if cfg.SecurityForkURL != nil {
		t.Fatalf("unset field should stay nil: %+v", cfg)
	}
}

func TestLoadLocalMissing(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory without config")
	}
}

func TestResolveStoresEnvWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://env/primary")
	t.Setenv("SECURITY_FORK_URL", "")
	t.Setenv("QUALITY_FORK_URL", "")
	t.Setenv("PERFORMANCE_FORK_URL", "")
	t.Setenv("BEST_PRACTICES_FORK_URL", "")

	localURL := "postgresql://file/primary"
	fork := "postgresql://file/security"
	local := FileConfig{PrimaryStoreURL: &localURL, SecurityForkURL: &fork}

	sc := ResolveStores(local, FileConfig{})
	if sc.PrimaryURL != "postgresql://env/primary" {
		t.Fatalf("env should win: %q", sc.PrimaryURL)
	}
	if sc.SecurityForkURL != fork {
		t.Fatalf("file value should apply when env is empty: %q", sc.SecurityForkURL)
	}
}

func TestResolveStoresLocalOverGlobal(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	localURL := "postgresql://local/db"
	globalURL := "postgresql://global/db"
	sc := ResolveStores(
		FileConfig{PrimaryStoreURL: &localURL},
		FileConfig{PrimaryStoreURL: &globalURL},
	)
	if sc.PrimaryURL != localURL {
		t.Fatalf("local should win over global: %q", sc.PrimaryURL)
	}
}

func TestValidate(t *testing.T) {
	if err := (StoreConfig{}).Validate(); !errors.Is(err, ErrNoPrimaryStore) {
		t.Fatalf("expected ErrNoPrimaryStore, got %v", err)
	}
	ok := StoreConfig{PrimaryURL: "postgresql://localhost/db"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	bad := StoreConfig{PrimaryURL: "postgresql://localhost/db", FailurePolicy: "retry"}
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown failure_policy should be rejected")
	}
	for _, p := range []string{"fail_fast", "best_effort"} {
		sc := StoreConfig{PrimaryURL: "postgresql://localhost/db", FailurePolicy: p}
		if err := sc.Validate(); err != nil {
			t.Fatalf("policy %q rejected: %v", p, err)
		}
	}
}

func TestPickPrecedence(t *testing.T) {
	local := "local"
	global := "global"
	if got := PickString("flag", &local, &global); got != "flag" {
		t.Fatalf("flag should win: %q", got)
	}
	if got := PickString("", &local, &global); got != "local" {
		t.Fatalf("local should win: %q", got)
	}
	if got := PickString("", nil, &global); got != "global" {
		t.Fatalf("global should apply: %q", got)
	}
	if got := PickString("", nil, nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
