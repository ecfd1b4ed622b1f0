package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pychain/forge/config"
)

func TestHolder_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	holder, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer holder.Stop()

	if got := holder.Get().Server.Port; got != 9090 {
		t.Fatalf("initial port = %d, want 9090", got)
	}

	var notified *config.Config
	holder.OnChange(func(cfg *config.Config) { notified = cfg })

	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := holder.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if got := holder.Get().Server.Port; got != 7070 {
		t.Errorf("reloaded port = %d, want 7070", got)
	}
	if notified == nil || notified.Server.Port != 7070 {
		t.Error("OnChange callback did not receive the new config")
	}
}

func TestHolder_ReloadFailureKeepsOldConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	holder, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer holder.Stop()

	// Invalid config on disk: reload must fail and leave the old one in place.
	if err := os.WriteFile(path, []byte("server:\n  port: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := holder.Reload(); err == nil {
		t.Fatal("expected reload error for invalid config")
	}
	if got := holder.Get().Server.Port; got != 9090 {
		t.Errorf("port after failed reload = %d, want 9090", got)
	}
}

func TestNewHolder_MissingFile(t *testing.T) {
	if _, err := config.NewHolder(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop()); err == nil {
		t.Error("expected error for missing config file")
	}
}
