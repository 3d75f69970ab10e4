package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRootWithConfigFlag(t *testing.T, path string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "concore"}
	root.PersistentFlags().String("config", path, "")
	child := &cobra.Command{Use: "run"}
	root.AddCommand(child)
	return child
}

func TestLoadConfigFallsBackToDefault(t *testing.T) {
	cmd := newTestRootWithConfigFlag(t, "")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Executor.Fuzz {
		t.Fatal("default config should not enable fuzz")
	}
}

func TestLoadConfigReadsGivenPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "concore.toml")
	body := "[executor]\nfuzz = true\nseed = 7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newTestRootWithConfigFlag(t, path)
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Executor.Fuzz || cfg.Executor.Seed != 7 {
		t.Fatalf("cfg.Executor = %+v, want fuzz=true seed=7", cfg.Executor)
	}
}

func TestLoadConfigPropagatesLoadError(t *testing.T) {
	cmd := newTestRootWithConfigFlag(t, filepath.Join(t.TempDir(), "missing.toml"))
	if _, err := loadConfig(cmd); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
