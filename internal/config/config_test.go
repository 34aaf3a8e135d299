package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STAGE", "")
	t.Setenv("PORT", "")

	cfg, err := Load(newFlagSet(), []string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stage != StageDev || cfg.Port != 8080 || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DatabaseUrl != "" || cfg.Seed != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("PORT=9000\nLOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile := filepath.Join(dir, "battleship.yml")
	if err := os.WriteFile(cfgFile, []byte("port: 7000\nrules_file: rules.yml\nlog:\n  level: warn\n  max_size: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("STAGE", "")
	// godotenv never overrides variables that are already set
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	os.Unsetenv("LOG_LEVEL")
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(newFlagSet(), []string{"--env-file", envFile, "--config", cfgFile, "--seed", "5"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected env to win over file, port: 9000\tgot: %d", cfg.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected log level: debug\tgot: %s", cfg.Log.Level)
	}
	if cfg.Log.MaxSize != 42 || cfg.RulesFile != "rules.yml" {
		t.Fatalf("expected values from config file\tgot: %+v", cfg)
	}
	if cfg.Seed != 5 {
		t.Fatalf("expected seed: 5\tgot: %d", cfg.Seed)
	}

	cfg, err = Load(newFlagSet(), []string{"--env-file", envFile, "--port", "6000"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 6000 {
		t.Fatalf("expected flag to win, port: 6000\tgot: %d", cfg.Port)
	}
}

func TestLoadInvalidStage(t *testing.T) {
	t.Setenv("STAGE", "staging")

	_, err := Load(newFlagSet(), []string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	if err == nil {
		t.Fatal("unknown stage must fail")
	}
}
