package logs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInitWritesJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "battleship.log")

	if err := Init("test", LogConfig{Level: "debug", FileDir: file, Quiet: true}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Info("game created", zap.String("gameUuid", "abc123"))
	Debug("debug line")
	if err := Sync(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines\tgot: %d", len(lines))
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["msg"] != "game created" || entry["gameUuid"] != "abc123" || entry["logger"] != "test" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["level"] != "INFO" {
		t.Fatalf("expected level: INFO\tgot: %v", entry["level"])
	}
}

func TestInitLevelFilters(t *testing.T) {
	file := filepath.Join(t.TempDir(), "battleship.log")

	if err := Init("test", LogConfig{Level: "WARN", FileDir: file, Quiet: true}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Info("dropped")
	Warn("kept")
	_ = Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("unexpected log content: %s", data)
	}
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	file := filepath.Join(t.TempDir(), "battleship.log")
	if err := Init("test", LogConfig{Level: "loud", FileDir: file, Quiet: true}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	if L().Core().Enabled(zap.DebugLevel) {
		t.Fatal("debug must be disabled on fallback level")
	}
	if !L().Core().Enabled(zap.InfoLevel) {
		t.Fatal("info must be enabled on fallback level")
	}
}
