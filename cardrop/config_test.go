package cardrop

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
[bot]
token = "file-token"
admin_ids = [123]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Game.CardsDir != "cards" || cfg.Game.CardPrefix != "drop" {
		t.Errorf("card defaults = %q %q", cfg.Game.CardsDir, cfg.Game.CardPrefix)
	}
	if cfg.Game.DataFile != "data/users.json" {
		t.Errorf("data file default = %q", cfg.Game.DataFile)
	}
	if cfg.Game.Cooldown() != time.Hour {
		t.Errorf("cooldown default = %v, want 1h", cfg.Game.Cooldown())
	}
	if cfg.Health.Addr != ":8080" {
		t.Errorf("health addr default = %q", cfg.Health.Addr)
	}
	if cfg.Bot.Token != "file-token" {
		t.Errorf("token = %q", cfg.Bot.Token)
	}
}

func TestLoadConfigEnvTokenOverride(t *testing.T) {
	path := writeConfig(t, `
[bot]
token = "file-token"
`)
	t.Setenv("CARDROP_TOKEN", "env-token")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Bot.Token != "env-token" {
		t.Errorf("token = %q, want env-token", cfg.Bot.Token)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig(missing) succeeded, want error")
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := BotConfig{AdminIDs: []snowflake.ID{snowflake.ID(123)}}
	if !cfg.IsAdmin(snowflake.ID(123)) {
		t.Error("IsAdmin(123) = false")
	}
	if cfg.IsAdmin(snowflake.ID(456)) {
		t.Error("IsAdmin(456) = true")
	}
}
