package cardrop

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	// Token can live in the environment instead of the config file.
	if token := os.Getenv("CARDROP_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}

	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Bot    BotConfig    `toml:"bot"`
	Game   GameConfig   `toml:"game"`
	Health HealthConfig `toml:"health"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	AdminIDs  []snowflake.ID `toml:"admin_ids"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type GameConfig struct {
	CardsDir        string `toml:"cards_dir"`
	CardPrefix      string `toml:"card_prefix"`
	DataFile        string `toml:"data_file"`
	CooldownMinutes int    `toml:"cooldown_minutes"`
	ImageCacheSize  int    `toml:"image_cache_size"`
}

type HealthConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

func (c *Config) applyDefaults() {
	if c.Game.CardsDir == "" {
		c.Game.CardsDir = "cards"
	}
	if c.Game.CardPrefix == "" {
		c.Game.CardPrefix = "drop"
	}
	if c.Game.DataFile == "" {
		c.Game.DataFile = "data/users.json"
	}
	if c.Game.CooldownMinutes <= 0 {
		c.Game.CooldownMinutes = 60
	}
	if c.Health.Addr == "" {
		c.Health.Addr = ":8080"
	}
}

// Cooldown returns the free-draw cooldown as a duration.
func (c GameConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownMinutes) * time.Minute
}

// IsAdmin reports whether the user id is configured as an admin.
func (c BotConfig) IsAdmin(id snowflake.ID) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}
