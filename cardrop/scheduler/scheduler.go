package scheduler

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cardropbot/cardrop/cardrop/gacha"
	"github.com/robfig/cron/v3"
)

// Scheduler runs background maintenance: an hourly snapshot of the user
// table and a daily stats summary in the log. Jobs only read game state or
// copy the table file; they never mutate records.
type Scheduler struct {
	cron     *cron.Cron
	game     *gacha.Game
	dataFile string
}

func New(game *gacha.Game, dataFile string) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		game:     game,
		dataFile: dataFile,
	}

	if _, err := s.cron.AddFunc("0 * * * *", s.snapshotUserTable); err != nil {
		return nil, fmt.Errorf("failed to schedule user table snapshot: %w", err)
	}
	if _, err := s.cron.AddFunc("0 6 * * *", s.logStats); err != nil {
		return nil, fmt.Errorf("failed to schedule stats summary: %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Maintenance jobs scheduled",
		slog.String("type", "sys"),
		slog.String("data_file", s.dataFile))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) snapshotUserTable() {
	data, err := os.ReadFile(s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		slog.Error("User table snapshot failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}

	backup := s.dataFile + ".bak"
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		slog.Error("User table snapshot failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}

	slog.Debug("User table snapshot written",
		slog.String("type", "sys"),
		slog.String("backup", backup))
}

func (s *Scheduler) logStats() {
	stats, err := s.game.Stats()
	if err != nil {
		slog.Error("Stats summary failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}

	slog.Info("Daily stats",
		slog.String("type", "game"),
		slog.Int("users", stats.Users),
		slog.Int64("total_balance", stats.TotalBalance),
		slog.Int("owned_cards", stats.TotalOwned),
		slog.Int("catalog_size", stats.CatalogSize),
	)
}
