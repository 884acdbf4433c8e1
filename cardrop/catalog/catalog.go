package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Card is a single catalog entry. Immutable once loaded; the ID doubles as
// the source filename.
type Card struct {
	ID       string
	Author   string
	Rarity   Rarity
	FilePath string
}

// Loader scans a flat directory of card images and keeps the parsed catalog
// cached until Invalidate is called. Eligible filenames follow
// "<prefix>_@<author>_<rarity>.<ext>"; the author part may itself contain
// underscores, so the rightmost rarity token before the extension wins.
type Loader struct {
	dir     string
	pattern *regexp.Regexp

	mu    sync.Mutex
	cards []Card
}

func NewLoader(dir, prefix string) *Loader {
	tokens := make([]string, 0, len(Rarities))
	for _, r := range Rarities {
		tokens = append(tokens, r.String())
	}
	pattern := regexp.MustCompile(
		"^" + regexp.QuoteMeta(prefix) + "_@(.+)_(" + strings.Join(tokens, "|") + ")\\.[^.]+$",
	)
	return &Loader{
		dir:     dir,
		pattern: pattern,
	}
}

// Load returns the cached catalog, scanning the directory on first use.
// Files that don't match the filename pattern are skipped with a diagnostic,
// never aborting the scan. A missing directory is created and yields an
// empty catalog.
func (l *Loader) Load() ([]Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cards != nil {
		return l.cards, nil
	}

	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		if err := os.MkdirAll(l.dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create card directory %s: %w", l.dir, err)
		}
		slog.Info("Card directory created",
			slog.String("type", "sys"),
			slog.String("dir", l.dir))
		l.cards = []Card{}
		return l.cards, nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read card directory %s: %w", l.dir, err)
	}

	cards := make([]Card, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		m := l.pattern.FindStringSubmatch(name)
		if m == nil {
			slog.Warn("Skipping card file with unrecognized name",
				slog.String("type", "sys"),
				slog.String("file", name))
			continue
		}

		rarity, ok := ParseRarity(m[2])
		if !ok {
			slog.Warn("Skipping card file with unknown rarity",
				slog.String("type", "sys"),
				slog.String("file", name),
				slog.String("rarity", m[2]))
			continue
		}

		cards = append(cards, Card{
			ID:       name,
			Author:   m[1],
			Rarity:   rarity,
			FilePath: filepath.Join(l.dir, name),
		})
	}

	slog.Info("Card catalog loaded",
		slog.String("type", "sys"),
		slog.String("dir", l.dir),
		slog.Int("cards", len(cards)))

	l.cards = cards
	return l.cards, nil
}

// Invalidate clears the cache so the next Load rescans the directory.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cards = nil
}

// FindByID returns the card with the given id, or nil if absent.
func (l *Loader) FindByID(id string) (*Card, error) {
	cards, err := l.Load()
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i], nil
		}
	}
	return nil, nil
}

// FindByRarity returns all cards of the given tier, in catalog order.
func (l *Loader) FindByRarity(rarity Rarity) ([]Card, error) {
	cards, err := l.Load()
	if err != nil {
		return nil, err
	}
	var matched []Card
	for _, c := range cards {
		if c.Rarity == rarity {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// CountByRarity returns the number of catalog cards per tier.
func (l *Loader) CountByRarity() (map[Rarity]int, error) {
	cards, err := l.Load()
	if err != nil {
		return nil, err
	}
	counts := make(map[Rarity]int, len(Rarities))
	for _, r := range Rarities {
		counts[r] = 0
	}
	for _, c := range cards {
		counts[c.Rarity]++
	}
	return counts, nil
}
