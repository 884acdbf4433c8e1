package userstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Record is the persisted per-user state. Card ids are set-like: a repeated
// draw never appends a second copy.
type Record struct {
	Username string   `json:"username"`
	Balance  int64    `json:"balance"`
	LastCard int64    `json:"last_card"`
	Cards    []string `json:"cards"`
}

// OwnsCard reports whether the record already holds the given card id.
func (r *Record) OwnsCard(cardID string) bool {
	for _, id := range r.Cards {
		if id == cardID {
			return true
		}
	}
	return false
}

// RemoveCard drops the card id from the record. The bool reports whether it
// was present.
func (r *Record) RemoveCard(cardID string) bool {
	for i, id := range r.Cards {
		if id == cardID {
			r.Cards = append(r.Cards[:i], r.Cards[i+1:]...)
			return true
		}
	}
	return false
}

// Store persists one Record per user id. The interface isolates callers from
// the flat-file implementation so a real per-key store can be swapped in
// later without touching them.
type Store interface {
	// GetOrCreate returns the record for the user, creating and persisting a
	// zero-value one on first access. A non-empty username that differs from
	// the stored one is refreshed opportunistically.
	GetOrCreate(userID string, username string) (*Record, error)
	// Replace writes the full record for the user, persisting the whole table.
	Replace(userID string, record *Record) error
	// All returns the full table keyed by user id.
	All() (map[string]*Record, error)
	// FindByUsername resolves a display handle (without "@") to a user id,
	// case-insensitively. The bool reports whether the user is known.
	FindByUsername(username string) (string, *Record, bool, error)
}

// jsonStore keeps the whole user table in a single JSON document which is
// read and rewritten in full on every mutation. Readers always see a fully
// committed prior state; concurrent writers are last-write-wins. That is the
// accepted trade-off under sequential command dispatch, not a bug.
type jsonStore struct {
	path string
}

func NewJSONStore(path string) Store {
	return &jsonStore{path: path}
}

func (s *jsonStore) load() (map[string]*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Record{}, nil
		}
		return nil, fmt.Errorf("failed to read user table %s: %w", s.path, err)
	}

	users := map[string]*Record{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user table %s: %w", s.path, err)
	}
	return users, nil
}

func (s *jsonStore) save(users map[string]*Record) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode user table: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user table %s: %w", s.path, err)
	}
	return nil
}

func (s *jsonStore) GetOrCreate(userID string, username string) (*Record, error) {
	users, err := s.load()
	if err != nil {
		return nil, err
	}

	record, ok := users[userID]
	if !ok {
		record = &Record{Cards: []string{}}
		if username != "" {
			record.Username = username
		}
		users[userID] = record
		if err := s.save(users); err != nil {
			return nil, err
		}
		return record, nil
	}

	if username != "" && record.Username != username {
		record.Username = username
		if err := s.save(users); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (s *jsonStore) Replace(userID string, record *Record) error {
	users, err := s.load()
	if err != nil {
		return err
	}
	users[userID] = record
	return s.save(users)
}

func (s *jsonStore) All() (map[string]*Record, error) {
	return s.load()
}

func (s *jsonStore) FindByUsername(username string) (string, *Record, bool, error) {
	users, err := s.load()
	if err != nil {
		return "", nil, false, err
	}
	for id, record := range users {
		if strings.EqualFold(record.Username, username) {
			return id, record, true, nil
		}
	}
	return "", nil, false, nil
}

// CheckCooldown reports whether a free draw is available and, if not, how
// long remains. A zero lastCard means the user never drew and is always
// ready. The remaining duration is floored to whole seconds.
func CheckCooldown(lastCard int64, now time.Time, cooldown time.Duration) (bool, time.Duration) {
	if lastCard == 0 {
		return true, 0
	}
	elapsed := now.Sub(time.Unix(lastCard, 0))
	if elapsed >= cooldown {
		return true, 0
	}
	return false, (cooldown - elapsed).Truncate(time.Second)
}
