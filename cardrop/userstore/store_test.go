package userstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) (Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "users.json")
	return NewJSONStore(path), path
}

func TestGetOrCreateNewUser(t *testing.T) {
	store, path := testStore(t)

	record, err := store.GetOrCreate("1", "alice")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if record.Username != "alice" || record.Balance != 0 || record.LastCard != 0 {
		t.Errorf("GetOrCreate() = %+v, want zero record named alice", record)
	}
	if record.Cards == nil || len(record.Cards) != 0 {
		t.Errorf("GetOrCreate() cards = %v, want empty non-nil slice", record.Cards)
	}

	// The new record is persisted immediately.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("user table not written: %v", err)
	}
	var users map[string]*Record
	if err := json.Unmarshal(data, &users); err != nil {
		t.Fatalf("user table not valid JSON: %v", err)
	}
	if _, ok := users["1"]; !ok {
		t.Errorf("user 1 missing from persisted table: %v", users)
	}
}

func TestGetOrCreateRefreshesUsername(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.GetOrCreate("1", "alice"); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	record, err := store.GetOrCreate("1", "alice_renamed")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if record.Username != "alice_renamed" {
		t.Errorf("username = %q, want alice_renamed", record.Username)
	}

	// An empty username leaves the stored one alone.
	record, err = store.GetOrCreate("1", "")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if record.Username != "alice_renamed" {
		t.Errorf("username = %q, want alice_renamed kept", record.Username)
	}
}

func TestReplaceRoundTrip(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.GetOrCreate("1", "alice"); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	updated := &Record{
		Username: "alice",
		Balance:  1234,
		LastCard: 1700000000,
		Cards:    []string{"drop_@bob_rare.png"},
	}
	if err := store.Replace("1", updated); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	record, err := store.GetOrCreate("1", "")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if record.Balance != 1234 || record.LastCard != 1700000000 || len(record.Cards) != 1 {
		t.Errorf("round-tripped record = %+v", record)
	}
}

func TestFindByUsernameCaseInsensitive(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.GetOrCreate("1", "Alice"); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	id, record, ok, err := store.FindByUsername("alice")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if !ok || id != "1" || record.Username != "Alice" {
		t.Errorf("FindByUsername(alice) = %q, %+v, %v", id, record, ok)
	}

	_, _, ok, err = store.FindByUsername("nobody")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if ok {
		t.Error("FindByUsername(nobody) resolved")
	}
}

func TestAllOnMissingFile(t *testing.T) {
	store, _ := testStore(t)

	users, err := store.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("All() = %v, want empty table", users)
	}
}

func TestAllRejectsCorruptTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewJSONStore(path)

	if _, err := store.All(); err == nil {
		t.Error("All() on corrupt table succeeded, want error")
	}
}

func TestRecordOwnsAndRemoveCard(t *testing.T) {
	r := &Record{Cards: []string{"a", "b", "c"}}

	if !r.OwnsCard("b") {
		t.Error("OwnsCard(b) = false")
	}
	if r.OwnsCard("d") {
		t.Error("OwnsCard(d) = true")
	}

	if !r.RemoveCard("b") {
		t.Error("RemoveCard(b) = false")
	}
	if r.OwnsCard("b") {
		t.Error("card b still owned after removal")
	}
	if r.RemoveCard("b") {
		t.Error("RemoveCard(b) succeeded twice")
	}
	if len(r.Cards) != 2 {
		t.Errorf("cards = %v, want 2 entries", r.Cards)
	}
}

func TestCheckCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cooldown := time.Hour

	tests := []struct {
		name          string
		lastCard      int64
		wantReady     bool
		wantRemaining time.Duration
	}{
		{"never drew", 0, true, 0},
		{"just drew", now.Unix(), false, time.Hour},
		{"mid cooldown", now.Add(-15 * time.Minute).Unix(), false, 45 * time.Minute},
		{"exactly elapsed", now.Add(-time.Hour).Unix(), true, 0},
		{"long since", now.Add(-time.Hour - time.Second).Unix(), true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ready, remaining := CheckCooldown(tt.lastCard, now, cooldown)
			if ready != tt.wantReady || remaining != tt.wantRemaining {
				t.Errorf("CheckCooldown() = %v, %v, want %v, %v",
					ready, remaining, tt.wantReady, tt.wantRemaining)
			}
		})
	}
}
