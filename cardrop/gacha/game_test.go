package gacha

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/userstore"
	"github.com/cardropbot/cardrop/cardrop/userstore/mock"
	"go.uber.org/mock/gomock"
)

func storeMock(t *testing.T) *mock.MockStore {
	t.Helper()
	return mock.NewMockStore(gomock.NewController(t))
}

// testGame builds a Game over a real catalog directory seeded with the given
// filenames, a seeded drawer and a fixed clock.
func testGame(t *testing.T, store userstore.Store, files ...string) (*Game, time.Time) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}

	g := NewGame(catalog.NewLoader(dir, "drop"), store, NewDrawer(rand.NewSource(1)), time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	return g, now
}

func TestFreeDrawOnCooldown(t *testing.T) {
	store := storeMock(t)
	g, now := testGame(t, store, "drop_@alice_rare.png")

	store.EXPECT().
		GetOrCreate("1", "alice").
		Return(&userstore.Record{LastCard: now.Add(-30 * time.Minute).Unix()}, nil)

	res, err := g.FreeDraw("1", "alice")
	if err != nil {
		t.Fatalf("FreeDraw() error = %v", err)
	}
	if res.Status != DrawOnCooldown {
		t.Fatalf("FreeDraw() status = %v, want DrawOnCooldown", res.Status)
	}
	if res.Remaining != 30*time.Minute {
		t.Errorf("FreeDraw() remaining = %v, want 30m", res.Remaining)
	}
}

func TestFreeDrawAwardsNewCard(t *testing.T) {
	store := storeMock(t)
	g, now := testGame(t, store, "drop_@alice_rare.png")

	record := &userstore.Record{Balance: 10, Cards: []string{}}
	store.EXPECT().GetOrCreate("1", "alice").Return(record, nil)
	store.EXPECT().Replace("1", record).Return(nil)

	res, err := g.FreeDraw("1", "alice")
	if err != nil {
		t.Fatalf("FreeDraw() error = %v", err)
	}
	if res.Status != DrawOK {
		t.Fatalf("FreeDraw() status = %v, want DrawOK", res.Status)
	}
	if res.Repeated {
		t.Error("FreeDraw() repeated = true, want false")
	}
	if res.Points != 100 || res.Balance != 110 {
		t.Errorf("FreeDraw() points = %d balance = %d, want 100 and 110", res.Points, res.Balance)
	}
	if !record.OwnsCard("drop_@alice_rare.png") {
		t.Error("drawn card not added to collection")
	}
	if record.LastCard != now.Unix() {
		t.Errorf("LastCard = %d, want %d", record.LastCard, now.Unix())
	}
}

func TestFreeDrawRepeatedCardHalfPoints(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	record := &userstore.Record{Balance: 10, Cards: []string{"drop_@alice_rare.png"}}
	store.EXPECT().GetOrCreate("1", "alice").Return(record, nil)
	store.EXPECT().Replace("1", record).Return(nil)

	res, err := g.FreeDraw("1", "alice")
	if err != nil {
		t.Fatalf("FreeDraw() error = %v", err)
	}
	if !res.Repeated {
		t.Error("FreeDraw() repeated = false, want true")
	}
	if res.Points != 50 || res.Balance != 60 {
		t.Errorf("FreeDraw() points = %d balance = %d, want 50 and 60", res.Points, res.Balance)
	}
	if len(record.Cards) != 1 {
		t.Errorf("collection grew to %d entries on a repeat", len(record.Cards))
	}
}

func TestFreeDrawEmptyCatalog(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store)

	store.EXPECT().GetOrCreate("1", "alice").Return(&userstore.Record{}, nil)

	res, err := g.FreeDraw("1", "alice")
	if err != nil {
		t.Fatalf("FreeDraw() error = %v", err)
	}
	if res.Status != DrawNoCards {
		t.Errorf("FreeDraw() status = %v, want DrawNoCards", res.Status)
	}
}

func TestOpenCaseInsufficientFunds(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	store.EXPECT().GetOrCreate("1", "alice").Return(&userstore.Record{Balance: 1999}, nil)

	res, err := g.OpenCase("1", "alice", CaseMini)
	if err != nil {
		t.Fatalf("OpenCase() error = %v", err)
	}
	if res.Status != CaseInsufficientFunds {
		t.Fatalf("OpenCase() status = %v, want CaseInsufficientFunds", res.Status)
	}
	if res.Balance != 1999 {
		t.Errorf("OpenCase() balance = %d, want untouched 1999", res.Balance)
	}
}

func TestOpenCaseDeductsPriceAndAwards(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	record := &userstore.Record{Balance: 5000, Cards: []string{}}
	store.EXPECT().GetOrCreate("1", "alice").Return(record, nil)
	store.EXPECT().Replace("1", record).Return(nil)

	res, err := g.OpenCase("1", "alice", CaseMini)
	if err != nil {
		t.Fatalf("OpenCase() error = %v", err)
	}
	if res.Status != CaseOK {
		t.Fatalf("OpenCase() status = %v, want CaseOK", res.Status)
	}
	// 5000 - 2000 price + 100 rare points.
	if res.Balance != 3100 {
		t.Errorf("OpenCase() balance = %d, want 3100", res.Balance)
	}
	if !record.OwnsCard("drop_@alice_rare.png") {
		t.Error("case card not added to collection")
	}
}

func TestOpenCaseEmptyCatalogKeepsBalance(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store)

	store.EXPECT().GetOrCreate("1", "alice").Return(&userstore.Record{Balance: 5000}, nil)

	res, err := g.OpenCase("1", "alice", CaseMini)
	if err != nil {
		t.Fatalf("OpenCase() error = %v", err)
	}
	if res.Status != CaseNoCards {
		t.Fatalf("OpenCase() status = %v, want CaseNoCards", res.Status)
	}
	if res.Balance != 5000 {
		t.Errorf("OpenCase() balance = %d, want untouched 5000", res.Balance)
	}
}

func TestTransferNotOwned(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	store.EXPECT().GetOrCreate("1", "").Return(&userstore.Record{}, nil)

	status, err := g.Transfer("1", "@bob", "drop_@alice_rare.png")
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if status != TransferNotOwned {
		t.Errorf("Transfer() = %v, want TransferNotOwned", status)
	}
}

func TestTransferUnknownUser(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	store.EXPECT().
		GetOrCreate("1", "").
		Return(&userstore.Record{Cards: []string{"drop_@alice_rare.png"}}, nil)
	store.EXPECT().FindByUsername("bob").Return("", nil, false, nil)

	status, err := g.Transfer("1", "@bob", "drop_@alice_rare.png")
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if status != TransferUnknownUser {
		t.Errorf("Transfer() = %v, want TransferUnknownUser", status)
	}
}

func TestTransferToSelf(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	sender := &userstore.Record{Username: "alice", Cards: []string{"drop_@alice_rare.png"}}
	store.EXPECT().GetOrCreate("1", "").Return(sender, nil)
	store.EXPECT().FindByUsername("alice").Return("1", sender, true, nil)

	status, err := g.Transfer("1", "@alice", "drop_@alice_rare.png")
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if status != TransferSelf {
		t.Errorf("Transfer() = %v, want TransferSelf", status)
	}
	if !sender.OwnsCard("drop_@alice_rare.png") {
		t.Error("self transfer mutated the collection")
	}
}

func TestTransferMovesCard(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	sender := &userstore.Record{Cards: []string{"drop_@alice_rare.png"}}
	recipient := &userstore.Record{Username: "bob", Cards: []string{}}

	store.EXPECT().GetOrCreate("1", "").Return(sender, nil)
	store.EXPECT().FindByUsername("bob").Return("2", recipient, true, nil)
	store.EXPECT().Replace("1", sender).Return(nil)
	store.EXPECT().Replace("2", recipient).Return(nil)

	status, err := g.Transfer("1", "@bob", "drop_@alice_rare.png")
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if status != TransferOK {
		t.Fatalf("Transfer() = %v, want TransferOK", status)
	}
	if sender.OwnsCard("drop_@alice_rare.png") {
		t.Error("card still in sender collection")
	}
	if !recipient.OwnsCard("drop_@alice_rare.png") {
		t.Error("card missing from recipient collection")
	}
}

func TestResolveTargetNumericID(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store)

	bob := &userstore.Record{Username: "bob"}
	store.EXPECT().All().Return(map[string]*userstore.Record{"42": bob}, nil)

	id, record, ok, err := g.ResolveTarget("42")
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}
	if !ok || id != "42" || record != bob {
		t.Errorf("ResolveTarget(42) = %q, %+v, %v", id, record, ok)
	}
}

func TestResolveTargetMalformed(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store)

	// Neither an @handle nor a numeric id; the store is never consulted.
	_, _, ok, err := g.ResolveTarget("not-a-user")
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}
	if ok {
		t.Error("ResolveTarget(not-a-user) resolved")
	}
}

func TestGiveCardUnknownCard(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	status, err := g.GiveCard("@bob", "drop_@nobody_rare.png")
	if err != nil {
		t.Fatalf("GiveCard() error = %v", err)
	}
	if status != GiveUnknownCard {
		t.Errorf("GiveCard() = %v, want GiveUnknownCard", status)
	}
}

func TestGiveCardAlreadyOwned(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	bob := &userstore.Record{Cards: []string{"drop_@alice_rare.png"}}
	store.EXPECT().FindByUsername("bob").Return("2", bob, true, nil)

	status, err := g.GiveCard("@bob", "drop_@alice_rare.png")
	if err != nil {
		t.Fatalf("GiveCard() error = %v", err)
	}
	if status != GiveAlreadyOwned {
		t.Errorf("GiveCard() = %v, want GiveAlreadyOwned", status)
	}
}

func TestGiveCardGrants(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	bob := &userstore.Record{Cards: []string{}}
	store.EXPECT().FindByUsername("bob").Return("2", bob, true, nil)
	store.EXPECT().Replace("2", bob).Return(nil)

	status, err := g.GiveCard("@bob", "drop_@alice_rare.png")
	if err != nil {
		t.Fatalf("GiveCard() error = %v", err)
	}
	if status != GiveOK {
		t.Fatalf("GiveCard() = %v, want GiveOK", status)
	}
	if !bob.OwnsCard("drop_@alice_rare.png") {
		t.Error("granted card missing from collection")
	}
}

func TestAddAndRemovePoints(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store)

	bob := &userstore.Record{Balance: 100}
	store.EXPECT().FindByUsername("bob").Return("2", bob, true, nil).Times(2)
	store.EXPECT().Replace("2", bob).Return(nil).Times(2)

	balance, ok, err := g.AddPoints("@bob", 50)
	if err != nil || !ok {
		t.Fatalf("AddPoints() = %v, %v", ok, err)
	}
	if balance != 150 {
		t.Errorf("AddPoints() balance = %d, want 150", balance)
	}

	// Removing more than the balance clamps at zero.
	balance, ok, err = g.RemovePoints("@bob", 500)
	if err != nil || !ok {
		t.Fatalf("RemovePoints() = %v, %v", ok, err)
	}
	if balance != 0 {
		t.Errorf("RemovePoints() balance = %d, want 0", balance)
	}
}

func TestResetCooldown(t *testing.T) {
	store := storeMock(t)
	g, now := testGame(t, store)

	bob := &userstore.Record{LastCard: now.Unix()}
	store.EXPECT().FindByUsername("bob").Return("2", bob, true, nil)
	store.EXPECT().Replace("2", bob).Return(nil)

	ok, err := g.ResetCooldown("@bob")
	if err != nil || !ok {
		t.Fatalf("ResetCooldown() = %v, %v", ok, err)
	}
	if bob.LastCard != 0 {
		t.Errorf("LastCard = %d, want 0", bob.LastCard)
	}
}

func TestCollectionSkipsVanishedCards(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	store.EXPECT().
		GetOrCreate("1", "").
		Return(&userstore.Record{Cards: []string{"drop_@alice_rare.png", "drop_@gone_ultra.png"}}, nil)

	owned, err := g.Collection("1")
	if err != nil {
		t.Fatalf("Collection() error = %v", err)
	}
	if len(owned) != 1 || owned[0].ID != "drop_@alice_rare.png" {
		t.Errorf("Collection() = %+v, want just alice's card", owned)
	}
}

func TestStats(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png", "drop_@bob_ultra.png")

	store.EXPECT().All().Return(map[string]*userstore.Record{
		"1": {Balance: 100, Cards: []string{"drop_@alice_rare.png"}},
		"2": {Balance: 250, Cards: []string{"drop_@alice_rare.png", "drop_@bob_ultra.png"}},
	}, nil)

	stats, err := g.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Users != 2 || stats.TotalBalance != 350 || stats.TotalOwned != 3 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.CatalogSize != 2 || stats.PerRarity[catalog.RarityRare] != 1 || stats.PerRarity[catalog.RarityUltra] != 1 {
		t.Errorf("Stats() catalog = %d perRarity = %v", stats.CatalogSize, stats.PerRarity)
	}
}

func TestReloadCatalog(t *testing.T) {
	store := storeMock(t)
	g, _ := testGame(t, store, "drop_@alice_rare.png")

	if _, err := g.catalog.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	n, err := g.ReloadCatalog()
	if err != nil {
		t.Fatalf("ReloadCatalog() error = %v", err)
	}
	if n != 1 {
		t.Errorf("ReloadCatalog() = %d, want 1", n)
	}
}
