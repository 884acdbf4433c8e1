package gacha

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/userstore"
)

// Game implements the collaborator-facing gacha operations over the catalog,
// draw engine and user store. Every mutating operation is a full
// load+modify+save cycle on the store; under sequential command dispatch
// that cycle is the atomic unit of work.
//
// Declinable outcomes (cooldowns, insufficient funds, validation failures)
// are reported as result statuses with no state mutated. Errors are reserved
// for storage and catalog failures, which propagate without retry.
type Game struct {
	catalog  *catalog.Loader
	store    userstore.Store
	drawer   *Drawer
	cooldown time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewGame(loader *catalog.Loader, store userstore.Store, drawer *Drawer, cooldown time.Duration) *Game {
	return &Game{
		catalog:  loader,
		store:    store,
		drawer:   drawer,
		cooldown: cooldown,
		now:      time.Now,
	}
}

type DrawStatus int

const (
	DrawOK DrawStatus = iota
	DrawOnCooldown
	DrawNoCards
)

// DrawResult is the outcome of a free draw or a case opening.
type DrawResult struct {
	Status    DrawStatus
	Card      *catalog.Card
	Repeated  bool
	Points    int64
	Balance   int64
	Remaining time.Duration
}

// award applies a drawn card to the record: a repeated card earns half the
// base points (floored) and is not appended a second time.
func award(record *userstore.Record, card *catalog.Card) (points int64, repeated bool) {
	points = card.Rarity.BasePoints()
	if record.OwnsCard(card.ID) {
		return points / 2, true
	}
	record.Cards = append(record.Cards, card.ID)
	return points, false
}

// FreeDraw performs the cooldown-gated free draw for the user.
func (g *Game) FreeDraw(userID, username string) (*DrawResult, error) {
	record, err := g.store.GetOrCreate(userID, username)
	if err != nil {
		return nil, err
	}

	ready, remaining := userstore.CheckCooldown(record.LastCard, g.now(), g.cooldown)
	if !ready {
		return &DrawResult{Status: DrawOnCooldown, Remaining: remaining}, nil
	}

	cards, err := g.catalog.Load()
	if err != nil {
		return nil, err
	}

	card := g.drawer.Draw(cards, FreeDrawTable)
	if card == nil {
		return &DrawResult{Status: DrawNoCards}, nil
	}

	points, repeated := award(record, card)
	record.Balance += points
	record.LastCard = g.now().Unix()

	if err := g.store.Replace(userID, record); err != nil {
		return nil, err
	}

	return &DrawResult{
		Status:   DrawOK,
		Card:     card,
		Repeated: repeated,
		Points:   points,
		Balance:  record.Balance,
	}, nil
}

type CaseStatus int

const (
	CaseOK CaseStatus = iota
	CaseInsufficientFunds
	CaseNoCards
)

// CaseResult is the outcome of a case purchase.
type CaseResult struct {
	Status   CaseStatus
	Tier     CaseTier
	Card     *catalog.Card
	Repeated bool
	Points   int64
	Balance  int64
}

// OpenCase buys and opens a case for the user. The price is only deducted
// when a card is actually produced, so a declined or empty-catalog purchase
// leaves the balance untouched.
func (g *Game) OpenCase(userID, username string, tier CaseTier) (*CaseResult, error) {
	record, err := g.store.GetOrCreate(userID, username)
	if err != nil {
		return nil, err
	}

	if record.Balance < tier.Price() {
		return &CaseResult{Status: CaseInsufficientFunds, Tier: tier, Balance: record.Balance}, nil
	}

	cards, err := g.catalog.Load()
	if err != nil {
		return nil, err
	}

	card := g.drawer.Draw(cards, tier.Chances())
	if card == nil {
		return &CaseResult{Status: CaseNoCards, Tier: tier, Balance: record.Balance}, nil
	}

	points, repeated := award(record, card)
	record.Balance = record.Balance - tier.Price() + points

	if err := g.store.Replace(userID, record); err != nil {
		return nil, err
	}

	return &CaseResult{
		Status:   CaseOK,
		Tier:     tier,
		Card:     card,
		Repeated: repeated,
		Points:   points,
		Balance:  record.Balance,
	}, nil
}

type TransferStatus int

const (
	TransferOK TransferStatus = iota
	TransferNotOwned
	TransferUnknownUser
	TransferSelf
)

// Transfer moves a card from one user's collection to another's. The target
// may be an "@username" handle or a numeric user id. Declined transfers
// leave both records unchanged.
func (g *Game) Transfer(fromID, target, cardID string) (TransferStatus, error) {
	sender, err := g.store.GetOrCreate(fromID, "")
	if err != nil {
		return 0, err
	}

	if !sender.OwnsCard(cardID) {
		return TransferNotOwned, nil
	}

	toID, recipient, ok, err := g.ResolveTarget(target)
	if err != nil {
		return 0, err
	}
	if !ok {
		return TransferUnknownUser, nil
	}
	if toID == fromID {
		return TransferSelf, nil
	}

	sender.RemoveCard(cardID)
	if err := g.store.Replace(fromID, sender); err != nil {
		return 0, err
	}

	if !recipient.OwnsCard(cardID) {
		recipient.Cards = append(recipient.Cards, cardID)
	}
	if err := g.store.Replace(toID, recipient); err != nil {
		return 0, err
	}

	return TransferOK, nil
}

// ResolveTarget resolves an "@username" handle or numeric user id to an
// existing user record. Unknown users are reported via the bool, not an
// error; records are never created here.
func (g *Game) ResolveTarget(target string) (string, *userstore.Record, bool, error) {
	if handle, found := strings.CutPrefix(target, "@"); found {
		return g.store.FindByUsername(handle)
	}

	if _, err := strconv.ParseUint(target, 10, 64); err != nil {
		return "", nil, false, nil
	}
	users, err := g.store.All()
	if err != nil {
		return "", nil, false, err
	}
	record, ok := users[target]
	if !ok {
		return "", nil, false, nil
	}
	return target, record, true, nil
}

type GiveStatus int

const (
	GiveOK GiveStatus = iota
	GiveUnknownUser
	GiveUnknownCard
	GiveAlreadyOwned
)

// GiveCard grants a catalog card to the target user (admin operation).
func (g *Game) GiveCard(target, cardID string) (GiveStatus, error) {
	card, err := g.catalog.FindByID(cardID)
	if err != nil {
		return 0, err
	}
	if card == nil {
		return GiveUnknownCard, nil
	}

	userID, record, ok, err := g.ResolveTarget(target)
	if err != nil {
		return 0, err
	}
	if !ok {
		return GiveUnknownUser, nil
	}

	if record.OwnsCard(cardID) {
		return GiveAlreadyOwned, nil
	}

	record.Cards = append(record.Cards, cardID)
	if err := g.store.Replace(userID, record); err != nil {
		return 0, err
	}
	return GiveOK, nil
}

// AddPoints credits points to the target's balance (admin operation). The
// bool reports whether the target user exists.
func (g *Game) AddPoints(target string, points int64) (int64, bool, error) {
	userID, record, ok, err := g.ResolveTarget(target)
	if err != nil || !ok {
		return 0, ok, err
	}
	record.Balance += points
	if err := g.store.Replace(userID, record); err != nil {
		return 0, true, err
	}
	return record.Balance, true, nil
}

// RemovePoints debits points from the target's balance, clamping at zero.
func (g *Game) RemovePoints(target string, points int64) (int64, bool, error) {
	userID, record, ok, err := g.ResolveTarget(target)
	if err != nil || !ok {
		return 0, ok, err
	}
	record.Balance -= points
	if record.Balance < 0 {
		record.Balance = 0
	}
	if err := g.store.Replace(userID, record); err != nil {
		return 0, true, err
	}
	return record.Balance, true, nil
}

// ResetCooldown clears the target's free-draw cooldown.
func (g *Game) ResetCooldown(target string) (bool, error) {
	userID, record, ok, err := g.ResolveTarget(target)
	if err != nil || !ok {
		return ok, err
	}
	record.LastCard = 0
	if err := g.store.Replace(userID, record); err != nil {
		return true, err
	}
	return true, nil
}

// Collection resolves a user's owned card ids against the catalog. Ids whose
// backing file has since vanished are skipped.
func (g *Game) Collection(userID string) ([]catalog.Card, error) {
	record, err := g.store.GetOrCreate(userID, "")
	if err != nil {
		return nil, err
	}

	cards, err := g.catalog.Load()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]catalog.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	owned := make([]catalog.Card, 0, len(record.Cards))
	for _, id := range record.Cards {
		if c, ok := byID[id]; ok {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

// Stats aggregates bot-wide numbers for the admin stats command.
type Stats struct {
	Users        int
	TotalBalance int64
	TotalOwned   int
	CatalogSize  int
	PerRarity    map[catalog.Rarity]int
}

func (g *Game) Stats() (*Stats, error) {
	users, err := g.store.All()
	if err != nil {
		return nil, err
	}

	stats := &Stats{Users: len(users)}
	for _, record := range users {
		stats.TotalBalance += record.Balance
		stats.TotalOwned += len(record.Cards)
	}

	counts, err := g.catalog.CountByRarity()
	if err != nil {
		return nil, err
	}
	stats.PerRarity = counts
	for _, n := range counts {
		stats.CatalogSize += n
	}
	return stats, nil
}

// ReloadCatalog invalidates the catalog cache and rescans the directory,
// returning the new card count (admin operation).
func (g *Game) ReloadCatalog() (int, error) {
	g.catalog.Invalidate()
	cards, err := g.catalog.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to reload catalog: %w", err)
	}
	return len(cards), nil
}
