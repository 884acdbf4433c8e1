package gacha

import (
	"math/rand"
	"sync"

	"github.com/cardropbot/cardrop/cardrop/catalog"
)

// Drawer performs weighted random card selection. The rand source is
// injected so distribution tests can seed it.
type Drawer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDrawer(src rand.Source) *Drawer {
	return &Drawer{rng: rand.New(src)}
}

// Draw picks one card from the catalog biased by the chance table.
//
// Cards are bucketed by rarity and the table is restricted to rarities that
// actually have cards; the remaining weights are renormalized, so a catalog
// missing e.g. ultra cards redistributes that probability mass
// proportionally instead of wasting draws. When no table rarity has cards
// at all the draw falls back to a uniform pick over the whole catalog.
// Returns nil only for an empty catalog.
func (d *Drawer) Draw(cards []catalog.Card, table ChanceTable) *catalog.Card {
	if len(cards) == 0 {
		return nil
	}

	buckets := make(map[catalog.Rarity][]*catalog.Card)
	for i := range cards {
		buckets[cards[i].Rarity] = append(buckets[cards[i].Rarity], &cards[i])
	}

	var available ChanceTable
	totalWeight := 0.0
	for _, chance := range table {
		if len(buckets[chance.Rarity]) == 0 {
			continue
		}
		available = append(available, chance)
		totalWeight += chance.Weight
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(available) == 0 || totalWeight <= 0 {
		return &cards[d.rng.Intn(len(cards))]
	}

	roll := d.rng.Float64() * totalWeight
	chosen := available[len(available)-1].Rarity
	for _, chance := range available {
		if roll < chance.Weight {
			chosen = chance.Rarity
			break
		}
		roll -= chance.Weight
	}

	bucket := buckets[chosen]
	return bucket[d.rng.Intn(len(bucket))]
}
