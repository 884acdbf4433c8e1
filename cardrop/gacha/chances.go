package gacha

import "github.com/cardropbot/cardrop/cardrop/catalog"

// Chance is one rarity's weight within a ChanceTable.
type Chance struct {
	Rarity catalog.Rarity
	Weight float64
}

// ChanceTable is an ordered probability distribution over rarities. Weights
// need not sum to 1; the draw renormalizes over the rarities that actually
// have cards. Order is preserved for deterministic tie handling.
type ChanceTable []Chance

// Weight returns the configured weight for a tier, zero when absent.
func (t ChanceTable) Weight(r catalog.Rarity) float64 {
	for _, c := range t {
		if c.Rarity == r {
			return c.Weight
		}
	}
	return 0
}

var (
	// FreeDrawTable biases the hourly free draw.
	FreeDrawTable = ChanceTable{
		{catalog.RarityCommonPlus, 0.40},
		{catalog.RarityRare, 0.30},
		{catalog.RarityEpic, 0.15},
		{catalog.RarityLegendary, 0.10},
		{catalog.RarityUltra, 0.05},
	}

	miniCaseTable = ChanceTable{
		{catalog.RarityCommonPlus, 0.60},
		{catalog.RarityRare, 0.25},
		{catalog.RarityEpic, 0.10},
		{catalog.RarityLegendary, 0.04},
		{catalog.RarityUltra, 0.01},
	}

	secretCaseTable = ChanceTable{
		{catalog.RarityCommonPlus, 0.45},
		{catalog.RarityRare, 0.30},
		{catalog.RarityEpic, 0.15},
		{catalog.RarityLegendary, 0.07},
		{catalog.RarityUltra, 0.03},
	}

	megaCaseTable = ChanceTable{
		{catalog.RarityCommonPlus, 0.30},
		{catalog.RarityRare, 0.30},
		{catalog.RarityEpic, 0.25},
		{catalog.RarityLegendary, 0.10},
		{catalog.RarityUltra, 0.05},
	}
)

// CaseTier is one of the priced case draws, each with its own distribution.
type CaseTier int

const (
	CaseMini CaseTier = iota
	CaseSecret
	CaseMega
)

// CaseTiers lists the tiers in shop order.
var CaseTiers = []CaseTier{CaseMini, CaseSecret, CaseMega}

// ParseCaseTier maps a component/custom id token to its tier.
func ParseCaseTier(token string) (CaseTier, bool) {
	switch token {
	case "mini":
		return CaseMini, true
	case "secret":
		return CaseSecret, true
	case "mega":
		return CaseMega, true
	default:
		return 0, false
	}
}

func (t CaseTier) String() string {
	switch t {
	case CaseMini:
		return "mini"
	case CaseSecret:
		return "secret"
	case CaseMega:
		return "mega"
	default:
		return "unknown"
	}
}

// DisplayName is the human-facing case name used in shop embeds.
func (t CaseTier) DisplayName() string {
	switch t {
	case CaseMini:
		return "Mini Case"
	case CaseSecret:
		return "Secret Case"
	case CaseMega:
		return "Mega Case"
	default:
		return "Unknown Case"
	}
}

func (t CaseTier) Price() int64 {
	switch t {
	case CaseMini:
		return 2000
	case CaseSecret:
		return 5000
	case CaseMega:
		return 10000
	default:
		return 0
	}
}

func (t CaseTier) Chances() ChanceTable {
	switch t {
	case CaseMini:
		return miniCaseTable
	case CaseSecret:
		return secretCaseTable
	case CaseMega:
		return megaCaseTable
	default:
		return nil
	}
}
