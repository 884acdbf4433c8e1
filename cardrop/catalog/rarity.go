package catalog

// Rarity is one of the five card tiers, ordered from lowest to highest value.
type Rarity int

const (
	RarityCommonPlus Rarity = iota + 1
	RarityRare
	RarityEpic
	RarityLegendary
	RarityUltra
)

// Rarities lists all tiers in ascending order.
var Rarities = []Rarity{
	RarityCommonPlus,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityUltra,
}

var rarityTokens = map[string]Rarity{
	"common_plus": RarityCommonPlus,
	"rare":        RarityRare,
	"epic":        RarityEpic,
	"legendary":   RarityLegendary,
	"ultra":       RarityUltra,
}

// ParseRarity maps a filename token to its Rarity. The bool reports whether
// the token is one of the known tiers.
func ParseRarity(token string) (Rarity, bool) {
	r, ok := rarityTokens[token]
	return r, ok
}

func (r Rarity) String() string {
	switch r {
	case RarityCommonPlus:
		return "common_plus"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityUltra:
		return "ultra"
	default:
		return "unknown"
	}
}

// BasePoints returns the points awarded for drawing a new card of this tier.
// A repeated card awards half of this, floored.
func (r Rarity) BasePoints() int64 {
	switch r {
	case RarityCommonPlus:
		return 50
	case RarityRare:
		return 100
	case RarityEpic:
		return 200
	case RarityLegendary:
		return 500
	case RarityUltra:
		return 1000
	default:
		return 0
	}
}

func (r Rarity) Emoji() string {
	switch r {
	case RarityCommonPlus:
		return "🟢"
	case RarityRare:
		return "🔵"
	case RarityEpic:
		return "🟣"
	case RarityLegendary:
		return "🟡"
	case RarityUltra:
		return "🔴"
	default:
		return "⚪"
	}
}

// Color returns the embed accent color for this tier.
func (r Rarity) Color() int {
	switch r {
	case RarityCommonPlus:
		return 0x00FF00
	case RarityRare:
		return 0x0099FF
	case RarityEpic:
		return 0x800080
	case RarityLegendary:
		return 0xFFD700
	case RarityUltra:
		return 0xFF0000
	default:
		return 0x808080
	}
}
