package entities

// Tier is an ordered milestone rank, lowest to highest
type Tier string

const (
	TierBronze  Tier = "Bronze"
	TierSilver  Tier = "Silver"
	TierGold    Tier = "Gold"
	TierDiamond Tier = "Diamond"
)

// Tiers lists every tier in ascending order
var Tiers = []Tier{TierBronze, TierSilver, TierGold, TierDiamond}

// ParseTier returns the tier whose name matches s exactly
func ParseTier(s string) (Tier, bool) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Rank returns the zero-based position of the tier, or -1 for unknown values
func (t Tier) Rank() int {
	for i, known := range Tiers {
		if known == t {
			return i
		}
	}
	return -1
}

// IsValid reports whether t is one of the known tiers
func (t Tier) IsValid() bool {
	return t.Rank() >= 0
}

func (t Tier) String() string {
	return string(t)
}
