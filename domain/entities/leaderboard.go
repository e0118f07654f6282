package entities

import (
	"strconv"
	"strings"
)

// PlayerSummary is one ranked row of the PlayerTotals table
type PlayerSummary struct {
	DiscordID string
	Total     int
	Bronze    int
	Silver    int
	Gold      int
	Diamond   int
}

// Count returns the count for a single tier
func (p PlayerSummary) Count(t Tier) int {
	switch t {
	case TierBronze:
		return p.Bronze
	case TierSilver:
		return p.Silver
	case TierGold:
		return p.Gold
	case TierDiamond:
		return p.Diamond
	default:
		return 0
	}
}

// PlayerSummaryFromRow parses a PlayerTotals row. Cells that are empty or not
// integers read as zero; their column names are returned so callers can log them.
func PlayerSummaryFromRow(row Row) (PlayerSummary, []string) {
	var invalid []string
	parse := func(column string) int {
		raw := strings.TrimSpace(row.Get(column))
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			// Sheets may hand back whole numbers formatted as floats
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil {
				invalid = append(invalid, column)
				return 0
			}
			return int(f)
		}
		return n
	}

	summary := PlayerSummary{
		DiscordID: row.Get("DiscordID"),
		Bronze:    parse("Bronze"),
		Silver:    parse("Silver"),
		Gold:      parse("Gold"),
		Diamond:   parse("Diamond"),
		Total:     parse("Total"),
	}
	return summary, invalid
}

// TierCounts maps every tier to the number of entries at that tier
type TierCounts map[Tier]int

// NewTierCounts returns counts zero-filled across all tiers
func NewTierCounts() TierCounts {
	counts := make(TierCounts, len(Tiers))
	for _, t := range Tiers {
		counts[t] = 0
	}
	return counts
}

// Total sums the counts across tiers
func (c TierCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// PersonalStats maps species to tier counts for a single user.
// Species without entries are absent rather than zero-filled.
type PersonalStats map[string]TierCounts
