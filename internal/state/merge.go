package state

import (
	"slices"

	"github.com/otgil/otgil/internal/model"
)

// MergeItems overlays private onto public by ID. Public order is kept; an
// overridden item keeps its public position and private-only items follow
// in their own order.
func MergeItems(public, private []model.ClothingItem) []model.ClothingItem {
	out := make([]model.ClothingItem, 0, len(public)+len(private))
	pos := make(map[string]int, len(public)+len(private))
	for _, batch := range [][]model.ClothingItem{public, private} {
		for _, it := range batch {
			if i, ok := pos[it.ID]; ok {
				out[i] = it
				continue
			}
			pos[it.ID] = len(out)
			out = append(out, it)
		}
	}
	return out
}

// MergeParties concatenates batches, keeps the last version of every ID at
// the position of its first occurrence, then stable-sorts by date descending.
func MergeParties(batches ...[]model.Party) []model.Party {
	var out []model.Party
	pos := make(map[string]int)
	for _, batch := range batches {
		for _, p := range batch {
			if i, ok := pos[p.ID]; ok {
				out[i] = p
				continue
			}
			pos[p.ID] = len(out)
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Party) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// CreditBalance sums EARNED amounts and subtracts SPENT amounts. The stored
// sign is ignored; unknown types count for nothing.
func CreditBalance(credits []model.Credit) int {
	total := 0
	for _, c := range credits {
		total += c.Signed()
	}
	return total
}

// ImpactOf sums the per-category environmental factors over items.
// ItemsExchanged is the number of items.
func ImpactOf(items []model.ClothingItem) model.ImpactStats {
	stats := model.ImpactStats{ItemsExchanged: len(items)}
	for _, it := range items {
		f, ok := model.ImpactFactors[it.Category]
		if !ok {
			continue
		}
		stats.WaterSaved += f.Water
		stats.CO2Reduced += f.CO2
	}
	return stats
}
