package booking

import (
	"fmt"
	"sort"

	"courtside/models"

	"go.uber.org/zap"
)

// PriceByTime resolves the active tier price for a time of day. Tiers are
// scanned in list order and the first tier with start <= t < end wins. A miss
// resolves to 0 so a broken tier table degrades instead of failing a render;
// the miss is logged because it would otherwise surface as a free booking.
func PriceByTime(tiers []models.PriceTier, clock string) int {
	t, ok := parseClock(clock)
	if !ok {
		return 0
	}
	for _, tier := range tiers {
		start, ok1 := parseClock(tier.StartTime)
		end, ok2 := parseClock(tier.EndTime)
		if !ok1 || !ok2 {
			continue
		}
		if t >= start && t < end {
			return tier.Price
		}
	}
	zap.L().Warn("no price tier covers time", zap.String("time", clock))
	return 0
}

// CalculateTotal sums the tier price at each selected slot's start time
// against its owning court. Slots referencing a court absent from the list
// contribute zero.
func CalculateTotal(selected []models.SelectedSlot, courts []models.Court) int {
	total := 0
	for _, s := range selected {
		var court *models.Court
		for i := range courts {
			if courts[i].ID == s.CourtID {
				court = &courts[i]
				break
			}
		}
		if court == nil {
			continue
		}
		total += PriceByTime(court.Prices, s.StartTime)
	}
	return total
}

// ValidateTiers checks that a court's tiers form a clean partition of the day
// segment they cover: well-formed bounds, no overlap, no gaps. Resolution
// stays first-match either way; this makes a broken table visible when the
// snapshot is loaded rather than at lookup time.
func ValidateTiers(tiers []models.PriceTier) error {
	if len(tiers) == 0 {
		return nil
	}
	sorted := make([]models.PriceTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })

	for i, tier := range sorted {
		start, ok1 := parseClock(tier.StartTime)
		end, ok2 := parseClock(tier.EndTime)
		if !ok1 || !ok2 {
			return fmt.Errorf("tier %d has malformed bounds %q-%q", i, tier.StartTime, tier.EndTime)
		}
		if start >= end {
			return fmt.Errorf("tier %d is empty or inverted (%s-%s)", i, tier.StartTime, tier.EndTime)
		}
		if i == 0 {
			continue
		}
		switch prev := sorted[i-1]; {
		case tier.StartTime < prev.EndTime:
			return fmt.Errorf("tiers overlap at %s (%s-%s vs %s-%s)",
				tier.StartTime, prev.StartTime, prev.EndTime, tier.StartTime, tier.EndTime)
		case tier.StartTime > prev.EndTime:
			return fmt.Errorf("tier gap between %s and %s", prev.EndTime, tier.StartTime)
		}
	}
	return nil
}
