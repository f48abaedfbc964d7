package services

import "fmt"

// CategoryTotals is the per-category slice of a quote's totals.
type CategoryTotals struct {
	MonthlyFee   float64
	InternalCost float64
}

// QuoteTotals is derived from the current card list on every call and never
// stored; there is no running total that could drift from the cards.
type QuoteTotals struct {
	PerCategory       map[string]CategoryTotals
	TotalMonthlyFee   float64
	TotalInternalCost float64
	TotalMargin       float64
	TotalYearlyFee    float64
	TotalDeviceUnits  int
	TotalServiceUnits int
}

// cardMonthly returns the card's effective monthly fee and internal cost:
// its own per-unit values times quantity plus the same for every attached
// add-on. A zero quantity (structurally impossible through SetQuantity) is
// treated as contributing nothing.
func cardMonthly(c LineItemCard) (fee, cost float64) {
	if c.Quantity > 0 {
		fee = c.MonthlyFee * float64(c.Quantity)
		cost = c.InternalCost * float64(c.Quantity)
	}
	for _, a := range c.Addons {
		if a.Quantity > 0 {
			fee += a.MonthlyFee * float64(a.Quantity)
			cost += a.InternalCost * float64(a.Quantity)
		}
	}
	return fee, cost
}

// ComputeQuoteTotals aggregates the card list into per-category and grand
// totals. It never fails and is order-independent: any permutation of cards
// yields the same result.
func ComputeQuoteTotals(cards []LineItemCard) QuoteTotals {
	totals := QuoteTotals{PerCategory: make(map[string]CategoryTotals)}
	for _, card := range cards {
		fee, cost := cardMonthly(card)
		cat := totals.PerCategory[card.Category]
		cat.MonthlyFee += fee
		cat.InternalCost += cost
		totals.PerCategory[card.Category] = cat

		totals.TotalMonthlyFee += fee
		totals.TotalInternalCost += cost

		switch card.Kind {
		case KindDevice:
			totals.TotalDeviceUnits += card.Quantity
		case KindService:
			totals.TotalServiceUnits += card.Quantity
		}
	}
	totals.TotalMargin = totals.TotalMonthlyFee - totals.TotalInternalCost
	totals.TotalYearlyFee = totals.TotalMonthlyFee * 12
	return totals
}

// FinalizeQuote checks quote completeness and returns the totals. When the
// merchant has more than one business location, every non-addon card must
// carry a location assignment; the first card without one fails the call.
func FinalizeQuote(cards []LineItemCard, locationCount int) (QuoteTotals, error) {
	if locationCount > 1 {
		for _, card := range cards {
			if card.Kind != KindAddon && card.LocationID == "" {
				return QuoteTotals{}, fmt.Errorf("card %q: %w", card.Name, ErrMissingLocation)
			}
		}
	}
	return ComputeQuoteTotals(cards), nil
}

// ClearQuote is the only bulk removal: it drops every card. Partial bulk
// removal is always expressed as repeated single removals by the caller.
func ClearQuote(cards []LineItemCard) []LineItemCard {
	return nil
}
