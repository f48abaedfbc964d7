package services

import "sort"

// QuoteExportRow is a single row in the quote export: a card (level 0) or an
// attached add-on (level 1).
type QuoteExportRow struct {
	Level        int // 0 = card, 1 = add-on
	Name         string
	Category     string
	LocationName string
	Qty          int
	UnitFee      float64 // per unit per month
	MonthlyTotal float64
	InternalCost float64
}

// QuoteExportData holds everything the quote exports need.
type QuoteExportData struct {
	MerchantName string
	CreatedDate  string
	Rows         []QuoteExportRow
	Totals       QuoteTotals
}

// BuildQuoteExportData flattens the card list into export rows (add-ons
// indented under their card) and computes the totals. Cards are ordered by
// category, then name, so the export is stable regardless of insertion order.
// locationNames maps location ids to display names; unknown ids stay blank.
func BuildQuoteExportData(merchantName, createdDate string, cards []LineItemCard, locationNames map[string]string) QuoteExportData {
	ordered := make([]LineItemCard, len(cards))
	copy(ordered, cards)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Category != ordered[j].Category {
			return ordered[i].Category < ordered[j].Category
		}
		return ordered[i].Name < ordered[j].Name
	})

	data := QuoteExportData{
		MerchantName: merchantName,
		CreatedDate:  createdDate,
		Totals:       ComputeQuoteTotals(cards),
	}
	for _, card := range ordered {
		data.Rows = append(data.Rows, QuoteExportRow{
			Level:        0,
			Name:         card.Name,
			Category:     card.Category,
			LocationName: locationNames[card.LocationID],
			Qty:          card.Quantity,
			UnitFee:      card.MonthlyFee,
			MonthlyTotal: card.MonthlyFee * float64(card.Quantity),
			InternalCost: card.InternalCost * float64(card.Quantity),
		})
		for _, addon := range card.Addons {
			data.Rows = append(data.Rows, QuoteExportRow{
				Level:        1,
				Name:         addon.Name,
				Category:     card.Category,
				Qty:          addon.Quantity,
				UnitFee:      addon.MonthlyFee,
				MonthlyTotal: addon.MonthlyFee * float64(addon.Quantity),
				InternalCost: addon.InternalCost * float64(addon.Quantity),
			})
		}
	}
	return data
}
