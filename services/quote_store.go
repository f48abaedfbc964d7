package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// CardFromRecord maps a quote_items record onto a LineItemCard. Add-ons are
// not resolved here; LoadQuoteCards nests them under their parents.
func CardFromRecord(record *core.Record) LineItemCard {
	return LineItemCard{
		ID:           record.Id,
		CatalogRef:   record.GetString("catalog_item"),
		Kind:         CatalogKind(record.GetString("kind")),
		Category:     record.GetString("category"),
		Name:         record.GetString("name"),
		Description:  record.GetString("description"),
		Quantity:     record.GetInt("quantity"),
		MonthlyFee:   record.GetFloat("monthly_fee"),
		InternalCost: record.GetFloat("internal_cost"),
		LocationID:   record.GetString("location"),
		CustomText:   record.GetString("custom_text"),
	}
}

// ApplyCardToRecord writes a LineItemCard's fields onto a quote_items record.
// The merchant and parent_item relations are set by the caller.
func ApplyCardToRecord(record *core.Record, card LineItemCard) {
	record.Set("catalog_item", card.CatalogRef)
	record.Set("kind", string(card.Kind))
	record.Set("category", card.Category)
	record.Set("name", card.Name)
	record.Set("description", card.Description)
	record.Set("quantity", card.Quantity)
	record.Set("monthly_fee", card.MonthlyFee)
	record.Set("internal_cost", card.InternalCost)
	record.Set("location", card.LocationID)
	record.Set("custom_text", card.CustomText)
}

// LoadQuoteCards reads all quote_items of a merchant and assembles them into
// cards with their add-ons nested. Cards keep their sort_order; add-ons
// follow record order.
func LoadQuoteCards(app *pocketbase.PocketBase, merchantID string) ([]LineItemCard, error) {
	records, err := app.FindRecordsByFilter(
		"quote_items",
		"merchant = {:merchantId}",
		"sort_order,created",
		0,
		0,
		map[string]any{"merchantId": merchantID},
	)
	if err != nil {
		return nil, fmt.Errorf("load quote items: %w", err)
	}

	cards := make([]LineItemCard, 0, len(records))
	index := make(map[string]int)
	for _, rec := range records {
		if rec.GetString("parent_item") != "" {
			continue
		}
		index[rec.Id] = len(cards)
		cards = append(cards, CardFromRecord(rec))
	}
	for _, rec := range records {
		parentID := rec.GetString("parent_item")
		if parentID == "" {
			continue
		}
		i, ok := index[parentID]
		if !ok {
			// Orphaned add-on, surface it as a top-level card rather
			// than dropping it silently.
			cards = append(cards, CardFromRecord(rec))
			continue
		}
		cards[i].Addons = append(cards[i].Addons, CardFromRecord(rec))
	}
	return cards, nil
}

// LocationNames returns an id -> display name map for a merchant's business
// locations.
func LocationNames(app *pocketbase.PocketBase, merchantID string) (map[string]string, error) {
	records, err := app.FindRecordsByFilter(
		"business_locations",
		"merchant = {:merchantId}",
		"name",
		0,
		0,
		map[string]any{"merchantId": merchantID},
	)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	names := make(map[string]string, len(records))
	for _, rec := range records {
		names[rec.Id] = rec.GetString("name")
	}
	return names, nil
}

// SaveQuoteSnapshot finalizes the current quote into an immutable
// quote_snapshots record and returns its reference number. locationCount
// drives the completeness check of FinalizeQuote.
func SaveQuoteSnapshot(app *pocketbase.PocketBase, merchantID string, cards []LineItemCard, locationCount int) (string, error) {
	totals, err := FinalizeQuote(cards, locationCount)
	if err != nil {
		return "", err
	}

	refNumber, err := GenerateQuoteNumber(app, merchantID, time.Now())
	if err != nil {
		return "", err
	}

	itemsJSON, err := json.Marshal(cards)
	if err != nil {
		return "", fmt.Errorf("encode snapshot items: %w", err)
	}
	totalsJSON, err := json.Marshal(totals)
	if err != nil {
		return "", fmt.Errorf("encode snapshot totals: %w", err)
	}

	col, err := app.FindCollectionByNameOrId("quote_snapshots")
	if err != nil {
		return "", fmt.Errorf("quote_snapshots collection not found: %w", err)
	}
	record := core.NewRecord(col)
	record.Set("merchant", merchantID)
	record.Set("reference_number", refNumber)
	record.Set("items", string(itemsJSON))
	record.Set("totals", string(totalsJSON))
	if err := app.Save(record); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return refNumber, nil
}
