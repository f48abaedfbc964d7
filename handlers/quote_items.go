package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// loadCatalogItem maps a catalog_items record into the services type.
func loadCatalogItem(app *pocketbase.PocketBase, id string) (services.CatalogItem, error) {
	rec, err := app.FindRecordById("catalog_items", id)
	if err != nil {
		return services.CatalogItem{}, err
	}
	return services.CatalogItem{
		ID:                   rec.Id,
		Kind:                 services.CatalogKind(rec.GetString("kind")),
		Category:             rec.GetString("category"),
		Name:                 rec.GetString("name"),
		Description:          rec.GetString("description"),
		PerUnitMonthlyFee:    rec.GetFloat("monthly_fee"),
		PerUnitInternalCost:  rec.GetFloat("internal_cost"),
		PerUnitPurchasePrice: rec.GetFloat("purchase_price"),
	}, nil
}

// saveCard persists a card as a quote_items record and returns it.
func saveCard(app *pocketbase.PocketBase, merchantID, parentID string, card services.LineItemCard) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return nil, err
	}
	rec := core.NewRecord(col)
	rec.Set("merchant", merchantID)
	if parentID != "" {
		rec.Set("parent_item", parentID)
	}
	services.ApplyCardToRecord(rec, card)
	if err := app.Save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// HandleQuoteItemAdd instantiates a catalog item as a card on the quote.
func HandleQuoteItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		if _, err := app.FindRecordById("merchants", merchantID); err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		var payload struct {
			CatalogItemID string `json:"catalog_item_id"`
			Quantity      int    `json:"quantity"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		item, err := loadCatalogItem(app, payload.CatalogItemID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "catalog item not found")
		}
		if item.Kind == services.KindAddon {
			return writeError(e, http.StatusBadRequest, "add-ons attach to a card, they cannot stand alone")
		}

		qty := payload.Quantity
		if qty == 0 {
			qty = 1
		}
		card := services.InstantiateCard(item, qty)

		rec, err := saveCard(app, merchantID, "", card)
		if err != nil {
			log.Printf("quote_items: could not save card: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not save quote item")
		}

		return e.JSON(http.StatusCreated, services.CardFromRecord(rec))
	}
}

// HandleQuoteItemUpdate patches a card: quantity, fee overrides, location
// assignment and custom text.
func HandleQuoteItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")
		itemID := e.Request.PathValue("itemId")

		rec, err := app.FindRecordById("quote_items", itemID)
		if err != nil || rec.GetString("merchant") != merchantID {
			return writeError(e, http.StatusNotFound, "quote item not found")
		}

		var payload struct {
			Quantity     *int     `json:"quantity"`
			MonthlyFee   *float64 `json:"monthly_fee"`
			InternalCost *float64 `json:"internal_cost"`
			LocationID   *string  `json:"location_id"`
			CustomText   *string  `json:"custom_text"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		card := services.CardFromRecord(rec)
		if payload.Quantity != nil {
			if err := card.SetQuantity(*payload.Quantity); err != nil {
				return writeError(e, http.StatusBadRequest, err.Error())
			}
		}
		if payload.MonthlyFee != nil {
			if err := card.SetMonthlyFee(*payload.MonthlyFee); err != nil {
				return writeError(e, http.StatusBadRequest, err.Error())
			}
		}
		if payload.InternalCost != nil {
			if err := card.SetInternalCost(*payload.InternalCost); err != nil {
				return writeError(e, http.StatusBadRequest, err.Error())
			}
		}
		if payload.LocationID != nil {
			if *payload.LocationID != "" {
				loc, err := app.FindRecordById("business_locations", *payload.LocationID)
				if err != nil || loc.GetString("merchant") != merchantID {
					return writeError(e, http.StatusBadRequest, "unknown location")
				}
			}
			card.AssignLocation(*payload.LocationID)
		}
		if payload.CustomText != nil {
			card.CustomText = *payload.CustomText
		}

		services.ApplyCardToRecord(rec, card)
		if err := app.Save(rec); err != nil {
			log.Printf("quote_items: could not save card %s: %v", itemID, err)
			return writeError(e, http.StatusInternalServerError, "could not save quote item")
		}

		return e.JSON(http.StatusOK, services.CardFromRecord(rec))
	}
}

// HandleQuoteItemDelete removes a card; its add-ons cascade.
func HandleQuoteItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")
		itemID := e.Request.PathValue("itemId")

		rec, err := app.FindRecordById("quote_items", itemID)
		if err != nil || rec.GetString("merchant") != merchantID {
			return writeError(e, http.StatusNotFound, "quote item not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("quote_items: could not delete card %s: %v", itemID, err)
			return writeError(e, http.StatusInternalServerError, "could not delete quote item")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": itemID})
	}
}

// HandleQuoteClear removes every card from the merchant's quote.
func HandleQuoteClear(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		records, err := app.FindRecordsByFilter(
			"quote_items",
			"merchant = {:merchantId}",
			"", 0, 0,
			map[string]any{"merchantId": merchantID},
		)
		if err != nil {
			log.Printf("quote_items: could not load quote for clear: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not clear quote")
		}

		deleted := 0
		for _, rec := range records {
			// Add-ons cascade with their parent; deleting them again is fine
			// but skipping saves the round trip.
			if rec.GetString("parent_item") != "" {
				continue
			}
			if err := app.Delete(rec); err != nil {
				log.Printf("quote_items: could not delete card %s: %v", rec.Id, err)
				continue
			}
			deleted++
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": deleted})
	}
}

// HandleQuoteAddonAdd attaches an add-on catalog item to a card.
func HandleQuoteAddonAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")
		itemID := e.Request.PathValue("itemId")

		parent, err := app.FindRecordById("quote_items", itemID)
		if err != nil || parent.GetString("merchant") != merchantID {
			return writeError(e, http.StatusNotFound, "quote item not found")
		}

		var payload struct {
			CatalogItemID string `json:"catalog_item_id"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		item, err := loadCatalogItem(app, payload.CatalogItemID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "catalog item not found")
		}

		// Run the nesting rules on the in-memory card before touching the
		// database.
		card := services.CardFromRecord(parent)
		addon := services.InstantiateCard(item, 1)
		if err := card.AttachAddon(addon); err != nil {
			if errors.Is(err, services.ErrInvalidAddonNesting) {
				return writeError(e, http.StatusBadRequest, err.Error())
			}
			return writeError(e, http.StatusInternalServerError, err.Error())
		}

		rec, err := saveCard(app, merchantID, parent.Id, addon)
		if err != nil {
			log.Printf("quote_items: could not save addon: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not save add-on")
		}

		return e.JSON(http.StatusCreated, services.CardFromRecord(rec))
	}
}

// HandleQuoteAddonDelete detaches an add-on from its card.
func HandleQuoteAddonDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")
		addonID := e.Request.PathValue("addonId")

		rec, err := app.FindRecordById("quote_items", addonID)
		if err != nil || rec.GetString("merchant") != merchantID || rec.GetString("parent_item") == "" {
			return writeError(e, http.StatusNotFound, "add-on not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("quote_items: could not delete addon %s: %v", addonID, err)
			return writeError(e, http.StatusInternalServerError, "could not delete add-on")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": addonID})
	}
}
