package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

func catalogItemJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":             rec.Id,
		"kind":           rec.GetString("kind"),
		"category":       rec.GetString("category"),
		"name":           rec.GetString("name"),
		"description":    rec.GetString("description"),
		"monthly_fee":    rec.GetFloat("monthly_fee"),
		"internal_cost":  rec.GetFloat("internal_cost"),
		"purchase_price": rec.GetFloat("purchase_price"),
	}
}

// HandleCatalogList returns active catalog items, optionally narrowed by
// ?category= and ?solution= query parameters (both repeatable).
func HandleCatalogList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query()
		filter, params := services.CatalogFilter{
			CategoryIDs: query["category"],
			SolutionIDs: query["solution"],
		}.FilterExpression()

		records, err := app.FindRecordsByFilter("catalog_items", filter, "category,sort_order,name", 0, 0, params)
		if err != nil {
			log.Printf("catalog_list: query failed: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load catalog")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, catalogItemJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}
