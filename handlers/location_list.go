package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func locationJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":          rec.Id,
		"name":        rec.GetString("name"),
		"street":      rec.GetString("street"),
		"city":        rec.GetString("city"),
		"postal_code": rec.GetString("postal_code"),
		"country":     rec.GetString("country"),
		"phone":       rec.GetString("phone"),
		"email":       rec.GetString("email"),
	}
}

// HandleLocationList returns a merchant's business locations sorted by name.
func HandleLocationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		if _, err := app.FindRecordById("merchants", merchantID); err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		records, err := app.FindRecordsByFilter(
			"business_locations",
			"merchant = {:merchantId}",
			"name",
			0,
			0,
			map[string]any{"merchantId": merchantID},
		)
		if err != nil {
			log.Printf("location_list: query failed: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load locations")
		}

		locations := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			locations = append(locations, locationJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"locations": locations})
	}
}
