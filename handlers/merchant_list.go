package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// merchantJSON is the wire shape of a merchant record.
func merchantJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":               rec.Id,
		"name":             rec.GetString("name"),
		"contact_person":   rec.GetString("contact_person"),
		"email":            rec.GetString("email"),
		"phone":            rec.GetString("phone"),
		"reference_number": rec.GetString("reference_number"),
		"legal_form":       rec.GetString("legal_form"),
		"status":           rec.GetString("status"),
	}
}

// HandleMerchantList returns all merchants, newest first.
func HandleMerchantList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("merchants", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("merchant_list: query failed: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load merchants")
		}

		merchants := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			merchants = append(merchants, merchantJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"merchants": merchants})
	}
}

// HandleMerchantView returns a single merchant with its business locations.
func HandleMerchantView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("id")

		rec, err := app.FindRecordById("merchants", merchantID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		locations, err := app.FindRecordsByFilter(
			"business_locations",
			"merchant = {:merchantId}",
			"name",
			0,
			0,
			map[string]any{"merchantId": merchantID},
		)
		if err != nil {
			log.Printf("merchant_view: load locations: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load locations")
		}

		locationList := make([]map[string]any, 0, len(locations))
		for _, loc := range locations {
			locationList = append(locationList, locationJSON(loc))
		}

		body := merchantJSON(rec)
		body["locations"] = locationList
		return e.JSON(http.StatusOK, body)
	}
}
