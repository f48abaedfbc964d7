package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type locationPayload struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// HandleLocationSave creates a business location for a merchant.
func HandleLocationSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		if _, err := app.FindRecordById("merchants", merchantID); err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		var payload locationPayload
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		name := strings.TrimSpace(payload.Name)
		if name == "" {
			return writeError(e, http.StatusBadRequest, "location name is required")
		}

		// Location names are the merchant-facing identifier in quotes,
		// duplicates make the assignment ambiguous.
		existing, _ := app.FindRecordsByFilter(
			"business_locations",
			"merchant = {:merchantId} && name = {:name}",
			"", 1, 0,
			map[string]any{"merchantId": merchantID, "name": name},
		)
		if len(existing) > 0 {
			return writeError(e, http.StatusBadRequest, "a location with this name already exists")
		}

		col, err := app.FindCollectionByNameOrId("business_locations")
		if err != nil {
			log.Printf("location_create: could not find business_locations collection: %v", err)
			return writeError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("merchant", merchantID)
		rec.Set("name", name)
		rec.Set("street", strings.TrimSpace(payload.Street))
		rec.Set("city", strings.TrimSpace(payload.City))
		rec.Set("postal_code", strings.TrimSpace(payload.PostalCode))
		rec.Set("country", strings.TrimSpace(payload.Country))
		rec.Set("phone", strings.TrimSpace(payload.Phone))
		rec.Set("email", strings.TrimSpace(payload.Email))

		if err := app.Save(rec); err != nil {
			log.Printf("location_create: could not save location: %v", err)
			return writeError(e, http.StatusBadRequest, "could not save location")
		}

		return e.JSON(http.StatusCreated, locationJSON(rec))
	}
}
