package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleLocationUpdate applies a partial update to a business location.
func HandleLocationUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")
		locationID := e.Request.PathValue("locationId")

		rec, err := app.FindRecordById("business_locations", locationID)
		if err != nil || rec.GetString("merchant") != merchantID {
			return writeError(e, http.StatusNotFound, "location not found")
		}

		var payload map[string]any
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		allowed := map[string]bool{
			"name": true, "street": true, "city": true, "postal_code": true,
			"country": true, "phone": true, "email": true,
		}
		for key, val := range payload {
			if !allowed[key] {
				return writeError(e, http.StatusBadRequest, "unknown field "+key)
			}
			s, ok := val.(string)
			if !ok {
				return writeError(e, http.StatusBadRequest, key+" must be a string")
			}
			if key == "name" && strings.TrimSpace(s) == "" {
				return writeError(e, http.StatusBadRequest, "location name cannot be empty")
			}
			rec.Set(key, strings.TrimSpace(s))
		}

		if err := app.Save(rec); err != nil {
			log.Printf("location_edit: could not save location %s: %v", locationID, err)
			return writeError(e, http.StatusBadRequest, "could not save location")
		}

		return e.JSON(http.StatusOK, locationJSON(rec))
	}
}
