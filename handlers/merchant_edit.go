package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleMerchantUpdate applies a partial update to a merchant record. Only
// fields present in the body are touched.
func HandleMerchantUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("id")

		rec, err := app.FindRecordById("merchants", merchantID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		var payload map[string]any
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		allowed := map[string]bool{
			"name": true, "contact_person": true, "email": true, "phone": true,
			"reference_number": true, "legal_form": true, "status": true,
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
				return writeError(e, http.StatusBadRequest, "merchant name cannot be empty")
			}
			rec.Set(key, strings.TrimSpace(s))
		}

		if err := app.Save(rec); err != nil {
			log.Printf("merchant_edit: could not save merchant %s: %v", merchantID, err)
			return writeError(e, http.StatusBadRequest, "could not save merchant")
		}

		return e.JSON(http.StatusOK, merchantJSON(rec))
	}
}
