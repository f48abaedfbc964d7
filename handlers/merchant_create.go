package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type merchantPayload struct {
	Name            string `json:"name"`
	ContactPerson   string `json:"contact_person"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ReferenceNumber string `json:"reference_number"`
	LegalForm       string `json:"legal_form"`
	Status          string `json:"status"`
}

// HandleMerchantSave creates a new merchant record.
func HandleMerchantSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload merchantPayload
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		name := strings.TrimSpace(payload.Name)
		if name == "" {
			return writeError(e, http.StatusBadRequest, "merchant name is required")
		}

		// Duplicate reference numbers break quote numbering.
		if ref := strings.TrimSpace(payload.ReferenceNumber); ref != "" {
			existing, _ := app.FindRecordsByFilter("merchants", "reference_number = {:ref}", "", 1, 0, map[string]any{"ref": ref})
			if len(existing) > 0 {
				return writeError(e, http.StatusBadRequest, "a merchant with this reference number already exists")
			}
		}

		col, err := app.FindCollectionByNameOrId("merchants")
		if err != nil {
			log.Printf("merchant_create: could not find merchants collection: %v", err)
			return writeError(e, http.StatusInternalServerError, "internal error")
		}

		status := payload.Status
		if status == "" {
			status = "draft"
		}

		rec := core.NewRecord(col)
		rec.Set("name", name)
		rec.Set("contact_person", strings.TrimSpace(payload.ContactPerson))
		rec.Set("email", strings.TrimSpace(payload.Email))
		rec.Set("phone", strings.TrimSpace(payload.Phone))
		rec.Set("reference_number", strings.TrimSpace(payload.ReferenceNumber))
		rec.Set("legal_form", payload.LegalForm)
		rec.Set("status", status)

		if err := app.Save(rec); err != nil {
			log.Printf("merchant_create: could not save merchant: %v", err)
			return writeError(e, http.StatusBadRequest, "could not save merchant")
		}

		return e.JSON(http.StatusCreated, merchantJSON(rec))
	}
}
