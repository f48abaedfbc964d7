package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleMerchantDelete removes a merchant. Locations, quote items and
// snapshots follow via cascade delete.
func HandleMerchantDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("id")

		rec, err := app.FindRecordById("merchants", merchantID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("merchant_delete: could not delete merchant %s: %v", merchantID, err)
			return writeError(e, http.StatusInternalServerError, "could not delete merchant")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": merchantID})
	}
}
