package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleLocationDelete removes a business location. Quote items that pointed
// at it lose their assignment and show up again in the completeness check.
func HandleLocationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")
		locationID := e.Request.PathValue("locationId")

		rec, err := app.FindRecordById("business_locations", locationID)
		if err != nil || rec.GetString("merchant") != merchantID {
			return writeError(e, http.StatusNotFound, "location not found")
		}

		// Clear assignments first so the relation never dangles.
		assigned, err := app.FindRecordsByFilter(
			"quote_items",
			"location = {:locationId}",
			"", 0, 0,
			map[string]any{"locationId": locationID},
		)
		if err == nil {
			for _, item := range assigned {
				item.Set("location", "")
				if err := app.Save(item); err != nil {
					log.Printf("location_delete: could not unassign quote item %s: %v", item.Id, err)
				}
			}
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("location_delete: could not delete location %s: %v", locationID, err)
			return writeError(e, http.StatusInternalServerError, "could not delete location")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"deleted":    locationID,
			"unassigned": len(assigned),
		})
	}
}
