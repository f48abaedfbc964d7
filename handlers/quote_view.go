package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleQuoteView returns the merchant's current quote: the card list with
// nested add-ons plus aggregated totals.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		if _, err := app.FindRecordById("merchants", merchantID); err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		cards, err := services.LoadQuoteCards(app, merchantID)
		if err != nil {
			log.Printf("quote_view: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load quote")
		}

		names, err := services.LocationNames(app, merchantID)
		if err != nil {
			log.Printf("quote_view: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load locations")
		}

		totals := services.ComputeQuoteTotals(cards)
		return e.JSON(http.StatusOK, map[string]any{
			"cards":           cards,
			"totals":          totals,
			"location_names":  names,
			"monthly_display": services.FormatEUR(totals.TotalMonthlyFee),
		})
	}
}

// HandleSnapshotList returns the merchant's saved quote snapshots, newest
// first.
func HandleSnapshotList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		records, err := app.FindRecordsByFilter(
			"quote_snapshots",
			"merchant = {:merchantId}",
			"-created",
			0,
			0,
			map[string]any{"merchantId": merchantID},
		)
		if err != nil {
			log.Printf("quote_view: load snapshots: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load snapshots")
		}

		snapshots := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			snapshots = append(snapshots, map[string]any{
				"id":               rec.Id,
				"reference_number": rec.GetString("reference_number"),
				"created":          rec.GetString("created"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"snapshots": snapshots})
	}
}
