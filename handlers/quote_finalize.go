package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleQuoteFinalize freezes the current quote into a snapshot with a fresh
// reference number. With several business locations every card must carry a
// location assignment first.
func HandleQuoteFinalize(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		if _, err := app.FindRecordById("merchants", merchantID); err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		cards, err := services.LoadQuoteCards(app, merchantID)
		if err != nil {
			log.Printf("quote_finalize: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load quote")
		}
		if len(cards) == 0 {
			return writeError(e, http.StatusBadRequest, "the quote is empty")
		}

		names, err := services.LocationNames(app, merchantID)
		if err != nil {
			log.Printf("quote_finalize: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load locations")
		}

		refNumber, err := services.SaveQuoteSnapshot(app, merchantID, cards, len(names))
		if err != nil {
			if errors.Is(err, services.ErrMissingLocation) {
				return writeError(e, http.StatusBadRequest, "every item needs a location before finalizing")
			}
			log.Printf("quote_finalize: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not finalize quote")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"reference_number": refNumber,
		})
	}
}
