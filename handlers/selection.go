package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// selectionResponse is the uniform reply of every selection endpoint.
func selectionResponse(e *core.RequestEvent, flow *services.SelectionFlow) error {
	return e.JSON(http.StatusOK, map[string]any{
		"flow":      flow,
		"solutions": services.SolutionOptions,
	})
}

// withSelection loads the merchant's selection flow, runs op on it and saves
// the result back onto the record. Stage violations map to 409.
func withSelection(app *pocketbase.PocketBase, e *core.RequestEvent, op func(*services.SelectionFlow) error) error {
	merchantID := e.Request.PathValue("merchantId")

	merchant, err := app.FindRecordById("merchants", merchantID)
	if err != nil {
		return writeError(e, http.StatusNotFound, "merchant not found")
	}

	flow, err := services.SelectionFromRecord(merchant)
	if err != nil {
		log.Printf("selection: %v", err)
		return writeError(e, http.StatusInternalServerError, "selection state is corrupt")
	}

	if err := op(flow); err != nil {
		if errors.Is(err, services.ErrSelectionStage) {
			return writeError(e, http.StatusConflict, err.Error())
		}
		return writeError(e, http.StatusBadRequest, err.Error())
	}

	if err := services.ApplySelectionToRecord(merchant, flow); err != nil {
		log.Printf("selection: %v", err)
		return writeError(e, http.StatusInternalServerError, "could not encode selection state")
	}
	if err := app.Save(merchant); err != nil {
		log.Printf("selection: could not save merchant %s: %v", merchantID, err)
		return writeError(e, http.StatusInternalServerError, "could not save selection state")
	}

	return selectionResponse(e, flow)
}

// HandleSelectionState returns the merchant's current selection flow.
func HandleSelectionState(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchant, err := app.FindRecordById("merchants", e.Request.PathValue("merchantId"))
		if err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}
		flow, err := services.SelectionFromRecord(merchant)
		if err != nil {
			log.Printf("selection: %v", err)
			return writeError(e, http.StatusInternalServerError, "selection state is corrupt")
		}
		return selectionResponse(e, flow)
	}
}

// HandleSelectionChooseSolution picks a solution and advances the flow.
func HandleSelectionChooseSolution(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			SolutionID string `json:"solution_id"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		sol, ok := services.FindSolution(payload.SolutionID)
		if !ok {
			return writeError(e, http.StatusBadRequest, "unknown solution")
		}
		return withSelection(app, e, func(flow *services.SelectionFlow) error {
			return flow.ChooseSolution(sol)
		})
	}
}

// HandleSelectionToggleModule adds or removes a module from the picks.
func HandleSelectionToggleModule(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			CatalogItemID string `json:"catalog_item_id"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		item, err := loadCatalogItem(app, payload.CatalogItemID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "catalog item not found")
		}
		return withSelection(app, e, func(flow *services.SelectionFlow) error {
			return flow.ToggleModule(item)
		})
	}
}

// HandleSelectionConfirmModules locks the module picks and advances to the
// system step.
func HandleSelectionConfirmModules(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withSelection(app, e, func(flow *services.SelectionFlow) error {
			return flow.ConfirmModules()
		})
	}
}

// HandleSelectionChooseSystem picks the system and completes the flow.
func HandleSelectionChooseSystem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			CatalogItemID string `json:"catalog_item_id"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		item, err := loadCatalogItem(app, payload.CatalogItemID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "catalog item not found")
		}
		return withSelection(app, e, func(flow *services.SelectionFlow) error {
			return flow.ChooseSystem(item)
		})
	}
}

// HandleSelectionBack steps one stage back without losing any picks.
func HandleSelectionBack(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withSelection(app, e, func(flow *services.SelectionFlow) error {
			flow.Back()
			return nil
		})
	}
}

// HandleSelectionApply materializes a completed flow onto the quote: the
// picked modules and system become cards, then the flow resets for the next
// round.
func HandleSelectionApply(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		merchant, err := app.FindRecordById("merchants", merchantID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}
		flow, err := services.SelectionFromRecord(merchant)
		if err != nil {
			log.Printf("selection: %v", err)
			return writeError(e, http.StatusInternalServerError, "selection state is corrupt")
		}

		cards, err := flow.MaterializeSelection()
		if err != nil {
			if errors.Is(err, services.ErrSelectionStage) {
				return writeError(e, http.StatusConflict, err.Error())
			}
			return writeError(e, http.StatusBadRequest, err.Error())
		}

		created := make([]services.LineItemCard, 0, len(cards))
		for _, card := range cards {
			rec, err := saveCard(app, merchantID, "", card)
			if err != nil {
				log.Printf("selection: could not save card %q: %v", card.Name, err)
				return writeError(e, http.StatusInternalServerError, "could not add selection to quote")
			}
			created = append(created, services.CardFromRecord(rec))
		}

		fresh := services.NewSelectionFlow()
		if err := services.ApplySelectionToRecord(merchant, fresh); err != nil {
			log.Printf("selection: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not reset selection state")
		}
		if err := app.Save(merchant); err != nil {
			log.Printf("selection: could not save merchant %s: %v", merchantID, err)
			return writeError(e, http.StatusInternalServerError, "could not reset selection state")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"cards": created,
			"flow":  fresh,
		})
	}
}
