package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleTableAddRow appends a row of empty cells to a table section.
func HandleTableAddRow(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.AddTableRow(tmpl, sectionID)
		})
	}
}

// HandleTableAddColumn appends a column of empty cells to a table section.
func HandleTableAddColumn(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.AddTableColumn(tmpl, sectionID)
		})
	}
}

// HandleTableMerge merges the given cells into one spanning cell. The cells
// must tile a rectangle exactly.
func HandleTableMerge(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		var payload struct {
			CellIDs []string `json:"cell_ids"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		if len(payload.CellIDs) < 2 {
			return writeError(e, http.StatusBadRequest, "merging needs at least two cells")
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.MergeTableCells(tmpl, sectionID, payload.CellIDs)
		})
	}
}

// HandleTableSplit splits a spanning cell back into unit cells.
func HandleTableSplit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		cellID := e.Request.PathValue("cellId")
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.SplitTableCell(tmpl, sectionID, cellID)
		})
	}
}

// HandleTableCellContent sets a cell's kind and content.
func HandleTableCellContent(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		cellID := e.Request.PathValue("cellId")
		var payload struct {
			Kind  string              `json:"kind"`
			Label string              `json:"label"`
			Field *services.FieldSpec `json:"field"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		kind := services.CellKind(payload.Kind)
		switch kind {
		case services.CellEmpty, services.CellLabel, services.CellField:
		default:
			return writeError(e, http.StatusBadRequest, "unknown cell kind")
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.SetTableCellContent(tmpl, sectionID, cellID, kind, payload.Label, payload.Field)
		})
	}
}
