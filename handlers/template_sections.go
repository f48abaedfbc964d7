package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleSectionAdd appends a section to the template. Table sections start
// with a default grid.
func HandleSectionAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.Section
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		if strings.TrimSpace(payload.Title) == "" {
			return writeError(e, http.StatusBadRequest, "section title is required")
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.AddSection(tmpl, payload), nil
		})
	}
}

// HandleSectionRemove deletes a section by id.
func HandleSectionRemove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.RemoveSection(tmpl, sectionID)
		})
	}
}

// HandleSectionReorder moves a section from one position to another.
func HandleSectionReorder(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			From int `json:"from"`
			To   int `json:"to"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.ReorderSections(tmpl, payload.From, payload.To)
		})
	}
}

// HandleSectionUpdate patches a section's title and fields.
func HandleSectionUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		var payload services.SectionPatch
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.UpdateSection(tmpl, sectionID, payload)
		})
	}
}
