package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// updateTemplate loads a template record, runs op on the decoded template and
// persists the result. Sentinel errors from the services layer map to 400/404
// responses; anything else is a 500.
func updateTemplate(app *pocketbase.PocketBase, e *core.RequestEvent, op func(services.Template) (services.Template, error)) error {
	rec, err := app.FindRecordById("document_templates", e.Request.PathValue("id"))
	if err != nil {
		return writeError(e, http.StatusNotFound, "template not found")
	}

	tmpl, err := services.TemplateFromRecord(rec)
	if err != nil {
		log.Printf("template_edit: %v", err)
		return writeError(e, http.StatusInternalServerError, "template content is corrupt")
	}

	updated, err := op(tmpl)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSectionNotFound) || errors.Is(err, services.ErrCellNotFound) {
			status = http.StatusNotFound
		}
		return writeError(e, status, err.Error())
	}

	if err := services.ApplyTemplateToRecord(rec, updated); err != nil {
		log.Printf("template_edit: %v", err)
		return writeError(e, http.StatusInternalServerError, "could not encode template")
	}
	if err := app.Save(rec); err != nil {
		log.Printf("template_edit: could not save template %s: %v", rec.Id, err)
		return writeError(e, http.StatusInternalServerError, "could not save template")
	}

	return e.JSON(http.StatusOK, map[string]any{
		"id":       rec.Id,
		"template": updated,
	})
}

// HandleTemplateUpdate replaces the whole template document. The editor works
// on a full copy and saves it back in one request.
func HandleTemplateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.Template
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			if payload.Name == "" {
				return services.Template{}, errors.New("template name is required")
			}
			for i := range payload.Sections {
				if payload.Sections[i].Kind == services.SectionTableLayout && payload.Sections[i].Table != nil {
					if err := payload.Sections[i].Table.Validate(); err != nil {
						return services.Template{}, err
					}
				}
			}
			return payload, nil
		})
	}
}

// HandleTemplateHeader updates only the header block.
func HandleTemplateHeader(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.TemplateHeader
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.UpdateHeader(tmpl, payload), nil
		})
	}
}

// HandleTemplateFooter updates only the footer block.
func HandleTemplateFooter(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.TemplateFooter
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.UpdateFooter(tmpl, payload), nil
		})
	}
}

// HandleTemplateStyling updates only the styling block.
func HandleTemplateStyling(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.TemplateStyling
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.UpdateStyling(tmpl, payload), nil
		})
	}
}

// HandleTemplateDefaults populates the standard sections of the template's
// document type. Set force to replace existing sections.
func HandleTemplateDefaults(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			Force bool `json:"force"`
		}
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}
		return updateTemplate(app, e, func(tmpl services.Template) (services.Template, error) {
			return services.ApplyDocumentTypeDefaults(tmpl, tmpl.DocumentType, payload.Force)
		})
	}
}

// HandleTemplateDelete removes a template.
func HandleTemplateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("document_templates", e.Request.PathValue("id"))
		if err != nil {
			return writeError(e, http.StatusNotFound, "template not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("template_delete: could not delete template %s: %v", rec.Id, err)
			return writeError(e, http.StatusInternalServerError, "could not delete template")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": rec.Id})
	}
}
