package handlers

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

type templateCreatePayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DocumentType string `json:"document_type"`
	WithDefaults bool   `json:"with_defaults"`
}

// HandleTemplateSave creates a document template. With with_defaults set the
// template starts with the standard sections of its document type, otherwise
// it starts empty.
func HandleTemplateSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload templateCreatePayload
		if err := decodeBody(e, &payload); err != nil {
			return badRequest(e, err)
		}

		name := strings.TrimSpace(payload.Name)
		if name == "" {
			return writeError(e, http.StatusBadRequest, "template name is required")
		}
		docType := services.DocumentType(payload.DocumentType)
		if !slices.Contains(services.DocumentTypeOptions, docType) {
			return writeError(e, http.StatusBadRequest, "unknown document type")
		}

		tmpl := services.Template{
			Name:         name,
			Description:  strings.TrimSpace(payload.Description),
			IsActive:     true,
			DocumentType: docType,
			Footer:       services.TemplateFooter{PageNumberFormat: "Page {current} of {total}"},
			Styling:      services.TemplateStyling{PageFormat: "a4", FontSize: 10, Margin: 10},
		}
		if payload.WithDefaults {
			var err error
			tmpl, err = services.ApplyDocumentTypeDefaults(tmpl, docType, false)
			if err != nil {
				return writeError(e, http.StatusInternalServerError, "could not apply defaults")
			}
		}

		col, err := app.FindCollectionByNameOrId("document_templates")
		if err != nil {
			log.Printf("template_create: could not find document_templates collection: %v", err)
			return writeError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		if err := services.ApplyTemplateToRecord(rec, tmpl); err != nil {
			log.Printf("template_create: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not encode template")
		}
		if err := app.Save(rec); err != nil {
			log.Printf("template_create: could not save template: %v", err)
			return writeError(e, http.StatusBadRequest, "could not save template")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":       rec.Id,
			"template": tmpl,
		})
	}
}
