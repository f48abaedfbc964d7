package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleTemplateList returns all document templates, active first.
func HandleTemplateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("document_templates", "id != ''", "-is_active,document_type,name", 0, 0, nil)
		if err != nil {
			log.Printf("template_list: query failed: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load templates")
		}

		templates := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			templates = append(templates, map[string]any{
				"id":            rec.Id,
				"name":          rec.GetString("name"),
				"description":   rec.GetString("description"),
				"document_type": rec.GetString("document_type"),
				"is_active":     rec.GetBool("is_active"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"templates": templates})
	}
}

// HandleTemplateView returns one template with its full section layout.
func HandleTemplateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("document_templates", e.Request.PathValue("id"))
		if err != nil {
			return writeError(e, http.StatusNotFound, "template not found")
		}

		tmpl, err := services.TemplateFromRecord(rec)
		if err != nil {
			log.Printf("template_view: %v", err)
			return writeError(e, http.StatusInternalServerError, "template content is corrupt")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":       rec.Id,
			"template": tmpl,
		})
	}
}
