package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleDocumentRender renders a template to PDF. The optional JSON body
// supplies merge values keyed by field key; merchant master data fills the
// usual keys when a merchant id is given.
func HandleDocumentRender(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("document_templates", e.Request.PathValue("id"))
		if err != nil {
			return writeError(e, http.StatusNotFound, "template not found")
		}

		tmpl, err := services.TemplateFromRecord(rec)
		if err != nil {
			log.Printf("document_render: %v", err)
			return writeError(e, http.StatusInternalServerError, "template content is corrupt")
		}

		var payload struct {
			MerchantID string            `json:"merchant_id"`
			Data       map[string]string `json:"data"`
		}
		if e.Request.Body != nil && e.Request.ContentLength != 0 {
			if err := decodeBody(e, &payload); err != nil {
				return badRequest(e, err)
			}
		}

		data := services.MergeData{}
		if payload.MerchantID != "" {
			merchant, err := app.FindRecordById("merchants", payload.MerchantID)
			if err != nil {
				return writeError(e, http.StatusNotFound, "merchant not found")
			}
			data["merchant_name"] = merchant.GetString("name")
			data["contact_person"] = merchant.GetString("contact_person")
			data["email"] = merchant.GetString("email")
			data["phone"] = merchant.GetString("phone")
			data["legal_form"] = merchant.GetString("legal_form")
		}
		for k, v := range payload.Data {
			data[k] = v
		}

		pdf, err := services.RenderTemplatePDF(tmpl, data)
		if err != nil {
			log.Printf("document_render: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not render document")
		}

		filename := fmt.Sprintf("%s_%s.pdf", tmpl.DocumentType, time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, err = e.Response.Write(pdf)
		return err
	}
}
