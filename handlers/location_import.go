package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleLocationTemplate serves the downloadable .xlsx import template.
func HandleLocationTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.GenerateLocationTemplate()
		if err != nil {
			log.Printf("location_template: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not generate template")
		}

		filename := fmt.Sprintf("locations_import_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, err = e.Response.Write(data)
		return err
	}
}

// HandleLocationValidate receives an .xlsx upload and returns the parsed rows
// together with any validation errors, without writing anything.
func HandleLocationValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		if _, err := app.FindRecordById("merchants", merchantID); err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		// max 10MB
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return writeError(e, http.StatusBadRequest, "file too large or invalid form data")
		}
		file, _, err := e.Request.FormFile("file")
		if err != nil {
			return writeError(e, http.StatusBadRequest, "please select a file to upload")
		}
		defer file.Close()

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			return writeError(e, http.StatusBadRequest, "could not read upload")
		}

		rows, err := services.ParseLocationWorkbook(fileBytes)
		if err != nil {
			log.Printf("location_validate: %v", err)
			return writeError(e, http.StatusBadRequest, err.Error())
		}

		errs := services.ValidateLocationRows(app, merchantID, rows)
		return e.JSON(http.StatusOK, map[string]any{
			"total_rows": len(rows),
			"rows":       rows,
			"errors":     errs,
			"valid":      len(errs) == 0,
		})
	}
}

// HandleLocationImportCommit inserts previously validated rows. The client
// sends back the rows from the validate step so the upload is not repeated.
func HandleLocationImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		if _, err := app.FindRecordById("merchants", merchantID); err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		var payload struct {
			Rows []map[string]string `json:"rows"`
		}
		dec := json.NewDecoder(e.Request.Body)
		if err := dec.Decode(&payload); err != nil {
			return writeError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if len(payload.Rows) == 0 {
			return writeError(e, http.StatusBadRequest, "no rows to import")
		}

		result, err := services.CommitLocationImport(app, merchantID, payload.Rows)
		if err != nil {
			log.Printf("location_import: %v", err)
			return writeError(e, http.StatusInternalServerError, "import failed")
		}

		status := http.StatusOK
		if result.Imported == 0 {
			status = http.StatusBadRequest
		}
		return e.JSON(status, result)
	}
}
