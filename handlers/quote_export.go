package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/services"
)

// HandleQuoteExportExcel streams the merchant's current quote as an .xlsx
// workbook.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("merchantId")

		merchant, err := app.FindRecordById("merchants", merchantID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		cards, err := services.LoadQuoteCards(app, merchantID)
		if err != nil {
			log.Printf("quote_export: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load quote")
		}

		names, err := services.LocationNames(app, merchantID)
		if err != nil {
			log.Printf("quote_export: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not load locations")
		}

		data := services.BuildQuoteExportData(
			merchant.GetString("name"),
			time.Now().Format("02.01.2006"),
			cards,
			names,
		)
		result, err := services.GenerateQuoteExcel(data)
		if err != nil {
			log.Printf("quote_export: %v", err)
			return writeError(e, http.StatusInternalServerError, "could not generate export")
		}

		safeName := strings.ReplaceAll(merchant.GetString("name"), " ", "_")
		filename := fmt.Sprintf("quote_%s_%s.xlsx", safeName, time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, err = e.Response.Write(result)
		return err
	}
}
