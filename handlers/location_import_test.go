package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"merchantonboarding/testhelpers"
)

func importWorkbookUpload(t *testing.T, rows [][]string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := []string{"Location Name", "Street", "City", "Postal Code", "Country", "Phone", "E-Mail"}
	for i, h := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", h)
	}
	for r, row := range rows {
		for i, val := range row {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+2), val)
		}
	}
	data, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to build workbook: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "locations.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data.Bytes()); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	return &body, writer.FormDataContentType()
}

func TestHandleLocationTemplate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleLocationTemplate(app)
	req := httptest.NewRequest(http.MethodGet, "/merchants/x/locations/import/template", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a valid workbook: %v", err)
	}
	defer f.Close()
	got, _ := f.GetCellValue(f.GetSheetName(0), "A1")
	if got != "Location Name *" {
		t.Errorf("A1 = %q", got)
	}
}

func TestHandleLocationValidate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Chain GmbH")

	body, contentType := importWorkbookUpload(t, [][]string{
		{"Main Store", "Hauptstr. 1", "Berlin", "10115", "Germany", "", ""},
		{"", "Nebenstr. 2", "Hamburg", "20095", "", "", ""},
	})

	handler := HandleLocationValidate(app)
	req := httptest.NewRequest(http.MethodPost, "/merchants/"+merchant.Id+"/locations/import", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("merchantId", merchant.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		TotalRows int                 `json:"total_rows"`
		Rows      []map[string]string `json:"rows"`
		Errors    []map[string]any    `json:"errors"`
		Valid     bool                `json:"valid"`
	}
	decodeResponse(t, rec, &result)
	if result.TotalRows != 2 {
		t.Errorf("total_rows = %d, want 2", result.TotalRows)
	}
	if result.Valid {
		t.Error("expected valid = false, row 2 is missing its name")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected validation errors")
	}

	// Nothing is written during validation
	locations, _ := app.FindRecordsByFilter("business_locations", "merchant = {:m}", "", 0, 0, map[string]any{"m": merchant.Id})
	if len(locations) != 0 {
		t.Errorf("validate wrote %d locations", len(locations))
	}
}

func TestHandleLocationValidate_NoFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Chain GmbH")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.Close()

	handler := HandleLocationValidate(app)
	req := httptest.NewRequest(http.MethodPost, "/merchants/"+merchant.Id+"/locations/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetPathValue("merchantId", merchant.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleLocationImportCommit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Chain GmbH")

	handler := HandleLocationImportCommit(app)
	req := jsonRequest(t, http.MethodPost, "/merchants/"+merchant.Id+"/locations/import/commit", map[string]any{
		"rows": []map[string]string{
			{"name": "Main Store", "street": "Hauptstr. 1", "city": "Berlin", "postal_code": "10115"},
			{"name": "Airport Shop", "street": "Flughafenstr. 9", "city": "Berlin", "postal_code": "12529"},
		},
	})
	req.SetPathValue("merchantId", merchant.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Imported int `json:"imported"`
		Failed   int `json:"failed"`
	}
	decodeResponse(t, rec, &result)
	if result.Imported != 2 || result.Failed != 0 {
		t.Errorf("imported = %d, failed = %d", result.Imported, result.Failed)
	}

	locations, _ := app.FindRecordsByFilter("business_locations", "merchant = {:m}", "", 0, 0, map[string]any{"m": merchant.Id})
	if len(locations) != 2 {
		t.Errorf("got %d locations, want 2", len(locations))
	}
}

func TestHandleLocationImportCommit_EmptyRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Chain GmbH")

	handler := HandleLocationImportCommit(app)
	req := jsonRequest(t, http.MethodPost, "/merchants/"+merchant.Id+"/locations/import/commit", map[string]any{
		"rows": []map[string]string{},
	})
	req.SetPathValue("merchantId", merchant.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
