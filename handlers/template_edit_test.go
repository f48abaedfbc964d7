package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"

	"merchantonboarding/services"
	"merchantonboarding/testhelpers"
)

// createTemplate makes a template through the save handler and returns its id
// and decoded document.
func createTemplate(t *testing.T, app *pocketbase.PocketBase, payload map[string]any) (string, services.Template) {
	t.Helper()

	handler := HandleTemplateSave(app)
	req := jsonRequest(t, http.MethodPost, "/templates", payload)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("create template: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("create template: status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ID       string            `json:"id"`
		Template services.Template `json:"template"`
	}
	decodeResponse(t, rec, &body)
	return body.ID, body.Template
}

func loadTemplate(t *testing.T, app *pocketbase.PocketBase, id string) services.Template {
	t.Helper()
	rec, err := app.FindRecordById("document_templates", id)
	if err != nil {
		t.Fatalf("template %s not found: %v", id, err)
	}
	tmpl, err := services.TemplateFromRecord(rec)
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	return tmpl
}

func TestHandleTemplateHeader(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id, _ := createTemplate(t, app, map[string]any{"name": "Contract", "document_type": "g1"})

	handler := HandleTemplateHeader(app)
	req := jsonRequest(t, http.MethodPatch, "/templates/"+id+"/header", map[string]any{
		"title":           "Merchant Service Agreement",
		"backgroundColor": "#004A99",
	})
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	tmpl := loadTemplate(t, app, id)
	if tmpl.Header.Title != "Merchant Service Agreement" {
		t.Errorf("header title = %q", tmpl.Header.Title)
	}
	if tmpl.Header.BackgroundColor != "#004A99" {
		t.Errorf("header background = %q", tmpl.Header.BackgroundColor)
	}
}

func TestHandleTemplateStyling(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id, _ := createTemplate(t, app, map[string]any{"name": "Contract", "document_type": "g1"})

	handler := HandleTemplateStyling(app)
	req := jsonRequest(t, http.MethodPatch, "/templates/"+id+"/styling", map[string]any{
		"primaryColor": "#1A1A2E",
		"fontSize":     11,
		"margin":       15,
		"pageFormat":   "a4",
	})
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	tmpl := loadTemplate(t, app, id)
	if tmpl.Styling.PrimaryColor != "#1A1A2E" || tmpl.Styling.FontSize != 11 {
		t.Errorf("styling = %+v", tmpl.Styling)
	}
}

func TestHandleTemplateDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id, _ := createTemplate(t, app, map[string]any{"name": "Contract", "document_type": "g2"})

	handler := HandleTemplateDefaults(app)
	req := jsonRequest(t, http.MethodPost, "/templates/"+id+"/defaults", map[string]any{})
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	tmpl := loadTemplate(t, app, id)
	if len(tmpl.Sections) == 0 {
		t.Fatal("expected default sections")
	}

	// Without force a second application must not overwrite existing sections
	req = jsonRequest(t, http.MethodPost, "/templates/"+id+"/defaults", map[string]any{})
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 when sections already exist", rec.Code)
	}

	// With force the sections are replaced
	req = jsonRequest(t, http.MethodPost, "/templates/"+id+"/defaults", map[string]any{"force": true})
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with force\nbody: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleTemplateUpdate_RejectsInvalidGrid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id, tmpl := createTemplate(t, app, map[string]any{"name": "Contract", "document_type": "g1"})

	// A 2x2 grid with only one 1x1 cell leaves gaps
	tmpl.Sections = []services.Section{{
		ID:    "s1",
		Title: "Broken Table",
		Kind:  services.SectionTableLayout,
		Table: &services.TableGrid{
			Rows: 2, Cols: 2, Seq: 1,
			Cells: []services.GridCell{
				{ID: "c1", Row: 0, Col: 0, Colspan: 1, Rowspan: 1, Kind: services.CellEmpty},
			},
		},
	}}

	handler := HandleTemplateUpdate(app)
	req := jsonRequest(t, http.MethodPut, "/templates/"+id, tmpl)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400\nbody: %s", rec.Code, rec.Body.String())
	}

	// The stored template stays untouched
	if stored := loadTemplate(t, app, id); len(stored.Sections) != 0 {
		t.Errorf("stored sections = %d, want 0", len(stored.Sections))
	}
}

func TestHandleTemplateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	id, _ := createTemplate(t, app, map[string]any{"name": "Doomed", "document_type": "g1"})

	handler := HandleTemplateDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/templates/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := app.FindRecordById("document_templates", id); err == nil {
		t.Error("template still exists")
	}
}
