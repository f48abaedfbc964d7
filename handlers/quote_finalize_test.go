package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchantonboarding/testhelpers"
)

func TestHandleQuoteFinalize_EmptyQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Bakery Schmidt GmbH")

	handler := HandleQuoteFinalize(app)
	req := jsonRequest(t, http.MethodPost, "/merchants/"+merchant.Id+"/quote/finalize", map[string]any{})
	req.SetPathValue("merchantId", merchant.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty quote", rec.Code)
	}
}

func TestHandleQuoteFinalize_MissingLocation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Bakery Schmidt GmbH")
	testhelpers.CreateTestLocation(t, app, merchant.Id, "Main Store")
	testhelpers.CreateTestLocation(t, app, merchant.Id, "Second Store")
	testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Terminal", 1, 25, 14)

	handler := HandleQuoteFinalize(app)
	req := jsonRequest(t, http.MethodPost, "/merchants/"+merchant.Id+"/quote/finalize", map[string]any{})
	req.SetPathValue("merchantId", merchant.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unassigned card", rec.Code)
	}

	snapshots, _ := app.FindRecordsByFilter("quote_snapshots", "merchant = {:m}", "", 0, 0, map[string]any{"m": merchant.Id})
	if len(snapshots) != 0 {
		t.Errorf("%d snapshots written on failure", len(snapshots))
	}
}

func TestHandleQuoteFinalize_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Bakery Schmidt GmbH")
	merchant.Set("reference_number", "M-1042")
	if err := app.Save(merchant); err != nil {
		t.Fatal(err)
	}
	testhelpers.CreateTestLocation(t, app, merchant.Id, "Main Store")
	testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Terminal", 2, 25, 14)

	handler := HandleQuoteFinalize(app)
	req := jsonRequest(t, http.MethodPost, "/merchants/"+merchant.Id+"/quote/finalize", map[string]any{})
	req.SetPathValue("merchantId", merchant.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ReferenceNumber string `json:"reference_number"`
	}
	decodeResponse(t, rec, &body)
	if !strings.HasPrefix(body.ReferenceNumber, "MSP-QT-M-1042-") || !strings.HasSuffix(body.ReferenceNumber, "-001") {
		t.Errorf("reference_number = %q", body.ReferenceNumber)
	}

	// The snapshot shows up in the listing
	list := HandleSnapshotList(app)
	req = httptest.NewRequest(http.MethodGet, "/merchants/"+merchant.Id+"/quote/snapshots", nil)
	req.SetPathValue("merchantId", merchant.Id)
	rec = httptest.NewRecorder()
	if err := list(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("snapshot list: %v", err)
	}

	var snapshots struct {
		Snapshots []map[string]any `json:"snapshots"`
	}
	decodeResponse(t, rec, &snapshots)
	if len(snapshots.Snapshots) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snapshots.Snapshots))
	}
	if snapshots.Snapshots[0]["reference_number"] != body.ReferenceNumber {
		t.Errorf("listed reference = %v", snapshots.Snapshots[0]["reference_number"])
	}
}
