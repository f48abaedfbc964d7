// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMerchant creates a merchant record with the given name and returns it.
func CreateTestMerchant(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("merchants")
	if err != nil {
		t.Fatalf("failed to find merchants collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("status", "draft")
	record.Set("legal_form", "GmbH")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test merchant: %v", err)
	}

	return record
}

// CreateTestLocation creates a business location linked to a merchant.
func CreateTestLocation(t *testing.T, app *pocketbase.PocketBase, merchantID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("business_locations")
	if err != nil {
		t.Fatalf("failed to find business_locations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("merchant", merchantID)
	record.Set("name", name)
	record.Set("street", "Hauptstr. 1")
	record.Set("city", "Berlin")
	record.Set("postal_code", "10115")
	record.Set("country", "Germany")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test location: %v", err)
	}

	return record
}

// CreateTestCatalogItem creates a catalog item record and returns it.
func CreateTestCatalogItem(t *testing.T, app *pocketbase.PocketBase, kind, category, name string, monthlyFee, internalCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		t.Fatalf("failed to find catalog_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("kind", kind)
	record.Set("category", category)
	record.Set("name", name)
	record.Set("monthly_fee", monthlyFee)
	record.Set("internal_cost", internalCost)
	record.Set("active", true)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog item: %v", err)
	}

	return record
}

// CreateTestTemplate creates a document template record with default sections
// for the given document type.
func CreateTestTemplate(t *testing.T, app *pocketbase.PocketBase, name, documentType string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("document_templates")
	if err != nil {
		t.Fatalf("failed to find document_templates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("document_type", documentType)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test template: %v", err)
	}

	return record
}

// CreateTestQuoteItem creates a quote item for a merchant. parentID may be
// empty for top-level cards.
func CreateTestQuoteItem(t *testing.T, app *pocketbase.PocketBase, merchantID, parentID, kind, name string, qty int, monthlyFee, internalCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("merchant", merchantID)
	record.Set("kind", kind)
	record.Set("category", "Terminals")
	record.Set("name", name)
	record.Set("quantity", qty)
	record.Set("monthly_fee", monthlyFee)
	record.Set("internal_cost", internalCost)
	record.Set("sort_order", 1)
	if parentID != "" {
		record.Set("parent_item", parentID)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
