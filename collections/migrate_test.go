package collections_test

import (
	"testing"

	"merchantonboarding/collections"
	"merchantonboarding/testhelpers"
)

func TestMigrateSingleLocationAssignments(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	merchant := testhelpers.CreateTestMerchant(t, app, "Single Location GmbH")
	loc := testhelpers.CreateTestLocation(t, app, merchant.Id, "Main Store")
	item := testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Countertop Terminal", 1, 25, 14)

	if err := collections.MigrateSingleLocationAssignments(app); err != nil {
		t.Fatalf("migration error: %v", err)
	}

	updated, err := app.FindRecordById("quote_items", item.Id)
	if err != nil {
		t.Fatalf("reload quote item: %v", err)
	}
	if updated.GetString("location") != loc.Id {
		t.Errorf("location = %q, want %q", updated.GetString("location"), loc.Id)
	}
}

func TestMigrateSingleLocationAssignments_MultipleLocations(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	merchant := testhelpers.CreateTestMerchant(t, app, "Chain GmbH")
	testhelpers.CreateTestLocation(t, app, merchant.Id, "North Store")
	testhelpers.CreateTestLocation(t, app, merchant.Id, "South Store")
	item := testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Mobile Terminal", 1, 29, 16)

	if err := collections.MigrateSingleLocationAssignments(app); err != nil {
		t.Fatalf("migration error: %v", err)
	}

	// Ambiguous: the item must stay unassigned.
	updated, _ := app.FindRecordById("quote_items", item.Id)
	if got := updated.GetString("location"); got != "" {
		t.Errorf("location = %q, want unassigned", got)
	}
}

func TestMigrateSingleLocationAssignments_SkipsAddonsAndAssigned(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	merchant := testhelpers.CreateTestMerchant(t, app, "Bakery Schmidt GmbH")
	loc := testhelpers.CreateTestLocation(t, app, merchant.Id, "Main Store")
	testhelpers.CreateTestLocation(t, app, merchant.Id, "Kiosk")

	card := testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Countertop Terminal", 1, 25, 14)
	card.Set("location", loc.Id)
	if err := app.Save(card); err != nil {
		t.Fatal(err)
	}
	addon := testhelpers.CreateTestQuoteItem(t, app, merchant.Id, card.Id, "addon", "Digital Receipts", 1, 5, 1)

	if err := collections.MigrateSingleLocationAssignments(app); err != nil {
		t.Fatalf("migration error: %v", err)
	}

	reloadedCard, _ := app.FindRecordById("quote_items", card.Id)
	if reloadedCard.GetString("location") != loc.Id {
		t.Errorf("assigned card location changed to %q", reloadedCard.GetString("location"))
	}
	reloadedAddon, _ := app.FindRecordById("quote_items", addon.Id)
	if got := reloadedAddon.GetString("location"); got != "" {
		t.Errorf("add-on got location %q, add-ons follow their card", got)
	}
}

func TestMigrateSingleLocationAssignments_NothingToDo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.MigrateSingleLocationAssignments(app); err != nil {
		t.Errorf("migration on empty database error: %v", err)
	}
}
