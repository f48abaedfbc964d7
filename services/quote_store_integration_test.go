package services_test

import (
	"strings"
	"testing"
	"time"

	"merchantonboarding/services"
	"merchantonboarding/testhelpers"
)

func TestLoadQuoteCards_NestsAddons(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Bakery Schmidt GmbH")

	card := testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Countertop Terminal", 2, 25, 14)
	testhelpers.CreateTestQuoteItem(t, app, merchant.Id, card.Id, "addon", "Digital Receipts", 1, 5, 1)
	testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "service", "Card Acquiring", 1, 9.9, 3.5)

	cards, err := services.LoadQuoteCards(app, merchant.Id)
	if err != nil {
		t.Fatalf("LoadQuoteCards() error = %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2 top-level", len(cards))
	}

	var terminal *services.LineItemCard
	for i := range cards {
		if cards[i].Name == "Countertop Terminal" {
			terminal = &cards[i]
		}
	}
	if terminal == nil {
		t.Fatal("terminal card not loaded")
	}
	if terminal.Quantity != 2 || terminal.MonthlyFee != 25 {
		t.Errorf("terminal = %+v", terminal)
	}
	if len(terminal.Addons) != 1 || terminal.Addons[0].Name != "Digital Receipts" {
		t.Errorf("addons = %+v, want nested Digital Receipts", terminal.Addons)
	}

	totals := services.ComputeQuoteTotals(cards)
	if totals.TotalMonthlyFee != 2*25+5+9.9 {
		t.Errorf("TotalMonthlyFee = %v, want 64.9", totals.TotalMonthlyFee)
	}
}

func TestGenerateQuoteNumber_Sequence(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Bakery Schmidt GmbH")
	merchant.Set("reference_number", "M-1042")
	if err := app.Save(merchant); err != nil {
		t.Fatal(err)
	}
	testhelpers.CreateTestLocation(t, app, merchant.Id, "Main Store")
	testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Countertop Terminal", 1, 25, 14)

	now := time.Now()
	first, err := services.GenerateQuoteNumber(app, merchant.Id, now)
	if err != nil {
		t.Fatalf("GenerateQuoteNumber() error = %v", err)
	}
	if !strings.HasPrefix(first, "MSP-QT-M-1042-") || !strings.HasSuffix(first, "-001") {
		t.Errorf("first quote number = %q", first)
	}

	// Snapshotting consumes the number; the next one increments.
	cards, err := services.LoadQuoteCards(app, merchant.Id)
	if err != nil {
		t.Fatal(err)
	}
	saved, err := services.SaveQuoteSnapshot(app, merchant.Id, cards, 1)
	if err != nil {
		t.Fatalf("SaveQuoteSnapshot() error = %v", err)
	}
	if saved != first {
		t.Errorf("snapshot reference = %q, want %q", saved, first)
	}

	second, err := services.GenerateQuoteNumber(app, merchant.Id, now)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(second, "-002") {
		t.Errorf("second quote number = %q, want sequence 002", second)
	}
}

func TestSaveQuoteSnapshot_EnforcesCompleteness(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Chain GmbH")
	testhelpers.CreateTestLocation(t, app, merchant.Id, "North Store")
	testhelpers.CreateTestLocation(t, app, merchant.Id, "South Store")
	testhelpers.CreateTestQuoteItem(t, app, merchant.Id, "", "device", "Mobile Terminal", 1, 29, 16)

	cards, err := services.LoadQuoteCards(app, merchant.Id)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := services.SaveQuoteSnapshot(app, merchant.Id, cards, 2); err == nil {
		t.Error("snapshot saved despite missing location assignment")
	}

	// No snapshot record was written.
	records, _ := app.FindRecordsByFilter(
		"quote_snapshots", "merchant = {:m}", "", 0, 0,
		map[string]any{"m": merchant.Id},
	)
	if len(records) != 0 {
		t.Errorf("%d snapshots saved despite failure", len(records))
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	merchant := testhelpers.CreateTestMerchant(t, app, "Bakery Schmidt GmbH")

	flow, err := services.SelectionFromRecord(merchant)
	if err != nil {
		t.Fatalf("SelectionFromRecord() error = %v", err)
	}
	if flow.Stage != services.StageSolution {
		t.Fatalf("fresh flow stage = %s", flow.Stage)
	}

	sol, ok := services.FindSolution("pos_system")
	if !ok {
		t.Fatal("pos_system solution not defined")
	}
	if err := flow.ChooseSolution(sol); err != nil {
		t.Fatal(err)
	}
	if err := services.ApplySelectionToRecord(merchant, flow); err != nil {
		t.Fatal(err)
	}
	if err := app.Save(merchant); err != nil {
		t.Fatal(err)
	}

	reloaded, err := app.FindRecordById("merchants", merchant.Id)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := services.SelectionFromRecord(reloaded)
	if err != nil {
		t.Fatalf("SelectionFromRecord() after reload error = %v", err)
	}
	if restored.Stage != services.StageModules {
		t.Errorf("restored stage = %s, want %s", restored.Stage, services.StageModules)
	}
	if restored.Solution == nil || restored.Solution.ID != "pos_system" {
		t.Errorf("restored solution = %+v", restored.Solution)
	}
}
