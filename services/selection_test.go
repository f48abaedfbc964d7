package services

import (
	"errors"
	"testing"
)

var (
	posSolution  = Solution{ID: "sol-pos", Name: "POS Solution", RequiresConfiguration: true}
	flatSolution = Solution{ID: "sol-link", Name: "Payment Link", RequiresConfiguration: false}

	bookingModule   = CatalogItem{ID: "mod-booking", Kind: KindService, Category: "Cash Register", Name: "Booking Module", PerUnitMonthlyFee: 8, PerUnitInternalCost: 2}
	inventoryModule = CatalogItem{ID: "mod-inventory", Kind: KindService, Category: "Cash Register", Name: "Inventory Module", PerUnitMonthlyFee: 6, PerUnitInternalCost: 2}
	posSystem       = CatalogItem{ID: "sys-pos12", Kind: KindDevice, Category: "Cash Register", Name: "POS 12 System", PerUnitMonthlyFee: 49, PerUnitInternalCost: 30}
)

func completedFlow(t *testing.T) *SelectionFlow {
	t.Helper()
	f := NewSelectionFlow()
	if err := f.ChooseSolution(posSolution); err != nil {
		t.Fatal(err)
	}
	if err := f.ToggleModule(bookingModule); err != nil {
		t.Fatal(err)
	}
	if err := f.ConfirmModules(); err != nil {
		t.Fatal(err)
	}
	if err := f.ChooseSystem(posSystem); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSelectionFlow_HappyPath(t *testing.T) {
	f := NewSelectionFlow()
	if f.Stage != StageSolution {
		t.Fatalf("initial stage = %s, want %s", f.Stage, StageSolution)
	}

	if err := f.ChooseSolution(posSolution); err != nil {
		t.Fatalf("ChooseSolution() error = %v", err)
	}
	if f.Stage != StageModules {
		t.Fatalf("stage = %s, want %s", f.Stage, StageModules)
	}

	if err := f.ToggleModule(bookingModule); err != nil {
		t.Fatal(err)
	}
	if err := f.ToggleModule(inventoryModule); err != nil {
		t.Fatal(err)
	}
	if err := f.ConfirmModules(); err != nil {
		t.Fatalf("ConfirmModules() error = %v", err)
	}
	if f.Stage != StageSystem {
		t.Fatalf("stage = %s, want %s", f.Stage, StageSystem)
	}

	if err := f.ChooseSystem(posSystem); err != nil {
		t.Fatalf("ChooseSystem() error = %v", err)
	}
	if f.Stage != StageComplete {
		t.Fatalf("stage = %s, want %s", f.Stage, StageComplete)
	}
}

func TestSelectionFlow_UnconfiguredSolution(t *testing.T) {
	f := NewSelectionFlow()
	if err := f.ChooseSolution(flatSolution); err != nil {
		t.Fatalf("ChooseSolution() error = %v", err)
	}
	if f.Stage != StageComplete {
		t.Fatalf("stage = %s, want %s (flat catalog)", f.Stage, StageComplete)
	}
	if f.Configured() {
		t.Error("flat solution reported as configured")
	}

	cards, err := f.MaterializeSelection()
	if err != nil {
		t.Fatalf("MaterializeSelection() error = %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("flat solution materialized %d cards, want 0", len(cards))
	}
}

func TestSelectionFlow_StageGating(t *testing.T) {
	f := NewSelectionFlow()

	if err := f.ToggleModule(bookingModule); !errors.Is(err, ErrSelectionStage) {
		t.Errorf("ToggleModule before solution error = %v, want ErrSelectionStage", err)
	}
	if err := f.ChooseSystem(posSystem); !errors.Is(err, ErrSelectionStage) {
		t.Errorf("ChooseSystem before solution error = %v, want ErrSelectionStage", err)
	}
	if _, err := f.MaterializeSelection(); !errors.Is(err, ErrSelectionStage) {
		t.Errorf("MaterializeSelection before complete error = %v, want ErrSelectionStage", err)
	}

	if err := f.ChooseSolution(posSolution); err != nil {
		t.Fatal(err)
	}
	// No modules picked yet.
	if err := f.ConfirmModules(); !errors.Is(err, ErrSelectionStage) {
		t.Errorf("ConfirmModules without picks error = %v, want ErrSelectionStage", err)
	}
}

func TestSelectionFlow_ToggleRemoves(t *testing.T) {
	f := NewSelectionFlow()
	if err := f.ChooseSolution(posSolution); err != nil {
		t.Fatal(err)
	}
	if err := f.ToggleModule(bookingModule); err != nil {
		t.Fatal(err)
	}
	if err := f.ToggleModule(bookingModule); err != nil {
		t.Fatal(err)
	}
	if len(f.Modules) != 0 {
		t.Errorf("modules = %+v, want empty after double toggle", f.Modules)
	}
}

func TestSelectionFlow_BackPreservesSelections(t *testing.T) {
	f := completedFlow(t)

	// Walk all the way back to the start.
	f.Back() // complete -> system
	if f.Stage != StageSystem {
		t.Fatalf("stage = %s, want %s", f.Stage, StageSystem)
	}
	f.Back() // system -> modules
	f.Back() // modules -> solution
	if f.Stage != StageSolution {
		t.Fatalf("stage = %s, want %s", f.Stage, StageSolution)
	}

	// Nothing was lost.
	if f.Solution == nil || f.Solution.ID != "sol-pos" {
		t.Error("solution pick lost on back navigation")
	}
	if len(f.Modules) != 1 || f.Modules[0].ID != "mod-booking" {
		t.Error("module picks lost on back navigation")
	}
	if f.System == nil || f.System.ID != "sys-pos12" {
		t.Error("system pick lost on back navigation")
	}

	// Back at the first stage, Back is a no-op.
	f.Back()
	if f.Stage != StageSolution {
		t.Errorf("stage = %s after Back at start, want %s", f.Stage, StageSolution)
	}
}

func TestMaterializeSelection(t *testing.T) {
	f := completedFlow(t)

	cards, err := f.MaterializeSelection()
	if err != nil {
		t.Fatalf("MaterializeSelection() error = %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2 (module + system)", len(cards))
	}

	byRef := make(map[string]LineItemCard)
	for _, c := range cards {
		byRef[c.CatalogRef] = c
		if c.Quantity != 1 {
			t.Errorf("card %s quantity = %d, want 1", c.CatalogRef, c.Quantity)
		}
	}
	if _, ok := byRef["mod-booking"]; !ok {
		t.Error("booking module not materialized")
	}
	sys, ok := byRef["sys-pos12"]
	if !ok {
		t.Fatal("system not materialized")
	}
	if !floatClose(sys.MonthlyFee, 49) {
		t.Errorf("system fee = %v, want 49 (snapshot from catalog)", sys.MonthlyFee)
	}
}
