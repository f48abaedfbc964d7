package services

import "fmt"

// SelectionStage is the position inside the progressive catalog selection.
type SelectionStage string

const (
	StageSolution SelectionStage = "solution_select"
	StageModules  SelectionStage = "module_select"
	StageSystem   SelectionStage = "system_select"
	StageComplete SelectionStage = "complete"
)

// ErrSelectionStage is wrapped into every out-of-order transition attempt.
var ErrSelectionStage = fmt.Errorf("operation not allowed in this selection stage")

// Solution is a top-level offering. Solutions that require configuration walk
// the merchant through module and system selection; the rest go straight to
// the flat catalog.
type Solution struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	RequiresConfiguration bool   `json:"requiresConfiguration"`
}

// SelectionFlow gates which catalog subsets are selectable based on earlier
// choices. Backward navigation is always permitted and never drops picks:
// module and system selections survive a trip back to an earlier stage.
type SelectionFlow struct {
	Stage    SelectionStage `json:"stage"`
	Solution *Solution      `json:"solution,omitempty"`
	Modules  []CatalogItem  `json:"modules,omitempty"`
	System   *CatalogItem   `json:"system,omitempty"`
}

// NewSelectionFlow starts at the solution stage with nothing chosen.
func NewSelectionFlow() *SelectionFlow {
	return &SelectionFlow{Stage: StageSolution}
}

// Configured reports whether the chosen solution walks through module and
// system configuration. Unconfigured solutions leave this flow immediately
// and the caller offers the flat catalog instead.
func (f *SelectionFlow) Configured() bool {
	return f.Solution != nil && f.Solution.RequiresConfiguration
}

// ChooseSolution records the solution and advances to module selection when
// the solution requires configuration, otherwise the flow is complete as far
// as this machine is concerned.
func (f *SelectionFlow) ChooseSolution(s Solution) error {
	if f.Stage != StageSolution {
		return fmt.Errorf("choose solution in %s: %w", f.Stage, ErrSelectionStage)
	}
	sol := s
	f.Solution = &sol
	if s.RequiresConfiguration {
		f.Stage = StageModules
	} else {
		f.Stage = StageComplete
	}
	return nil
}

// ToggleModule adds the module to the picks, or removes it if already picked.
func (f *SelectionFlow) ToggleModule(item CatalogItem) error {
	if f.Stage != StageModules {
		return fmt.Errorf("toggle module in %s: %w", f.Stage, ErrSelectionStage)
	}
	for i := range f.Modules {
		if f.Modules[i].ID == item.ID {
			f.Modules = append(f.Modules[:i:i], f.Modules[i+1:]...)
			return nil
		}
	}
	f.Modules = append(f.Modules, item)
	return nil
}

// ConfirmModules advances to system selection once at least one module is
// picked.
func (f *SelectionFlow) ConfirmModules() error {
	if f.Stage != StageModules {
		return fmt.Errorf("confirm modules in %s: %w", f.Stage, ErrSelectionStage)
	}
	if len(f.Modules) == 0 {
		return fmt.Errorf("confirm modules: %w", ErrSelectionStage)
	}
	f.Stage = StageSystem
	return nil
}

// ChooseSystem records the system and completes the flow.
func (f *SelectionFlow) ChooseSystem(item CatalogItem) error {
	if f.Stage != StageSystem {
		return fmt.Errorf("choose system in %s: %w", f.Stage, ErrSelectionStage)
	}
	sys := item
	f.System = &sys
	f.Stage = StageComplete
	return nil
}

// Back steps to the previous stage. Selections made further ahead are kept,
// so returning to module selection and forward again does not lose the
// system pick.
func (f *SelectionFlow) Back() {
	switch f.Stage {
	case StageModules:
		f.Stage = StageSolution
	case StageSystem:
		f.Stage = StageModules
	case StageComplete:
		if f.Configured() {
			f.Stage = StageSystem
		} else {
			f.Stage = StageSolution
		}
	}
}

// MaterializeSelection turns the completed selection into quote cards: one
// card per picked module plus one for the system, each at quantity 1.
func (f *SelectionFlow) MaterializeSelection() ([]LineItemCard, error) {
	if f.Stage != StageComplete {
		return nil, fmt.Errorf("materialize in %s: %w", f.Stage, ErrSelectionStage)
	}
	var cards []LineItemCard
	for _, m := range f.Modules {
		cards = append(cards, InstantiateCard(m, 1))
	}
	if f.System != nil {
		cards = append(cards, InstantiateCard(*f.System, 1))
	}
	return cards, nil
}
