package services

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// SelectionFromRecord decodes the selection_state field of a merchants
// record. An empty field yields a fresh flow at the first stage.
func SelectionFromRecord(record *core.Record) (*SelectionFlow, error) {
	raw := record.GetString("selection_state")
	if raw == "" || raw == "null" {
		return NewSelectionFlow(), nil
	}
	var flow SelectionFlow
	if err := json.Unmarshal([]byte(raw), &flow); err != nil {
		return nil, fmt.Errorf("decode selection state: %w", err)
	}
	if flow.Stage == "" {
		flow.Stage = StageSolution
	}
	return &flow, nil
}

// ApplySelectionToRecord writes the flow back onto the merchants record.
func ApplySelectionToRecord(record *core.Record, flow *SelectionFlow) error {
	raw, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("encode selection state: %w", err)
	}
	record.Set("selection_state", string(raw))
	return nil
}
