package services

import (
	"errors"
	"fmt"
)

// Validation errors. These are returned as values so the editor UI can show
// them inline next to the offending control.
var (
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidAddonNesting = errors.New("only add-on items can be attached to a card")
	ErrMissingLocation     = errors.New("card has no business location assigned")
	ErrNegativeFee         = errors.New("fee must not be negative")
	ErrSectionsExist       = errors.New("template already has sections")
)

// Structural grid errors.
var (
	ErrNotRectangular  = errors.New("selected cells do not form a contiguous rectangle")
	ErrNotSplittable   = errors.New("cell has no span to split")
	ErrNotTableSection = errors.New("section has no table layout")
)

// Not-found errors. These indicate a stale id coming from the caller; the
// operation is abandoned but the surrounding structure stays intact.
var (
	ErrCellNotFound    = errors.New("cell not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrCardNotFound    = errors.New("card not found")
)

// GridErrorCode classifies a grid partition violation.
type GridErrorCode string

const (
	GridErrOverlap     GridErrorCode = "overlap"
	GridErrGap         GridErrorCode = "gap"
	GridErrOutOfBounds GridErrorCode = "out_of_bounds"
)

// GridError reports where a grid stopped being a clean partition of its
// rows×cols rectangle. Row/Col are set for overlap and gap violations,
// CellID for out-of-bounds spans.
type GridError struct {
	Code   GridErrorCode
	Row    int
	Col    int
	CellID string
}

func (e *GridError) Error() string {
	switch e.Code {
	case GridErrOverlap:
		return fmt.Sprintf("grid: overlapping cells at (%d,%d)", e.Row, e.Col)
	case GridErrGap:
		return fmt.Sprintf("grid: uncovered position at (%d,%d)", e.Row, e.Col)
	case GridErrOutOfBounds:
		return fmt.Sprintf("grid: cell %s extends past the grid bounds", e.CellID)
	}
	return "grid: invalid layout"
}

// TableEditError wraps a grid or lookup failure with the section it happened
// in, so handlers can log a useful prefix without inspecting the grid.
type TableEditError struct {
	SectionID string
	Op        string
	Err       error
}

func (e *TableEditError) Error() string {
	return fmt.Sprintf("table edit %s on section %s: %v", e.Op, e.SectionID, e.Err)
}

func (e *TableEditError) Unwrap() error { return e.Err }
