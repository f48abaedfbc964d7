// Package services contains the onboarding core: the table-layout grid engine,
// the contract template document model, the quote aggregator and the
// progressive catalog selection flow, plus the PDF/Excel document generators.
package services

import "fmt"

// CellKind describes what a grid cell carries.
type CellKind string

const (
	CellEmpty CellKind = "empty"
	CellLabel CellKind = "label"
	CellField CellKind = "field"
)

// GridCell is one cell of a table layout. Row/Col are zero-based; a cell
// occupies the rectangle [Row, Row+Rowspan) × [Col, Col+Colspan).
type GridCell struct {
	ID      string     `json:"id"`
	Row     int        `json:"row"`
	Col     int        `json:"col"`
	Colspan int        `json:"colspan"`
	Rowspan int        `json:"rowspan"`
	Kind    CellKind   `json:"kind"`
	Label   string     `json:"label,omitempty"`
	Field   *FieldSpec `json:"field,omitempty"`
}

// TableGrid is the authoritative structure of a table-layout section.
// The cells partition the Rows×Cols rectangle exactly: no overlaps, no gaps.
// Seq is a monotonic counter for cell ids; it only ever grows, so ids never
// repeat within one grid's lifetime.
type TableGrid struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Seq   int        `json:"seq"`
	Cells []GridCell `json:"cells"`
}

// NewTableGrid creates a rows×cols grid of 1×1 empty cells with
// deterministic ids (c1, c2, ... in row-major order).
func NewTableGrid(rows, cols int) TableGrid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g := TableGrid{Rows: rows, Cols: cols}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Cells = append(g.Cells, GridCell{
				ID:      g.nextID(),
				Row:     r,
				Col:     c,
				Colspan: 1,
				Rowspan: 1,
				Kind:    CellEmpty,
			})
		}
	}
	return g
}

func (g *TableGrid) nextID() string {
	g.Seq++
	return fmt.Sprintf("c%d", g.Seq)
}

// clone returns a deep copy so that mutating operations can build a candidate
// grid, validate it, and throw it away on failure without touching the
// original.
func (g TableGrid) clone() TableGrid {
	out := g
	out.Cells = make([]GridCell, len(g.Cells))
	copy(out.Cells, g.Cells)
	for i := range out.Cells {
		if f := out.Cells[i].Field; f != nil {
			fc := *f
			if f.Options != nil {
				fc.Options = append([]string(nil), f.Options...)
			}
			out.Cells[i].Field = &fc
		}
	}
	return out
}

// Validate checks the partition invariant: every position of the Rows×Cols
// rectangle is covered by exactly one cell rectangle and no cell extends past
// the bounds. It is cheap enough to run after every structural mutation.
func (g TableGrid) Validate() error {
	occupied := make([]string, g.Rows*g.Cols)
	for _, cell := range g.Cells {
		if cell.Row < 0 || cell.Col < 0 || cell.Colspan < 1 || cell.Rowspan < 1 ||
			cell.Row+cell.Rowspan > g.Rows || cell.Col+cell.Colspan > g.Cols {
			return &GridError{Code: GridErrOutOfBounds, CellID: cell.ID}
		}
		for r := cell.Row; r < cell.Row+cell.Rowspan; r++ {
			for c := cell.Col; c < cell.Col+cell.Colspan; c++ {
				idx := r*g.Cols + c
				if occupied[idx] != "" {
					return &GridError{Code: GridErrOverlap, Row: r, Col: c}
				}
				occupied[idx] = cell.ID
			}
		}
	}
	for idx, id := range occupied {
		if id == "" {
			return &GridError{Code: GridErrGap, Row: idx / g.Cols, Col: idx % g.Cols}
		}
	}
	return nil
}

// findCell returns the index of the cell with the given id, or -1.
func (g TableGrid) findCell(id string) int {
	for i := range g.Cells {
		if g.Cells[i].ID == id {
			return i
		}
	}
	return -1
}

// AddRow appends one row of 1×1 empty cells.
func (g TableGrid) AddRow() TableGrid {
	out := g.clone()
	for c := 0; c < out.Cols; c++ {
		out.Cells = append(out.Cells, GridCell{
			ID:      out.nextID(),
			Row:     out.Rows,
			Col:     c,
			Colspan: 1,
			Rowspan: 1,
			Kind:    CellEmpty,
		})
	}
	out.Rows++
	return out
}

// AddColumn appends one column of 1×1 empty cells across all existing rows.
func (g TableGrid) AddColumn() TableGrid {
	out := g.clone()
	for r := 0; r < out.Rows; r++ {
		out.Cells = append(out.Cells, GridCell{
			ID:      out.nextID(),
			Row:     r,
			Col:     out.Cols,
			Colspan: 1,
			Rowspan: 1,
			Kind:    CellEmpty,
		})
	}
	out.Cols++
	return out
}

// MergeCells merges the identified cells into one. The selection must cover a
// contiguous axis-aligned rectangle with no internal gaps; the top-left cell
// survives (keeping its content) with colspan/rowspan set to the rectangle,
// and the other cells are removed. On failure the original grid is returned
// unchanged.
func (g TableGrid) MergeCells(ids []string) (TableGrid, error) {
	if len(ids) < 2 {
		return g, ErrNotRectangular
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		if g.findCell(id) < 0 {
			return g, fmt.Errorf("merge target %s: %w", id, ErrCellNotFound)
		}
		selected[id] = true
	}

	// Bounding box of all selected cell rectangles.
	minRow, minCol := g.Rows, g.Cols
	maxRow, maxCol := -1, -1
	area := 0
	for _, cell := range g.Cells {
		if !selected[cell.ID] {
			continue
		}
		if cell.Row < minRow {
			minRow = cell.Row
		}
		if cell.Col < minCol {
			minCol = cell.Col
		}
		if cell.Row+cell.Rowspan > maxRow {
			maxRow = cell.Row + cell.Rowspan
		}
		if cell.Col+cell.Colspan > maxCol {
			maxCol = cell.Col + cell.Colspan
		}
		area += cell.Rowspan * cell.Colspan
	}

	// The grid is a valid partition, so the selected rectangles are disjoint.
	// They tile the bounding box exactly iff their combined area matches it.
	if area != (maxRow-minRow)*(maxCol-minCol) {
		return g, ErrNotRectangular
	}

	out := g.clone()
	kept := out.Cells[:0]
	for _, cell := range out.Cells {
		if !selected[cell.ID] {
			kept = append(kept, cell)
			continue
		}
		if cell.Row == minRow && cell.Col == minCol {
			cell.Colspan = maxCol - minCol
			cell.Rowspan = maxRow - minRow
			kept = append(kept, cell)
		}
	}
	out.Cells = kept

	if err := out.Validate(); err != nil {
		return g, err
	}
	return out, nil
}

// SplitCell replaces a spanning cell with colspan×rowspan 1×1 empty cells at
// the same positions. A 1×1 cell cannot be split.
func (g TableGrid) SplitCell(id string) (TableGrid, error) {
	i := g.findCell(id)
	if i < 0 {
		return g, fmt.Errorf("split target %s: %w", id, ErrCellNotFound)
	}
	target := g.Cells[i]
	if target.Colspan == 1 && target.Rowspan == 1 {
		return g, ErrNotSplittable
	}

	out := g.clone()
	out.Cells = append(out.Cells[:i:i], out.Cells[i+1:]...)
	for r := target.Row; r < target.Row+target.Rowspan; r++ {
		for c := target.Col; c < target.Col+target.Colspan; c++ {
			out.Cells = append(out.Cells, GridCell{
				ID:      out.nextID(),
				Row:     r,
				Col:     c,
				Colspan: 1,
				Rowspan: 1,
				Kind:    CellEmpty,
			})
		}
	}

	if err := out.Validate(); err != nil {
		return g, err
	}
	return out, nil
}

// SetCellContent replaces a cell's semantic content without touching its span
// or position. Label is only kept for label cells, field only for field cells.
func (g TableGrid) SetCellContent(id string, kind CellKind, label string, field *FieldSpec) (TableGrid, error) {
	i := g.findCell(id)
	if i < 0 {
		return g, fmt.Errorf("content target %s: %w", id, ErrCellNotFound)
	}
	out := g.clone()
	cell := &out.Cells[i]
	cell.Kind = kind
	cell.Label = ""
	cell.Field = nil
	switch kind {
	case CellLabel:
		cell.Label = label
	case CellField:
		if field != nil {
			fc := *field
			if field.Options != nil {
				fc.Options = append([]string(nil), field.Options...)
			}
			cell.Field = &fc
		}
	}
	return out, nil
}
