package services

import "fmt"

// Table layout engine: the grid operations scoped to a template section.
// Every operation either returns the template with the section's grid
// replaced by a new valid one, or returns the template unchanged together
// with a *TableEditError. A partially-mutated grid is never written back.

func tableSection(t Template, sectionID, op string) (int, *TableEditError) {
	i := t.findSection(sectionID)
	if i < 0 {
		return -1, &TableEditError{SectionID: sectionID, Op: op, Err: ErrSectionNotFound}
	}
	if t.Sections[i].Kind != SectionTableLayout || t.Sections[i].Table == nil {
		return -1, &TableEditError{SectionID: sectionID, Op: op,
			Err: fmt.Errorf("section kind %s: %w", t.Sections[i].Kind, ErrNotTableSection)}
	}
	return i, nil
}

func replaceTable(t Template, i int, g TableGrid) Template {
	t.Sections = t.cloneSections()
	t.Sections[i].Table = &g
	return t
}

// AddTableRow appends a row to the section's grid.
func AddTableRow(t Template, sectionID string) (Template, error) {
	i, terr := tableSection(t, sectionID, "add_row")
	if terr != nil {
		return t, terr
	}
	return replaceTable(t, i, t.Sections[i].Table.AddRow()), nil
}

// AddTableColumn appends a column to the section's grid.
func AddTableColumn(t Template, sectionID string) (Template, error) {
	i, terr := tableSection(t, sectionID, "add_column")
	if terr != nil {
		return t, terr
	}
	return replaceTable(t, i, t.Sections[i].Table.AddColumn()), nil
}

// MergeTableCells merges the identified cells in the section's grid.
func MergeTableCells(t Template, sectionID string, cellIDs []string) (Template, error) {
	i, terr := tableSection(t, sectionID, "merge_cells")
	if terr != nil {
		return t, terr
	}
	g, err := t.Sections[i].Table.MergeCells(cellIDs)
	if err != nil {
		return t, &TableEditError{SectionID: sectionID, Op: "merge_cells", Err: err}
	}
	return replaceTable(t, i, g), nil
}

// SplitTableCell splits a spanning cell in the section's grid.
func SplitTableCell(t Template, sectionID, cellID string) (Template, error) {
	i, terr := tableSection(t, sectionID, "split_cell")
	if terr != nil {
		return t, terr
	}
	g, err := t.Sections[i].Table.SplitCell(cellID)
	if err != nil {
		return t, &TableEditError{SectionID: sectionID, Op: "split_cell", Err: err}
	}
	return replaceTable(t, i, g), nil
}

// SetTableCellContent replaces the content of one cell in the section's grid.
func SetTableCellContent(t Template, sectionID, cellID string, kind CellKind, label string, field *FieldSpec) (Template, error) {
	i, terr := tableSection(t, sectionID, "set_cell_content")
	if terr != nil {
		return t, terr
	}
	g, err := t.Sections[i].Table.SetCellContent(cellID, kind, label, field)
	if err != nil {
		return t, &TableEditError{SectionID: sectionID, Op: "set_cell_content", Err: err}
	}
	return replaceTable(t, i, g), nil
}
