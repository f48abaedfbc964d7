package services

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// MergeData carries the merchant record values a document is rendered with,
// keyed by FieldSpec.Key.
type MergeData map[string]string

// RenderTemplatePDF renders a contract template with the given merge data
// using maroto/v2 and returns the raw PDF bytes. The template is expected to
// satisfy the grid partition invariant; the renderer does not re-validate
// geometry.
func RenderTemplatePDF(tmpl Template, data MergeData) ([]byte, error) {
	margin := tmpl.Styling.Margin
	if margin <= 0 {
		margin = 10
	}
	size := pagesize.A4
	if tmpl.Styling.PageFormat == "letter" {
		size = pagesize.Letter
	}
	pattern := tmpl.Footer.PageNumberFormat
	if pattern == "" {
		pattern = "Page {current} of {total}"
	}

	cfg := config.NewBuilder().
		WithPageSize(size).
		WithLeftMargin(margin).
		WithTopMargin(margin).
		WithRightMargin(margin).
		WithPageNumber(props.PageNumber{
			Pattern: pattern,
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addDocumentHeader(m, tmpl)
	for _, section := range tmpl.Sections {
		addSection(m, tmpl, section, data)
	}
	addDocumentFooter(m, tmpl)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addDocumentHeader adds the banner row with the template title on the
// header background color.
func addDocumentHeader(m core.Maroto, tmpl Template) {
	headerCell := &props.Cell{BackgroundColor: parseHexColor(tmpl.Header.BackgroundColor)}

	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New(tmpl.Header.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			).WithStyle(headerCell),
		),
	)

	if tmpl.Description != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(tmpl.Description, props.Text{
						Size:  9,
						Align: align.Center,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addSection renders one section: its title bar followed by a body that
// depends on the section kind.
func addSection(m core.Maroto, tmpl Template, section Section, data MergeData) {
	titleBg := parseHexColor(tmpl.Styling.PrimaryColor)
	if titleBg == nil {
		titleBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(section.Title, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				}),
			).WithStyle(&props.Cell{BackgroundColor: titleBg}),
		),
	)

	switch section.Kind {
	case SectionTableLayout:
		if section.Table != nil {
			addGridRows(m, *section.Table, data)
		}
	case SectionDynamicTable:
		addDynamicTableHeader(m, section.Fields)
	case SectionSignatureArea:
		addSignatureRows(m, section.Fields, data)
	default:
		addFieldRows(m, section.Fields, data)
	}

	m.AddRows(row.New(4))
}

// addFieldRows renders a flat field list as label/value pairs.
func addFieldRows(m core.Maroto, fields []FieldSpec, data MergeData) {
	for _, f := range fields {
		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(
					text.New(f.Label, props.Text{
						Size:  8,
						Style: fontstyle.Bold,
						Align: align.Left,
					}),
				),
				col.New(8).Add(
					text.New(fieldValue(f, data), props.Text{
						Size:  8,
						Align: align.Left,
					}),
				),
			),
		)
	}
}

// addDynamicTableHeader renders the column header row of a dynamic table.
// The data rows themselves come from repeated merge records and are appended
// by the caller that owns them, not from the template.
func addDynamicTableHeader(m core.Maroto, fields []FieldSpec) {
	if len(fields) == 0 {
		return
	}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 100, Green: 100, Blue: 100}}

	widths := spreadColumns(len(fields))
	var cols []core.Col
	for i, f := range fields {
		cols = append(cols, col.New(widths[i]).Add(text.New(f.Label, headerText)).WithStyle(headerCell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

// addSignatureRows renders one signature line per field.
func addSignatureRows(m core.Maroto, fields []FieldSpec, data MergeData) {
	for _, f := range fields {
		value := "_________________________"
		if v := data[f.Key]; v != "" {
			value = v
		}
		m.AddRows(
			row.New(12).Add(
				col.New(6).Add(
					text.New(value, props.Text{Size: 9, Align: align.Left, Top: 4}),
				),
				col.New(6).Add(
					text.New(f.Label, props.Text{
						Size:  7,
						Align: align.Left,
						Top:   8,
						Color: &props.Color{Red: 120, Green: 120, Blue: 120},
					}),
				),
			),
		)
	}
}

// addGridRows maps the table grid onto maroto's 12-column rows. Each grid row
// becomes one maroto row; a cell's column width is its colspan's proportional
// share of 12. Positions covered by a rowspan from an earlier row render as
// blank columns of the same width, since maroto rows cannot span vertically.
func addGridRows(m core.Maroto, grid TableGrid, data MergeData) {
	// Anchor lookup: covering cell per position.
	covering := make([]*GridCell, grid.Rows*grid.Cols)
	for i := range grid.Cells {
		cell := &grid.Cells[i]
		for r := cell.Row; r < cell.Row+cell.Rowspan; r++ {
			for c := cell.Col; c < cell.Col+cell.Colspan; c++ {
				covering[r*grid.Cols+c] = cell
			}
		}
	}

	border := &props.Cell{
		BorderColor:     &props.Color{Red: 180, Green: 180, Blue: 180},
		BorderType:      border.Full,
		BorderThickness: 0.2,
	}

	for r := 0; r < grid.Rows; r++ {
		var cols []core.Col
		for c := 0; c < grid.Cols; {
			cell := covering[r*grid.Cols+c]
			width := gridColWidth(grid.Cols, cell.Col, cell.Colspan)
			if cell.Row == r && cell.Col == c {
				cols = append(cols, gridCellCol(*cell, width, border, data))
			} else {
				// Continuation of a rowspan; keep the slot visually empty.
				cols = append(cols, col.New(width).WithStyle(border))
			}
			c = cell.Col + cell.Colspan
		}
		m.AddRows(row.New(8).Add(cols...))
	}
}

func gridCellCol(cell GridCell, width int, style *props.Cell, data MergeData) core.Col {
	switch cell.Kind {
	case CellLabel:
		return col.New(width).Add(text.New(cell.Label, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Left,
		})).WithStyle(style)
	case CellField:
		if cell.Field != nil {
			return col.New(width).Add(text.New(fieldValue(*cell.Field, data), props.Text{
				Size:  8,
				Align: align.Left,
			})).WithStyle(style)
		}
	}
	return col.New(width).WithStyle(style)
}

// gridColWidth converts a colspan into its share of maroto's 12 columns using
// cumulative rounding so the widths of one row always sum to 12.
func gridColWidth(gridCols, start, span int) int {
	left := start * 12 / gridCols
	right := (start + span) * 12 / gridCols
	return right - left
}

// spreadColumns splits 12 columns across n fields, front-loading remainders.
func spreadColumns(n int) []int {
	widths := make([]int, n)
	for i := 0; i < n; i++ {
		widths[i] = (i+1)*12/n - i*12/n
	}
	return widths
}

// addDocumentFooter adds the branding line at the bottom.
func addDocumentFooter(m core.Maroto, tmpl Template) {
	if tmpl.Footer.BrandingText == "" {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(tmpl.Footer.BrandingText, props.Text{
					Size:  7,
					Align: align.Left,
					Color: &props.Color{Red: 140, Green: 140, Blue: 140},
				}),
			),
		),
	)
}

// fieldValue resolves the rendered value of a field from the merge data.
// Checkboxes render as checked/unchecked boxes, unfilled fields as a blank
// writing line.
func fieldValue(f FieldSpec, data MergeData) string {
	v := data[f.Key]
	switch f.Type {
	case FieldCheckbox:
		if v == "true" || v == "1" || v == "yes" {
			return "[X] " + f.Label
		}
		return "[ ] " + f.Label
	case FieldSignature:
		if v == "" {
			return "_________________________"
		}
	}
	if v == "" {
		return "____________________"
	}
	return v
}

// parseHexColor converts "#RRGGBB" into a maroto color. Invalid or empty
// values return nil so callers can fall back to their defaults.
func parseHexColor(s string) *props.Color {
	if len(s) != 7 || s[0] != '#' {
		return nil
	}
	r, err1 := strconv.ParseUint(s[1:3], 16, 8)
	g, err2 := strconv.ParseUint(s[3:5], 16, 8)
	b, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	return &props.Color{Red: int(r), Green: int(g), Blue: int(b)}
}
