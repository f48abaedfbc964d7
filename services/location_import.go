package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

const importBatchSize = 100

// LocationField describes one column of the business-location import sheet.
type LocationField struct {
	Key      string
	Label    string
	Required bool
}

// LocationImportFields returns the columns of the location import template,
// in sheet order.
func LocationImportFields() []LocationField {
	return []LocationField{
		{Key: "name", Label: "Location Name", Required: true},
		{Key: "street", Label: "Street", Required: true},
		{Key: "city", Label: "City", Required: true},
		{Key: "postal_code", Label: "Postal Code", Required: true},
		{Key: "country", Label: "Country", Required: false},
		{Key: "phone", Label: "Phone", Required: false},
		{Key: "email", Label: "E-Mail", Required: false},
	}
}

var (
	postalPattern      = regexp.MustCompile(`^[0-9]{4,5}$`)
	importEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ImportRowError represents a failure in a specific sheet row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult holds the outcome of a batch import operation.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	RolledBack bool             `json:"rolled_back"`
}

// ParseLocationWorkbook reads the first sheet of an uploaded .xlsx file and
// returns one key→value map per data row, keyed by the import field keys.
// The header row is matched by label (case-insensitive, trailing * ignored).
func ParseLocationWorkbook(fileBytes []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	// Map column index -> field key via the header row.
	labelToKey := make(map[string]string)
	for _, field := range LocationImportFields() {
		labelToKey[strings.ToLower(field.Label)] = field.Key
	}
	colKeys := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		header = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(header), "*"))
		colKeys[i] = labelToKey[strings.ToLower(header)]
	}

	var parsed []map[string]string
	for _, row := range rows[1:] {
		entry := make(map[string]string)
		empty := true
		for i, cell := range row {
			if i >= len(colKeys) || colKeys[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			entry[colKeys[i]] = cell
		}
		if !empty {
			parsed = append(parsed, entry)
		}
	}
	return parsed, nil
}

// ValidateLocationRows checks required fields, value formats and duplicate
// location names (within the sheet and against the merchant's existing
// locations). Row numbers in the errors are 1-indexed sheet rows, counting
// the header.
func ValidateLocationRows(app *pocketbase.PocketBase, merchantID string, rows []map[string]string) []ImportRowError {
	existing := make(map[string]bool)
	records, err := app.FindRecordsByFilter(
		"business_locations",
		"merchant = {:merchantId}",
		"",
		0,
		0,
		map[string]any{"merchantId": merchantID},
	)
	if err == nil {
		for _, rec := range records {
			existing[strings.ToLower(rec.GetString("name"))] = true
		}
	}

	var errs []ImportRowError
	seen := make(map[string]int)
	for i, row := range rows {
		rowNum := i + 2 // 1-indexed + header row

		for _, field := range LocationImportFields() {
			if field.Required && row[field.Key] == "" {
				errs = append(errs, ImportRowError{
					Row:     rowNum,
					Field:   field.Key,
					Message: field.Label + " is required",
				})
			}
		}

		if pc := row["postal_code"]; pc != "" && !postalPattern.MatchString(pc) {
			errs = append(errs, ImportRowError{
				Row:     rowNum,
				Field:   "postal_code",
				Message: "postal code must be 4 or 5 digits",
			})
		}
		if email := row["email"]; email != "" && !importEmailPattern.MatchString(email) {
			errs = append(errs, ImportRowError{
				Row:     rowNum,
				Field:   "email",
				Message: "invalid e-mail address",
			})
		}

		name := strings.ToLower(row["name"])
		if name == "" {
			continue
		}
		if firstRow, dup := seen[name]; dup {
			errs = append(errs, ImportRowError{
				Row:     rowNum,
				Field:   "name",
				Message: fmt.Sprintf("duplicate of row %d", firstRow),
			})
		} else {
			seen[name] = rowNum
		}
		if existing[name] {
			errs = append(errs, ImportRowError{
				Row:     rowNum,
				Field:   "name",
				Message: "location already exists for this merchant",
			})
		}
	}
	return errs
}

// CommitLocationImport re-validates and batch-inserts parsed location rows.
// Rows are processed in chunks of importBatchSize; a failing insert rolls
// back its whole chunk, records the error and the import continues with the
// next chunk.
func CommitLocationImport(app *pocketbase.PocketBase, merchantID string, rows []map[string]string) (*ImportResult, error) {
	if errs := ValidateLocationRows(app, merchantID, rows); len(errs) > 0 {
		failedRows := make(map[int]bool)
		for _, e := range errs {
			failedRows[e.Row] = true
		}
		return &ImportResult{
			TotalRows:  len(rows),
			Failed:     len(failedRows),
			Errors:     errs,
			RolledBack: true,
		}, nil
	}

	col, err := app.FindCollectionByNameOrId("business_locations")
	if err != nil {
		return nil, fmt.Errorf("business_locations collection not found: %w", err)
	}

	result := &ImportResult{TotalRows: len(rows)}
	for chunkStart := 0; chunkStart < len(rows); chunkStart += importBatchSize {
		chunkEnd := chunkStart + importBatchSize
		if chunkEnd > len(rows) {
			chunkEnd = len(rows)
		}
		chunk := rows[chunkStart:chunkEnd]

		chunkErrors := insertLocationChunk(app, col, merchantID, chunk, chunkStart)
		if len(chunkErrors) > 0 {
			result.Errors = append(result.Errors, chunkErrors...)
			result.Failed += len(chunk) // entire chunk rolled back
			result.RolledBack = true
		} else {
			result.Imported += len(chunk)
		}
	}
	return result, nil
}

// insertLocationChunk inserts a batch of rows within one transaction. If any
// row fails the whole chunk is rolled back and the errors returned.
func insertLocationChunk(app *pocketbase.PocketBase, col *core.Collection, merchantID string, rows []map[string]string, startOffset int) []ImportRowError {
	var chunkErrors []ImportRowError

	err := app.RunInTransaction(func(txApp core.App) error {
		for i, rowData := range rows {
			rowNum := startOffset + i + 2

			record := core.NewRecord(col)
			record.Set("merchant", merchantID)
			for _, field := range LocationImportFields() {
				if val := rowData[field.Key]; val != "" {
					record.Set(field.Key, val)
				}
			}

			if err := txApp.Save(record); err != nil {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Field:   "name",
					Message: err.Error(),
				})
				return err
			}
		}
		return nil
	})
	if err != nil && len(chunkErrors) == 0 {
		chunkErrors = append(chunkErrors, ImportRowError{
			Row:     startOffset + 2,
			Message: err.Error(),
		})
	}
	return chunkErrors
}

// GenerateLocationTemplate creates the downloadable .xlsx template for the
// business-location import, with required columns marked and highlighted.
func GenerateLocationTemplate() ([]byte, error) {
	fields := LocationImportFields()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Locations"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheetName)

	requiredHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	optionalHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	for i, field := range fields {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i, err)
		}
		cell := col + "1"

		headerText := field.Label
		if field.Required {
			headerText += " *"
		}
		f.SetCellValue(sheetName, cell, headerText)
		if field.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredHeaderStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, optionalHeaderStyle)
		}

		width := float64(len(field.Label)) * 1.3
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, col, col, width)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}
