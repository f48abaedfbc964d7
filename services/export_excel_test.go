package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateQuoteExcel_BasicQuote(t *testing.T) {
	data := BuildQuoteExportData("Bakery Schmidt GmbH", "15.03.2026",
		sampleExportCards(t), map[string]string{"loc-1": "Main Store"})

	result, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuoteExcel() returned empty bytes")
	}

	// Verify it's a valid Excel file
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Bakery Schmidt GmbH" {
		t.Errorf("expected sheet name 'Bakery Schmidt GmbH', got %v", sheets)
	}
	sheet := sheets[0]

	title, _ := f.GetCellValue(sheet, "A1")
	if title != "Bakery Schmidt GmbH" {
		t.Errorf("expected title 'Bakery Schmidt GmbH', got %q", title)
	}
	date, _ := f.GetCellValue(sheet, "A3")
	if date != "Date: 15.03.2026" {
		t.Errorf("date cell = %q", date)
	}

	// First data row (row 6): Acquiring sorts before Terminals.
	name, _ := f.GetCellValue(sheet, "A6")
	if name != "Card Acquiring" {
		t.Errorf("first data row = %q, want Card Acquiring", name)
	}

	// The add-on row is indented under its card.
	addonName, _ := f.GetCellValue(sheet, "A8")
	if !strings.HasPrefix(addonName, "  + ") || !strings.Contains(addonName, "Digital Receipts") {
		t.Errorf("add-on row = %q, want indented Digital Receipts", addonName)
	}
	loc, _ := f.GetCellValue(sheet, "C7")
	if loc != "Main Store" {
		t.Errorf("location cell = %q, want Main Store", loc)
	}

	// Summary block: monthly total 64,90 €.
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	found := false
	for _, row := range rows {
		for i, cell := range row {
			if cell == "Total Monthly:" && i+1 < len(row) {
				found = true
				if row[i+1] != "64,90 €" {
					t.Errorf("Total Monthly = %q, want 64,90 €", row[i+1])
				}
			}
		}
	}
	if !found {
		t.Error("summary row 'Total Monthly:' not found")
	}
}

func TestGenerateQuoteExcel_EmptyQuote(t *testing.T) {
	data := BuildQuoteExportData("Empty Merchant", "01.01.2026", nil, nil)

	result, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuoteExcel() returned empty bytes")
	}
}

func TestGenerateQuoteExcel_LongMerchantName(t *testing.T) {
	data := BuildQuoteExportData(
		"A merchant name that is far longer than thirty one characters",
		"01.01.2026", nil, nil)

	result, err := GenerateQuoteExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets[0]) > 31 {
		t.Errorf("sheet name %q exceeds 31 chars", sheets[0])
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Countertop Terminal", "Countertop Terminal"},
		{"formula", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"plus prefix", "+49 30 1234", "'+49 30 1234"},
		{"minus prefix", "-discount", "'-discount"},
		{"at prefix", "@merchant", "'@merchant"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
