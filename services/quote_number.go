package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the quote reference string from components.
func formatQuoteNumber(merchantRef string, year int, sequence int) string {
	return fmt.Sprintf("MSP-QT-%s-%d-%03d", merchantRef, year, sequence)
}

// GenerateQuoteNumber creates the next quote reference for a merchant.
// Format: MSP-QT-{merchant_ref}-{year}-{sequence}
//   - merchant_ref: the merchant's reference_number (falls back to the record
//     id if empty)
//   - year: calendar year of the snapshot
//   - sequence: 3-digit zero-padded, per merchant per year
func GenerateQuoteNumber(app *pocketbase.PocketBase, merchantID string, now time.Time) (string, error) {
	merchant, err := app.FindRecordById("merchants", merchantID)
	if err != nil {
		return "", fmt.Errorf("merchant not found: %w", err)
	}

	merchantRef := merchant.GetString("reference_number")
	if merchantRef == "" {
		merchantRef = merchantID
	}

	year := now.Year()
	prefix := fmt.Sprintf("MSP-QT-%s-%d-", merchantRef, year)

	existing, err := app.FindRecordsByFilter(
		"quote_snapshots",
		"merchant = {:merchantId} && reference_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"merchantId": merchantID,
			"prefix":     prefix + "%",
		},
	)
	if err != nil {
		// Collection empty or missing: start at 1.
		existing = nil
	}

	return formatQuoteNumber(merchantRef, year, len(existing)+1), nil
}
