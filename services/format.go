package services

import (
	"fmt"
	"strings"
)

// FormatEUR formats a float64 amount into European notation with a trailing
// euro sign: thousands separated by dots, decimal comma, always 2 decimals
// (e.g. 1.234.567,89 €).
func FormatEUR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	// Group the integer digits in threes from the right.
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	result := strings.Join(groups, ".") + "," + decPart + " €"
	if negative {
		result = "-" + result
	}
	return result
}
