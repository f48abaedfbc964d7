package services

import (
	"fmt"
	"strings"
)

// CatalogKind separates devices (hardware terminals), services (acquiring,
// add-on subscriptions billed like services) and add-ons attachable to either.
type CatalogKind string

const (
	KindDevice  CatalogKind = "device"
	KindService CatalogKind = "service"
	KindAddon   CatalogKind = "addon"
)

// CatalogItem is an immutable description of a purchasable device, service or
// add-on as fetched from the catalog. Prices are per unit and per month.
type CatalogItem struct {
	ID                   string      `json:"id"`
	Kind                 CatalogKind `json:"kind"`
	Category             string      `json:"category"`
	Name                 string      `json:"name"`
	Description          string      `json:"description,omitempty"`
	PerUnitMonthlyFee    float64     `json:"perUnitMonthlyFee"`
	PerUnitInternalCost  float64     `json:"perUnitInternalCost"`
	PerUnitPurchasePrice float64     `json:"perUnitPurchasePrice,omitempty"`
}

// CatalogFilter narrows a catalog listing at the store boundary.
type CatalogFilter struct {
	SolutionIDs []string
	CategoryIDs []string
}

// FilterExpression renders the filter as a PocketBase filter string with bound
// parameters. The base expression always restricts to active items; categories
// match exactly, solutions match the item's solutions tag list.
func (f CatalogFilter) FilterExpression() (string, map[string]any) {
	filter := "active = true"
	params := map[string]any{}

	if len(f.CategoryIDs) > 0 {
		parts := make([]string, 0, len(f.CategoryIDs))
		for i, c := range f.CategoryIDs {
			key := fmt.Sprintf("cat%d", i)
			parts = append(parts, "category = {:"+key+"}")
			params[key] = c
		}
		filter += " && (" + strings.Join(parts, " || ") + ")"
	}
	if len(f.SolutionIDs) > 0 {
		parts := make([]string, 0, len(f.SolutionIDs))
		for i, s := range f.SolutionIDs {
			key := fmt.Sprintf("sol%d", i)
			parts = append(parts, "solutions ~ {:"+key+"}")
			params[key] = s
		}
		filter += " && (" + strings.Join(parts, " || ") + ")"
	}
	return filter, params
}
