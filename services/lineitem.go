package services

import (
	"fmt"

	"github.com/google/uuid"
)

// LineItemCard is a catalog item bound into a merchant's quote: quantity,
// location assignment and attached add-ons. Pricing is a snapshot taken at
// instantiation time; later catalog changes never alter existing cards.
// Add-ons nest exactly one level deep: a card's Addons list only ever holds
// addon-kind cards, and addon cards carry no add-ons of their own.
type LineItemCard struct {
	ID           string         `json:"id"`
	CatalogRef   string         `json:"catalogRef"`
	Kind         CatalogKind    `json:"kind"`
	Category     string         `json:"category"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Quantity     int            `json:"quantity"`
	MonthlyFee   float64        `json:"monthlyFee"`
	InternalCost float64        `json:"internalCost"`
	LocationID   string         `json:"locationId,omitempty"`
	CustomText   string         `json:"customText,omitempty"`
	Addons       []LineItemCard `json:"addons,omitempty"`
}

// InstantiateCard creates a card from a catalog item, copying the per-unit
// prices at this moment. Quantities below 1 are clamped to 1.
func InstantiateCard(item CatalogItem, quantity int) LineItemCard {
	if quantity < 1 {
		quantity = 1
	}
	return LineItemCard{
		ID:           uuid.NewString(),
		CatalogRef:   item.ID,
		Kind:         item.Kind,
		Category:     item.Category,
		Name:         item.Name,
		Description:  item.Description,
		Quantity:     quantity,
		MonthlyFee:   item.PerUnitMonthlyFee,
		InternalCost: item.PerUnitInternalCost,
	}
}

// SetQuantity changes the card's quantity. Quantities below 1 are rejected;
// removal is an explicit operation, never a zero quantity.
func (c *LineItemCard) SetQuantity(n int) error {
	if n < 1 {
		return fmt.Errorf("set quantity %d: %w", n, ErrInvalidQuantity)
	}
	c.Quantity = n
	return nil
}

// SetMonthlyFee overrides the per-unit monthly fee copied from the catalog.
func (c *LineItemCard) SetMonthlyFee(fee float64) error {
	if fee < 0 {
		return fmt.Errorf("set monthly fee %.2f: %w", fee, ErrNegativeFee)
	}
	c.MonthlyFee = fee
	return nil
}

// SetInternalCost overrides the per-unit internal cost copied from the catalog.
func (c *LineItemCard) SetInternalCost(cost float64) error {
	if cost < 0 {
		return fmt.Errorf("set internal cost %.2f: %w", cost, ErrNegativeFee)
	}
	c.InternalCost = cost
	return nil
}

// AttachAddon appends an add-on card. Both directions of the nesting rule are
// enforced: the payload must be addon-kind and the target must not be. On
// failure the target card is left unchanged.
func (c *LineItemCard) AttachAddon(addon LineItemCard) error {
	if addon.Kind != KindAddon || c.Kind == KindAddon {
		return fmt.Errorf("attach %s to %s card: %w", addon.Kind, c.Kind, ErrInvalidAddonNesting)
	}
	addon.Addons = nil
	c.Addons = append(c.Addons, addon)
	return nil
}

// RemoveAddon deletes the attached add-on with the given id.
func (c *LineItemCard) RemoveAddon(id string) error {
	for i := range c.Addons {
		if c.Addons[i].ID == id {
			c.Addons = append(c.Addons[:i:i], c.Addons[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove addon %s: %w", id, ErrCardNotFound)
}

// AssignLocation binds the card to one of the merchant's business locations.
// With more than one location in the quote context this assignment is
// mandatory before the quote can be finalized.
func (c *LineItemCard) AssignLocation(locationID string) {
	c.LocationID = locationID
}
