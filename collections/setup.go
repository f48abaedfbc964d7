package collections

import (
	"fmt"
	"log"

	"merchantonboarding/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the merchants, business_locations,
// catalog_items, document_templates, quote_items and quote_snapshots
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	merchants := ensureCollection(app, "merchants", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_person", Required: false})
		c.Fields.Add(&core.EmailField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "legal_form",
			Required:  false,
			Values:    []string{"GmbH", "UG", "AG", "e.K.", "GbR", "KG", "OHG", "Freiberufler"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "in_progress", "complete"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "selection_state", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	locations := ensureCollection(app, "business_locations", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "merchant",
			Required:      true,
			CollectionId:  merchants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "street", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "postal_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "country", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.EmailField{Name: "email", Required: false})
	})

	catalogItems := ensureCollection(app, "catalog_items", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    []string{"device", "service", "addon"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    services.CategoryOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "monthly_fee", Required: false})
		c.Fields.Add(&core.NumberField{Name: "internal_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "purchase_price", Required: false})
		c.Fields.Add(&core.JSONField{Name: "solutions", Required: false})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
	})

	ensureCollection(app, "document_templates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "document_type",
			Required:  true,
			Values:    []string{"g1", "g2", "g3"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.JSONField{Name: "content", Required: false, MaxSize: 2 << 20})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quoteItems := ensureCollection(app, "quote_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "merchant",
			Required:      true,
			CollectionId:  merchants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "catalog_item",
			Required:      false,
			CollectionId:  catalogItems.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "location",
			Required:      false,
			CollectionId:  locations.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    []string{"device", "service", "addon"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "monthly_fee", Required: false})
		c.Fields.Add(&core.NumberField{Name: "internal_cost", Required: false})
		c.Fields.Add(&core.TextField{Name: "custom_text", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
	})

	// Self-relation for add-ons: the collection id only exists after the
	// first save, so the field is added in a second pass.
	if quoteItems.Fields.GetByName("parent_item") == nil {
		quoteItems.Fields.Add(&core.RelationField{
			Name:          "parent_item",
			Required:      false,
			CollectionId:  quoteItems.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		if err := app.Save(quoteItems); err != nil {
			log.Fatalf("Failed to add parent_item to quote_items: %v", err)
		}
	}

	ensureCollection(app, "quote_snapshots", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "merchant",
			Required:      true,
			CollectionId:  merchants.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: true})
		c.Fields.Add(&core.JSONField{Name: "items", Required: false, MaxSize: 2 << 20})
		c.Fields.Add(&core.JSONField{Name: "totals", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
