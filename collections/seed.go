package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"merchantonboarding/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type catalogDef struct {
	kind          string
	category      string
	name          string
	description   string
	monthlyFee    float64
	internalCost  float64
	purchasePrice float64
	solutions     []string
	sortOrder     int
}

type templateDef struct {
	name         string
	description  string
	documentType services.DocumentType
}

// seedCatalog is the starting device/service catalog. Items tagged with a
// solution id appear as modules (services) or systems (devices) in that
// solution's configuration flow.
var seedCatalog = []catalogDef{
	// Terminals
	{kind: "device", category: "Terminals", name: "Countertop Terminal", description: "Stationary card terminal with receipt printer", monthlyFee: 25, internalCost: 14, purchasePrice: 299, solutions: []string{"card_terminal"}, sortOrder: 10},
	{kind: "device", category: "Terminals", name: "Mobile Terminal", description: "Portable terminal with SIM and WLAN", monthlyFee: 29, internalCost: 16, purchasePrice: 349, solutions: []string{"card_terminal"}, sortOrder: 20},
	{kind: "device", category: "Terminals", name: "Unattended Terminal", description: "Vending and self-service payment module", monthlyFee: 39, internalCost: 24, purchasePrice: 549, sortOrder: 30},
	{kind: "addon", category: "Terminals", name: "Digital Receipts", description: "Paperless receipts via QR code", monthlyFee: 5, internalCost: 1, sortOrder: 40},
	{kind: "addon", category: "Terminals", name: "Tip Function", description: "Gratuity prompt on the terminal display", monthlyFee: 3, internalCost: 0.5, sortOrder: 50},

	// Acquiring
	{kind: "service", category: "Acquiring", name: "Card Acquiring", description: "Girocard, Visa and Mastercard acceptance", monthlyFee: 9.9, internalCost: 3.5, sortOrder: 10},
	{kind: "service", category: "Acquiring", name: "International Schemes", description: "Amex, JCB and UnionPay acceptance", monthlyFee: 14.9, internalCost: 6, sortOrder: 20},

	// Connectivity
	{kind: "service", category: "Connectivity", name: "SIM Data Plan", description: "Managed SIM card for mobile terminals", monthlyFee: 7.5, internalCost: 3, sortOrder: 10},
	{kind: "service", category: "Connectivity", name: "DSL Backup", description: "Failover connectivity for stationary setups", monthlyFee: 12, internalCost: 6.5, sortOrder: 20},

	// Cash Register: POS systems and their modules
	{kind: "device", category: "Cash Register", name: "POS 12 System", description: "12-inch POS with customer display", monthlyFee: 49, internalCost: 30, purchasePrice: 1190, solutions: []string{"pos_system"}, sortOrder: 10},
	{kind: "device", category: "Cash Register", name: "POS 15 System", description: "15-inch POS for counter operation", monthlyFee: 59, internalCost: 36, purchasePrice: 1490, solutions: []string{"pos_system"}, sortOrder: 20},
	{kind: "service", category: "Cash Register", name: "Booking Module", description: "Table and appointment booking", monthlyFee: 8, internalCost: 2, solutions: []string{"pos_system"}, sortOrder: 30},
	{kind: "service", category: "Cash Register", name: "Inventory Module", description: "Stock levels and reorder alerts", monthlyFee: 6, internalCost: 2, solutions: []string{"pos_system"}, sortOrder: 40},
	{kind: "service", category: "Cash Register", name: "Staff Module", description: "Shift planning and permissions", monthlyFee: 5, internalCost: 1.5, solutions: []string{"pos_system"}, sortOrder: 50},
	{kind: "addon", category: "Cash Register", name: "Kitchen Printer", description: "Order routing to a kitchen printer", monthlyFee: 9, internalCost: 4, sortOrder: 60},

	// Accessories
	{kind: "device", category: "Accessories", name: "Cash Drawer", description: "Lockable drawer with POS trigger", monthlyFee: 4, internalCost: 2, purchasePrice: 89, sortOrder: 10},
	{kind: "device", category: "Accessories", name: "Barcode Scanner", description: "2D scanner with stand", monthlyFee: 6, internalCost: 3, purchasePrice: 129, sortOrder: 20},

	// Support
	{kind: "service", category: "Support", name: "Standard Support", description: "Business-hours hotline and exchange service", monthlyFee: 0, internalCost: 2, sortOrder: 10},
	{kind: "service", category: "Support", name: "Premium Support", description: "24/7 hotline with next-day exchange", monthlyFee: 19, internalCost: 8, sortOrder: 20},
}

var seedTemplates = []templateDef{
	{name: "Merchant Master Data", description: "Contact, company and signature pages", documentType: services.DocumentG1},
	{name: "Locations and Services", description: "Business locations and contracted services", documentType: services.DocumentG2},
	{name: "SEPA and Consent", description: "Payment mandate and consent declarations", documentType: services.DocumentG3},
}

// Seed populates the catalog and the default document templates. It is safe
// to call on every startup because it returns early if any catalog records
// already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if the catalog is already populated ────────
	catalogCol, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_items collection: %w", err)
	}
	existing, err := app.FindAllRecords(catalogCol)
	if err != nil {
		return fmt.Errorf("seed: could not query catalog_items: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: catalog_items collection is empty, inserting seed data")

	for _, d := range seedCatalog {
		r := core.NewRecord(catalogCol)
		r.Set("kind", d.kind)
		r.Set("category", d.category)
		r.Set("name", d.name)
		r.Set("description", d.description)
		r.Set("monthly_fee", d.monthlyFee)
		r.Set("internal_cost", d.internalCost)
		r.Set("purchase_price", d.purchasePrice)
		r.Set("active", true)
		r.Set("sort_order", d.sortOrder)
		if len(d.solutions) > 0 {
			raw, err := json.Marshal(d.solutions)
			if err != nil {
				return fmt.Errorf("seed: encode solutions for %q: %w", d.name, err)
			}
			r.Set("solutions", string(raw))
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save catalog item %q: %w", d.name, err)
		}
	}

	templatesCol, err := app.FindCollectionByNameOrId("document_templates")
	if err != nil {
		return fmt.Errorf("seed: could not find document_templates collection: %w", err)
	}
	for _, d := range seedTemplates {
		tmpl := services.Template{
			Name:         d.name,
			Description:  d.description,
			IsActive:     true,
			DocumentType: d.documentType,
			Sections:     services.DefaultSections(d.documentType),
			Footer:       services.TemplateFooter{PageNumberFormat: "Page {current} of {total}"},
			Styling:      services.TemplateStyling{PageFormat: "a4", FontSize: 10, Margin: 10},
		}
		r := core.NewRecord(templatesCol)
		if err := services.ApplyTemplateToRecord(r, tmpl); err != nil {
			return fmt.Errorf("seed: encode template %q: %w", d.name, err)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save template %q: %w", d.name, err)
		}
	}

	log.Printf("seed: inserted %d catalog items and %d templates.\n", len(seedCatalog), len(seedTemplates))
	return nil
}
