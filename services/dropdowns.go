package services

// CategoryOptions lists the catalog categories shown in the device/service
// pickers and enforced on the catalog_items collection.
var CategoryOptions = []string{
	"Terminals",
	"Acquiring",
	"Connectivity",
	"Cash Register",
	"Accessories",
	"Support",
}

// PageFormatOptions lists the page formats a template can render to.
var PageFormatOptions = []string{"a4", "letter"}

// DocumentTypeOptions lists the selectable contract document types.
var DocumentTypeOptions = []DocumentType{DocumentG1, DocumentG2, DocumentG3}

// SolutionOptions lists the offered solutions. Only the POS system needs the
// module/system configuration steps; the others complete immediately.
var SolutionOptions = []Solution{
	{ID: "pos_system", Name: "POS System", RequiresConfiguration: true},
	{ID: "card_terminal", Name: "Card Terminal", RequiresConfiguration: false},
	{ID: "payment_link", Name: "Payment Links", RequiresConfiguration: false},
	{ID: "ecommerce", Name: "E-Commerce Payments", RequiresConfiguration: false},
}

// FindSolution looks up a solution by id.
func FindSolution(id string) (Solution, bool) {
	for _, s := range SolutionOptions {
		if s.ID == id {
			return s, true
		}
	}
	return Solution{}, false
}
