package services

// DefaultSections returns the fixed starter section set for a document type.
// Section ids are stable so seeded templates stay addressable across restarts.
func DefaultSections(docType DocumentType) []Section {
	switch docType {
	case DocumentG1:
		return []Section{
			{
				ID:    "g1-contact",
				Title: "Contact Details",
				Kind:  SectionForm,
				Fields: []FieldSpec{
					{Key: "company_name", Label: "Company Name", Type: FieldText, Required: true},
					{Key: "contact_person", Label: "Contact Person", Type: FieldText, Required: true},
					{Key: "email", Label: "E-Mail", Type: FieldEmail, Required: true},
					{Key: "phone", Label: "Phone", Type: FieldTel},
				},
			},
			{
				ID:    "g1-company",
				Title: "Company Information",
				Kind:  SectionForm,
				Fields: []FieldSpec{
					{Key: "legal_form", Label: "Legal Form", Type: FieldSelect, Required: true,
						Options: []string{"GmbH", "AG", "KG", "OG", "Sole Trader"}},
					{Key: "registration_no", Label: "Commercial Register No.", Type: FieldText},
					{Key: "vat_id", Label: "VAT ID", Type: FieldText, Required: true},
				},
			},
			{
				ID:    "g1-signature",
				Title: "Signatures",
				Kind:  SectionSignatureArea,
				Fields: []FieldSpec{
					{Key: "sign_merchant", Label: "Merchant", Type: FieldSignature, Required: true},
					{Key: "sign_provider", Label: "Provider", Type: FieldSignature, Required: true},
					{Key: "sign_date", Label: "Date", Type: FieldDate, Required: true},
				},
			},
		}
	case DocumentG2:
		return []Section{
			{
				ID:    "g2-locations",
				Title: "Business Locations",
				Kind:  SectionDynamicTable,
				Fields: []FieldSpec{
					{Key: "location_name", Label: "Location", Type: FieldText, Required: true},
					{Key: "street", Label: "Street", Type: FieldText, Required: true},
					{Key: "city", Label: "City", Type: FieldText, Required: true},
					{Key: "postal_code", Label: "Postal Code", Type: FieldText, Required: true},
				},
			},
			{
				ID:    "g2-services",
				Title: "Selected Services",
				Kind:  SectionDynamicTable,
				Fields: []FieldSpec{
					{Key: "service_name", Label: "Service", Type: FieldText, Required: true},
					{Key: "quantity", Label: "Qty", Type: FieldNumber, Required: true},
					{Key: "monthly_fee", Label: "Monthly Fee", Type: FieldNumber, Required: true},
				},
			},
			{
				ID:    "g2-signature",
				Title: "Signatures",
				Kind:  SectionSignatureArea,
				Fields: []FieldSpec{
					{Key: "sign_merchant", Label: "Merchant", Type: FieldSignature, Required: true},
					{Key: "sign_date", Label: "Date", Type: FieldDate, Required: true},
				},
			},
		}
	case DocumentG3:
		return []Section{
			{
				ID:    "g3-sepa",
				Title: "SEPA Direct Debit Mandate",
				Kind:  SectionForm,
				Fields: []FieldSpec{
					{Key: "account_holder", Label: "Account Holder", Type: FieldText, Required: true},
					{Key: "iban", Label: "IBAN", Type: FieldText, Required: true},
					{Key: "bic", Label: "BIC", Type: FieldText},
				},
			},
			{
				ID:    "g3-consent",
				Title: "Consent",
				Kind:  SectionCheckboxGrid,
				Fields: []FieldSpec{
					{Key: "consent_debit", Label: "I authorise the direct debit", Type: FieldCheckbox, Required: true},
					{Key: "consent_terms", Label: "I accept the terms of service", Type: FieldCheckbox, Required: true},
				},
			},
			{
				ID:    "g3-signature",
				Title: "Signature",
				Kind:  SectionSignatureArea,
				Fields: []FieldSpec{
					{Key: "sign_account_holder", Label: "Account Holder", Type: FieldSignature, Required: true},
					{Key: "sign_date", Label: "Date", Type: FieldDate, Required: true},
				},
			},
		}
	}
	return nil
}

// ApplyDocumentTypeDefaults sets the template's document type and populates
// its sections from the fixed default set for that type. Population is
// one-shot: if the template already has sections the call fails with
// ErrSectionsExist unless force is set, so switching the type selector can
// never silently discard user edits.
func ApplyDocumentTypeDefaults(t Template, docType DocumentType, force bool) (Template, error) {
	if len(t.Sections) > 0 && !force {
		return t, ErrSectionsExist
	}
	t.DocumentType = docType
	t.Sections = DefaultSections(docType)
	return t, nil
}
