package services

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// templateContent is the JSON shape of the document_templates content field.
// Name, description, document type and active flag live in their own record
// fields so they stay filterable.
type templateContent struct {
	Header   TemplateHeader  `json:"header"`
	Sections []Section       `json:"sections"`
	Footer   TemplateFooter  `json:"footer"`
	Styling  TemplateStyling `json:"styling"`
}

// TemplateFromRecord decodes a document_templates record into a Template.
// An empty content field yields a template with no sections.
func TemplateFromRecord(record *core.Record) (Template, error) {
	t := Template{
		Name:         record.GetString("name"),
		Description:  record.GetString("description"),
		IsActive:     record.GetBool("is_active"),
		DocumentType: DocumentType(record.GetString("document_type")),
	}

	raw := record.GetString("content")
	if raw == "" || raw == "null" {
		return t, nil
	}
	var content templateContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return Template{}, fmt.Errorf("decode template %s: %w", record.Id, err)
	}
	t.Header = content.Header
	t.Sections = content.Sections
	t.Footer = content.Footer
	t.Styling = content.Styling
	return t, nil
}

// ApplyTemplateToRecord writes a Template back onto a document_templates
// record, encoding the layout into the content field.
func ApplyTemplateToRecord(record *core.Record, t Template) error {
	raw, err := json.Marshal(templateContent{
		Header:   t.Header,
		Sections: t.Sections,
		Footer:   t.Footer,
		Styling:  t.Styling,
	})
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}

	record.Set("name", t.Name)
	record.Set("description", t.Description)
	record.Set("is_active", t.IsActive)
	record.Set("document_type", string(t.DocumentType))
	record.Set("content", string(raw))
	return nil
}
