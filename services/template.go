package services

import (
	"fmt"

	"github.com/google/uuid"
)

// FieldType enumerates the input kinds a template field can render as.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldEmail     FieldType = "email"
	FieldTel       FieldType = "tel"
	FieldDate      FieldType = "date"
	FieldNumber    FieldType = "number"
	FieldTextarea  FieldType = "textarea"
	FieldSelect    FieldType = "select"
	FieldCheckbox  FieldType = "checkbox"
	FieldSignature FieldType = "signature"
)

// FieldSpec describes one fillable field of a template section. Key is unique
// within the enclosing section and is what merge data is keyed by.
type FieldSpec struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// SectionKind enumerates the block types a template is composed of.
type SectionKind string

const (
	SectionForm          SectionKind = "form"
	SectionDynamicForm   SectionKind = "dynamic_form"
	SectionTableLayout   SectionKind = "table_layout"
	SectionDynamicTable  SectionKind = "dynamic_table"
	SectionCheckboxGrid  SectionKind = "checkbox_matrix"
	SectionSignatureArea SectionKind = "signature_area"
)

// Section is one titled block of a template. Table is only set for
// table_layout sections; every other kind uses the flat Fields list.
type Section struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Kind   SectionKind `json:"kind"`
	Fields []FieldSpec `json:"fields,omitempty"`
	Table  *TableGrid  `json:"table,omitempty"`
}

func (s Section) clone() Section {
	out := s
	if s.Fields != nil {
		out.Fields = make([]FieldSpec, len(s.Fields))
		copy(out.Fields, s.Fields)
		for i := range out.Fields {
			if s.Fields[i].Options != nil {
				out.Fields[i].Options = append([]string(nil), s.Fields[i].Options...)
			}
		}
	}
	if s.Table != nil {
		t := s.Table.clone()
		out.Table = &t
	}
	return out
}

// DocumentType selects which contract document a template produces.
type DocumentType string

const (
	DocumentG1 DocumentType = "g1"
	DocumentG2 DocumentType = "g2"
	DocumentG3 DocumentType = "g3"
)

// TemplateHeader holds the banner content printed at the top of every page.
type TemplateHeader struct {
	Title           string `json:"title"`
	LogoRef         string `json:"logoRef,omitempty"`
	SecondLogoRef   string `json:"secondLogoRef,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// TemplateFooter holds the branding line and the page number pattern, e.g.
// "Page {current} of {total}".
type TemplateFooter struct {
	BrandingText     string `json:"brandingText,omitempty"`
	PageNumberFormat string `json:"pageNumberFormat,omitempty"`
}

// TemplateStyling holds document-wide presentation settings.
type TemplateStyling struct {
	PrimaryColor string  `json:"primaryColor,omitempty"`
	FontFamily   string  `json:"fontFamily,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	Margin       float64 `json:"margin,omitempty"`
	PageFormat   string  `json:"pageFormat,omitempty"`
}

// Template is the editable blueprint a contract document is rendered from.
// It is edited as a whole by one editor session and persisted as a whole
// document on save, never partially.
type Template struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	IsActive     bool            `json:"isActive"`
	DocumentType DocumentType    `json:"documentType"`
	Header       TemplateHeader  `json:"header"`
	Sections     []Section       `json:"sections"`
	Footer       TemplateFooter  `json:"footer"`
	Styling      TemplateStyling `json:"styling"`
}

func (t Template) cloneSections() []Section {
	out := make([]Section, len(t.Sections))
	for i, s := range t.Sections {
		out[i] = s.clone()
	}
	return out
}

// findSection returns the index of the section with the given id, or -1.
func (t Template) findSection(id string) int {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateHeader returns a copy of the template with the header replaced.
func UpdateHeader(t Template, h TemplateHeader) Template {
	t.Sections = t.cloneSections()
	t.Header = h
	return t
}

// UpdateFooter returns a copy of the template with the footer replaced.
func UpdateFooter(t Template, f TemplateFooter) Template {
	t.Sections = t.cloneSections()
	t.Footer = f
	return t
}

// UpdateStyling returns a copy of the template with the styling replaced.
func UpdateStyling(t Template, s TemplateStyling) Template {
	t.Sections = t.cloneSections()
	t.Styling = s
	return t
}

// AddSection appends a section. Sections arriving without an id get a fresh
// one, and table-layout sections without a grid get a 2×2 one so the editor
// always has something to draw.
func AddSection(t Template, s Section) Template {
	t.Sections = t.cloneSections()
	s = s.clone()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Kind == SectionTableLayout && s.Table == nil {
		g := NewTableGrid(2, 2)
		s.Table = &g
	}
	if s.Kind != SectionTableLayout {
		s.Table = nil
	}
	t.Sections = append(t.Sections, s)
	return t
}

// RemoveSection deletes the section with the given id.
func RemoveSection(t Template, id string) (Template, error) {
	i := t.findSection(id)
	if i < 0 {
		return t, fmt.Errorf("remove section %s: %w", id, ErrSectionNotFound)
	}
	sections := t.cloneSections()
	t.Sections = append(sections[:i:i], sections[i+1:]...)
	return t, nil
}

// ReorderSections moves the section at from to position to. Every section
// keeps its identity and contents; only the order changes.
func ReorderSections(t Template, from, to int) (Template, error) {
	n := len(t.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return t, fmt.Errorf("reorder %d -> %d with %d sections: %w", from, to, n, ErrSectionNotFound)
	}
	sections := t.cloneSections()
	moved := sections[from]
	sections = append(sections[:from:from], sections[from+1:]...)
	sections = append(sections[:to:to], append([]Section{moved}, sections[to:]...)...)
	t.Sections = sections
	return t, nil
}

// SectionPatch carries the editable section attributes for UpdateSection.
// Nil pointers leave the current value untouched.
type SectionPatch struct {
	Title  *string
	Fields []FieldSpec
}

// UpdateSection applies a patch to the identified section. The section's kind
// and table layout are edited through their own operations, never patched.
func UpdateSection(t Template, id string, patch SectionPatch) (Template, error) {
	i := t.findSection(id)
	if i < 0 {
		return t, fmt.Errorf("update section %s: %w", id, ErrSectionNotFound)
	}
	t.Sections = t.cloneSections()
	s := &t.Sections[i]
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Fields != nil {
		s.Fields = make([]FieldSpec, len(patch.Fields))
		copy(s.Fields, patch.Fields)
	}
	return t, nil
}
