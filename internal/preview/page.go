// Package preview turns a resume document into a positioned, styled page
// model. It reads the document and never writes to it; two renders of the
// same input produce the same page.
package preview

import (
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
)

// Unit is one displayed field with its effective style.
type Unit struct {
	FieldID string       `json:"fieldId"`
	Label   string       `json:"label,omitempty"`
	Text    string       `json:"text"`
	Icon    string       `json:"icon,omitempty"`
	Style   fields.Style `json:"style"`
}

// Entry is a rendered item: its header row and description.
type Entry struct {
	ItemID      string `json:"itemId"`
	Header      []Unit `json:"header"`
	Description string `json:"description,omitempty"`
}

// Block is a rendered section.
type Block struct {
	SectionID string             `json:"sectionId"`
	Kind      domain.SectionKind `json:"kind"`
	Title     string             `json:"title"`
	Entries   []Entry            `json:"entries"`
}

// Heading is the personal-info block.
type Heading struct {
	Name     string       `json:"name,omitempty"`
	Headline string       `json:"headline,omitempty"`
	Layout   domain.Align `json:"layout"`
	Contacts []Unit       `json:"contacts,omitempty"`
}

// Spacing holds the page-level measurements resolved from settings.
type Spacing struct {
	SectionSpacing   int     `json:"sectionSpacing"`
	ParagraphSpacing int     `json:"paragraphSpacing"`
	LineHeight       float64 `json:"lineHeight"`
	SubheaderSize    int     `json:"subheaderSize"`
	BaseFontSize     int     `json:"baseFontSize"`
}

// Page is the full rendered document.
type Page struct {
	DocumentID      string  `json:"documentId"`
	ActiveSectionID string  `json:"activeSectionId,omitempty"`
	Heading         Heading `json:"heading"`
	Blocks          []Block `json:"blocks"`
	Spacing         Spacing `json:"spacing"`
}

// Name and headline sizes of the personal-info block.
const (
	NameFontSize     = 30
	HeadlineFontSize = 18
)

// Fallbacks for page spacing.
const (
	DefaultSectionSpacing   = 24
	DefaultParagraphSpacing = 0
	DefaultLineHeight       = 1.6
)

// SectionContent is a section together with its items in display order.
type SectionContent struct {
	Section domain.Section
	Items   []domain.Item
}

// ResolveSpacing applies the page-level cascade.
func ResolveSpacing(g domain.GlobalSettings) Spacing {
	return Spacing{
		SectionSpacing:   domain.IntFromPtrWithDefault(DefaultSectionSpacing, g.SectionSpacing),
		ParagraphSpacing: domain.IntFromPtrWithDefault(DefaultParagraphSpacing, g.ParagraphSpacing),
		LineHeight:       domain.Float64FromPtrWithDefault(DefaultLineHeight, g.LineHeight),
		SubheaderSize:    domain.IntFromPtrWithDefault(fields.DefaultSubheaderSize, g.SubheaderSize),
		BaseFontSize:     domain.IntFromPtrWithDefault(fields.DefaultFontSize, g.BaseFontSize),
	}
}

// RenderDocument renders the heading and every displayable section.
func RenderDocument(doc domain.Document, sections []SectionContent) Page {
	g := doc.Settings
	page := Page{
		DocumentID:      doc.ID,
		ActiveSectionID: doc.ActiveSectionID,
		Heading:         RenderHeading(doc.Basic, g),
		Spacing:         ResolveSpacing(g),
		Blocks:          []Block{},
	}
	for _, sc := range sections {
		if block, ok := RenderSection(sc.Section, sc.Items, g); ok {
			page.Blocks = append(page.Blocks, block)
		}
	}
	return page
}

// RenderSection renders the displayable items of a section. A hidden
// section, or one without displayable items, is suppressed.
func RenderSection(sec domain.Section, items []domain.Item, g domain.GlobalSettings) (Block, bool) {
	if !sec.Visible {
		return Block{}, false
	}
	block := Block{
		SectionID: sec.ID,
		Kind:      sec.Kind,
		Title:     sec.DisplayTitle(),
		Entries:   []Entry{},
	}
	for _, it := range items {
		if entry, ok := RenderItem(it, g); ok {
			block.Entries = append(block.Entries, entry)
		}
	}
	return block, len(block.Entries) > 0
}

// RenderItem renders one item. The item is shown only when it is visible
// and has a non-empty visible header value or a description.
func RenderItem(it domain.Item, g domain.GlobalSettings) (Entry, bool) {
	if !it.Visible {
		return Entry{}, false
	}
	entry := Entry{
		ItemID:      it.ID,
		Header:      RenderFields(fields.Effective(it, g), fields.BlockDefaults{}, g),
		Description: PlainText(it.Description),
	}
	if !hasValue(entry.Header) && entry.Description == "" {
		return Entry{}, false
	}
	return entry, true
}

// RenderHeading renders the personal-info block.
func RenderHeading(b domain.BasicInfo, g domain.GlobalSettings) Heading {
	layout := b.Layout
	if !layout.Valid() {
		layout = domain.AlignLeft
	}
	return Heading{
		Name:     b.Name,
		Headline: b.Headline,
		Layout:   layout,
		Contacts: withValues(RenderFields(fields.EffectiveBasic(b), fields.BasicDefaults(b), g)),
	}
}

// RenderFields filters hidden fields and resolves the style of the rest,
// keeping list order.
func RenderFields(list []domain.HeaderField, block fields.BlockDefaults, g domain.GlobalSettings) []Unit {
	units := make([]Unit, 0, len(list))
	for _, f := range list {
		if !f.IsVisible() {
			continue
		}
		units = append(units, Unit{
			FieldID: f.ID,
			Label:   f.Label,
			Text:    fields.DisplayValue(f),
			Icon:    f.Icon,
			Style:   fields.Resolve(f, block, g),
		})
	}
	return units
}

func hasValue(units []Unit) bool {
	for _, u := range units {
		if u.Text != "" {
			return true
		}
	}
	return false
}

// withValues drops contact units without a value; a label alone is not
// worth a line in the heading.
func withValues(units []Unit) []Unit {
	out := units[:0]
	for _, u := range units {
		if u.Text != "" {
			out = append(out, u)
		}
	}
	return out
}
