package domain

import "time"

// GlobalSettings are per-document presentation defaults. Every member is
// optional; nil falls through to the hard-coded constant of the cascade.
type GlobalSettings struct {
	BaseFontSize     *int     `json:"baseFontSize,omitempty" yaml:"baseFontSize,omitempty" toml:"base_font_size,omitempty"`
	SubheaderSize    *int     `json:"subheaderSize,omitempty" yaml:"subheaderSize,omitempty" toml:"subheader_size,omitempty"`
	LineHeight       *float64 `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty" toml:"line_height,omitempty"`
	SectionSpacing   *int     `json:"sectionSpacing,omitempty" yaml:"sectionSpacing,omitempty" toml:"section_spacing,omitempty"`
	ParagraphSpacing *int     `json:"paragraphSpacing,omitempty" yaml:"paragraphSpacing,omitempty" toml:"paragraph_spacing,omitempty"`
	UseIconMode      *bool    `json:"useIconMode,omitempty" yaml:"useIconMode,omitempty" toml:"use_icon_mode,omitempty"`
	SingleLineFields *bool    `json:"singleLineFields,omitempty" yaml:"singleLineFields,omitempty" toml:"single_line_fields,omitempty"`
	WrapFields       *bool    `json:"wrapFields,omitempty" yaml:"wrapFields,omitempty" toml:"wrap_fields,omitempty"`
	CenterSubtitle   *bool    `json:"centerSubtitle,omitempty" yaml:"centerSubtitle,omitempty" toml:"center_subtitle,omitempty"`
}

// Clone returns a copy of g sharing no pointers with it.
func (g GlobalSettings) Clone() GlobalSettings {
	return GlobalSettings{
		BaseFontSize:     clonePtr(g.BaseFontSize),
		SubheaderSize:    clonePtr(g.SubheaderSize),
		LineHeight:       clonePtr(g.LineHeight),
		SectionSpacing:   clonePtr(g.SectionSpacing),
		ParagraphSpacing: clonePtr(g.ParagraphSpacing),
		UseIconMode:      clonePtr(g.UseIconMode),
		SingleLineFields: clonePtr(g.SingleLineFields),
		WrapFields:       clonePtr(g.WrapFields),
		CenterSubtitle:   clonePtr(g.CenterSubtitle),
	}
}

// Merge overlays the non-nil members of other onto g.
func (g GlobalSettings) Merge(other GlobalSettings) GlobalSettings {
	out := g.Clone()
	if other.BaseFontSize != nil {
		out.BaseFontSize = clonePtr(other.BaseFontSize)
	}
	if other.SubheaderSize != nil {
		out.SubheaderSize = clonePtr(other.SubheaderSize)
	}
	if other.LineHeight != nil {
		out.LineHeight = clonePtr(other.LineHeight)
	}
	if other.SectionSpacing != nil {
		out.SectionSpacing = clonePtr(other.SectionSpacing)
	}
	if other.ParagraphSpacing != nil {
		out.ParagraphSpacing = clonePtr(other.ParagraphSpacing)
	}
	if other.UseIconMode != nil {
		out.UseIconMode = clonePtr(other.UseIconMode)
	}
	if other.SingleLineFields != nil {
		out.SingleLineFields = clonePtr(other.SingleLineFields)
	}
	if other.WrapFields != nil {
		out.WrapFields = clonePtr(other.WrapFields)
	}
	if other.CenterSubtitle != nil {
		out.CenterSubtitle = clonePtr(other.CenterSubtitle)
	}
	return out
}

// BasicInfo is the personal-info block at the top of the resume. Email,
// Phone, Location, Website and BirthDate seed the contact fields until
// Fields is authored. Layout, ShowIcons, FontSize and SingleLine are
// block-level defaults sitting between a field and the global settings.
type BasicInfo struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Headline  string `json:"headline,omitempty" yaml:"headline,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`
	Website   string `json:"website,omitempty" yaml:"website,omitempty"`
	BirthDate string `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`

	Layout     Align         `json:"layout,omitempty" yaml:"layout,omitempty"`
	ShowIcons  *bool         `json:"showIcons,omitempty" yaml:"showIcons,omitempty"`
	FontSize   *int          `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	SingleLine *bool         `json:"singleLine,omitempty" yaml:"singleLine,omitempty"`
	Fields     []HeaderField `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Clone returns a deep copy of b.
func (b BasicInfo) Clone() BasicInfo {
	c := b
	c.ShowIcons = clonePtr(b.ShowIcons)
	c.FontSize = clonePtr(b.FontSize)
	c.SingleLine = clonePtr(b.SingleLine)
	c.Fields = CloneFields(b.Fields)
	return c
}

type Document struct {
	ID              string
	Name            string
	Basic           BasicInfo
	Settings        GlobalSettings
	ActiveSectionID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayID truncates the id to 8 characters for listings.
func (d *Document) DisplayID() string {
	if len(d.ID) >= 8 {
		return d.ID[:8]
	}
	return d.ID
}

// BasicPatch is a partial update of the personal-info scalars and block
// defaults. The authored contact list is edited through the field engine.
type BasicPatch struct {
	Name       *string
	Headline   *string
	Email      *string
	Phone      *string
	Location   *string
	Website    *string
	BirthDate  *string
	Layout     *Align
	ShowIcons  *bool
	FontSize   *int
	SingleLine *bool

	ClearFontSize bool
}

// Apply returns b with the patch merged in.
func (p BasicPatch) Apply(b BasicInfo) BasicInfo {
	out := b.Clone()
	for _, s := range []struct {
		dst *string
		src *string
	}{
		{&out.Name, p.Name},
		{&out.Headline, p.Headline},
		{&out.Email, p.Email},
		{&out.Phone, p.Phone},
		{&out.Location, p.Location},
		{&out.Website, p.Website},
		{&out.BirthDate, p.BirthDate},
	} {
		if s.src != nil {
			*s.dst = *s.src
		}
	}
	if p.Layout != nil {
		out.Layout = *p.Layout
	}
	out.ShowIcons = patchPtr(out.ShowIcons, p.ShowIcons, false)
	out.FontSize = patchPtr(out.FontSize, p.FontSize, p.ClearFontSize)
	out.SingleLine = patchPtr(out.SingleLine, p.SingleLine, false)
	return out
}
