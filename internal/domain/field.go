package domain

// HeaderField is one orderable, independently stylable datum shown in an
// item's header row or in the personal-info block. Nil style pointers mean
// "inherit"; the effective value is computed at render time.
type HeaderField struct {
	ID    string    `json:"id" yaml:"id"`
	Label string    `json:"label,omitempty" yaml:"label,omitempty"`
	Value string    `json:"value" yaml:"value"`
	Kind  FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Align Align     `json:"align,omitempty" yaml:"align,omitempty"`

	Bold       *bool      `json:"bold,omitempty" yaml:"bold,omitempty"`
	FontSize   *int       `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	ShowIcon   *bool      `json:"showIcon,omitempty" yaml:"showIcon,omitempty"`
	Icon       string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Visible    *bool      `json:"visible,omitempty" yaml:"visible,omitempty"`
	SingleLine *bool      `json:"singleLine,omitempty" yaml:"singleLine,omitempty"`
	DateFormat DateFormat `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`
}

// Key returns the field id.
func (f HeaderField) Key() string { return f.ID }

// WithKey returns a deep copy of f carrying a new id.
func (f HeaderField) WithKey(id string) HeaderField {
	c := f.Clone()
	c.ID = id
	return c
}

// Clone returns a copy of f that shares no pointers with it.
func (f HeaderField) Clone() HeaderField {
	c := f
	c.Bold = clonePtr(f.Bold)
	c.FontSize = clonePtr(f.FontSize)
	c.ShowIcon = clonePtr(f.ShowIcon)
	c.Visible = clonePtr(f.Visible)
	c.SingleLine = clonePtr(f.SingleLine)
	return c
}

// IsVisible treats an unset flag as visible.
func (f HeaderField) IsVisible() bool {
	return f.Visible == nil || *f.Visible
}

// IsEmpty reports whether the field has nothing to display.
func (f HeaderField) IsEmpty() bool {
	return f.Value == "" && f.Label == ""
}

// CloneFields deep-copies a field list. A nil list stays nil.
func CloneFields(fields []HeaderField) []HeaderField {
	if fields == nil {
		return nil
	}
	out := make([]HeaderField, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

// HeaderFieldPatch carries a partial update. Nil members are left as they
// are; the Clear* flags reset an override back to "inherit".
type HeaderFieldPatch struct {
	Label      *string
	Value      *string
	Kind       *FieldKind
	Align      *Align
	Bold       *bool
	FontSize   *int
	ShowIcon   *bool
	Icon       *string
	Visible    *bool
	SingleLine *bool
	DateFormat *DateFormat

	ClearFontSize   bool
	ClearBold       bool
	ClearShowIcon   bool
	ClearSingleLine bool
}

// Apply returns f with the patch merged in. f itself is not modified.
func (p HeaderFieldPatch) Apply(f HeaderField) HeaderField {
	out := f.Clone()
	if p.Label != nil {
		out.Label = *p.Label
	}
	if p.Value != nil {
		out.Value = *p.Value
	}
	if p.Kind != nil {
		out.Kind = *p.Kind
	}
	if p.Align != nil {
		out.Align = *p.Align
	}
	if p.Icon != nil {
		out.Icon = *p.Icon
	}
	if p.DateFormat != nil {
		out.DateFormat = *p.DateFormat
	}
	out.Bold = patchPtr(out.Bold, p.Bold, p.ClearBold)
	out.FontSize = patchPtr(out.FontSize, p.FontSize, p.ClearFontSize)
	out.ShowIcon = patchPtr(out.ShowIcon, p.ShowIcon, p.ClearShowIcon)
	out.SingleLine = patchPtr(out.SingleLine, p.SingleLine, p.ClearSingleLine)
	if p.Visible != nil {
		out.Visible = clonePtr(p.Visible)
	}
	return out
}

func patchPtr[T any](cur, next *T, clear bool) *T {
	if clear {
		return nil
	}
	if next != nil {
		return clonePtr(next)
	}
	return cur
}
