package domain

import (
	"strings"
	"time"
)

// Item is an entry inside a section: an education entry or a custom item.
// Title, Subtitle and DateRange are legacy seeds, only consulted while
// HeaderFields has never been authored.
type Item struct {
	ID           string
	SectionID    string
	Position     int
	Title        string
	Subtitle     string
	DateRange    string
	Description  string
	Visible      bool
	HeaderFields []HeaderField

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the item id.
func (it Item) Key() string { return it.ID }

// WithKey returns a deep copy of the item carrying a new id. Header-field
// ids are kept; the item owns its own list so they cannot collide.
func (it Item) WithKey(id string) Item {
	c := it.Clone()
	c.ID = id
	return c
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	c := it
	c.HeaderFields = CloneFields(it.HeaderFields)
	return c
}

// HasAuthoredFields reports whether the field list is authoritative.
func (it Item) HasAuthoredFields() bool {
	return len(it.HeaderFields) > 0
}

// ItemPatch is a partial update for an item's scalar attributes. Header
// fields are replaced wholesale when HeaderFields is non-nil.
type ItemPatch struct {
	Title        *string
	Subtitle     *string
	DateRange    *string
	Description  *string
	Visible      *bool
	HeaderFields []HeaderField
}

// Apply returns it with the patch merged in.
func (p ItemPatch) Apply(it Item) Item {
	out := it.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Subtitle != nil {
		out.Subtitle = *p.Subtitle
	}
	if p.DateRange != nil {
		out.DateRange = *p.DateRange
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Visible != nil {
		out.Visible = *p.Visible
	}
	if p.HeaderFields != nil {
		out.HeaderFields = CloneFields(p.HeaderFields)
	}
	return out
}

// EducationSeed holds the form inputs of an education entry.
type EducationSeed struct {
	School    string
	Major     string
	Degree    string
	GPA       string
	StartDate string
	EndDate   string
}

// Seeds derives the title/subtitle/date-range seeds of an education item:
// "major · degree · GPA x" and "start - end".
func (e EducationSeed) Seeds() (title, subtitle, dateRange string) {
	var parts []string
	for _, s := range []string{e.Major, e.Degree} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	subtitle = strings.Join(parts, " · ")
	if gpa := strings.TrimSpace(e.GPA); gpa != "" {
		if subtitle != "" {
			subtitle += " · "
		}
		subtitle += "GPA " + gpa
	}

	start, end := strings.TrimSpace(e.StartDate), strings.TrimSpace(e.EndDate)
	switch {
	case start != "" && end != "":
		dateRange = start + " - " + end
	default:
		dateRange = CoalesceStr(start, end)
	}
	return strings.TrimSpace(e.School), subtitle, dateRange
}
