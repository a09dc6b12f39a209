package domain

import "time"

type Section struct {
	ID         string
	DocumentID string
	Kind       SectionKind
	Title      string
	Visible    bool
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key returns the section id.
func (s Section) Key() string { return s.ID }

// WithKey returns a copy of the section carrying a new id.
func (s Section) WithKey(id string) Section {
	s.ID = id
	return s
}

// DisplayTitle falls back to a per-kind heading when no title is set.
func (s Section) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	if s.Kind == SectionEducation {
		return "Education"
	}
	return "Untitled Section"
}
