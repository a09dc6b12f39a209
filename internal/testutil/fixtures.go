package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/vitae/internal/domain"
)

// Document options
type DocumentOption func(*domain.Document)

func WithBasic(b domain.BasicInfo) DocumentOption {
	return func(d *domain.Document) {
		d.Basic = b
	}
}

func WithSettings(g domain.GlobalSettings) DocumentOption {
	return func(d *domain.Document) {
		d.Settings = g
	}
}

func NewTestDocument(name string, opts ...DocumentOption) *domain.Document {
	now := time.Now().UTC().Truncate(time.Second)
	d := &domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Section options
type SectionOption func(*domain.Section)

func WithSectionKind(k domain.SectionKind) SectionOption {
	return func(s *domain.Section) {
		s.Kind = k
	}
}

func WithSectionTitle(title string) SectionOption {
	return func(s *domain.Section) {
		s.Title = title
	}
}

func WithSectionPosition(pos int) SectionOption {
	return func(s *domain.Section) {
		s.Position = pos
	}
}

func NewTestSection(documentID string, opts ...SectionOption) *domain.Section {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Section{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Kind:       domain.SectionCustom,
		Visible:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Item options
type ItemOption func(*domain.Item)

func WithSeeds(title, subtitle, dateRange string) ItemOption {
	return func(it *domain.Item) {
		it.Title = title
		it.Subtitle = subtitle
		it.DateRange = dateRange
	}
}

func WithDescription(desc string) ItemOption {
	return func(it *domain.Item) {
		it.Description = desc
	}
}

func WithHidden() ItemOption {
	return func(it *domain.Item) {
		it.Visible = false
	}
}

func WithPosition(pos int) ItemOption {
	return func(it *domain.Item) {
		it.Position = pos
	}
}

func WithHeaderFields(fields ...domain.HeaderField) ItemOption {
	return func(it *domain.Item) {
		it.HeaderFields = fields
	}
}

func NewTestItem(sectionID string, opts ...ItemOption) *domain.Item {
	now := time.Now().UTC().Truncate(time.Second)
	it := &domain.Item{
		ID:        uuid.New().String(),
		SectionID: sectionID,
		Visible:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// NewTestField builds a text field with the given id and value.
func NewTestField(id, label, value string) domain.HeaderField {
	return domain.HeaderField{ID: id, Label: label, Value: value, Kind: domain.FieldText}
}
