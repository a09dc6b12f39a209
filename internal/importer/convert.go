package importer

import (
	"time"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
)

// Generated is a converted resume ready for persistence. Items carry their
// authored field lists; seeded items have none.
type Generated struct {
	Document *domain.Document
	Sections []GeneratedSection
}

type GeneratedSection struct {
	Section *domain.Section
	Items   []*domain.Item
}

// Convert turns a validated ResumeFile into domain objects with fresh ids
// from ids. A nil generator means UUIDs. Call ValidateResumeFile first.
func Convert(f *ResumeFile, ids fields.IDGenerator) *Generated {
	if ids == nil {
		ids = fields.UUIDGenerator{}
	}
	now := time.Now().UTC()
	doc := &domain.Document{
		ID:        ids.NewID(),
		Name:      f.Name,
		Basic:     f.Basic.Clone(),
		Settings:  f.Settings.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.Basic.Fields = withFieldIDs(doc.Basic.Fields, ids)

	out := &Generated{Document: doc}
	for i, s := range f.Sections {
		sec := &domain.Section{
			ID:         ids.NewID(),
			DocumentID: doc.ID,
			Kind:       domain.SectionKind(s.Kind),
			Title:      s.Title,
			Visible:    s.Visible == nil || *s.Visible,
			Position:   i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		gs := GeneratedSection{Section: sec}
		for j, itf := range s.Items {
			gs.Items = append(gs.Items, convertItem(itf, sec.ID, j, now, ids))
		}
		out.Sections = append(out.Sections, gs)
	}
	return out
}

func convertItem(f ItemFile, sectionID string, pos int, now time.Time, ids fields.IDGenerator) *domain.Item {
	it := &domain.Item{
		ID:           ids.NewID(),
		SectionID:    sectionID,
		Position:     pos,
		Title:        f.Title,
		Subtitle:     f.Subtitle,
		DateRange:    f.DateRange,
		Description:  f.Description,
		Visible:      f.Visible == nil || *f.Visible,
		HeaderFields: withFieldIDs(f.Fields, ids),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if e := f.Education; e != nil {
		it.Title, it.Subtitle, it.DateRange = domain.EducationSeed{
			School:    e.School,
			Major:     e.Major,
			Degree:    e.Degree,
			GPA:       e.GPA,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
		}.Seeds()
	}
	return it
}

// withFieldIDs deep-copies fields, giving every field without an id a
// fresh one.
func withFieldIDs(list []domain.HeaderField, ids fields.IDGenerator) []domain.HeaderField {
	out := domain.CloneFields(list)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = ids.NewID()
		}
	}
	return out
}

// FromDocument builds the exportable form of a stored document. Only
// authored field lists are written, so a never-edited item stays seeded
// after a round trip.
func FromDocument(doc *domain.Document, sections []GeneratedSection) *ResumeFile {
	f := &ResumeFile{
		Version:  CurrentVersion,
		Name:     doc.Name,
		Basic:    doc.Basic.Clone(),
		Settings: doc.Settings.Clone(),
	}
	for _, gs := range sections {
		sf := SectionFile{
			Kind:  string(gs.Section.Kind),
			Title: gs.Section.Title,
		}
		if !gs.Section.Visible {
			sf.Visible = domain.Ptr(false)
		}
		for _, it := range gs.Items {
			itf := ItemFile{
				Title:       it.Title,
				Subtitle:    it.Subtitle,
				DateRange:   it.DateRange,
				Description: it.Description,
				Fields:      domain.CloneFields(it.HeaderFields),
			}
			if !it.Visible {
				itf.Visible = domain.Ptr(false)
			}
			sf.Items = append(sf.Items, itf)
		}
		f.Sections = append(f.Sections, sf)
	}
	return f
}
