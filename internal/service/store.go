package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/repository"
)

// repos bundles the repositories bound to one transaction.
type repos struct {
	documents repository.DocumentRepo
	sections  repository.SectionRepo
	items     repository.ItemRepo
	fields    repository.FieldRepo
}

func reposFor(tx db.DBTX) repos {
	return repos{
		documents: repository.NewSQLiteDocumentRepo(tx),
		sections:  repository.NewSQLiteSectionRepo(tx),
		items:     repository.NewSQLiteItemRepo(tx),
		fields:    repository.NewSQLiteFieldRepo(tx),
	}
}

// loadDocument returns the document with its authored contact list.
func (r repos) loadDocument(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := r.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Basic.Fields, err = r.fields.List(ctx, domain.BasicOwner(id))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// loadItems returns a section's items in display order with their stored
// field lists attached.
func (r repos) loadItems(ctx context.Context, sectionID string) ([]domain.Item, error) {
	rows, err := r.items.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	byItem, err := r.fields.ListItemFieldsBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Item, 0, len(rows))
	for _, it := range rows {
		it.HeaderFields = byItem[it.ID]
		out = append(out, *it)
	}
	return out, nil
}

func (r repos) loadItem(ctx context.Context, id string) (*domain.Item, error) {
	it, err := r.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	it.HeaderFields, err = r.fields.List(ctx, domain.ItemOwner(id))
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r repos) loadSections(ctx context.Context, documentID string) ([]domain.Section, error) {
	rows, err := r.sections.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Section, 0, len(rows))
	for _, s := range rows {
		out = append(out, *s)
	}
	return out, nil
}

// settingsForSection walks section -> document to find the settings that
// drive synthesis of the section's items.
func (r repos) settingsForSection(ctx context.Context, sectionID string) (domain.GlobalSettings, error) {
	sec, err := r.sections.GetByID(ctx, sectionID)
	if err != nil {
		return domain.GlobalSettings{}, err
	}
	doc, err := r.documents.GetByID(ctx, sec.DocumentID)
	if err != nil {
		return domain.GlobalSettings{}, fmt.Errorf("loading document of section: %w", err)
	}
	return doc.Settings, nil
}

// saveItemOrder writes the slice order of items as their positions.
func (r repos) saveItemOrder(ctx context.Context, sectionID string, items []domain.Item) error {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return r.items.SetPositions(ctx, sectionID, ids)
}
