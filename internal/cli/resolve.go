package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/preview"
	"github.com/alexanderramin/vitae/internal/service"
)

var errNoDocument = errors.New("document is required (pass DOC or set a default with 'vitae doc use')")

// resolveDocument resolves the optional DOC argument, falling back to the
// default document.
func resolveDocument(ctx context.Context, app *App, args []string) (*domain.Document, error) {
	ref := app.DefaultDocument
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		ref = args[0]
	}
	if ref == "" {
		return nil, errNoDocument
	}
	return app.Documents.Find(ctx, ref)
}

// matchRef finds the entry whose id equals ref, whose id uniquely starts
// with ref, or whose name equals ref ignoring case.
func matchRef[T any](kind, ref string, entries []T, id, name func(T) string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%s ID is required", kind)
	}

	for _, e := range entries {
		if id(e) == ref {
			return e, nil
		}
	}

	var matches []T
	for _, e := range entries {
		if strings.HasPrefix(id(e), ref) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		for _, e := range entries {
			if strings.EqualFold(name(e), ref) {
				matches = append(matches, e)
			}
		}
	}

	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s not found: %q", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%w: %s %q matches %d entries", service.ErrAmbiguousRef, kind, ref, len(matches))
	}
}

// resolveSection resolves a section by full id, or by id prefix or title
// within the document named by docRef (or the default document).
func resolveSection(ctx context.Context, app *App, docRef, ref string) (*domain.Section, error) {
	if sec, err := app.Sections.GetByID(ctx, ref); err == nil {
		return sec, nil
	}
	doc, err := resolveDocument(ctx, app, []string{docRef})
	if err != nil {
		return nil, fmt.Errorf("section not found: %q", ref)
	}
	sections, err := app.Sections.List(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return matchRef("section", ref, sections,
		func(s *domain.Section) string { return s.ID },
		func(s *domain.Section) string { return s.DisplayTitle() })
}

// resolveItem resolves an item by full id, or by id prefix or title across
// the sections of the document named by docRef (or the default document).
func resolveItem(ctx context.Context, app *App, docRef, ref string) (*domain.Item, error) {
	if it, err := app.Items.GetItem(ctx, ref); err == nil {
		return it, nil
	}
	doc, err := resolveDocument(ctx, app, []string{docRef})
	if err != nil {
		return nil, fmt.Errorf("item not found: %q", ref)
	}
	outline, err := loadOutline(ctx, app, doc.ID)
	if err != nil {
		return nil, err
	}
	var all []domain.Item
	for _, sc := range outline {
		all = append(all, sc.Items...)
	}
	it, err := matchRef("item", ref, all,
		func(it domain.Item) string { return it.ID },
		func(it domain.Item) string { return it.Title })
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// resolveField resolves a field id within an owner's effective list.
func resolveField(ctx context.Context, app *App, owner domain.Owner, ref string) (domain.HeaderField, error) {
	list, err := app.Fields.Fields(ctx, owner)
	if err != nil {
		return domain.HeaderField{}, err
	}
	return matchRef("field", ref, list,
		func(f domain.HeaderField) string { return f.ID },
		func(f domain.HeaderField) string { return f.Label })
}

// loadOutline returns the sections of a document with their items, in
// display order.
func loadOutline(ctx context.Context, app *App, documentID string) ([]preview.SectionContent, error) {
	sections, err := app.Sections.List(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	out := make([]preview.SectionContent, 0, len(sections))
	for _, s := range sections {
		items, err := app.Items.ListItems(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("listing items of section %s: %w", s.ID, err)
		}
		out = append(out, preview.SectionContent{Section: *s, Items: items})
	}
	return out, nil
}

// ownerStyleContext returns the block defaults and settings a field list
// is resolved against.
func ownerStyleContext(ctx context.Context, app *App, owner domain.Owner) (fields.BlockDefaults, domain.GlobalSettings, error) {
	if owner.Kind == domain.OwnerBasic {
		doc, err := app.Documents.GetByID(ctx, owner.ID)
		if err != nil {
			return fields.BlockDefaults{}, domain.GlobalSettings{}, err
		}
		return fields.BasicDefaults(doc.Basic), doc.Settings, nil
	}
	it, err := app.Items.GetItem(ctx, owner.ID)
	if err != nil {
		return fields.BlockDefaults{}, domain.GlobalSettings{}, err
	}
	sec, err := app.Sections.GetByID(ctx, it.SectionID)
	if err != nil {
		return fields.BlockDefaults{}, domain.GlobalSettings{}, err
	}
	doc, err := app.Documents.GetByID(ctx, sec.DocumentID)
	if err != nil {
		return fields.BlockDefaults{}, domain.GlobalSettings{}, err
	}
	return fields.BlockDefaults{}, doc.Settings, nil
}
