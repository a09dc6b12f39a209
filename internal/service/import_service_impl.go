package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/importer"
)

type importService struct {
	uow      db.UnitOfWork
	ids      fields.IDGenerator
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, opts Options) ImportService {
	return &importService{uow: uow, ids: opts.ids(), observer: opts.observer()}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	f, err := importer.LoadResumeFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading resume file: %w", err)
	}
	return s.ImportResume(ctx, f)
}

// ImportResume validates f and stores it as a new document. Either the
// whole document is stored or nothing is.
func (s *importService) ImportResume(ctx context.Context, f *importer.ResumeFile) (res *ImportResult, err error) {
	defer observe(ctx, s.observer, "import-resume", time.Now(), nil, &err)

	if errs := importer.ValidateResumeFile(f); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	generated := importer.Convert(f, s.ids)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		doc := generated.Document
		if err := r.documents.Create(ctx, doc); err != nil {
			return fmt.Errorf("creating document: %w", err)
		}
		if len(doc.Basic.Fields) > 0 {
			if err := r.fields.Replace(ctx, domain.BasicOwner(doc.ID), doc.Basic.Fields); err != nil {
				return fmt.Errorf("storing contact fields: %w", err)
			}
		}

		res = &ImportResult{Document: doc, SectionCount: len(generated.Sections)}
		for _, gs := range generated.Sections {
			if err := r.sections.Create(ctx, gs.Section); err != nil {
				return fmt.Errorf("creating section %q: %w", gs.Section.DisplayTitle(), err)
			}
			for _, it := range gs.Items {
				if err := r.items.Create(ctx, it); err != nil {
					return fmt.Errorf("creating item %q: %w", it.Title, err)
				}
				if it.HasAuthoredFields() {
					if err := r.fields.Replace(ctx, domain.ItemOwner(it.ID), it.HeaderFields); err != nil {
						return fmt.Errorf("storing fields of item %q: %w", it.Title, err)
					}
				}
				res.ItemCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

type exportService struct {
	uow db.UnitOfWork
}

func NewExportService(uow db.UnitOfWork) ExportService {
	return &exportService{uow: uow}
}

// Export reads a stored document back into its file form.
func (s *exportService) Export(ctx context.Context, documentID string) (out *importer.ResumeFile, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		doc, err := r.loadDocument(ctx, documentID)
		if err != nil {
			return err
		}
		sections, err := r.sections.ListByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		generated := make([]importer.GeneratedSection, 0, len(sections))
		for _, sec := range sections {
			items, err := r.loadItems(ctx, sec.ID)
			if err != nil {
				return err
			}
			gs := importer.GeneratedSection{Section: sec}
			for i := range items {
				gs.Items = append(gs.Items, &items[i])
			}
			generated = append(generated, gs)
		}
		out = importer.FromDocument(doc, generated)
		return nil
	})
	return out, err
}
