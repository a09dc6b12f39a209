package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/repository"
)

// ErrAmbiguousRef is returned by Find when a prefix matches several documents.
var ErrAmbiguousRef = errors.New("ambiguous document reference")

type documentService struct {
	uow      db.UnitOfWork
	opts     Options
	log      zerolog.Logger
	observer UseCaseObserver
}

func NewDocumentService(uow db.UnitOfWork, opts Options) DocumentService {
	return &documentService{
		uow:      uow,
		opts:     opts,
		log:      opts.logger().With().Str("component", "documents").Logger(),
		observer: opts.observer(),
	}
}

// Create stores a new document with the configured default settings and
// an empty education section.
func (s *documentService) Create(ctx context.Context, name string) (doc *domain.Document, err error) {
	defer observe(ctx, s.observer, "create-document", time.Now(), map[string]any{"name": name}, &err)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	now := time.Now().UTC()
	doc = &domain.Document{
		ID:        s.opts.ids().NewID(),
		Name:      name,
		Settings:  s.opts.Defaults.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	edu := &domain.Section{
		ID:         s.opts.ids().NewID(),
		DocumentID: doc.ID,
		Kind:       domain.SectionEducation,
		Visible:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if err := r.documents.Create(ctx, doc); err != nil {
			return err
		}
		return r.sections.Create(ctx, edu)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id string) (doc *domain.Document, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		doc, err = reposFor(tx).loadDocument(ctx, id)
		return err
	})
	return doc, err
}

func (s *documentService) Find(ctx context.Context, ref string) (*domain.Document, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("document reference is required")
	}
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var byPrefix []*domain.Document
	for _, d := range docs {
		if d.ID == ref || d.Name == ref {
			return s.GetByID(ctx, d.ID)
		}
		if strings.HasPrefix(d.ID, ref) {
			byPrefix = append(byPrefix, d)
		}
	}
	switch len(byPrefix) {
	case 0:
		return nil, fmt.Errorf("document %w: %s", repository.ErrNotFound, ref)
	case 1:
		return s.GetByID(ctx, byPrefix[0].ID)
	default:
		return nil, fmt.Errorf("%w: %q matches %d documents", ErrAmbiguousRef, ref, len(byPrefix))
	}
}

func (s *documentService) List(ctx context.Context) (docs []*domain.Document, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		docs, err = reposFor(tx).documents.List(ctx)
		return err
	})
	return docs, err
}

func (s *documentService) Rename(ctx context.Context, id, name string) (err error) {
	defer observe(ctx, s.observer, "rename-document", time.Now(), map[string]any{"document_id": id}, &err)

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("document name is required")
	}
	return s.mutate(ctx, id, func(d *domain.Document) { d.Name = name })
}

// UpdateBasic patches the personal-info scalars. An authored contact list
// is left untouched; a never-authored one keeps following the scalars.
func (s *documentService) UpdateBasic(ctx context.Context, id string, patch domain.BasicPatch) (doc *domain.Document, err error) {
	defer observe(ctx, s.observer, "update-basic", time.Now(), map[string]any{"document_id": id}, &err)

	if patch.Layout != nil && !patch.Layout.Valid() {
		return nil, fmt.Errorf("invalid layout %q (expected left, center or right)", *patch.Layout)
	}
	err = s.mutate(ctx, id, func(d *domain.Document) { d.Basic = patch.Apply(d.Basic) })
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// UpdateSettings overlays the non-nil members of settings.
func (s *documentService) UpdateSettings(ctx context.Context, id string, settings domain.GlobalSettings) (doc *domain.Document, err error) {
	defer observe(ctx, s.observer, "update-settings", time.Now(), map[string]any{"document_id": id}, &err)

	err = s.mutate(ctx, id, func(d *domain.Document) { d.Settings = d.Settings.Merge(settings) })
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *documentService) mutate(ctx context.Context, id string, fn func(*domain.Document)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		doc, err := r.documents.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fn(doc)
		doc.UpdatedAt = time.Now().UTC()
		return r.documents.Update(ctx, doc)
	})
}

func (s *documentService) SetActiveSection(ctx context.Context, documentID, sectionID string) {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return reposFor(tx).documents.SetActiveSection(ctx, documentID, sectionID)
	})
	if err != nil {
		s.log.Warn().Err(err).
			Str("document_id", documentID).
			Str("section_id", sectionID).
			Msg("setting active section failed")
	}
}

func (s *documentService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-document", time.Now(), map[string]any{"document_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return reposFor(tx).documents.Delete(ctx, id)
	})
}
