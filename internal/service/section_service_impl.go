package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/repository"
)

type sectionService struct {
	uow      db.UnitOfWork
	engine   *fields.Engine[domain.Section]
	log      zerolog.Logger
	observer UseCaseObserver
}

func NewSectionService(uow db.UnitOfWork, opts Options) SectionService {
	return &sectionService{
		uow:      uow,
		engine:   fields.NewEngine[domain.Section](opts.ids(), opts.Policy),
		log:      opts.logger().With().Str("component", "sections").Logger(),
		observer: opts.observer(),
	}
}

func (s *sectionService) Create(ctx context.Context, documentID string, kind domain.SectionKind, title string) (sec *domain.Section, err error) {
	defer observe(ctx, s.observer, "create-section", time.Now(), map[string]any{"document_id": documentID, "kind": kind}, &err)

	if !domain.ValidSectionKinds[string(kind)] {
		return nil, fmt.Errorf("invalid section kind %q (expected education or custom)", kind)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.documents.GetByID(ctx, documentID); err != nil {
			return err
		}
		current, err := r.loadSections(ctx, documentID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		_, stored := s.engine.Insert(current, domain.Section{
			DocumentID: documentID,
			Kind:       kind,
			Title:      title,
			Visible:    true,
			Position:   len(current),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		sec = &stored
		return r.sections.Create(ctx, sec)
	})
	if err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *sectionService) GetByID(ctx context.Context, id string) (sec *domain.Section, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sec, err = reposFor(tx).sections.GetByID(ctx, id)
		return err
	})
	return sec, err
}

func (s *sectionService) List(ctx context.Context, documentID string) (out []*domain.Section, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		out, err = reposFor(tx).sections.ListByDocument(ctx, documentID)
		return err
	})
	return out, err
}

func (s *sectionService) Rename(ctx context.Context, id, title string) (err error) {
	defer observe(ctx, s.observer, "rename-section", time.Now(), map[string]any{"section_id": id}, &err)
	return s.mutate(ctx, id, func(sec *domain.Section) { sec.Title = title })
}

func (s *sectionService) SetVisible(ctx context.Context, id string, visible bool) (err error) {
	defer observe(ctx, s.observer, "set-section-visible", time.Now(), map[string]any{"section_id": id, "visible": visible}, &err)
	return s.mutate(ctx, id, func(sec *domain.Section) { sec.Visible = visible })
}

func (s *sectionService) mutate(ctx context.Context, id string, fn func(*domain.Section)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		sec, err := r.sections.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fn(sec)
		sec.UpdatedAt = time.Now().UTC()
		return r.sections.Update(ctx, sec)
	})
}

// Remove deletes the section and its items. Removing an unknown section
// is a no-op.
func (s *sectionService) Remove(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-section", time.Now(), map[string]any{"section_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		sec, err := r.sections.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Debug().Str("section_id", id).Msg("remove: unknown section")
			return nil
		}
		if err != nil {
			return err
		}
		current, err := r.loadSections(ctx, sec.DocumentID)
		if err != nil {
			return err
		}
		next, _ := s.engine.Remove(current, id)
		if err := r.sections.Delete(ctx, id); err != nil {
			return err
		}
		return r.sections.SetPositions(ctx, sec.DocumentID, fields.Keys(next))
	})
}

func (s *sectionService) Reorder(ctx context.Context, documentID string, ids []string) (err error) {
	defer observe(ctx, s.observer, "reorder-sections", time.Now(), map[string]any{"document_id": documentID}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		current, err := r.loadSections(ctx, documentID)
		if err != nil {
			return err
		}
		next, ok := reorder(s.engine, current, ids, s.log)
		if !ok {
			return nil
		}
		return r.sections.SetPositions(ctx, documentID, fields.Keys(next))
	})
}

func (s *sectionService) Move(ctx context.Context, id string, delta int) (err error) {
	defer observe(ctx, s.observer, "move-section", time.Now(), map[string]any{"section_id": id, "delta": delta}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		sec, err := r.sections.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Debug().Str("section_id", id).Msg("move: unknown section")
			return nil
		}
		if err != nil {
			return err
		}
		current, err := r.loadSections(ctx, sec.DocumentID)
		if err != nil {
			return err
		}
		next, moved := s.engine.Move(current, id, delta)
		if !moved {
			return nil
		}
		return r.sections.SetPositions(ctx, sec.DocumentID, fields.Keys(next))
	})
}
