package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
)

type fieldService struct {
	uow      db.UnitOfWork
	engine   *fields.Engine[domain.HeaderField]
	log      zerolog.Logger
	observer UseCaseObserver
}

func NewFieldService(uow db.UnitOfWork, opts Options) FieldService {
	return &fieldService{
		uow:      uow,
		engine:   fields.NewEngine[domain.HeaderField](opts.ids(), opts.Policy),
		log:      opts.logger().With().Str("component", "fields").Logger(),
		observer: opts.observer(),
	}
}

// fieldList is an owner's effective list as loaded for one mutation.
type fieldList struct {
	owner   domain.Owner
	current []domain.HeaderField
	item    *domain.Item
}

// load returns the stored list of owner, or its synthesized default when
// nothing has been authored yet.
func (s *fieldService) load(ctx context.Context, r repos, owner domain.Owner) (*fieldList, error) {
	if !owner.Valid() {
		return nil, fmt.Errorf("invalid field owner %q", owner)
	}
	switch owner.Kind {
	case domain.OwnerBasic:
		doc, err := r.loadDocument(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		return &fieldList{owner: owner, current: fields.EffectiveBasic(doc.Basic)}, nil
	default:
		it, err := r.loadItem(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		settings, err := r.settingsForSection(ctx, it.SectionID)
		if err != nil {
			return nil, err
		}
		return &fieldList{owner: owner, current: fields.Effective(*it, settings), item: it}, nil
	}
}

// commit stores next as the owner's authored list. For items the legacy
// title seed follows the "title" field so listings stay readable.
func (s *fieldService) commit(ctx context.Context, r repos, l *fieldList, next []domain.HeaderField) error {
	if err := r.fields.Replace(ctx, l.owner, next); err != nil {
		return err
	}
	if l.item == nil {
		return nil
	}
	idx := fields.IndexOf(next, domain.FieldIDTitle)
	if idx < 0 || next[idx].Value == l.item.Title {
		return nil
	}
	l.item.Title = next[idx].Value
	l.item.UpdatedAt = time.Now().UTC()
	return r.items.Update(ctx, l.item)
}

func (s *fieldService) mutate(ctx context.Context, owner domain.Owner, fn func(*fieldList) ([]domain.HeaderField, bool)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		l, err := s.load(ctx, r, owner)
		if err != nil {
			return err
		}
		next, changed := fn(l)
		if !changed {
			return nil
		}
		return s.commit(ctx, r, l, next)
	})
}

// Fields returns the effective list of owner without storing anything.
func (s *fieldService) Fields(ctx context.Context, owner domain.Owner) (out []domain.HeaderField, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		l, err := s.load(ctx, reposFor(tx), owner)
		if err != nil {
			return err
		}
		out = l.current
		return nil
	})
	return out, err
}

// AddField appends field under a fresh id. An empty kind means text and
// an unset visibility means visible.
func (s *fieldService) AddField(ctx context.Context, owner domain.Owner, field domain.HeaderField) (added *domain.HeaderField, err error) {
	defer observe(ctx, s.observer, "add-field", time.Now(), map[string]any{"owner": owner.String()}, &err)

	if field.Kind == "" {
		field.Kind = domain.FieldText
	}
	if field.Visible == nil {
		field.Visible = domain.Ptr(true)
	}
	err = s.mutate(ctx, owner, func(l *fieldList) ([]domain.HeaderField, bool) {
		next, stored := s.engine.Insert(l.current, field)
		added = &stored
		return next, true
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *fieldService) UpdateField(ctx context.Context, owner domain.Owner, fieldID string, patch domain.HeaderFieldPatch) (err error) {
	defer observe(ctx, s.observer, "update-field", time.Now(), map[string]any{"owner": owner.String(), "field_id": fieldID}, &err)

	return s.mutate(ctx, owner, func(l *fieldList) ([]domain.HeaderField, bool) {
		next, ok := s.engine.Update(l.current, fieldID, patch.Apply)
		if !ok {
			s.log.Debug().Str("owner", owner.String()).Str("field_id", fieldID).Msg("update: unknown field")
		}
		return next, ok
	})
}

// RemoveField drops a field. Removing the last one leaves the list empty,
// which brings back the synthesized default on the next read.
func (s *fieldService) RemoveField(ctx context.Context, owner domain.Owner, fieldID string) (err error) {
	defer observe(ctx, s.observer, "remove-field", time.Now(), map[string]any{"owner": owner.String(), "field_id": fieldID}, &err)

	return s.mutate(ctx, owner, func(l *fieldList) ([]domain.HeaderField, bool) {
		next, ok := s.engine.Remove(l.current, fieldID)
		if !ok {
			s.log.Debug().Str("owner", owner.String()).Str("field_id", fieldID).Msg("remove: unknown field")
		}
		return next, ok
	})
}

func (s *fieldService) DuplicateField(ctx context.Context, owner domain.Owner, fieldID string) (dup *domain.HeaderField, err error) {
	defer observe(ctx, s.observer, "duplicate-field", time.Now(), map[string]any{"owner": owner.String(), "field_id": fieldID}, &err)

	err = s.mutate(ctx, owner, func(l *fieldList) ([]domain.HeaderField, bool) {
		next, copied, ok := s.engine.Duplicate(l.current, fieldID)
		if !ok {
			s.log.Debug().Str("owner", owner.String()).Str("field_id", fieldID).Msg("duplicate: unknown field")
			return next, false
		}
		dup = &copied
		return next, true
	})
	return dup, err
}

func (s *fieldService) ReorderFields(ctx context.Context, owner domain.Owner, ids []string) (err error) {
	defer observe(ctx, s.observer, "reorder-fields", time.Now(), map[string]any{"owner": owner.String()}, &err)

	return s.mutate(ctx, owner, func(l *fieldList) ([]domain.HeaderField, bool) {
		next, ok := reorder(s.engine, l.current, ids, s.log)
		// An unchanged order must not materialize a synthesized list.
		return next, ok && !slices.Equal(fields.Keys(l.current), fields.Keys(next))
	})
}

func (s *fieldService) MoveField(ctx context.Context, owner domain.Owner, fieldID string, delta int) (err error) {
	defer observe(ctx, s.observer, "move-field", time.Now(), map[string]any{"owner": owner.String(), "field_id": fieldID, "delta": delta}, &err)

	return s.mutate(ctx, owner, func(l *fieldList) ([]domain.HeaderField, bool) {
		return s.engine.Move(l.current, fieldID, delta)
	})
}

// ToggleField flips a field's visibility. An unset flag counts as visible.
func (s *fieldService) ToggleField(ctx context.Context, owner domain.Owner, fieldID string) (err error) {
	defer observe(ctx, s.observer, "toggle-field", time.Now(), map[string]any{"owner": owner.String(), "field_id": fieldID}, &err)

	return s.mutate(ctx, owner, func(l *fieldList) ([]domain.HeaderField, bool) {
		return s.engine.Update(l.current, fieldID, func(f domain.HeaderField) domain.HeaderField {
			visible := !f.IsVisible()
			return domain.HeaderFieldPatch{Visible: &visible}.Apply(f)
		})
	})
}
