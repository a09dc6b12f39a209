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
)

type itemService struct {
	uow      db.UnitOfWork
	items    *fields.Engine[domain.Item]
	fields   *fields.Engine[domain.HeaderField]
	log      zerolog.Logger
	observer UseCaseObserver
}

func NewItemService(uow db.UnitOfWork, opts Options) ItemService {
	return &itemService{
		uow:      uow,
		items:    fields.NewEngine[domain.Item](opts.ids(), opts.Policy),
		fields:   fields.NewEngine[domain.HeaderField](opts.ids(), opts.Policy),
		log:      opts.logger().With().Str("component", "items").Logger(),
		observer: opts.observer(),
	}
}

// InsertItem appends item to the section under a fresh id.
func (s *itemService) InsertItem(ctx context.Context, sectionID string, item domain.Item) (out *domain.Item, err error) {
	defer observe(ctx, s.observer, "insert-item", time.Now(), map[string]any{"section_id": sectionID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.sections.GetByID(ctx, sectionID); err != nil {
			return err
		}
		current, err := r.loadItems(ctx, sectionID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		item.SectionID = sectionID
		item.Position = len(current)
		item.CreatedAt, item.UpdatedAt = now, now
		_, stored := s.items.Insert(current, item)
		if err := r.items.Create(ctx, &stored); err != nil {
			return err
		}
		if stored.HasAuthoredFields() {
			if err := r.fields.Replace(ctx, domain.ItemOwner(stored.ID), stored.HeaderFields); err != nil {
				return err
			}
		}
		out = &stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddEducation inserts an education entry seeded from its form inputs.
func (s *itemService) AddEducation(ctx context.Context, sectionID string, seed domain.EducationSeed, description string) (*domain.Item, error) {
	if seed.School == "" {
		return nil, fmt.Errorf("school is required")
	}
	title, subtitle, dateRange := seed.Seeds()
	return s.InsertItem(ctx, sectionID, domain.Item{
		Title:       title,
		Subtitle:    subtitle,
		DateRange:   dateRange,
		Description: description,
		Visible:     true,
	})
}

func (s *itemService) GetItem(ctx context.Context, itemID string) (it *domain.Item, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		it, err = reposFor(tx).loadItem(ctx, itemID)
		return err
	})
	return it, err
}

func (s *itemService) ListItems(ctx context.Context, sectionID string) (items []domain.Item, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items, err = reposFor(tx).loadItems(ctx, sectionID)
		return err
	})
	return items, err
}

// UpdateItem merges patch into the item, keeping its id and position.
func (s *itemService) UpdateItem(ctx context.Context, sectionID, itemID string, patch domain.ItemPatch) (err error) {
	defer observe(ctx, s.observer, "update-item", time.Now(), map[string]any{"item_id": itemID}, &err)

	if patch.HeaderFields != nil {
		if err := checkFieldIDs(patch.HeaderFields); err != nil {
			return err
		}
	}
	return s.withItems(ctx, sectionID, func(ctx context.Context, r repos, current []domain.Item) error {
		next, ok := s.items.Update(current, itemID, patch.Apply)
		if !ok {
			s.log.Debug().Str("item_id", itemID).Msg("update: unknown item")
			return nil
		}
		updated := next[fields.IndexOf(next, itemID)]
		updated.UpdatedAt = time.Now().UTC()
		if err := r.items.Update(ctx, &updated); err != nil {
			return err
		}
		if patch.HeaderFields != nil {
			return r.fields.Replace(ctx, domain.ItemOwner(itemID), updated.HeaderFields)
		}
		return nil
	})
}

// RemoveItem deletes the item. Removing an unknown item is a no-op.
func (s *itemService) RemoveItem(ctx context.Context, sectionID, itemID string) (err error) {
	defer observe(ctx, s.observer, "remove-item", time.Now(), map[string]any{"item_id": itemID}, &err)

	return s.withItems(ctx, sectionID, func(ctx context.Context, r repos, current []domain.Item) error {
		next, ok := s.items.Remove(current, itemID)
		if !ok {
			s.log.Debug().Str("item_id", itemID).Msg("remove: unknown item")
			return nil
		}
		if err := r.items.Delete(ctx, itemID); err != nil {
			return err
		}
		return r.saveItemOrder(ctx, sectionID, next)
	})
}

// DuplicateItem places a deep copy right after the source. The copy gets
// a fresh id and, when its field list is authored, fresh field ids. An
// unknown id returns nil without error.
func (s *itemService) DuplicateItem(ctx context.Context, sectionID, itemID string) (dup *domain.Item, err error) {
	defer observe(ctx, s.observer, "duplicate-item", time.Now(), map[string]any{"item_id": itemID}, &err)

	err = s.withItems(ctx, sectionID, func(ctx context.Context, r repos, current []domain.Item) error {
		next, copied, ok := s.items.Duplicate(current, itemID)
		if !ok {
			s.log.Debug().Str("item_id", itemID).Msg("duplicate: unknown item")
			return nil
		}
		copied.HeaderFields = s.rekeyFields(copied.HeaderFields)
		now := time.Now().UTC()
		copied.CreatedAt, copied.UpdatedAt = now, now
		copied.Position = fields.IndexOf(next, copied.ID)
		next[copied.Position] = copied

		if err := r.items.Create(ctx, &copied); err != nil {
			return err
		}
		if copied.HasAuthoredFields() {
			if err := r.fields.Replace(ctx, domain.ItemOwner(copied.ID), copied.HeaderFields); err != nil {
				return err
			}
		}
		if err := r.saveItemOrder(ctx, sectionID, next); err != nil {
			return err
		}
		dup = &copied
		return nil
	})
	return dup, err
}

// rekeyFields rebuilds list under fresh ids, keeping order.
func (s *itemService) rekeyFields(list []domain.HeaderField) []domain.HeaderField {
	if len(list) == 0 {
		return list
	}
	out := make([]domain.HeaderField, 0, len(list))
	for _, f := range list {
		out, _ = s.fields.Insert(out, f)
	}
	return out
}

func (s *itemService) ReorderItems(ctx context.Context, sectionID string, ids []string) (err error) {
	defer observe(ctx, s.observer, "reorder-items", time.Now(), map[string]any{"section_id": sectionID}, &err)

	return s.withItems(ctx, sectionID, func(ctx context.Context, r repos, current []domain.Item) error {
		next, ok := reorder(s.items, current, ids, s.log)
		if !ok {
			return nil
		}
		return r.saveItemOrder(ctx, sectionID, next)
	})
}

func (s *itemService) MoveItem(ctx context.Context, sectionID, itemID string, delta int) (err error) {
	defer observe(ctx, s.observer, "move-item", time.Now(), map[string]any{"item_id": itemID, "delta": delta}, &err)

	return s.withItems(ctx, sectionID, func(ctx context.Context, r repos, current []domain.Item) error {
		next, moved := s.items.Move(current, itemID, delta)
		if !moved {
			return nil
		}
		return r.saveItemOrder(ctx, sectionID, next)
	})
}

// ToggleVisible flips the item's visibility. Callers serialise rapid
// repeats with a fields.ToggleGuard.
func (s *itemService) ToggleVisible(ctx context.Context, sectionID, itemID string) (err error) {
	defer observe(ctx, s.observer, "toggle-item", time.Now(), map[string]any{"item_id": itemID}, &err)

	return s.withItems(ctx, sectionID, func(ctx context.Context, r repos, current []domain.Item) error {
		idx := fields.IndexOf(current, itemID)
		if idx < 0 {
			s.log.Debug().Str("item_id", itemID).Msg("toggle: unknown item")
			return nil
		}
		visible := !current[idx].Visible
		next, _ := s.items.Update(current, itemID, domain.ItemPatch{Visible: &visible}.Apply)
		updated := next[idx]
		updated.UpdatedAt = time.Now().UTC()
		return r.items.Update(ctx, &updated)
	})
}

// withItems loads the section's items inside one transaction and hands
// them to fn. A missing section is reported as an error.
func (s *itemService) withItems(ctx context.Context, sectionID string, fn func(context.Context, repos, []domain.Item) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.sections.GetByID(ctx, sectionID); err != nil {
			return err
		}
		current, err := r.loadItems(ctx, sectionID)
		if err != nil {
			return err
		}
		return fn(ctx, r, current)
	})
}

// checkFieldIDs rejects lists with empty or repeated ids.
func checkFieldIDs(list []domain.HeaderField) error {
	seen := make(map[string]bool, len(list))
	for _, f := range list {
		if f.ID == "" {
			return errors.New("header field id is required")
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate header field id %q", f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}
