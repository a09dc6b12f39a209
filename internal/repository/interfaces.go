package repository

import (
	"context"

	"github.com/alexanderramin/vitae/internal/domain"
)

type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	Update(ctx context.Context, d *domain.Document) error
	SetActiveSection(ctx context.Context, documentID, sectionID string) error
	Delete(ctx context.Context, id string) error
}

type SectionRepo interface {
	Create(ctx context.Context, s *domain.Section) error
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	ListByDocument(ctx context.Context, documentID string) ([]*domain.Section, error)
	Update(ctx context.Context, s *domain.Section) error
	SetPositions(ctx context.Context, documentID string, ids []string) error
	Delete(ctx context.Context, id string) error
}

// ItemRepo persists item scalars. Header fields live in FieldRepo and are
// loaded by the service layer.
type ItemRepo interface {
	Create(ctx context.Context, it *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListBySection(ctx context.Context, sectionID string) ([]*domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	SetPositions(ctx context.Context, sectionID string, ids []string) error
	Delete(ctx context.Context, id string) error
}

// FieldRepo stores header-field lists. A list is always written whole.
type FieldRepo interface {
	List(ctx context.Context, owner domain.Owner) ([]domain.HeaderField, error)
	ListItemFieldsBySection(ctx context.Context, sectionID string) (map[string][]domain.HeaderField, error)
	Replace(ctx context.Context, owner domain.Owner, fields []domain.HeaderField) error
}
