package service

import (
	"context"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/importer"
	"github.com/alexanderramin/vitae/internal/preview"
)

type DocumentService interface {
	Create(ctx context.Context, name string) (*domain.Document, error)
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	// Find resolves a document by id, unique id prefix or exact name.
	Find(ctx context.Context, ref string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	Rename(ctx context.Context, id, name string) error
	UpdateBasic(ctx context.Context, id string, patch domain.BasicPatch) (*domain.Document, error)
	UpdateSettings(ctx context.Context, id string, settings domain.GlobalSettings) (*domain.Document, error)
	// SetActiveSection records which section the editor focuses. Failures
	// are logged and never reach the caller.
	SetActiveSection(ctx context.Context, documentID, sectionID string)
	Delete(ctx context.Context, id string) error
}

type SectionService interface {
	Create(ctx context.Context, documentID string, kind domain.SectionKind, title string) (*domain.Section, error)
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	List(ctx context.Context, documentID string) ([]*domain.Section, error)
	Rename(ctx context.Context, id, title string) error
	SetVisible(ctx context.Context, id string, visible bool) error
	Remove(ctx context.Context, id string) error
	Reorder(ctx context.Context, documentID string, ids []string) error
	Move(ctx context.Context, id string, delta int) error
}

// ItemService edits the ordered items of a section. Unknown ids are
// no-ops, not errors.
type ItemService interface {
	InsertItem(ctx context.Context, sectionID string, item domain.Item) (*domain.Item, error)
	AddEducation(ctx context.Context, sectionID string, seed domain.EducationSeed, description string) (*domain.Item, error)
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context, sectionID string) ([]domain.Item, error)
	UpdateItem(ctx context.Context, sectionID, itemID string, patch domain.ItemPatch) error
	RemoveItem(ctx context.Context, sectionID, itemID string) error
	DuplicateItem(ctx context.Context, sectionID, itemID string) (*domain.Item, error)
	ReorderItems(ctx context.Context, sectionID string, ids []string) error
	MoveItem(ctx context.Context, sectionID, itemID string, delta int) error
	ToggleVisible(ctx context.Context, sectionID, itemID string) error
}

// FieldService edits one owner's header-field list. The first mutation of
// a never-authored list stores the synthesized defaults plus the edit.
type FieldService interface {
	Fields(ctx context.Context, owner domain.Owner) ([]domain.HeaderField, error)
	AddField(ctx context.Context, owner domain.Owner, field domain.HeaderField) (*domain.HeaderField, error)
	UpdateField(ctx context.Context, owner domain.Owner, fieldID string, patch domain.HeaderFieldPatch) error
	RemoveField(ctx context.Context, owner domain.Owner, fieldID string) error
	DuplicateField(ctx context.Context, owner domain.Owner, fieldID string) (*domain.HeaderField, error)
	ReorderFields(ctx context.Context, owner domain.Owner, ids []string) error
	MoveField(ctx context.Context, owner domain.Owner, fieldID string, delta int) error
	ToggleField(ctx context.Context, owner domain.Owner, fieldID string) error
}

type PreviewService interface {
	Render(ctx context.Context, documentID string) (*preview.Page, error)
}

// ImportResult holds the outcome of a resume import.
type ImportResult struct {
	Document     *domain.Document
	SectionCount int
	ItemCount    int
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportResume(ctx context.Context, f *importer.ResumeFile) (*ImportResult, error)
}

type ExportService interface {
	Export(ctx context.Context, documentID string) (*importer.ResumeFile, error)
}
