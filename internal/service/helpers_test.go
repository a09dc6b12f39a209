package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/repository"
	"github.com/alexanderramin/vitae/internal/testutil"
)

type testEnv struct {
	db       *sql.DB
	opts     Options
	docs     DocumentService
	sections SectionService
	items    ItemService
	fieldSvc FieldService
	preview  PreviewService
	imports  ImportService
	exports  ExportService
}

// sequentialIDs issues "id-1", "id-2", ... so failures read well.
func sequentialIDs() fields.IDGenerator {
	n := 0
	return fields.IDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func setupServices(t *testing.T, opts Options) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	if opts.IDs == nil {
		opts.IDs = sequentialIDs()
	}
	return &testEnv{
		db:       database,
		opts:     opts,
		docs:     NewDocumentService(uow, opts),
		sections: NewSectionService(uow, opts),
		items:    NewItemService(uow, opts),
		fieldSvc: NewFieldService(uow, opts),
		preview:  NewPreviewService(uow, opts),
		imports:  NewImportService(uow, opts),
		exports:  NewExportService(uow),
	}
}

// newDocWithSection creates a document plus one custom section and
// returns both.
func (e *testEnv) newDocWithSection(t *testing.T, title string) (*domain.Document, *domain.Section) {
	t.Helper()
	ctx := context.Background()
	doc, err := e.docs.Create(ctx, "Resume")
	require.NoError(t, err)
	sec, err := e.sections.Create(ctx, doc.ID, domain.SectionCustom, title)
	require.NoError(t, err)
	return doc, sec
}

func (e *testEnv) insert(t *testing.T, sectionID, title string) *domain.Item {
	t.Helper()
	it, err := e.items.InsertItem(context.Background(), sectionID, domain.Item{Title: title, Visible: true})
	require.NoError(t, err)
	return it
}

func (e *testEnv) itemIDs(t *testing.T, sectionID string) []string {
	t.Helper()
	items, err := e.items.ListItems(context.Background(), sectionID)
	require.NoError(t, err)
	return fields.Keys(items)
}

func (e *testEnv) storedFields(t *testing.T, owner domain.Owner) []domain.HeaderField {
	t.Helper()
	list, err := repository.NewSQLiteFieldRepo(e.db).List(context.Background(), owner)
	require.NoError(t, err)
	return list
}
