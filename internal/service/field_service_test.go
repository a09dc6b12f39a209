package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/testutil"
)

func seededItem(t *testing.T, e *testEnv, sectionID string) *domain.Item {
	t.Helper()
	it, err := e.items.InsertItem(context.Background(), sectionID, domain.Item{
		Title:     "Acme",
		Subtitle:  "Engineer",
		DateRange: "2020 - 2023",
		Visible:   true,
	})
	require.NoError(t, err)
	return it
}

func TestFieldService_ReadingDoesNotMaterialize(t *testing.T) {
	e := setupServices(t, Options{})
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	list, err := e.fieldSvc.Fields(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldIDTitle, domain.FieldIDSubtitle, domain.FieldIDDateRange}, fields.Keys(list))
	assert.Empty(t, e.storedFields(t, owner))
}

func TestFieldService_FirstMutationFreezesSynthesis(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	require.NoError(t, e.fieldSvc.ToggleField(ctx, owner, domain.FieldIDSubtitle))

	stored := e.storedFields(t, owner)
	require.Len(t, stored, 3)
	assert.False(t, stored[1].IsVisible())

	// Editing a seed afterwards no longer reaches the header row.
	subtitle := "Manager"
	require.NoError(t, e.items.UpdateItem(ctx, sec.ID, it.ID, domain.ItemPatch{Subtitle: &subtitle}))

	list, err := e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", list[1].Value)
}

func TestFieldService_MaterializedStylesMatchSynthesis(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	before, err := e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)

	added, err := e.fieldSvc.AddField(ctx, owner, domain.HeaderField{Value: "Remote"})
	require.NoError(t, err)

	after, err := e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)
	require.Len(t, after, 4)
	if diff := cmp.Diff(before, after[:3]); diff != "" {
		t.Errorf("materialized fields differ from synthesis (-want +got):\n%s", diff)
	}
	assert.Equal(t, added.ID, after[3].ID)
}

func TestFieldService_AddFieldDefaults(t *testing.T) {
	e := setupServices(t, Options{})
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)

	added, err := e.fieldSvc.AddField(context.Background(), domain.ItemOwner(it.ID), domain.HeaderField{Label: "Stack"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, domain.FieldText, added.Kind)
	assert.True(t, added.IsVisible())
	assert.Nil(t, added.FontSize, "font size inherits")
}

func TestFieldService_UpdateTitleFieldSyncsItemTitle(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)

	value := "Acme Corp"
	require.NoError(t, e.fieldSvc.UpdateField(ctx, domain.ItemOwner(it.ID), domain.FieldIDTitle, domain.HeaderFieldPatch{Value: &value}))

	got, err := e.items.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Title)
}

func TestFieldService_UpdateClearsOverride(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	require.NoError(t, e.fieldSvc.UpdateField(ctx, owner, domain.FieldIDTitle, domain.HeaderFieldPatch{ClearFontSize: true}))

	list, err := e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, list[0].FontSize)
	assert.Equal(t, fields.DefaultFontSize, fields.Resolve(list[0], fields.BlockDefaults{}, domain.GlobalSettings{}).FontSize)
}

func TestFieldService_DuplicateRemoveMove(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	dup, err := e.fieldSvc.DuplicateField(ctx, owner, domain.FieldIDTitle)
	require.NoError(t, err)
	require.NotNil(t, dup)
	assert.Equal(t, "Acme", dup.Value)

	list, err := e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldIDTitle, dup.ID, domain.FieldIDSubtitle, domain.FieldIDDateRange}, fields.Keys(list))

	require.NoError(t, e.fieldSvc.RemoveField(ctx, owner, dup.ID))
	require.NoError(t, e.fieldSvc.MoveField(ctx, owner, domain.FieldIDDateRange, -2))

	list, err = e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldIDDateRange, domain.FieldIDTitle, domain.FieldIDSubtitle}, fields.Keys(list))
}

func TestFieldService_RemovingEveryFieldRestoresDefaults(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	for _, id := range []string{domain.FieldIDTitle, domain.FieldIDSubtitle, domain.FieldIDDateRange} {
		require.NoError(t, e.fieldSvc.RemoveField(ctx, owner, id))
	}
	assert.Empty(t, e.storedFields(t, owner))

	list, err := e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldIDTitle, domain.FieldIDSubtitle, domain.FieldIDDateRange}, fields.Keys(list))
	assert.Equal(t, "Acme", list[0].Value)
}

func TestFieldService_UnchangedReorderDoesNotMaterialize(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	same := []string{domain.FieldIDTitle, domain.FieldIDSubtitle, domain.FieldIDDateRange}
	require.NoError(t, e.fieldSvc.ReorderFields(ctx, owner, same))
	assert.Empty(t, e.storedFields(t, owner))

	require.NoError(t, e.fieldSvc.ReorderFields(ctx, owner, []string{domain.FieldIDTitle}))
	assert.Empty(t, e.storedFields(t, owner), "strict policy rejects a partial order")

	swapped := []string{domain.FieldIDSubtitle, domain.FieldIDTitle, domain.FieldIDDateRange}
	require.NoError(t, e.fieldSvc.ReorderFields(ctx, owner, swapped))
	assert.Equal(t, swapped, fields.Keys(e.storedFields(t, owner)))
}

func TestFieldService_UnknownFieldIsNoOp(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	value := "x"
	assert.NoError(t, e.fieldSvc.UpdateField(ctx, owner, "missing", domain.HeaderFieldPatch{Value: &value}))
	assert.NoError(t, e.fieldSvc.RemoveField(ctx, owner, "missing"))
	assert.NoError(t, e.fieldSvc.ToggleField(ctx, owner, "missing"))
	assert.NoError(t, e.fieldSvc.MoveField(ctx, owner, "missing", 1))
	dup, err := e.fieldSvc.DuplicateField(ctx, owner, "missing")
	assert.NoError(t, err)
	assert.Nil(t, dup)

	assert.Empty(t, e.storedFields(t, owner))
}

func TestFieldService_InvalidOwner(t *testing.T) {
	e := setupServices(t, Options{})
	_, err := e.fieldSvc.Fields(context.Background(), domain.Owner{Kind: "nope", ID: "x"})
	require.Error(t, err)
}

func TestFieldService_BasicContactsMaterializeIndependently(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	doc, err := e.docs.Create(ctx, "Resume")
	require.NoError(t, err)

	email, phone := "ada@example.com", "555-0100"
	_, err = e.docs.UpdateBasic(ctx, doc.ID, domain.BasicPatch{Email: &email, Phone: &phone})
	require.NoError(t, err)

	owner := domain.BasicOwner(doc.ID)
	list, err := e.fieldSvc.Fields(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldIDEmail, domain.FieldIDPhone}, fields.Keys(list))

	require.NoError(t, e.fieldSvc.MoveField(ctx, owner, domain.FieldIDPhone, -1))
	assert.Equal(t, []string{domain.FieldIDPhone, domain.FieldIDEmail}, fields.Keys(e.storedFields(t, owner)))

	// The scalar changes but the authored contact keeps its value.
	newEmail := "lovelace@example.com"
	_, err = e.docs.UpdateBasic(ctx, doc.ID, domain.BasicPatch{Email: &newEmail})
	require.NoError(t, err)

	page, err := e.preview.Render(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, page.Heading.Contacts, 2)
	assert.Equal(t, "555-0100", page.Heading.Contacts[0].Text)
	assert.Equal(t, "ada@example.com", page.Heading.Contacts[1].Text)
}

func TestFieldService_FailedWriteLeavesListUntouched(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	_, sec := e.newDocWithSection(t, "Work")
	it := seededItem(t, e, sec.ID)
	owner := domain.ItemOwner(it.ID)

	require.NoError(t, e.fieldSvc.ToggleField(ctx, owner, domain.FieldIDDateRange))
	before := e.storedFields(t, owner)

	// Exec #1 clears the list, #2 writes the first field.
	failing := NewFieldService(&testutil.FailOnNthExecUoW{
		DB:     e.db,
		FailOn: 2,
		Err:    errors.New("injected write failure"),
	}, e.opts)
	err := failing.RemoveField(ctx, owner, domain.FieldIDTitle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected write failure")

	if diff := cmp.Diff(before, e.storedFields(t, owner)); diff != "" {
		t.Errorf("stored list changed after rollback (-want +got):\n%s", diff)
	}
}
