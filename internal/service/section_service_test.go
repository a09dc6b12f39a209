package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
)

func sectionIDs(t *testing.T, e *testEnv, documentID string) []string {
	t.Helper()
	secs, err := e.sections.List(context.Background(), documentID)
	require.NoError(t, err)
	ids := make([]string, len(secs))
	for i, s := range secs {
		ids[i] = s.ID
	}
	return ids
}

func TestSectionService_CreateAppends(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	doc, projects := e.newDocWithSection(t, "Projects")

	awards, err := e.sections.Create(ctx, doc.ID, domain.SectionCustom, "Awards")
	require.NoError(t, err)
	assert.Equal(t, 2, awards.Position)

	ids := sectionIDs(t, e, doc.ID)
	require.Len(t, ids, 3)
	assert.Equal(t, []string{projects.ID, awards.ID}, ids[1:])

	_, err = e.sections.Create(ctx, doc.ID, "blog", "x")
	require.Error(t, err)
	_, err = e.sections.Create(ctx, "missing", domain.SectionCustom, "x")
	require.Error(t, err)
}

func TestSectionService_ReorderAndMove(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	doc, projects := e.newDocWithSection(t, "Projects")
	ids := sectionIDs(t, e, doc.ID)
	edu := ids[0]

	require.NoError(t, e.sections.Reorder(ctx, doc.ID, []string{projects.ID, edu}))
	assert.Equal(t, []string{projects.ID, edu}, sectionIDs(t, e, doc.ID))

	require.NoError(t, e.sections.Reorder(ctx, doc.ID, []string{edu}))
	assert.Equal(t, []string{projects.ID, edu}, sectionIDs(t, e, doc.ID), "partial order is rejected")

	require.NoError(t, e.sections.Move(ctx, edu, -1))
	assert.Equal(t, []string{edu, projects.ID}, sectionIDs(t, e, doc.ID))

	require.NoError(t, e.sections.Move(ctx, "missing", 1))
}

func TestSectionService_RemoveCascadesAndCompacts(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	doc, projects := e.newDocWithSection(t, "Projects")
	awards, err := e.sections.Create(ctx, doc.ID, domain.SectionCustom, "Awards")
	require.NoError(t, err)
	it := e.insert(t, projects.ID, "A")

	require.NoError(t, e.sections.Remove(ctx, projects.ID))
	require.NoError(t, e.sections.Remove(ctx, projects.ID))

	secs, err := e.sections.List(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, secs, 2)
	assert.Equal(t, awards.ID, secs[1].ID)
	assert.Equal(t, 1, secs[1].Position)

	_, err = e.items.GetItem(ctx, it.ID)
	require.Error(t, err)
}

func TestSectionService_RenameAndHide(t *testing.T) {
	e := setupServices(t, Options{})
	ctx := context.Background()
	doc, sec := e.newDocWithSection(t, "Projects")
	e.insert(t, sec.ID, "A")

	require.NoError(t, e.sections.Rename(ctx, sec.ID, "Side Projects"))
	page, err := e.preview.Render(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 1)
	assert.Equal(t, "Side Projects", page.Blocks[0].Title)

	require.NoError(t, e.sections.SetVisible(ctx, sec.ID, false))
	page, err = e.preview.Render(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, page.Blocks)
}

func TestSectionService_TrustPolicyCompletesOrder(t *testing.T) {
	e := setupServices(t, Options{Policy: fields.ReorderTrust})
	ctx := context.Background()
	doc, projects := e.newDocWithSection(t, "Projects")
	edu := sectionIDs(t, e, doc.ID)[0]

	require.NoError(t, e.sections.Reorder(ctx, doc.ID, []string{projects.ID}))
	assert.Equal(t, []string{projects.ID, edu}, sectionIDs(t, e, doc.ID))
}
