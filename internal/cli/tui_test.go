package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vitae/internal/domain"
)

func fieldRowKey(owner domain.Owner, fieldID string) string {
	return owner.String() + "/" + fieldID
}

// =============================================================================
// A. Document list
// =============================================================================

func TestTUI_DocumentList_ShowsDocuments(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	d := NewTestDriver(t, app, "")

	assert.Equal(t, ViewDocumentList, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "Backend CV")
	assert.Contains(t, view, "★", "default document is marked")
}

func TestTUI_DocumentList_Empty(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")

	assert.Contains(t, d.View(), "No documents yet")
}

func TestTUI_DocumentList_EnterOpensEditorEscReturns(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	d := NewTestDriver(t, app, "")
	d.PressEnter()

	assert.Equal(t, []ViewID{ViewDocumentList, ViewEditor}, d.ViewStackIDs())
	assert.Equal(t, "Backend CV", d.ActiveViewTitle())
	assert.Equal(t, doc.ID, d.State().ActiveDocumentID)

	view := d.View()
	assert.Contains(t, view, "EXPERIENCE")
	assert.Contains(t, view, "Ada Lovelace")

	d.PressEsc()
	assert.Equal(t, ViewDocumentList, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_DocumentList_Filter(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)
	_, err := app.Documents.Create(context.Background(), "Design Portfolio")
	require.NoError(t, err)

	d := NewTestDriver(t, app, "")
	d.PressKey('/')
	d.Type("design")

	view := d.View()
	assert.Contains(t, view, "Design Portfolio")
	assert.NotContains(t, view, "Backend CV")

	d.PressKey('q')
	assert.False(t, d.IsQuitting(), "the filter takes q as text")

	d.PressEsc()
	assert.Contains(t, d.View(), "Backend CV")
}

func TestTUI_DocumentList_AddOpensFormEscCancels(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")
	d.PressKey('a')
	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "New Document", d.ActiveViewTitle())

	d.PressEsc()
	assert.Equal(t, ViewDocumentList, d.ActiveViewID())
	assert.Contains(t, d.LastOutput(), "Cancelled.")
}

// =============================================================================
// B. Editor outline
// =============================================================================

func TestTUI_Editor_OpensOnStartDocument(t *testing.T) {
	app := testApp(t)
	doc, _, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	ev := d.Editor()
	require.NotNil(t, ev)

	keys := make([]string, len(ev.rows))
	for i, r := range ev.rows {
		keys[i] = r.key()
	}
	require.Len(t, keys, 5)
	assert.Equal(t, "basic", keys[0])
	assert.Equal(t, items[0].ID, keys[3])
	assert.Equal(t, items[1].ID, keys[4])
}

func TestTUI_Editor_MovingOntoSectionSetsActiveSection(t *testing.T) {
	app := testApp(t)
	doc, sec, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)

	assert.Equal(t, sec.ID, d.State().ActiveSectionID)
	assert.Equal(t, sec.ID, d.Editor().page.ActiveSectionID)

	got, err := app.Documents.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.ID, got.ActiveSectionID)
}

func TestTUI_Editor_ReorderItemKeepsSelection(t *testing.T) {
	app := testApp(t)
	doc, sec, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)
	d.PressKey('J')

	assert.Equal(t, []string{"Difference Works", "Analytical Engines Ltd"}, itemTitles(t, app, sec.ID))
	row, ok := d.Editor().selected()
	require.True(t, ok)
	assert.Equal(t, items[0].ID, row.key())

	d.PressKey('K')
	assert.Equal(t, []string{"Analytical Engines Ltd", "Difference Works"}, itemTitles(t, app, sec.ID))
}

func TestTUI_Editor_ReorderAtEdgeIsNoOp(t *testing.T) {
	app := testApp(t)
	doc, sec, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)
	d.PressKey('K')

	assert.Equal(t, []string{"Analytical Engines Ltd", "Difference Works"}, itemTitles(t, app, sec.ID))
}

func TestTUI_Editor_ReorderSection(t *testing.T) {
	app := testApp(t)
	doc, sec, _ := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(sec.ID)
	d.PressKey('K')

	sections, err := app.Sections.List(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.ID, sections[0].ID)
}

func TestTUI_Editor_ToggleItemVisibility(t *testing.T) {
	app := testApp(t)
	doc, sec, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[1].ID)
	d.PressKey('v')

	got, err := app.Items.GetItem(context.Background(), items[1].ID)
	require.NoError(t, err)
	assert.False(t, got.Visible)

	ev := d.Editor()
	assert.Contains(t, ev.renderRow(ev.rows[ev.cursor], false), "(hidden)")
	for _, b := range ev.page.Blocks {
		if b.SectionID == sec.ID {
			assert.Len(t, b.Entries, 1, "hidden items leave the preview")
		}
	}
	assert.False(t, d.State().Toggles.Pending(items[1].ID))
}

func TestTUI_Editor_ToggleWhilePendingIsDropped(t *testing.T) {
	app := testApp(t)
	doc, _, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)

	require.True(t, d.State().Toggles.Begin(items[0].ID))
	d.PressKey('v')
	d.State().Toggles.End(items[0].ID)

	got, err := app.Items.GetItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Visible)
}

func TestTUI_Editor_DuplicateItem(t *testing.T) {
	app := testApp(t)
	doc, sec, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[1].ID)
	d.PressKey('d')

	assert.Equal(t, []string{"Analytical Engines Ltd", "Difference Works", "Difference Works"}, itemTitles(t, app, sec.ID))
	assert.Len(t, d.Editor().rows, 6)
}

func TestTUI_Editor_DuplicateSectionRefused(t *testing.T) {
	app := testApp(t)
	doc, sec, _ := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(sec.ID)
	d.PressKey('d')

	assert.Contains(t, d.LastOutput(), "Only items and fields can be duplicated.")
}

// =============================================================================
// C. Header fields in the editor
// =============================================================================

func TestTUI_Editor_ExpandShowsDefaultFieldsWithoutWriting(t *testing.T) {
	app := testApp(t)
	doc, _, items := seedResume(t, app)
	owner := domain.ItemOwner(items[0].ID)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)
	d.PressEnter()

	ev := d.Editor()
	assert.Equal(t, owner, ev.expanded)
	assert.Len(t, ev.rows, 8)
	assert.Equal(t, fieldRowKey(owner, domain.FieldIDTitle), ev.rows[4].key())

	got, err := app.Items.GetItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.False(t, got.HasAuthoredFields())

	d.PressEnter()
	assert.False(t, d.Editor().expanded.Valid())
	assert.Len(t, d.Editor().rows, 5)
}

func TestTUI_Editor_MoveFieldMaterializes(t *testing.T) {
	app := testApp(t)
	doc, _, items := seedResume(t, app)
	owner := domain.ItemOwner(items[0].ID)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)
	d.PressEnter()
	d.SelectRow(fieldRowKey(owner, domain.FieldIDSubtitle))
	d.PressKey('J')

	got, err := app.Items.GetItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	require.True(t, got.HasAuthoredFields())
	ids := make([]string, len(got.HeaderFields))
	for i, f := range got.HeaderFields {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{domain.FieldIDTitle, domain.FieldIDDateRange, domain.FieldIDSubtitle}, ids)

	row, ok := d.Editor().selected()
	require.True(t, ok)
	assert.Equal(t, fieldRowKey(owner, domain.FieldIDSubtitle), row.key())
}

func TestTUI_Editor_ToggleAndDuplicateField(t *testing.T) {
	app := testApp(t)
	doc, _, items := seedResume(t, app)
	owner := domain.ItemOwner(items[0].ID)
	ctx := context.Background()

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)
	d.PressEnter()
	d.SelectRow(fieldRowKey(owner, domain.FieldIDDateRange))
	d.PressKey('v')

	list, err := app.Fields.Fields(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.False(t, list[2].IsVisible())

	d.SelectRow(fieldRowKey(owner, domain.FieldIDTitle))
	d.PressKey('d')

	list, err = app.Fields.Fields(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, list[0].Value, list[1].Value)
}

func TestTUI_Editor_BasicFields(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)
	owner := domain.BasicOwner(doc.ID)

	d := NewTestDriver(t, app, doc.ID)
	d.PressEnter()

	ev := d.Editor()
	assert.Equal(t, owner, ev.expanded)
	assert.Equal(t, fieldRowKey(owner, domain.FieldIDEmail), ev.rows[1].key())
	assert.Contains(t, ev.renderRow(ev.rows[1], false), "ada@example.com")
}

func TestTUI_Editor_RemovedItemCollapses(t *testing.T) {
	app := testApp(t)
	doc, _, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)
	d.PressEnter()
	require.True(t, d.Editor().expanded.Valid())

	d.Command("item rm " + items[0].ID)

	assert.Contains(t, d.LastOutput(), "Deleted item Analytical Engines Ltd")
	ev := d.Editor()
	assert.False(t, ev.expanded.Valid())
	for _, r := range ev.rows {
		assert.NotEqual(t, rowField, r.kind)
	}
}

// =============================================================================
// D. Forms
// =============================================================================

func TestTUI_Editor_DeleteAsksForConfirmation(t *testing.T) {
	app := testApp(t)
	doc, sec, items := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(items[0].ID)
	d.PressKey('x')

	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "Confirm Delete", d.ActiveViewTitle())

	d.PressEsc()
	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.Len(t, itemTitles(t, app, sec.ID), 2)
}

func TestTUI_Editor_FormsOpenPerRow(t *testing.T) {
	app := testApp(t)
	doc, sec, items := seedResume(t, app)

	tests := []struct {
		name  string
		row   string
		key   rune
		title string
	}{
		{"edit personal info", "basic", 'e', "Personal Info"},
		{"add basic field", "basic", 'a', "New Field"},
		{"rename section", sec.ID, 'e', "Rename Section"},
		{"add item to custom section", sec.ID, 'a', "New Item"},
		{"edit item", items[0].ID, 'e', "Edit Item"},
		{"add item beside item", items[0].ID, 'a', "New Item"},
		{"new section", items[0].ID, 's', "New Section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewTestDriver(t, app, doc.ID)
			d.SelectRow(tt.row)
			d.PressKey(tt.key)

			assert.Equal(t, ViewForm, d.ActiveViewID())
			assert.Equal(t, tt.title, d.ActiveViewTitle())

			d.PressEsc()
			assert.Equal(t, ViewEditor, d.ActiveViewID())
		})
	}
}

func TestTUI_Editor_EducationSectionUsesEducationForm(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	sections, err := app.Sections.List(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SectionEducation, sections[0].Kind)

	d := NewTestDriver(t, app, doc.ID)
	d.SelectRow(sections[0].ID)
	d.PressKey('a')

	assert.Equal(t, "New Education Entry", d.ActiveViewTitle())
}

func TestTUI_Form_CapturesGlobalKeys(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.PressKey('s')
	require.Equal(t, ViewForm, d.ActiveViewID())

	d.PressKey('q')
	d.PressKey(':')
	assert.False(t, d.IsQuitting())
	assert.False(t, d.CmdBarFocused())
	assert.Equal(t, ViewForm, d.ActiveViewID())
}

// =============================================================================
// E. Command bar
// =============================================================================

func TestTUI_Command_ScopedToActiveDocument(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)
	app.DefaultDocument = ""

	d := NewTestDriver(t, app, doc.ID)
	d.Command("section add --title Projects")

	assert.Contains(t, d.LastOutput(), "Added custom section Projects")
	sections, err := app.Sections.List(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Len(t, sections, 3)
	assert.Len(t, d.Editor().rows, 6, "editor reloads after the command")
	assert.Empty(t, app.DefaultDocument, "the scoped default does not leak")
}

func TestTUI_Command_UnknownSuggests(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")
	d.Command("sec")

	out := d.LastOutput()
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "section")
}

func TestTUI_Command_WatchRefused(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	d := NewTestDriver(t, app, doc.ID)
	d.Command("preview --watch")

	assert.Contains(t, d.LastOutput(), "--watch is not available")
}

func TestTUI_Command_UnterminatedQuote(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")
	d.Command(`doc add "Backend`)

	assert.Contains(t, d.LastOutput(), errUnterminatedQuote.Error())
}

func TestTUI_Command_OpenAndDocs(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	d := NewTestDriver(t, app, "")
	d.Command(`open "Backend CV"`)

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.Equal(t, doc.ID, d.State().ActiveDocumentID)

	d.Command("docs")
	assert.Equal(t, []ViewID{ViewDocumentList}, d.ViewStackIDs())
	assert.Empty(t, d.State().ActiveDocumentID)
}

func TestTUI_Command_OpenUnknown(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")
	d.Command("open nowhere")

	assert.Equal(t, ViewDocumentList, d.ActiveViewID())
	assert.Contains(t, d.LastOutput(), "Error:")
}

func TestTUI_Command_HistoryRecall(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")
	d.Command("doc list")

	d.PressKey(':')
	d.PressUp()
	m := d.appModel()
	assert.Equal(t, "doc list", m.cmdBar.input.Value())
}

func TestTUI_Command_Quit(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")
	d.Command("quit")

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitKeys(t *testing.T) {
	app := testApp(t)

	d := NewTestDriver(t, app, "")
	d.PressKey('q')
	assert.True(t, d.IsQuitting())

	d = NewTestDriver(t, app, "")
	d.PressCtrlC()
	assert.True(t, d.IsQuitting())
}
