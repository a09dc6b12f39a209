package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/preview"
	"github.com/alexanderramin/vitae/internal/service"
	"github.com/alexanderramin/vitae/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	uow := db.NewSQLiteUnitOfWork(testutil.NewTestDB(t))
	opts := service.Options{Policy: fields.ReorderStrict}

	app := &App{
		Documents: service.NewDocumentService(uow, opts),
		Sections:  service.NewSectionService(uow, opts),
		Items:     service.NewItemService(uow, opts),
		Fields:    service.NewFieldService(uow, opts),
		Preview:   service.NewPreviewService(uow, opts),
		Import:    service.NewImportService(uow, opts),
		Export:    service.NewExportService(uow),
	}
	app.SaveDefaultDocument = func(id string) error { return nil }
	return app
}

// seedResume creates a document with personal info and a custom section
// holding two items, and makes it the default document.
func seedResume(t *testing.T, app *App) (*domain.Document, *domain.Section, []*domain.Item) {
	t.Helper()
	ctx := context.Background()

	doc, err := app.Documents.Create(ctx, "Backend CV")
	require.NoError(t, err)
	_, err = app.Documents.UpdateBasic(ctx, doc.ID, domain.BasicPatch{
		Name:  domain.Ptr("Ada Lovelace"),
		Email: domain.Ptr("ada@example.com"),
	})
	require.NoError(t, err)

	sec, err := app.Sections.Create(ctx, doc.ID, domain.SectionCustom, "Experience")
	require.NoError(t, err)

	var items []*domain.Item
	for _, title := range []string{"Analytical Engines Ltd", "Difference Works"} {
		it, err := app.Items.InsertItem(ctx, sec.ID, domain.Item{Title: title, Subtitle: "Engineer", DateRange: "2020 - 2022", Visible: true})
		require.NoError(t, err)
		items = append(items, it)
	}

	app.DefaultDocument = doc.ID
	return doc, sec, items
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func itemTitles(t *testing.T, app *App, sectionID string) []string {
	t.Helper()
	items, err := app.Items.ListItems(context.Background(), sectionID)
	require.NoError(t, err)
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	return titles
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "vitae")
	assert.Contains(t, output, "preview")
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "bogus")
	assert.Error(t, err)
}

// --- doc ---

func TestDocCmd_AddListShow(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "doc", "add", "Product CV")
	require.NoError(t, err)
	assert.Contains(t, output, "Created document Product CV")

	output, err = executeCmd(t, app, "doc", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Product CV")

	output, err = executeCmd(t, app, "doc", "show", "Product CV")
	require.NoError(t, err)
	assert.Contains(t, output, "Education")
}

func TestDocCmd_ListEmpty(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "doc", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No documents found.")
}

func TestDocCmd_AddRequiresName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "doc", "add")
	assert.Error(t, err)
}

func TestDocCmd_Rename(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	output, err := executeCmd(t, app, "doc", "rename", doc.ID, "Platform CV")
	require.NoError(t, err)
	assert.Contains(t, output, "Renamed Backend CV to Platform CV")

	got, err := app.Documents.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform CV", got.Name)
}

func TestDocCmd_RemoveClearsDefault(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	var saved []string
	app.SaveDefaultDocument = func(id string) error {
		saved = append(saved, id)
		return nil
	}

	output, err := executeCmd(t, app, "doc", "rm", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted document Backend CV")
	assert.Equal(t, []string{""}, saved)

	_, err = app.Documents.GetByID(context.Background(), doc.ID)
	assert.Error(t, err)
}

func TestDocCmd_UseSavesDefault(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	doc, err := app.Documents.Create(ctx, "Research CV")
	require.NoError(t, err)

	var saved string
	app.SaveDefaultDocument = func(id string) error {
		saved = id
		return nil
	}

	output, err := executeCmd(t, app, "doc", "use", "Research CV")
	require.NoError(t, err)
	assert.Contains(t, output, "Using Research CV")
	assert.Equal(t, doc.ID, saved)
	assert.Equal(t, doc.ID, app.DefaultDocument)
}

func TestDocCmd_UseWithoutSaver(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)
	app.SaveDefaultDocument = nil

	_, err := executeCmd(t, app, "doc", "use", "Backend CV")
	assert.Error(t, err)
}

func TestDocCmd_ShowWithoutDefault(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "doc", "show")
	assert.ErrorIs(t, err, errNoDocument)
}

// --- settings and basic ---

func TestSettingsCmd_SetOnlyChangedFlags(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	_, err := executeCmd(t, app, "settings", "set", "--base-font", "13", "--icons")
	require.NoError(t, err)

	got, err := app.Documents.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Settings.BaseFontSize)
	assert.Equal(t, 13, *got.Settings.BaseFontSize)
	require.NotNil(t, got.Settings.UseIconMode)
	assert.True(t, *got.Settings.UseIconMode)
	assert.Nil(t, got.Settings.SubheaderSize)

	output, err := executeCmd(t, app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "13")
}

func TestBasicCmd_Set(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	output, err := executeCmd(t, app, "basic", "set", "--headline", "Engineer", "--layout", "center", "--font-size", "11")
	require.NoError(t, err)
	assert.Contains(t, output, "Ada Lovelace")

	got, err := app.Documents.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Basic.Name)
	assert.Equal(t, "Engineer", got.Basic.Headline)
	assert.Equal(t, domain.AlignCenter, got.Basic.Layout)
	require.NotNil(t, got.Basic.FontSize)
	assert.Equal(t, 11, *got.Basic.FontSize)

	_, err = executeCmd(t, app, "basic", "set", "--clear-font-size")
	require.NoError(t, err)
	got, err = app.Documents.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Basic.FontSize)
}

func TestBasicCmd_RejectsUnknownLayout(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	_, err := executeCmd(t, app, "basic", "set", "--layout", "justified")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of left, center, right")
}

// --- section ---

func TestSectionCmd_AddAndList(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	output, err := executeCmd(t, app, "section", "add", "--title", "Projects")
	require.NoError(t, err)
	assert.Contains(t, output, "Added custom section Projects")

	output, err = executeCmd(t, app, "section", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Education")
	assert.Contains(t, output, "Experience")
	assert.Contains(t, output, "Projects")
}

func TestSectionCmd_ReorderByTitle(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	_, err := executeCmd(t, app, "section", "reorder", "--order", "Experience,Education")
	require.NoError(t, err)

	sections, err := app.Sections.List(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Experience", sections[0].DisplayTitle())
	assert.Equal(t, "Education", sections[1].DisplayTitle())
}

func TestSectionCmd_MoveAndToggle(t *testing.T) {
	app := testApp(t)
	doc, sec, _ := seedResume(t, app)

	output, err := executeCmd(t, app, "section", "move", "Experience", "--by", "-1")
	require.NoError(t, err)
	assert.Contains(t, output, "Moved section Experience by -1")

	sections, err := app.Sections.List(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.ID, sections[0].ID)

	output, err = executeCmd(t, app, "section", "toggle", "Experience")
	require.NoError(t, err)
	assert.Contains(t, output, "now hidden")

	got, err := app.Sections.GetByID(context.Background(), sec.ID)
	require.NoError(t, err)
	assert.False(t, got.Visible)
}

func TestSectionCmd_RenameAndRemove(t *testing.T) {
	app := testApp(t)
	doc, sec, _ := seedResume(t, app)

	_, err := executeCmd(t, app, "section", "rename", "Experience", "Work")
	require.NoError(t, err)
	got, err := app.Sections.GetByID(context.Background(), sec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Title)

	output, err := executeCmd(t, app, "section", "rm", "Work")
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted section Work")

	sections, err := app.Sections.List(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Len(t, sections, 1)
}

func TestSectionCmd_FocusSetsActiveSection(t *testing.T) {
	app := testApp(t)
	doc, sec, _ := seedResume(t, app)

	_, err := executeCmd(t, app, "section", "focus", "Experience")
	require.NoError(t, err)

	got, err := app.Documents.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.ID, got.ActiveSectionID)
}

func TestSectionCmd_UnknownSection(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	_, err := executeCmd(t, app, "section", "rm", "Hobbies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section not found")
}

// --- item ---

func TestItemCmd_AddCustomAndEducation(t *testing.T) {
	app := testApp(t)
	doc, sec, _ := seedResume(t, app)
	ctx := context.Background()

	output, err := executeCmd(t, app, "item", "add", "Experience", "--title", "Babbage & Co", "--dates", "2023")
	require.NoError(t, err)
	assert.Contains(t, output, "Added item Babbage & Co")
	assert.Equal(t, []string{"Analytical Engines Ltd", "Difference Works", "Babbage & Co"}, itemTitles(t, app, sec.ID))

	output, err = executeCmd(t, app, "item", "add", "Education",
		"--school", "University of London", "--major", "Mathematics", "--start", "1840", "--end", "1842")
	require.NoError(t, err)
	assert.Contains(t, output, "to Education")

	sections, err := app.Sections.List(ctx, doc.ID)
	require.NoError(t, err)
	var edu *domain.Section
	for _, s := range sections {
		if s.Kind == domain.SectionEducation {
			edu = s
		}
	}
	require.NotNil(t, edu)
	items, err := app.Items.ListItems(ctx, edu.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "University of London", items[0].Title)
	assert.Equal(t, "Mathematics", items[0].Subtitle)
	assert.Equal(t, "1840 - 1842", items[0].DateRange)
}

func TestItemCmd_TitleAndSchoolExclusive(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	_, err := executeCmd(t, app, "item", "add", "Education", "--title", "x", "--school", "y")
	assert.Error(t, err)
}

func TestItemCmd_ListEmpty(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	output, err := executeCmd(t, app, "item", "list", "Education")
	require.NoError(t, err)
	assert.Contains(t, output, "No items.")
}

func TestItemCmd_UpdateOnlyChangedFlags(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	_, err := executeCmd(t, app, "item", "update", items[0].ID, "--subtitle", "Staff Engineer")
	require.NoError(t, err)

	got, err := app.Items.GetItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Analytical Engines Ltd", got.Title)
	assert.Equal(t, "Staff Engineer", got.Subtitle)
	assert.Equal(t, "2020 - 2022", got.DateRange)
}

func TestItemCmd_DuplicateInsertsAfterOriginal(t *testing.T) {
	app := testApp(t)
	_, sec, items := seedResume(t, app)

	output, err := executeCmd(t, app, "item", "dup", items[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Duplicated Analytical Engines Ltd")

	assert.Equal(t, []string{"Analytical Engines Ltd", "Analytical Engines Ltd", "Difference Works"}, itemTitles(t, app, sec.ID))
}

func TestItemCmd_ReorderMoveRemove(t *testing.T) {
	app := testApp(t)
	_, sec, items := seedResume(t, app)

	_, err := executeCmd(t, app, "item", "reorder", "Experience", "--order", items[1].ID+","+items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Difference Works", "Analytical Engines Ltd"}, itemTitles(t, app, sec.ID))

	_, err = executeCmd(t, app, "item", "move", items[1].ID, "--by", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Analytical Engines Ltd", "Difference Works"}, itemTitles(t, app, sec.ID))

	output, err := executeCmd(t, app, "item", "rm", "Difference Works")
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted item Difference Works")
	assert.Equal(t, []string{"Analytical Engines Ltd"}, itemTitles(t, app, sec.ID))
}

func TestItemCmd_Toggle(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	output, err := executeCmd(t, app, "item", "toggle", items[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, "now hidden")

	got, err := app.Items.GetItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.False(t, got.Visible)
}

// --- field ---

func TestFieldCmd_RequiresOwner(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	_, err := executeCmd(t, app, "field", "list")
	assert.ErrorIs(t, err, errOwnerRequired)
}

func TestFieldCmd_ListShowsSynthesizedFields(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	output, err := executeCmd(t, app, "field", "list", "--item", items[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, domain.FieldIDTitle)
	assert.Contains(t, output, domain.FieldIDSubtitle)
	assert.Contains(t, output, domain.FieldIDDateRange)

	got, err := app.Items.GetItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.False(t, got.HasAuthoredFields(), "listing must not materialize fields")
}

func TestFieldCmd_AddMaterializesDefaults(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	output, err := executeCmd(t, app, "field", "add", "--item", items[0].ID,
		"--label", "Stack", "--value", "Go", "--align", "right", "--bold")
	require.NoError(t, err)
	assert.Contains(t, output, "Added field Stack")

	got, err := app.Items.GetItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	require.Len(t, got.HeaderFields, 4)

	ids := make([]string, 0, 3)
	for _, f := range got.HeaderFields[:3] {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{domain.FieldIDTitle, domain.FieldIDSubtitle, domain.FieldIDDateRange}, ids)

	added := got.HeaderFields[3]
	assert.Equal(t, "Stack", added.Label)
	assert.Equal(t, "Go", added.Value)
	assert.Equal(t, domain.AlignRight, added.Align)
	require.NotNil(t, added.Bold)
	assert.True(t, *added.Bold)
	assert.True(t, added.IsVisible())
}

func TestFieldCmd_UpdateClearsOverride(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	_, err := executeCmd(t, app, "field", "update", domain.FieldIDSubtitle, "--item", items[0].ID, "--font-size", "15")
	require.NoError(t, err)
	list, err := app.Fields.Fields(context.Background(), domain.ItemOwner(items[0].ID))
	require.NoError(t, err)
	require.NotNil(t, list[1].FontSize)
	assert.Equal(t, 15, *list[1].FontSize)

	_, err = executeCmd(t, app, "field", "update", domain.FieldIDSubtitle, "--item", items[0].ID, "--clear-font-size")
	require.NoError(t, err)
	list, err = app.Fields.Fields(context.Background(), domain.ItemOwner(items[0].ID))
	require.NoError(t, err)
	assert.Nil(t, list[1].FontSize)
}

func TestFieldCmd_FontSizeAndClearExclusive(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	_, err := executeCmd(t, app, "field", "update", domain.FieldIDTitle, "--item", items[0].ID, "--font-size", "15", "--clear-font-size")
	assert.Error(t, err)
}

func TestFieldCmd_BasicToggleMoveRemove(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)
	ctx := context.Background()
	owner := domain.BasicOwner(doc.ID)

	_, err := executeCmd(t, app, "basic", "set", "--phone", "555-0100")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "field", "toggle", domain.FieldIDPhone, "--basic")
	require.NoError(t, err)
	assert.Contains(t, output, "Field Phone is now hidden")

	_, err = executeCmd(t, app, "field", "move", domain.FieldIDPhone, "--basic", "--by", "-1")
	require.NoError(t, err)

	list, err := app.Fields.Fields(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.FieldIDPhone, list[0].ID)
	assert.False(t, list[0].IsVisible())

	_, err = executeCmd(t, app, "field", "rm", domain.FieldIDEmail, "--basic")
	require.NoError(t, err)
	list, err = app.Fields.Fields(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.FieldIDPhone, list[0].ID)
}

func TestFieldCmd_DuplicateGetsFreshID(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)
	ctx := context.Background()

	output, err := executeCmd(t, app, "field", "dup", domain.FieldIDTitle, "--item", items[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Duplicated Analytical Engines Ltd")

	list, err := app.Fields.Fields(ctx, domain.ItemOwner(items[0].ID))
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, domain.FieldIDTitle, list[0].ID)
	assert.NotEqual(t, domain.FieldIDTitle, list[1].ID)
	assert.Equal(t, list[0].Value, list[1].Value)
}

func TestFieldCmd_Reorder(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	output, err := executeCmd(t, app, "field", "reorder", "--item", items[0].ID,
		"--order", strings.Join([]string{domain.FieldIDDateRange, domain.FieldIDTitle, domain.FieldIDSubtitle}, ","))
	require.NoError(t, err)
	assert.Contains(t, output, domain.FieldIDDateRange)

	list, err := app.Fields.Fields(context.Background(), domain.ItemOwner(items[0].ID))
	require.NoError(t, err)
	got := make([]string, len(list))
	for i, f := range list {
		got[i] = f.ID
	}
	assert.Equal(t, []string{domain.FieldIDDateRange, domain.FieldIDTitle, domain.FieldIDSubtitle}, got)
}

// --- preview, import, export ---

func TestFieldRmCmd_HelpExplainsDefaultsReturn(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "field", "rm", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "Removing the last field")
	assert.Contains(t, output, "field toggle")
}

func TestPreviewCmd_RendersVisibleContent(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)

	_, err := executeCmd(t, app, "item", "toggle", items[1].ID)
	require.NoError(t, err)

	output, err := executeCmd(t, app, "preview", "--width", "72")
	require.NoError(t, err)
	assert.Contains(t, output, "ADA LOVELACE")
	assert.Contains(t, output, "ada@example.com")
	assert.Contains(t, output, "Analytical Engines Ltd")
	assert.NotContains(t, output, "Difference Works")
}

func TestPreviewCmd_JSON(t *testing.T) {
	app := testApp(t)
	doc, _, _ := seedResume(t, app)

	output, err := executeCmd(t, app, "preview", "--json")
	require.NoError(t, err)

	var page preview.Page
	require.NoError(t, json.Unmarshal([]byte(output), &page))
	assert.Equal(t, doc.ID, page.DocumentID)

	want, err := app.Preview.Render(context.Background(), doc.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Blocks, page.Blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewCmd_WatchNeedsFile(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	_, err := executeCmd(t, app, "preview", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file-backed")
}

func TestExportImport_RoundTrip(t *testing.T) {
	app := testApp(t)
	_, _, items := seedResume(t, app)
	ctx := context.Background()

	_, err := executeCmd(t, app, "field", "add", "--item", items[0].ID, "--label", "Stack", "--value", "Go")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "resume.json")
	output, err := executeCmd(t, app, "export", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Exported Backend CV to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data), "extension picks JSON")

	output, err = executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, output, "2 sections, 2 items")

	docs, err := app.Documents.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	original, err := app.Export.Export(ctx, app.DefaultDocument)
	require.NoError(t, err)
	var importedID string
	for _, d := range docs {
		if d.ID != app.DefaultDocument {
			importedID = d.ID
		}
	}
	imported, err := app.Export.Export(ctx, importedID)
	require.NoError(t, err)

	assert.Equal(t, original.Name, imported.Name)
	assert.Equal(t, original.Basic.Name, imported.Basic.Name)
	require.Len(t, imported.Sections, len(original.Sections))
	exp := imported.Sections[1]
	require.Len(t, exp.Items, 2)
	if diff := cmp.Diff(original.Sections[1].Items[0].Fields, exp.Items[0].Fields); diff != "" {
		t.Errorf("authored fields mismatch (-original +imported):\n%s", diff)
	}
	assert.Empty(t, exp.Items[1].Fields)
}

func TestExportCmd_YAMLToStdout(t *testing.T) {
	app := testApp(t)
	seedResume(t, app)

	output, err := executeCmd(t, app, "export")
	require.NoError(t, err)
	assert.Contains(t, output, "name: Backend CV")
	assert.Contains(t, output, "Difference Works")
}
