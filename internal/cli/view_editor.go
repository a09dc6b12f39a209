package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/preview"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type rowKind int

const (
	rowBasic rowKind = iota
	rowSection
	rowItem
	rowField
)

// outlineRow is one selectable line of the editor outline.
type outlineRow struct {
	kind    rowKind
	section *domain.Section
	item    *domain.Item
	field   *domain.HeaderField
	owner   domain.Owner
}

// key identifies the row across reloads.
func (r outlineRow) key() string {
	switch r.kind {
	case rowSection:
		return r.section.ID
	case rowItem:
		return r.item.ID
	case rowField:
		return r.owner.String() + "/" + r.field.ID
	default:
		return "basic"
	}
}

type editorLoadedMsg struct {
	documentID string
	doc        *domain.Document
	outline    []preview.SectionContent
	requested  domain.Owner
	expanded   domain.Owner
	fields     []domain.HeaderField
	page       *preview.Page
	err        error
}

// editorView shows a document's outline next to its live preview.
type editorView struct {
	state      *SharedState
	documentID string

	doc      *domain.Document
	outline  []preview.SectionContent
	expanded domain.Owner
	fields   []domain.HeaderField
	page     *preview.Page

	rows    []outlineRow
	cursor  int
	offset  int
	focusID string

	loading bool
	err     error

	outlineWidth int
	preview      viewport.Model
}

func newEditorView(state *SharedState) *editorView {
	vp := viewport.New(formatter.DefaultPreviewWidth, state.ContentHeight())
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
	return &editorView{
		state:      state,
		documentID: state.ActiveDocumentID,
		focusID:    state.ActiveSectionID,
		loading:    true,
		preview:    vp,
	}
}

func (v *editorView) ID() ViewID { return ViewEditor }

func (v *editorView) Title() string {
	if v.doc != nil {
		return v.doc.Name
	}
	return "Editor"
}

func (v *editorView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "move")),
		key.NewBinding(key.WithKeys("J", "K"), key.WithHelp("J/K", "reorder")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fields")),
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "show/hide")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dup")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "new section")),
	}
}

func (v *editorView) Init() tea.Cmd {
	v.layout()
	return v.load()
}

// load reads the document, its outline, the expanded owner's fields and
// the rendered page.
func (v *editorView) load() tea.Cmd {
	app, docID, requested := v.state.App, v.documentID, v.expanded
	return func() tea.Msg {
		ctx := context.Background()
		msg := editorLoadedMsg{documentID: docID, requested: requested}

		doc, err := app.Documents.GetByID(ctx, docID)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.doc = doc

		if msg.outline, err = loadOutline(ctx, app, docID); err != nil {
			msg.err = err
			return msg
		}

		// An expanded item that is gone collapses.
		if requested.Valid() && (requested.Kind == domain.OwnerBasic || outlineHasItem(msg.outline, requested.ID)) {
			if msg.fields, err = app.Fields.Fields(ctx, requested); err != nil {
				msg.err = err
				return msg
			}
			msg.expanded = requested
		}

		if msg.page, err = app.Preview.Render(ctx, docID); err != nil {
			msg.err = err
		}
		return msg
	}
}

func outlineHasItem(outline []preview.SectionContent, itemID string) bool {
	for _, sc := range outline {
		for _, it := range sc.Items {
			if it.ID == itemID {
				return true
			}
		}
	}
	return false
}

func (v *editorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorLoadedMsg:
		if msg.documentID != v.documentID {
			return v, nil
		}
		v.applyLoaded(msg)
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.WindowSizeMsg:
		v.layout()
		return v, nil

	case tea.KeyMsg:
		return v.updateKey(msg)
	}
	return v, nil
}

func (v *editorView) applyLoaded(msg editorLoadedMsg) {
	v.loading = false
	v.err = msg.err
	if msg.err != nil {
		return
	}

	want := v.focusID
	if want == "" {
		if row, ok := v.selected(); ok {
			want = row.key()
		}
	}
	v.focusID = ""

	v.doc = msg.doc
	v.state.ActiveDocumentName = msg.doc.Name
	v.outline = msg.outline
	v.page = msg.page
	if v.expanded == msg.requested {
		v.expanded = msg.expanded
		v.fields = msg.fields
	}

	// The editor's own focus wins over a stored one that may not have
	// been written yet.
	if v.state.ActiveSectionID != "" {
		v.page.ActiveSectionID = v.state.ActiveSectionID
	} else {
		v.state.ActiveSectionID = v.page.ActiveSectionID
	}

	v.buildRows()
	for i, r := range v.rows {
		if r.key() == want {
			v.cursor = i
			break
		}
	}
	v.cursor = min(v.cursor, len(v.rows)-1)
	v.layout()
}

func (v *editorView) buildRows() {
	rows := []outlineRow{{kind: rowBasic}}
	appendFields := func(owner domain.Owner, sec *domain.Section, it *domain.Item) {
		if v.expanded != owner {
			return
		}
		for i := range v.fields {
			rows = append(rows, outlineRow{kind: rowField, section: sec, item: it, field: &v.fields[i], owner: owner})
		}
	}

	appendFields(domain.BasicOwner(v.documentID), nil, nil)
	for i := range v.outline {
		sec := &v.outline[i].Section
		rows = append(rows, outlineRow{kind: rowSection, section: sec})
		for j := range v.outline[i].Items {
			it := &v.outline[i].Items[j]
			rows = append(rows, outlineRow{kind: rowItem, section: sec, item: it})
			appendFields(domain.ItemOwner(it.ID), sec, it)
		}
	}
	v.rows = rows
}

func (v *editorView) selected() (outlineRow, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return outlineRow{}, false
	}
	return v.rows[v.cursor], true
}

// layout sizes the two panes from the terminal and redraws the preview.
func (v *editorView) layout() {
	width := v.state.Width
	if width <= 0 {
		width = formatter.DefaultPreviewWidth + 40
	}
	v.outlineWidth = min(max(width*2/5, 28), 48)
	v.preview.Width = max(width-v.outlineWidth-3, 20)
	v.preview.Height = v.state.ContentHeight()
	v.renderPreview()
	v.scrollOutline()
}

func (v *editorView) renderPreview() {
	if v.page == nil {
		v.preview.SetContent("")
		return
	}
	v.preview.SetContent(formatter.RenderPage(*v.page, v.preview.Width))
}

func (v *editorView) scrollOutline() {
	h := v.state.ContentHeight()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+h {
		v.offset = v.cursor - h + 1
	}
	v.offset = max(v.offset, 0)
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (v *editorView) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.loading || v.err != nil {
		if msg.String() == "r" {
			v.loading = true
			return v, v.load()
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		return v, v.moveCursor(-1)
	case "down", "j":
		return v, v.moveCursor(1)
	case "K", "shift+up":
		return v, v.reorderSelected(-1)
	case "J", "shift+down":
		return v, v.reorderSelected(1)
	case "enter":
		return v, v.toggleExpand()
	case "v":
		return v, v.toggleVisibility()
	case "d":
		return v, v.duplicateSelected()
	case "x":
		return v, v.deleteSelected()
	case "a":
		return v, v.addToSelected()
	case "e":
		return v, v.editSelected()
	case "s":
		return v, v.addSection()
	case "r":
		return v, v.load()
	case "pgdown", "pgup", "ctrl+d", "ctrl+u":
		var cmd tea.Cmd
		v.preview, cmd = v.preview.Update(msg)
		return v, cmd
	}
	return v, nil
}

// moveCursor moves the selection and records the section it lands in as
// the document's active section.
func (v *editorView) moveCursor(delta int) tea.Cmd {
	next := v.cursor + delta
	if next < 0 || next >= len(v.rows) {
		return nil
	}
	v.cursor = next
	v.scrollOutline()

	row := v.rows[v.cursor]
	if row.section == nil || row.section.ID == v.state.ActiveSectionID {
		return nil
	}
	sectionID := row.section.ID
	v.state.ActiveSectionID = sectionID
	if v.page != nil {
		v.page.ActiveSectionID = sectionID
		v.renderPreview()
	}
	app, docID := v.state.App, v.documentID
	return func() tea.Msg {
		app.Documents.SetActiveSection(context.Background(), docID, sectionID)
		return nil
	}
}

// mutate runs fn and reloads every view, or shows the error.
func (v *editorView) mutate(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return cmdOutputMsg{output: shellError(err)}
		}
		return refreshViewMsg{}
	}
}

func (v *editorView) reorderSelected(delta int) tea.Cmd {
	row, ok := v.selected()
	if !ok {
		return nil
	}
	app := v.state.App
	v.focusID = row.key()

	switch row.kind {
	case rowSection:
		id := row.section.ID
		return v.mutate(func(ctx context.Context) error { return app.Sections.Move(ctx, id, delta) })
	case rowItem:
		sectionID, id := row.section.ID, row.item.ID
		return v.mutate(func(ctx context.Context) error { return app.Items.MoveItem(ctx, sectionID, id, delta) })
	case rowField:
		owner, id := row.owner, row.field.ID
		return v.mutate(func(ctx context.Context) error { return app.Fields.MoveField(ctx, owner, id, delta) })
	}
	v.focusID = ""
	return nil
}

func (v *editorView) toggleExpand() tea.Cmd {
	row, ok := v.selected()
	if !ok {
		return nil
	}
	var owner domain.Owner
	switch row.kind {
	case rowBasic:
		owner = domain.BasicOwner(v.documentID)
	case rowItem:
		owner = domain.ItemOwner(row.item.ID)
	default:
		return nil
	}

	v.focusID = row.key()
	if v.expanded == owner {
		v.expanded = domain.Owner{}
		v.fields = nil
		v.buildRows()
		v.focusID = ""
		return nil
	}
	v.expanded = owner
	v.fields = nil
	return v.load()
}

// toggleVisibility flips the selected row's visibility. A second press
// while the first is still being written is dropped.
func (v *editorView) toggleVisibility() tea.Cmd {
	row, ok := v.selected()
	if !ok || row.kind == rowBasic {
		return nil
	}
	guardKey := row.key()
	guard := v.state.Toggles
	if !guard.Begin(guardKey) {
		return nil
	}

	app := v.state.App
	var fn func(ctx context.Context) error
	switch row.kind {
	case rowSection:
		id, visible := row.section.ID, row.section.Visible
		fn = func(ctx context.Context) error { return app.Sections.SetVisible(ctx, id, !visible) }
	case rowItem:
		sectionID, id := row.section.ID, row.item.ID
		fn = func(ctx context.Context) error { return app.Items.ToggleVisible(ctx, sectionID, id) }
	case rowField:
		owner, id := row.owner, row.field.ID
		fn = func(ctx context.Context) error { return app.Fields.ToggleField(ctx, owner, id) }
	}
	return v.mutate(func(ctx context.Context) error {
		defer guard.End(guardKey)
		return fn(ctx)
	})
}

func (v *editorView) duplicateSelected() tea.Cmd {
	row, ok := v.selected()
	if !ok {
		return nil
	}
	app := v.state.App
	switch row.kind {
	case rowItem:
		sectionID, id := row.section.ID, row.item.ID
		return v.mutate(func(ctx context.Context) error {
			_, err := app.Items.DuplicateItem(ctx, sectionID, id)
			return err
		})
	case rowField:
		owner, id := row.owner, row.field.ID
		return v.mutate(func(ctx context.Context) error {
			_, err := app.Fields.DuplicateField(ctx, owner, id)
			return err
		})
	}
	return outputCmd(formatter.StyleYellow.Render("Only items and fields can be duplicated."))
}

func (v *editorView) deleteSelected() tea.Cmd {
	row, ok := v.selected()
	if !ok {
		return nil
	}
	app := v.state.App
	switch row.kind {
	case rowSection:
		sec := *row.section
		prompt := fmt.Sprintf("Delete section %q and its %d items?", sec.DisplayTitle(), v.itemCount(sec.ID))
		return execConfirmDelete(v.state, prompt, sec.DisplayTitle(), func(ctx context.Context) error {
			return app.Sections.Remove(ctx, sec.ID)
		})
	case rowItem:
		sectionID, it := row.section.ID, *row.item
		return execConfirmDelete(v.state, fmt.Sprintf("Delete %q?", itemLabel(it)), itemLabel(it), func(ctx context.Context) error {
			return app.Items.RemoveItem(ctx, sectionID, it.ID)
		})
	case rowField:
		owner, f := row.owner, *row.field
		return execConfirmDelete(v.state, fmt.Sprintf("Delete field %q?", fieldLabel(f)), fieldLabel(f), func(ctx context.Context) error {
			return app.Fields.RemoveField(ctx, owner, f.ID)
		})
	}
	return nil
}

func (v *editorView) itemCount(sectionID string) int {
	for _, sc := range v.outline {
		if sc.Section.ID == sectionID {
			return len(sc.Items)
		}
	}
	return 0
}

// addToSelected adds a field when the selection is inside an expanded
// field list, otherwise an item to the selected section.
func (v *editorView) addToSelected() tea.Cmd {
	row, ok := v.selected()
	if !ok {
		return nil
	}
	switch {
	case row.kind == rowField:
		return v.addField(row.owner)
	case row.kind == rowBasic:
		return v.addField(domain.BasicOwner(v.documentID))
	case row.kind == rowItem && v.expanded == domain.ItemOwner(row.item.ID):
		return v.addField(v.expanded)
	case row.section != nil:
		return v.addItem(*row.section)
	}
	return nil
}

func (v *editorView) addField(owner domain.Owner) tea.Cmd {
	app := v.state.App
	vals := fieldFormFrom(domain.HeaderField{})
	if v.expanded != owner {
		v.expanded = owner
		v.fields = nil
	}
	return startWizardCmd(v.state, "New Field", wizardField(&vals), wizardAction(func(ctx context.Context) (string, error) {
		f, err := app.Fields.AddField(ctx, owner, vals.field())
		if err != nil {
			return "", err
		}
		return "Added field " + formatter.Bold(fieldLabel(*f)), nil
	}))
}

func (v *editorView) addItem(sec domain.Section) tea.Cmd {
	app := v.state.App
	if sec.Kind == domain.SectionEducation {
		var (
			seed        domain.EducationSeed
			description string
		)
		return startWizardCmd(v.state, "New Education Entry", wizardEducation(&seed, &description), wizardAction(func(ctx context.Context) (string, error) {
			it, err := app.Items.AddEducation(ctx, sec.ID, seed, description)
			if err != nil {
				return "", err
			}
			return "Added " + formatter.Bold(itemLabel(*it)), nil
		}))
	}

	var vals itemFormValues
	return startWizardCmd(v.state, "New Item", wizardItem(&vals), wizardAction(func(ctx context.Context) (string, error) {
		it, err := app.Items.InsertItem(ctx, sec.ID, domain.Item{
			Title:       vals.Title,
			Subtitle:    vals.Subtitle,
			DateRange:   vals.DateRange,
			Description: vals.Description,
			Visible:     true,
		})
		if err != nil {
			return "", err
		}
		return "Added " + formatter.Bold(itemLabel(*it)), nil
	}))
}

func (v *editorView) addSection() tea.Cmd {
	app, docID := v.state.App, v.documentID
	var vals sectionFormValues
	return startWizardCmd(v.state, "New Section", wizardSection(&vals), wizardAction(func(ctx context.Context) (string, error) {
		sec, err := app.Sections.Create(ctx, docID, vals.Kind, vals.Title)
		if err != nil {
			return "", err
		}
		return "Added section " + formatter.Bold(sec.DisplayTitle()), nil
	}))
}

func (v *editorView) editSelected() tea.Cmd {
	row, ok := v.selected()
	if !ok {
		return nil
	}
	app := v.state.App

	switch row.kind {
	case rowBasic:
		if v.doc == nil {
			return nil
		}
		docID := v.documentID
		vals := basicFormFrom(v.doc.Basic)
		return startWizardCmd(v.state, "Personal Info", wizardBasic(&vals), wizardAction(func(ctx context.Context) (string, error) {
			if _, err := app.Documents.UpdateBasic(ctx, docID, vals.patch()); err != nil {
				return "", err
			}
			return "Updated personal info", nil
		}))

	case rowSection:
		id := row.section.ID
		title := row.section.Title
		return startWizardCmd(v.state, "Rename Section", wizardInputText("Section title", row.section.DisplayTitle(), false, &title),
			wizardAction(func(ctx context.Context) (string, error) {
				if err := app.Sections.Rename(ctx, id, title); err != nil {
					return "", err
				}
				return "Renamed section", nil
			}))

	case rowItem:
		it := *row.item
		vals := itemFormFrom(it)
		return startWizardCmd(v.state, "Edit Item", wizardItem(&vals), wizardAction(func(ctx context.Context) (string, error) {
			if err := app.Items.UpdateItem(ctx, it.SectionID, it.ID, vals.patch(it)); err != nil {
				return "", err
			}
			return "Updated " + formatter.Bold(itemLabel(it)), nil
		}))

	case rowField:
		owner, f := row.owner, *row.field
		vals := fieldFormFrom(f)
		return startWizardCmd(v.state, "Edit Field", wizardField(&vals), wizardAction(func(ctx context.Context) (string, error) {
			if err := app.Fields.UpdateField(ctx, owner, f.ID, vals.patch()); err != nil {
				return "", err
			}
			return "Updated field " + formatter.Bold(fieldLabel(f)), nil
		}))
	}
	return nil
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *editorView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading document...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err) + "\n  " + formatter.Dim("r: retry")
	}

	h := v.state.ContentHeight()
	lines := make([]string, 0, h)
	end := min(v.offset+h, len(v.rows))
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderRow(v.rows[i], i == v.cursor))
	}

	left := lipgloss.NewStyle().Width(v.outlineWidth).MaxWidth(v.outlineWidth).Height(h).Render(strings.Join(lines, "\n"))
	sep := formatter.Dim(strings.TrimSuffix(strings.Repeat(" │\n", h), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, " ", v.preview.View())
}

func (v *editorView) renderRow(r outlineRow, selected bool) string {
	cursor := "  "
	if selected {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	var text string
	hidden := false
	switch r.kind {
	case rowBasic:
		marker := "▸"
		if v.expanded.Kind == domain.OwnerBasic {
			marker = "▾"
		}
		name := ""
		if v.doc != nil && v.doc.Basic.Name != "" {
			name = " " + formatter.Dim(v.doc.Basic.Name)
		}
		text = marker + " " + formatter.Bold("Personal info") + name

	case rowSection:
		hidden = !r.section.Visible
		title := strings.ToUpper(r.section.DisplayTitle())
		if r.section.ID == v.state.ActiveSectionID {
			title = formatter.StyleHeader.Render(title)
		} else {
			title = formatter.Bold(title)
		}
		text = title + " " + formatter.KindBadge(r.section.Kind)

	case rowItem:
		hidden = !r.item.Visible
		marker := "▸"
		if v.expanded == domain.ItemOwner(r.item.ID) {
			marker = "▾"
		}
		text = "  " + marker + " " + itemLabel(*r.item)

	case rowField:
		hidden = !r.field.IsVisible()
		indent := "    "
		if r.item != nil {
			indent = "      "
		}
		text = indent + "· " + fieldSummary(*r.field)
	}

	if hidden {
		text = formatter.Dim(text + " (hidden)")
	} else if selected {
		text = formatter.StyleBold.Render(text)
	}
	return cursor + text
}

// fieldSummary shows a field the way the outline lists it: label and
// display value.
func fieldSummary(f domain.HeaderField) string {
	value := fields.DisplayValue(f)
	if value == "" {
		value = formatter.Dim("(empty)")
	}
	if f.Label != "" {
		return formatter.Dim(f.Label+":") + " " + value
	}
	return value
}
