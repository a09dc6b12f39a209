package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type documentsLoadedMsg struct {
	docs []*domain.Document
	err  error
}

// documentListView is the home view: every document in creation order.
type documentListView struct {
	state   *SharedState
	docs    []*domain.Document
	cursor  int
	loading bool
	err     error

	filtering bool
	filter    string
}

func newDocumentListView(state *SharedState) *documentListView {
	return &documentListView{state: state, loading: true}
}

func (v *documentListView) ID() ViewID    { return ViewDocumentList }
func (v *documentListView) Title() string { return "Documents" }

// CapturesInput is true while the filter prompt is open.
func (v *documentListView) CapturesInput() bool { return v.filtering }

func (v *documentListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "use as default")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *documentListView) Init() tea.Cmd {
	return v.load()
}

func (v *documentListView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		docs, err := app.Documents.List(context.Background())
		return documentsLoadedMsg{docs: docs, err: err}
	}
}

func (v *documentListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case documentsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.docs = msg.docs
		}
		if n := len(v.visibleDocs()); v.cursor >= n {
			v.cursor = max(n-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *documentListView) selected() *domain.Document {
	visible := v.visibleDocs()
	if v.cursor < 0 || v.cursor >= len(visible) {
		return nil
	}
	return visible[v.cursor]
}

func (v *documentListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.visibleDocs())-1 {
			v.cursor++
		}
	case "enter":
		if doc := v.selected(); doc != nil {
			v.state.SetActiveDocument(doc)
			return v, pushView(newEditorView(v.state))
		}
	case "a":
		return v, v.addDocument()
	case "x":
		if doc := v.selected(); doc != nil {
			return v, v.deleteDocument(doc)
		}
	case "u":
		if doc := v.selected(); doc != nil {
			return v, v.useDocument(doc)
		}
	case "/":
		v.filtering = true
		v.filter = ""
	}
	return v, nil
}

func (v *documentListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
	case tea.KeyEnter:
		v.filtering = false
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.Runes) > 0 {
			v.filter += string(msg.Runes)
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *documentListView) visibleDocs() []*domain.Document {
	if v.filter == "" {
		return v.docs
	}
	lf := strings.ToLower(v.filter)
	var out []*domain.Document
	for _, d := range v.docs {
		if strings.Contains(strings.ToLower(d.Name), lf) || strings.HasPrefix(d.ID, lf) {
			out = append(out, d)
		}
	}
	return out
}

func (v *documentListView) addDocument() tea.Cmd {
	var name string
	form := wizardInputText("Document name", "My resume", true, &name)
	app := v.state.App
	return startWizardCmd(v.state, "New Document", form, wizardAction(func(ctx context.Context) (string, error) {
		doc, err := app.Documents.Create(ctx, name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created %s [%s]", formatter.Bold(doc.Name), doc.DisplayID()), nil
	}))
}

func (v *documentListView) deleteDocument(doc *domain.Document) tea.Cmd {
	state := v.state
	prompt := fmt.Sprintf("Delete %q with all its sections?", doc.Name)
	return execConfirmDelete(state, prompt, doc.Name, func(ctx context.Context) error {
		if err := state.App.Documents.Delete(ctx, doc.ID); err != nil {
			return err
		}
		if state.ActiveDocumentID == doc.ID {
			state.ClearDocument()
		}
		if state.App.DefaultDocument == doc.ID && state.App.SaveDefaultDocument != nil {
			return state.App.SaveDefaultDocument("")
		}
		return nil
	})
}

func (v *documentListView) useDocument(doc *domain.Document) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if app.SaveDefaultDocument == nil {
			return cmdOutputMsg{output: formatter.StyleYellow.Render("The default document cannot be saved in this session.")}
		}
		if err := app.SaveDefaultDocument(doc.ID); err != nil {
			return cmdOutputMsg{output: shellError(err)}
		}
		app.DefaultDocument = doc.ID
		return cmdOutputMsg{output: successLine("Using " + formatter.Bold(doc.Name)), refresh: true}
	}
}

func (v *documentListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading documents...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	visible := v.visibleDocs()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + "█\n\n")
	}

	if len(visible) == 0 {
		if len(v.docs) == 0 {
			b.WriteString("  " + formatter.Dim("No documents yet. Press a to create one.") + "\n")
		} else {
			b.WriteString("  " + formatter.Dim("No documents match.") + "\n")
		}
		return b.String()
	}

	for i, d := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		mark := " "
		if d.ID == v.state.App.DefaultDocument {
			mark = formatter.StyleYellow.Render("★")
		}
		fmt.Fprintf(&b, "%s%s %s  %s  %s\n",
			cursor,
			mark,
			formatter.StyleGreen.Render(d.DisplayID()),
			nameStyle.Render(padRight(d.Name, 28)),
			formatter.Dim(formatter.HumanTimestamp(d.UpdatedAt)),
		)
	}

	return b.String()
}

// padRight pads s to width cells, truncating with an ellipsis.
func padRight(s string, width int) string {
	s = formatter.Ellipsize(s, width)
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
