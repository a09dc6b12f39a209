package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// shellBuiltins are command-bar words handled without cobra.
var shellBuiltins = []string{"open", "docs", "help", "clear", "quit", "exit"}

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	historyFile historyFile
	history     []string
	historyIdx  int

	subcommands map[string][]string
}

func newCommandBar(state *SharedState, hist historyFile) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	lines := hist.Load()

	return commandBar{
		input:       ti,
		state:       state,
		historyFile: hist,
		history:     lines,
		historyIdx:  len(lines),
		subcommands: subcommandNames(),
	}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(c.promptPrefixPlain()) - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return c.promptPrefix() + formatter.Dim("press : to type a command")
	}
	return c.promptPrefix() + c.input.View()
}

func (c *commandBar) promptPrefix() string {
	if c.state.ActiveDocumentID == "" {
		return formatter.StylePurple.Render("vitae") + " " + formatter.Dim("❯") + " "
	}
	return formatter.StylePurple.Render("vitae") + " " +
		formatter.Dim("(") + formatter.StyleGreen.Render(c.state.ActiveShortID()) + formatter.Dim(")") +
		" " + formatter.Dim("❯") + " "
}

// promptPrefixPlain returns the plain-text prompt for width calculations.
func (c *commandBar) promptPrefixPlain() string {
	if c.state.ActiveDocumentID == "" {
		return "vitae > "
	}
	return "vitae (" + c.state.ActiveShortID() + ") > "
}

// ── dispatch ─────────────────────────────────────────────────────────────────

// executeCommand runs a command-bar line. Builtins navigate; everything
// else goes through the cobra tree scoped to the active document, and the
// views reload afterwards.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}

	switch strings.ToLower(parts[0]) {
	case "quit", "exit":
		return func() tea.Msg { return quitMsg{} }
	case "clear":
		return nil
	case "help":
		return outputCmd(captureCobraOutput(c.state.App, []string{"--help"}, ""))
	case "docs":
		c.Blur()
		return func() tea.Msg { return popToRootMsg{} }
	case "open", "edit":
		return c.openDocument(parts[1:])
	}

	if slices.Contains(parts, "--watch") {
		return outputCmd(formatter.StyleYellow.Render("--watch is not available inside the editor; the preview pane is already live."))
	}

	app, docID := c.state.App, c.state.ActiveDocumentID
	return func() tea.Msg {
		return cmdOutputMsg{output: captureCobraOutput(app, parts, docID), refresh: true}
	}
}

// openDocument opens the editor on the named document, or on the active
// one when no name is given.
func (c *commandBar) openDocument(args []string) tea.Cmd {
	ref := c.state.ActiveDocumentID
	if len(args) > 0 {
		ref = args[0]
	}
	if ref == "" {
		return outputCmd(formatter.StyleYellow.Render("Usage: open DOC"))
	}
	doc, err := c.state.App.Documents.Find(context.Background(), ref)
	if err != nil {
		return outputCmd(shellError(err))
	}
	c.state.SetActiveDocument(doc)
	c.Blur()
	return pushView(newEditorView(c.state))
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	if line == "" {
		return
	}
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
	c.historyFile.Append(line)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	if text == "" {
		c.input.SetSuggestions(nil)
		return
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) <= 1 && !trailingSpace {
		c.input.SetSuggestions(filterSuggestions(allCommandNames(), parts[0]))
		return
	}

	if len(parts) <= 2 && (!trailingSpace || len(parts) == 1) {
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		if subs, ok := c.subcommands[strings.ToLower(parts[0])]; ok {
			// textinput matches suggestions against the whole line.
			full := make([]string, 0, len(subs))
			for _, s := range filterSuggestions(subs, prefix) {
				full = append(full, parts[0]+" "+s)
			}
			c.input.SetSuggestions(full)
			return
		}
	}

	c.input.SetSuggestions(nil)
}

// filterSuggestions returns the candidates starting with prefix, ignoring
// case.
func filterSuggestions(candidates []string, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, s := range candidates {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			out = append(out, s)
		}
	}
	return out
}
