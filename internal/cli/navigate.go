package cli

import (
	"github.com/alexanderramin/vitae/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages. The appModel handles these in its Update method.

type pushViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// cmdOutputMsg carries command output shown over the current view until
// the next key press. refresh reloads the views after a mutation.
type cmdOutputMsg struct {
	output  string
	refresh bool
}

// popToRootMsg returns to the document list.
type popToRootMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel pops the wizard view, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

type quitMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func refreshViews() tea.Msg { return refreshViewMsg{} }

// outputCmd returns a tea.Cmd that sends a cmdOutputMsg.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

// shellError formats err for display in the content area.
func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}

// successLine prefixes msg with a green check mark.
func successLine(msg string) string {
	return formatter.StyleGreen.Render("✔") + " " + msg
}
