package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// wizardCompleteOutput returns a wizardCompleteMsg that displays a message string.
func wizardCompleteOutput(msg string) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(msg)}
}

// wizardAction runs fn once the form is submitted and reports its result.
func wizardAction(fn func(ctx context.Context) (string, error)) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			msg, err := fn(context.Background())
			if err != nil {
				return cmdOutputMsg{output: shellError(err)}
			}
			return cmdOutputMsg{output: successLine(msg), refresh: true}
		}
	}
}

// execConfirmDelete pushes a confirmation form and runs deleteFn if the
// user agrees.
func execConfirmDelete(state *SharedState, prompt, title string, deleteFn func(ctx context.Context) error) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(prompt, &confirmed)
	return startWizardCmd(state, "Confirm Delete", form, func() tea.Cmd {
		if !confirmed {
			return outputCmd(formatter.Dim("Cancelled."))
		}
		return func() tea.Msg {
			if err := deleteFn(context.Background()); err != nil {
				return cmdOutputMsg{output: shellError(err)}
			}
			return cmdOutputMsg{
				output:  successLine(fmt.Sprintf("Deleted: %s", formatter.Bold(title))),
				refresh: true,
			}
		}
	})
}
