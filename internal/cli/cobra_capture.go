package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// captureCobraOutput runs args through a fresh command tree and returns
// what it printed. activeDocumentID, when set, stands in for the default
// document so DOC arguments can be left out inside the editor.
func captureCobraOutput(app *App, args []string, activeDocumentID string) string {
	scoped := *app
	scoped.IsInteractive = nil
	if activeDocumentID != "" {
		scoped.DefaultDocument = activeDocumentID
	}

	var buf strings.Builder
	root := NewRootCmd(&scoped)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString(shellError(err))
		if strings.Contains(err.Error(), "unknown command") && len(args) > 0 {
			if hint := suggestAlternatives(args[0]); hint != "" {
				buf.WriteString("\n" + hint)
			}
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

// suggestAlternatives lists top-level commands sharing a prefix with input.
func suggestAlternatives(input string) string {
	var matches []string
	for _, name := range allCommandNames() {
		if strings.HasPrefix(name, input) || strings.HasPrefix(input, name) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Dim("Did you mean:"))
	for _, name := range matches {
		fmt.Fprintf(&b, "\n  %s", formatter.StyleGreen.Render(name))
	}
	return b.String()
}

// commandTree is the command tree used for suggestions. It is never
// executed.
func commandTree() *cobra.Command {
	return NewRootCmd(&App{})
}

// allCommandNames returns the top-level commands plus the command-bar
// builtins, sorted.
func allCommandNames() []string {
	names := append([]string(nil), shellBuiltins...)
	for _, c := range commandTree().Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// subcommandNames maps each top-level command to its subcommand names.
func subcommandNames() map[string][]string {
	out := make(map[string][]string)
	for _, c := range commandTree().Commands() {
		for _, sub := range c.Commands() {
			if sub.IsAvailableCommand() {
				out[c.Name()] = append(out[c.Name()], sub.Name())
			}
		}
	}
	return out
}
