package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *App) *cobra.Command {
	var docRef string

	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage the sections of a document",
	}
	cmd.PersistentFlags().StringVar(&docRef, "doc", "", "Document to resolve section references in (default: the 'doc use' document)")

	cmd.AddCommand(
		newSectionAddCmd(app, &docRef),
		newSectionListCmd(app, &docRef),
		newSectionRenameCmd(app, &docRef),
		newSectionRemoveCmd(app, &docRef),
		newSectionReorderCmd(app, &docRef),
		newSectionMoveCmd(app, &docRef),
		newSectionToggleCmd(app, &docRef),
		newSectionFocusCmd(app, &docRef),
	)

	return cmd
}

func newSectionAddCmd(app *App, docRef *string) *cobra.Command {
	var title string
	kind := domain.SectionCustom

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, []string{*docRef})
			if err != nil {
				return err
			}
			sec, err := app.Sections.Create(ctx, doc.ID, kind, title)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s section %s [%s]\n", sec.Kind, sec.DisplayTitle(), shortID(sec.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Section heading")
	cmd.Flags().Var(sectionKindFlag(&kind), "kind", "Section kind: custom or education")

	return cmd
}

func newSectionListCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sections in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, []string{*docRef})
			if err != nil {
				return err
			}
			sections, err := app.Sections.List(ctx, doc.ID)
			if err != nil {
				return err
			}
			if len(sections) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sections.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSectionList(sections))
			return nil
		},
	}
}

func newSectionRenameCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rename SECTION TITLE",
		Short: "Change a section heading",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Sections.Rename(ctx, sec.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed section to %s\n", args[1])
			return nil
		},
	}
}

func newSectionRemoveCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm SECTION",
		Aliases: []string{"remove"},
		Short:   "Delete a section and its items",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Sections.Remove(ctx, sec.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted section %s\n", sec.DisplayTitle())
			return nil
		},
	}
}

func newSectionReorderCmd(app *App, docRef *string) *cobra.Command {
	var order []string

	cmd := &cobra.Command{
		Use:   "reorder --order S1,S2,...",
		Short: "Set the section order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, []string{*docRef})
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(order))
			for _, ref := range order {
				sec, err := resolveSection(ctx, app, doc.ID, ref)
				if err != nil {
					return err
				}
				ids = append(ids, sec.ID)
			}
			if err := app.Sections.Reorder(ctx, doc.ID, ids); err != nil {
				return err
			}
			sections, err := app.Sections.List(ctx, doc.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSectionList(sections))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&order, "order", nil, "Section ids, prefixes or titles in the new order")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}

func newSectionMoveCmd(app *App, docRef *string) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "move SECTION",
		Short: "Move a section up (negative) or down (positive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Sections.Move(ctx, sec.ID, by); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved section %s by %d\n", sec.DisplayTitle(), by)
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 1, "Positions to move; negative moves up")

	return cmd
}

func newSectionToggleCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle SECTION",
		Short: "Show or hide a section in the preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Sections.SetVisible(ctx, sec.ID, !sec.Visible); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Section %s is now %s\n", sec.DisplayTitle(), visibilityWord(!sec.Visible))
			return nil
		},
	}
}

func newSectionFocusCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "focus SECTION",
		Short: "Mark the section the editor and preview highlight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			app.Documents.SetActiveSection(ctx, sec.DocumentID, sec.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Focused %s\n", sec.DisplayTitle())
			return nil
		},
	}
}

func visibilityWord(visible bool) string {
	if visible {
		return "shown"
	}
	return "hidden"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
