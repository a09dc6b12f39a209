package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	var docRef string

	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of a section",
	}
	cmd.PersistentFlags().StringVar(&docRef, "doc", "", "Document to resolve section and item references in")

	cmd.AddCommand(
		newItemAddCmd(app, &docRef),
		newItemListCmd(app, &docRef),
		newItemUpdateCmd(app, &docRef),
		newItemRemoveCmd(app, &docRef),
		newItemDuplicateCmd(app, &docRef),
		newItemReorderCmd(app, &docRef),
		newItemMoveCmd(app, &docRef),
		newItemToggleCmd(app, &docRef),
	)

	return cmd
}

func newItemAddCmd(app *App, docRef *string) *cobra.Command {
	var (
		title, subtitle, dateRange, description string
		edu                                     domain.EducationSeed
	)

	cmd := &cobra.Command{
		Use:   "add SECTION",
		Short: "Append an item; education sections take --school and friends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}

			var it *domain.Item
			if edu.School != "" {
				it, err = app.Items.AddEducation(ctx, sec.ID, edu, description)
			} else {
				it, err = app.Items.InsertItem(ctx, sec.ID, domain.Item{
					Title:       title,
					Subtitle:    subtitle,
					DateRange:   dateRange,
					Description: description,
					Visible:     true,
				})
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %s [%s] to %s\n", itemLabel(*it), shortID(it.ID), sec.DisplayTitle())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "Title seed")
	f.StringVar(&subtitle, "subtitle", "", "Subtitle seed")
	f.StringVar(&dateRange, "dates", "", "Date range seed, e.g. '2020 - 2022'")
	f.StringVar(&description, "description", "", "Description (HTML is reduced to text in the preview)")
	f.StringVar(&edu.School, "school", "", "School (education entries)")
	f.StringVar(&edu.Major, "major", "", "Major")
	f.StringVar(&edu.Degree, "degree", "", "Degree")
	f.StringVar(&edu.GPA, "gpa", "", "GPA")
	f.StringVar(&edu.StartDate, "start", "", "Start date")
	f.StringVar(&edu.EndDate, "end", "", "End date")
	cmd.MarkFlagsMutuallyExclusive("title", "school")

	return cmd
}

func newItemListCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:     "list SECTION",
		Aliases: []string{"ls"},
		Short:   "List a section's items in display order",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			items, err := app.Items.ListItems(ctx, sec.ID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemList(items))
			return nil
		},
	}
}

func newItemUpdateCmd(app *App, docRef *string) *cobra.Command {
	var title, subtitle, dateRange, description string

	cmd := &cobra.Command{
		Use:   "update ITEM",
		Short: "Change an item's seeds or description; flags not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := resolveItem(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			patch := domain.ItemPatch{
				Title:       changed(cmd, "title", title),
				Subtitle:    changed(cmd, "subtitle", subtitle),
				DateRange:   changed(cmd, "dates", dateRange),
				Description: changed(cmd, "description", description),
			}
			if err := app.Items.UpdateItem(ctx, it.SectionID, it.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", shortID(it.ID))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "Title seed")
	f.StringVar(&subtitle, "subtitle", "", "Subtitle seed")
	f.StringVar(&dateRange, "dates", "", "Date range seed")
	f.StringVar(&description, "description", "", "Description")

	return cmd
}

func newItemRemoveCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ITEM",
		Aliases: []string{"remove"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := resolveItem(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.RemoveItem(ctx, it.SectionID, it.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", itemLabel(*it))
			return nil
		},
	}
}

func newItemDuplicateCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:     "dup ITEM",
		Aliases: []string{"duplicate"},
		Short:   "Insert a copy right after the item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := resolveItem(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			dup, err := app.Items.DuplicateItem(ctx, it.SectionID, it.ID)
			if err != nil {
				return err
			}
			if dup == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing duplicated.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %s as [%s]\n", itemLabel(*it), shortID(dup.ID))
			return nil
		},
	}
}

func newItemReorderCmd(app *App, docRef *string) *cobra.Command {
	var order []string

	cmd := &cobra.Command{
		Use:   "reorder SECTION --order I1,I2,...",
		Short: "Set the item order of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sec, err := resolveSection(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			items, err := app.Items.ListItems(ctx, sec.ID)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(order))
			for _, ref := range order {
				it, err := matchRef("item", ref, items,
					func(it domain.Item) string { return it.ID },
					func(it domain.Item) string { return it.Title })
				if err != nil {
					return err
				}
				ids = append(ids, it.ID)
			}
			if err := app.Items.ReorderItems(ctx, sec.ID, ids); err != nil {
				return err
			}
			items, err = app.Items.ListItems(ctx, sec.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemList(items))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&order, "order", nil, "Item ids, prefixes or titles in the new order")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}

func newItemMoveCmd(app *App, docRef *string) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "move ITEM",
		Short: "Move an item up (negative) or down (positive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := resolveItem(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.MoveItem(ctx, it.SectionID, it.ID, by); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s by %d\n", itemLabel(*it), by)
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 1, "Positions to move; negative moves up")

	return cmd
}

func newItemToggleCmd(app *App, docRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ITEM",
		Short: "Show or hide an item in the preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := resolveItem(ctx, app, *docRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.ToggleVisible(ctx, it.SectionID, it.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item %s is now %s\n", itemLabel(*it), visibilityWord(!it.Visible))
			return nil
		},
	}
}

func itemLabel(it domain.Item) string {
	if it.Title != "" {
		return it.Title
	}
	return "(untitled)"
}
