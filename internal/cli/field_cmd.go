package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/spf13/cobra"
)

// ownerFlags selects the header-field list a field command works on.
type ownerFlags struct {
	doc   string
	item  string
	basic bool
}

var errOwnerRequired = errors.New("pass --item ITEM or --basic")

func (o *ownerFlags) resolve(ctx context.Context, app *App) (domain.Owner, error) {
	switch {
	case o.item != "" && o.basic:
		return domain.Owner{}, errOwnerRequired
	case o.item != "":
		it, err := resolveItem(ctx, app, o.doc, o.item)
		if err != nil {
			return domain.Owner{}, err
		}
		return domain.ItemOwner(it.ID), nil
	case o.basic:
		doc, err := resolveDocument(ctx, app, []string{o.doc})
		if err != nil {
			return domain.Owner{}, err
		}
		return domain.BasicOwner(doc.ID), nil
	default:
		return domain.Owner{}, errOwnerRequired
	}
}

func newFieldCmd(app *App) *cobra.Command {
	owner := &ownerFlags{}

	cmd := &cobra.Command{
		Use:   "field",
		Short: "Edit the header fields of an item or of the personal-info block",
		Long: `Edit header fields.

Every subcommand works on one list: an item's header row (--item ITEM) or
the personal-info block of a document (--basic, with --doc or the default
document). A list that was never edited shows the fields derived from the
item; the first change stores them along with the edit.`,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&owner.doc, "doc", "", "Document to resolve references in")
	pf.StringVar(&owner.item, "item", "", "Item whose header row to edit")
	pf.BoolVar(&owner.basic, "basic", false, "Edit the personal-info block")

	cmd.AddCommand(
		newFieldListCmd(app, owner),
		newFieldAddCmd(app, owner),
		newFieldUpdateCmd(app, owner),
		newFieldRemoveCmd(app, owner),
		newFieldDuplicateCmd(app, owner),
		newFieldReorderCmd(app, owner),
		newFieldMoveCmd(app, owner),
		newFieldToggleCmd(app, owner),
	)

	return cmd
}

func printFieldList(ctx context.Context, cmd *cobra.Command, app *App, owner domain.Owner) error {
	list, err := app.Fields.Fields(ctx, owner)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No fields.")
		return nil
	}
	block, g, err := ownerStyleContext(ctx, app, owner)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFieldList(list, block, g))
	return nil
}

func newFieldListCmd(app *App, owner *ownerFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List effective fields with their resolved style",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			return printFieldList(ctx, cmd, app, o)
		},
	}
}

// fieldStyleFlags are the style overrides shared by add and update.
type fieldStyleFlags struct {
	label, value, icon  string
	kind                domain.FieldKind
	align               domain.Align
	dateFormat          domain.DateFormat
	bold, showIcon      bool
	singleLine, visible bool
	fontSize            int
}

func (s *fieldStyleFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.label, "label", "", "Label shown before the value")
	f.StringVar(&s.value, "value", "", "Field value")
	f.StringVar(&s.icon, "icon", "", "Icon name")
	f.Var(fieldKindFlag(&s.kind), "kind", "Field kind: text or date")
	f.Var(alignFlag(&s.align), "align", "Alignment: left, center or right")
	f.Var(dateFormatFlag(&s.dateFormat), "date-format", "Date format: YM or YMD")
	f.BoolVar(&s.bold, "bold", false, "Render in bold")
	f.BoolVar(&s.showIcon, "show-icon", false, "Show the icon")
	f.BoolVar(&s.singleLine, "single-line", false, "Put label and value on one line")
	f.BoolVar(&s.visible, "visible", true, "Show the field")
	f.IntVar(&s.fontSize, "font-size", 0, "Font size override")
}

func (s *fieldStyleFlags) patch(cmd *cobra.Command) domain.HeaderFieldPatch {
	return domain.HeaderFieldPatch{
		Label:      changed(cmd, "label", s.label),
		Value:      changed(cmd, "value", s.value),
		Icon:       changed(cmd, "icon", s.icon),
		Kind:       changed(cmd, "kind", s.kind),
		Align:      changed(cmd, "align", s.align),
		DateFormat: changed(cmd, "date-format", s.dateFormat),
		Bold:       changed(cmd, "bold", s.bold),
		ShowIcon:   changed(cmd, "show-icon", s.showIcon),
		SingleLine: changed(cmd, "single-line", s.singleLine),
		Visible:    changed(cmd, "visible", s.visible),
		FontSize:   changed(cmd, "font-size", s.fontSize),
	}
}

func newFieldAddCmd(app *App, owner *ownerFlags) *cobra.Command {
	style := &fieldStyleFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a field",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			field := style.patch(cmd).Apply(domain.HeaderField{Kind: domain.FieldText})
			added, err := app.Fields.AddField(ctx, o, field)
			if err != nil {
				return err
			}
			if added == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added field %s\n", fieldLabel(*added))
			return nil
		},
	}
	style.register(cmd)

	return cmd
}

func newFieldUpdateCmd(app *App, owner *ownerFlags) *cobra.Command {
	style := &fieldStyleFlags{}
	var clearFontSize, clearBold, clearShowIcon, clearSingleLine bool

	cmd := &cobra.Command{
		Use:   "update FIELD",
		Short: "Change a field; flags not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			f, err := resolveField(ctx, app, o, args[0])
			if err != nil {
				return err
			}
			patch := style.patch(cmd)
			patch.ClearFontSize = clearFontSize
			patch.ClearBold = clearBold
			patch.ClearShowIcon = clearShowIcon
			patch.ClearSingleLine = clearSingleLine
			if err := app.Fields.UpdateField(ctx, o, f.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated field %s\n", fieldLabel(f))
			return nil
		},
	}
	style.register(cmd)
	cmd.Flags().BoolVar(&clearFontSize, "clear-font-size", false, "Inherit the font size again")
	cmd.Flags().BoolVar(&clearBold, "clear-bold", false, "Drop the bold override")
	cmd.Flags().BoolVar(&clearShowIcon, "clear-show-icon", false, "Inherit icon visibility again")
	cmd.Flags().BoolVar(&clearSingleLine, "clear-single-line", false, "Inherit the single-line setting again")
	cmd.MarkFlagsMutuallyExclusive("font-size", "clear-font-size")
	cmd.MarkFlagsMutuallyExclusive("bold", "clear-bold")
	cmd.MarkFlagsMutuallyExclusive("show-icon", "clear-show-icon")
	cmd.MarkFlagsMutuallyExclusive("single-line", "clear-single-line")

	return cmd
}

func newFieldRemoveCmd(app *App, owner *ownerFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm FIELD",
		Aliases: []string{"remove"},
		Short:   "Delete a field",
		Long: `Delete a field from an item or the personal-info block.

Removing the last field leaves the list empty, and an empty list shows the
default fields derived from the item's title, subtitle and dates again.
Hide fields with "field toggle" to keep them out of the preview instead.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			f, err := resolveField(ctx, app, o, args[0])
			if err != nil {
				return err
			}
			if err := app.Fields.RemoveField(ctx, o, f.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted field %s\n", fieldLabel(f))
			return nil
		},
	}
}

func newFieldDuplicateCmd(app *App, owner *ownerFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "dup FIELD",
		Aliases: []string{"duplicate"},
		Short:   "Insert a copy right after the field",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			f, err := resolveField(ctx, app, o, args[0])
			if err != nil {
				return err
			}
			dup, err := app.Fields.DuplicateField(ctx, o, f.ID)
			if err != nil {
				return err
			}
			if dup == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing duplicated.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %s as [%s]\n", fieldLabel(f), shortID(dup.ID))
			return nil
		},
	}
}

func newFieldReorderCmd(app *App, owner *ownerFlags) *cobra.Command {
	var order []string

	cmd := &cobra.Command{
		Use:   "reorder --order F1,F2,...",
		Short: "Set the field order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(order))
			for _, ref := range order {
				f, err := resolveField(ctx, app, o, ref)
				if err != nil {
					return err
				}
				ids = append(ids, f.ID)
			}
			if err := app.Fields.ReorderFields(ctx, o, ids); err != nil {
				return err
			}
			return printFieldList(ctx, cmd, app, o)
		},
	}

	cmd.Flags().StringSliceVar(&order, "order", nil, "Field ids or labels in the new order")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}

func newFieldMoveCmd(app *App, owner *ownerFlags) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "move FIELD",
		Short: "Move a field left (negative) or right (positive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			f, err := resolveField(ctx, app, o, args[0])
			if err != nil {
				return err
			}
			if err := app.Fields.MoveField(ctx, o, f.ID, by); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s by %d\n", fieldLabel(f), by)
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 1, "Positions to move; negative moves left")

	return cmd
}

func newFieldToggleCmd(app *App, owner *ownerFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle FIELD",
		Short: "Show or hide a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := owner.resolve(ctx, app)
			if err != nil {
				return err
			}
			f, err := resolveField(ctx, app, o, args[0])
			if err != nil {
				return err
			}
			if err := app.Fields.ToggleField(ctx, o, f.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Field %s is now %s\n", fieldLabel(f), visibilityWord(!f.IsVisible()))
			return nil
		},
	}
}

func fieldLabel(f domain.HeaderField) string {
	switch {
	case f.Label != "":
		return f.Label
	case f.Value != "":
		return formatter.Ellipsize(f.Value, 24)
	default:
		return f.ID
	}
}
