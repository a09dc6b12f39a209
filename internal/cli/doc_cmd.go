package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/spf13/cobra"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"document"},
		Short:   "Manage resume documents",
	}

	cmd.AddCommand(
		newDocAddCmd(app),
		newDocListCmd(app),
		newDocShowCmd(app),
		newDocRenameCmd(app),
		newDocRemoveCmd(app),
		newDocUseCmd(app),
	)

	return cmd
}

func newDocAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a document with an empty education section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Documents.Create(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created document %s [%s]\n", doc.Name, doc.DisplayID())
			return nil
		},
	}
}

func newDocListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := app.Documents.List(context.Background())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No documents found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDocumentList(docs, app.DefaultDocument))
			return nil
		},
	}
}

func newDocShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DOC]",
		Short: "Show personal info and the section outline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, args)
			if err != nil {
				return err
			}
			outline, err := loadOutline(ctx, app, doc.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDocument(doc, outline))
			return nil
		},
	}
}

func newDocRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename DOC NAME",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, args[:1])
			if err != nil {
				return err
			}
			if err := app.Documents.Rename(ctx, doc.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", doc.Name, strings.TrimSpace(args[1]))
			return nil
		},
	}
}

func newDocRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm DOC",
		Aliases: []string{"remove"},
		Short:   "Delete a document with its sections and items",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, args)
			if err != nil {
				return err
			}
			if err := app.Documents.Delete(ctx, doc.ID); err != nil {
				return err
			}
			if app.DefaultDocument == doc.ID && app.SaveDefaultDocument != nil {
				if err := app.SaveDefaultDocument(""); err != nil {
					return fmt.Errorf("clearing default document: %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted document %s\n", doc.Name)
			return nil
		},
	}
}

func newDocUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use DOC",
		Short: "Make DOC the default for commands that take a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.SaveDefaultDocument == nil {
				return fmt.Errorf("default document cannot be saved in this session")
			}
			doc, err := resolveDocument(context.Background(), app, args)
			if err != nil {
				return err
			}
			if err := app.SaveDefaultDocument(doc.ID); err != nil {
				return err
			}
			app.DefaultDocument = doc.ID
			fmt.Fprintf(cmd.OutOrStdout(), "Using %s [%s]\n", doc.Name, doc.DisplayID())
			return nil
		},
	}
}

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change page-wide settings",
	}
	cmd.AddCommand(newSettingsShowCmd(app), newSettingsSetCmd(app))
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DOC]",
		Short: "Show effective settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resolveDocument(context.Background(), app, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(doc.Settings))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		baseFont, subheader, sectionSpacing, paragraphSpacing int
		lineHeight                                            float64
		icons, singleLine, wrap, centerSubtitle               bool
	)

	cmd := &cobra.Command{
		Use:   "set [DOC]",
		Short: "Change settings; flags not given keep their value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, args)
			if err != nil {
				return err
			}
			patch := domain.GlobalSettings{
				BaseFontSize:     changed(cmd, "base-font", baseFont),
				SubheaderSize:    changed(cmd, "subheader-size", subheader),
				LineHeight:       changed(cmd, "line-height", lineHeight),
				SectionSpacing:   changed(cmd, "section-spacing", sectionSpacing),
				ParagraphSpacing: changed(cmd, "paragraph-spacing", paragraphSpacing),
				UseIconMode:      changed(cmd, "icons", icons),
				SingleLineFields: changed(cmd, "single-line", singleLine),
				WrapFields:       changed(cmd, "wrap", wrap),
				CenterSubtitle:   changed(cmd, "center-subtitle", centerSubtitle),
			}
			updated, err := app.Documents.UpdateSettings(ctx, doc.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(updated.Settings))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&baseFont, "base-font", 0, "Base font size of header fields")
	f.IntVar(&subheader, "subheader-size", 0, "Font size of item titles")
	f.Float64Var(&lineHeight, "line-height", 0, "Line height multiplier")
	f.IntVar(&sectionSpacing, "section-spacing", 0, "Space between sections")
	f.IntVar(&paragraphSpacing, "paragraph-spacing", 0, "Space between items")
	f.BoolVar(&icons, "icons", false, "Show field icons")
	f.BoolVar(&singleLine, "single-line", false, "Put labels and values on one line")
	f.BoolVar(&wrap, "wrap", false, "Wrap long field values instead of truncating")
	f.BoolVar(&centerSubtitle, "center-subtitle", false, "Center synthesized item subtitles")

	return cmd
}

func newBasicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basic",
		Short: "Edit the personal-info block",
	}
	cmd.AddCommand(newBasicSetCmd(app))
	return cmd
}

func newBasicSetCmd(app *App) *cobra.Command {
	var (
		name, headline, email, phone, location, website, birthDate string
		layout                                                     domain.Align
		showIcons, singleLine, clearFontSize                       bool
		fontSize                                                   int
	)

	cmd := &cobra.Command{
		Use:   "set [DOC]",
		Short: "Change personal info; flags not given keep their value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, args)
			if err != nil {
				return err
			}
			patch := domain.BasicPatch{
				Name:          changed(cmd, "name", name),
				Headline:      changed(cmd, "headline", headline),
				Email:         changed(cmd, "email", email),
				Phone:         changed(cmd, "phone", phone),
				Location:      changed(cmd, "location", location),
				Website:       changed(cmd, "website", website),
				BirthDate:     changed(cmd, "birth-date", birthDate),
				Layout:        changed(cmd, "layout", layout),
				ShowIcons:     changed(cmd, "show-icons", showIcons),
				FontSize:      changed(cmd, "font-size", fontSize),
				SingleLine:    changed(cmd, "single-line", singleLine),
				ClearFontSize: clearFontSize,
			}
			updated, err := app.Documents.UpdateBasic(ctx, doc.ID, patch)
			if err != nil {
				return err
			}
			outline, err := loadOutline(ctx, app, updated.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDocument(updated, outline))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Full name")
	f.StringVar(&headline, "headline", "", "Headline under the name")
	f.StringVar(&email, "email", "", "Email address")
	f.StringVar(&phone, "phone", "", "Phone number")
	f.StringVar(&location, "location", "", "Location")
	f.StringVar(&website, "website", "", "Website")
	f.StringVar(&birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	f.Var(alignFlag(&layout), "layout", "Heading alignment: left, center or right")
	f.BoolVar(&showIcons, "show-icons", false, "Show contact icons")
	f.IntVar(&fontSize, "font-size", 0, "Contact font size")
	f.BoolVar(&singleLine, "single-line", false, "Put contact labels and values on one line")
	f.BoolVar(&clearFontSize, "clear-font-size", false, "Fall back to the page font size")

	return cmd
}
