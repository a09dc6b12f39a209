package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/importer"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const watchDebounce = 150 * time.Millisecond

func newPreviewCmd(app *App) *cobra.Command {
	var (
		asJSON bool
		width  int
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "preview [DOC]",
		Short: "Render the document as it would print",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, args)
			if err != nil {
				return err
			}
			render := func(w io.Writer) error {
				page, err := app.Preview.Render(ctx, doc.ID)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(page)
				}
				_, err = fmt.Fprintln(w, formatter.RenderPage(*page, width))
				return err
			}

			if err := render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if app.WatchPath == "" {
				return fmt.Errorf("--watch needs a file-backed database")
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			return watchFile(ctx, app.WatchPath, func() error {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(strings.Repeat("─", width)))
				return render(cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page model as JSON")
	cmd.Flags().IntVarP(&width, "width", "w", formatter.DefaultPreviewWidth, "Page width in columns")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-render whenever the database changes")

	return cmd
}

// watchFile calls onChange after writes to path settle, until ctx is done.
// The parent directory is watched so journal and WAL files count too.
func watchFile(ctx context.Context, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	base := filepath.Base(path)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevantChange(ev, base) {
				timer = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", path).Msg("watch error")
		case <-timer:
			timer = nil
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}

// relevantChange reports whether ev is a create or write of the database
// file or one of its sidecar files. Hidden files and chmod-only events are
// ignored.
func relevantChange(ev fsnotify.Event, base string) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch name {
	case base, base + "-wal", base + "-journal":
		return true
	}
	return false
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a document from a YAML or JSON resume file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s [%s]: %d sections, %d items\n",
				res.Document.Name, res.Document.DisplayID(), res.SectionCount, res.ItemCount)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var (
		output string
		format importer.Format
	)

	cmd := &cobra.Command{
		Use:   "export [DOC]",
		Short: "Write a document as a resume file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := resolveDocument(ctx, app, args)
			if err != nil {
				return err
			}
			f, err := app.Export.Export(ctx, doc.ID)
			if err != nil {
				return err
			}

			if format == "" {
				format = importer.FormatYAML
				if output != "" {
					if detected, err := importer.FormatForPath(output); err == nil {
						format = detected
					}
				}
			}

			if output == "" {
				return importer.Encode(cmd.OutOrStdout(), f, format)
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := importer.Encode(out, f, format); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", doc.Name, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().Var(fileFormatFlag(&format), "format", "yaml or json (default: from the output extension)")

	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [DOC]",
		Short: "Open the interactive editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID := ""
			if len(args) > 0 || app.DefaultDocument != "" {
				doc, err := resolveDocument(context.Background(), app, args)
				if err != nil {
					return err
				}
				docID = doc.ID
			}
			return runEditor(app, docID)
		},
	}
}
