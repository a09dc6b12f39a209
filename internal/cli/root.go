package cli

import (
	"github.com/alexanderramin/vitae/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Documents service.DocumentService
	Sections  service.SectionService
	Items     service.ItemService
	Fields    service.FieldService
	Preview   service.PreviewService
	Import    service.ImportService
	Export    service.ExportService

	// DefaultDocument is used when a command's document argument is
	// omitted.
	DefaultDocument string
	// SaveDefaultDocument persists the choice made by `doc use`.
	SaveDefaultDocument func(id string) error
	// WatchPath is the database file `preview --watch` observes.
	WatchPath string
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// HistoryPath is the editor's command-bar history file. Empty keeps
	// history in memory only.
	HistoryPath string
}

// NewRootCmd creates the top-level "vitae" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "vitae",
		Short:         "Resume editor with a live terminal preview",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runEditor(app, app.DefaultDocument)
			}
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug events")

	root.AddCommand(
		newDocCmd(app),
		newSettingsCmd(app),
		newBasicCmd(app),
		newSectionCmd(app),
		newItemCmd(app),
		newFieldCmd(app),
		newPreviewCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newEditCmd(app),
	)

	return root
}
