package cli

import (
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	ActiveDocumentID   string
	ActiveDocumentName string
	ActiveSectionID    string

	// Toggles refuses a visibility toggle while one for the same row is
	// still being written.
	Toggles *fields.ToggleGuard

	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	return &SharedState{App: app, Toggles: fields.NewToggleGuard()}
}

// SetActiveDocument records doc as the document the editor and the command
// bar work on.
func (s *SharedState) SetActiveDocument(doc *domain.Document) {
	s.ActiveDocumentID = doc.ID
	s.ActiveDocumentName = doc.Name
	s.ActiveSectionID = doc.ActiveSectionID
}

// ClearDocument forgets the active document.
func (s *SharedState) ClearDocument() {
	s.ActiveDocumentID = ""
	s.ActiveDocumentName = ""
	s.ActiveSectionID = ""
}

// ActiveShortID is the display id of the active document.
func (s *SharedState) ActiveShortID() string {
	return shortID(s.ActiveDocumentID)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
