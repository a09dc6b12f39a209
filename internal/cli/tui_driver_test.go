package cli

import (
	"testing"

	"github.com/alexanderramin/vitae/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals the
// generic driver can't see: the view stack, shared state and command bar.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app, opening documentID in the
// editor when it is set, and drains Init against the in-memory store.
func NewTestDriver(t *testing.T, app *App, documentID string) *TestDriver {
	t.Helper()

	m := newAppModel(app, documentID)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Command focuses the command bar, types input and presses Enter. The bar
// is blurred afterwards so later keys reach the active view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

// appModel returns a copy of the current model. Pointer methods on the
// copy read the same view stack and state.
func (d *TestDriver) appModel() *appModel {
	m := d.Model.(appModel)
	return &m
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ActiveViewTitle() string {
	v := d.appModel().activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Editor returns the editor view on the stack, or nil.
func (d *TestDriver) Editor() *editorView {
	for _, v := range d.appModel().viewStack {
		if ev, ok := v.(*editorView); ok {
			return ev
		}
	}
	return nil
}

// SelectRow moves the editor cursor onto the row with the given key.
func (d *TestDriver) SelectRow(key string) {
	d.T.Helper()
	ev := d.Editor()
	if ev == nil {
		d.T.Fatal("no editor on the stack")
	}
	for i := 0; ev.cursor > 0 && i < len(ev.rows); i++ {
		d.PressKey('k')
	}
	for range len(ev.rows) {
		if row, ok := ev.selected(); ok && row.key() == key {
			return
		}
		d.PressKey('j')
	}
	d.T.Fatalf("row %q not found in the outline", key)
}

// IsQuitting reports whether the model or the driver saw a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

func (d *TestDriver) CmdBarFocused() bool {
	return d.appModel().cmdBar.Focused()
}

// LastOutput returns the last command output shown in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}
