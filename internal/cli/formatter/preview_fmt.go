package formatter

import (
	"strings"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/preview"
	"github.com/charmbracelet/lipgloss"
)

// DefaultPreviewWidth is used when the terminal width is unknown.
const DefaultPreviewWidth = 80

// pixelsPerLine converts page spacing into blank terminal lines.
const pixelsPerLine = 12

var iconGlyphs = map[string]string{
	"User":     "●",
	"Tag":      "#",
	"Calendar": "▦",
	"Mail":     "✉",
	"Phone":    "☎",
	"MapPin":   "⌖",
	"Globe":    "⊕",
	"Cake":     "✱",
}

// IconGlyph maps an icon name to a terminal glyph.
func IconGlyph(name string) string {
	if g, ok := iconGlyphs[name]; ok {
		return g
	}
	return "•"
}

// RenderPage draws a rendered page for a terminal of the given width.
func RenderPage(page preview.Page, width int) string {
	if width <= 0 {
		width = DefaultPreviewWidth
	}

	var parts []string
	if heading := renderHeading(page.Heading, page.Spacing, width); heading != "" {
		parts = append(parts, heading)
	}
	for _, block := range page.Blocks {
		parts = append(parts, renderBlock(block, page.Spacing, width, block.SectionID == page.ActiveSectionID))
	}
	if len(parts) == 0 {
		return Dim("Nothing to preview yet.")
	}

	gap := strings.Repeat("\n", spacingLines(page.Spacing.SectionSpacing, 1)+1)
	return strings.Join(parts, gap)
}

func renderHeading(h preview.Heading, sp preview.Spacing, width int) string {
	pos := alignPosition(h.Layout)
	var lines []string
	if h.Name != "" {
		name := StyleHeader.Render(strings.ToUpper(h.Name))
		lines = append(lines, lipgloss.PlaceHorizontal(width, pos, name))
	}
	if h.Headline != "" {
		lines = append(lines, lipgloss.PlaceHorizontal(width, pos, StyleFg.Render(h.Headline)))
	}
	if len(h.Contacts) > 0 {
		lines = append(lines, renderContacts(h.Contacts, sp, width, pos))
	}
	return strings.Join(lines, "\n")
}

// renderContacts puts single-line contacts on shared rows and the rest on
// their own lines.
func renderContacts(units []preview.Unit, sp preview.Spacing, width int, pos lipgloss.Position) string {
	var rows []string
	var inline []string
	flush := func() {
		if len(inline) > 0 {
			row := strings.Join(inline, Dim("  ·  "))
			rows = append(rows, lipgloss.PlaceHorizontal(width, pos, fitText(row, width, true)))
			inline = nil
		}
	}
	for _, u := range units {
		text := renderUnit(u, sp, true)
		if u.Style.SingleLine {
			inline = append(inline, text)
			continue
		}
		flush()
		rows = append(rows, lipgloss.PlaceHorizontal(width, pos, fitText(text, width, u.Style.Wrap)))
	}
	flush()
	return strings.Join(rows, "\n")
}

func renderBlock(block preview.Block, sp preview.Spacing, width int, active bool) string {
	title := StyleHeader.Render(strings.ToUpper(block.Title))
	if active {
		title = StyleGreen.Render("▍") + title
	}
	rule := StyleDim.Render(strings.Repeat("─", width))

	lines := []string{title, rule}
	entryGap := strings.Repeat("\n", spacingLines(sp.ParagraphSpacing, 0))
	for i, entry := range block.Entries {
		if i > 0 && entryGap != "" {
			lines = append(lines, strings.TrimSuffix(entryGap, "\n"))
		}
		lines = append(lines, renderEntry(entry, sp, width))
	}
	return strings.Join(lines, "\n")
}

func renderEntry(entry preview.Entry, sp preview.Spacing, width int) string {
	var out []string
	if row := renderHeaderRow(entry.Header, sp, width); row != "" {
		out = append(out, row)
	}
	if entry.Description != "" {
		desc := lipgloss.NewStyle().Width(width).Foreground(ColorFg).Render(entry.Description)
		out = append(out, desc)
	}
	return strings.Join(out, "\n")
}

// renderHeaderRow lays the units out by alignment: left units at the
// start, centered units in the middle, right units at the end. When the
// three groups do not fit on one row each unit takes its own line.
func renderHeaderRow(units []preview.Unit, sp preview.Spacing, width int) string {
	var left, center, right []string
	wrap := false
	for _, u := range units {
		if u.Text == "" && u.Label == "" {
			continue
		}
		text := renderUnit(u, sp, u.Style.SingleLine)
		wrap = wrap || u.Style.Wrap
		switch u.Style.Align {
		case domain.AlignCenter:
			center = append(center, text)
		case domain.AlignRight:
			right = append(right, text)
		default:
			left = append(left, text)
		}
	}
	if len(left)+len(center)+len(right) == 0 {
		return ""
	}

	l := lipgloss.JoinHorizontal(lipgloss.Top, spaced(left)...)
	c := lipgloss.JoinHorizontal(lipgloss.Top, spaced(center)...)
	r := lipgloss.JoinHorizontal(lipgloss.Top, spaced(right)...)
	lw, cw, rw := lipgloss.Width(l), lipgloss.Width(c), lipgloss.Width(r)

	if lw+cw+rw+2*colGap <= width {
		centerStart := (width - cw) / 2
		gap1 := max(centerStart-lw, colGap)
		if cw == 0 {
			gap1 = 0
		}
		gap2 := max(width-lw-gap1-cw-rw, colGap)
		if rw == 0 {
			gap2 = 0
		}
		return lipgloss.JoinHorizontal(lipgloss.Top,
			l, strings.Repeat(" ", gap1), c, strings.Repeat(" ", gap2), r)
	}

	var stacked []string
	for _, group := range []struct {
		texts []string
		pos   lipgloss.Position
	}{{left, lipgloss.Left}, {center, lipgloss.Center}, {right, lipgloss.Right}} {
		for _, t := range group.texts {
			stacked = append(stacked, lipgloss.PlaceHorizontal(width, group.pos, fitText(t, width, wrap)))
		}
	}
	return strings.Join(stacked, "\n")
}

// renderUnit styles one field. Fields larger than the base size are
// emphasised and smaller ones dimmed.
func renderUnit(u preview.Unit, sp preview.Spacing, singleLine bool) string {
	style := lipgloss.NewStyle().Foreground(ColorFg)
	switch {
	case u.Style.FontSize > sp.BaseFontSize:
		style = style.Foreground(ColorYellow)
	case u.Style.FontSize < sp.BaseFontSize:
		style = style.Foreground(ColorDim)
	}
	if u.Style.Bold {
		style = style.Bold(true)
	}

	text := style.Render(u.Text)
	if u.Label != "" {
		label := StyleDim.Render(u.Label)
		if singleLine {
			text = label + StyleDim.Render(": ") + text
		} else {
			text = label + "\n" + text
		}
	}
	if u.Style.ShowIcon && u.Icon != "" {
		text = StyleBlue.Render(IconGlyph(u.Icon)) + " " + text
	}
	return text
}

func spaced(texts []string) []string {
	out := make([]string, 0, len(texts)*2)
	for i, t := range texts {
		if i > 0 {
			out = append(out, strings.Repeat(" ", colGap))
		}
		out = append(out, t)
	}
	return out
}

// fitText wraps or truncates s to width.
func fitText(s string, width int, wrap bool) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if wrap {
		return lipgloss.NewStyle().Width(width).Render(s)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func alignPosition(a domain.Align) lipgloss.Position {
	switch a {
	case domain.AlignCenter:
		return lipgloss.Center
	case domain.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

func spacingLines(px, floor int) int {
	return max(px/pixelsPerLine, floor)
}
