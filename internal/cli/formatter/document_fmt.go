package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/preview"
	"github.com/charmbracelet/lipgloss"
)

// FormatDocumentList renders the documents in a bordered box, marking the
// default document with a star.
func FormatDocumentList(docs []*domain.Document, defaultID string) string {
	headers := []string{"", "ID", "NAME", "HOLDER", "UPDATED"}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		mark := " "
		if d.ID == defaultID {
			mark = StyleYellow.Render("★")
		}
		rows = append(rows, []string{
			mark,
			StyleGreen.Render(d.DisplayID()),
			Bold(d.Name),
			Placeholder(d.Basic.Name),
			Dim(HumanTimestamp(d.UpdatedAt)),
		})
	}
	return RenderBox("Documents", RenderTable(headers, rows))
}

// FormatDocument renders a document card: personal info on the left and
// the section/item outline on the right.
func FormatDocument(doc *domain.Document, sections []preview.SectionContent) string {
	left := buildBasicPanel(doc)
	right := FormatOutline(sections)
	if right == "" {
		right = Dim("No sections yet.")
	}
	return RenderBox(doc.Name, lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func buildBasicPanel(doc *domain.Document) string {
	b := doc.Basic
	rows := [][2]string{
		{"ID      ", TruncID(doc.ID)},
		{"NAME    ", Placeholder(b.Name)},
		{"HEADLINE", Placeholder(b.Headline)},
		{"EMAIL   ", Placeholder(b.Email)},
		{"PHONE   ", Placeholder(b.Phone)},
		{"LOCATION", Placeholder(b.Location)},
		{"WEBSITE ", Placeholder(b.Website)},
		{"BORN    ", Placeholder(b.BirthDate)},
		{"LAYOUT  ", string(fields.ResolveAlign(b.Layout))},
	}
	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s  %s\n", StyleDim.Render(r[0]), r[1])
	}
	if len(b.Fields) > 0 {
		fmt.Fprintf(&sb, "%s  %s\n", StyleDim.Render("FIELDS  "), StyleBlue.Render(fmt.Sprintf("%d authored", len(b.Fields))))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// FormatOutline renders sections and their items as a tree.
func FormatOutline(sections []preview.SectionContent) string {
	var items []TreeItem
	for _, sc := range sections {
		items = append(items, TreeItem{
			Title:  sc.Section.DisplayTitle(),
			Hidden: !sc.Section.Visible,
			Detail: string(sc.Section.Kind),
		})
		for i, it := range sc.Items {
			title := it.Title
			if title == "" {
				title = "(untitled)"
			}
			detail := ""
			if it.HasAuthoredFields() {
				detail = fmt.Sprintf("%d fields", len(it.HeaderFields))
			}
			items = append(items, TreeItem{
				Title:  title,
				Level:  1,
				IsLast: i == len(sc.Items)-1,
				Hidden: !it.Visible,
				Detail: detail,
			})
		}
	}
	return RenderTree(items)
}

// FormatSettings lists every global setting with its effective value,
// marking the ones that fall back to a default.
func FormatSettings(g domain.GlobalSettings) string {
	sp := preview.ResolveSpacing(g)
	row := func(name string, set bool, value string) []string {
		source := Dim("default")
		if set {
			source = StyleGreen.Render("set")
		}
		return []string{name, value, source}
	}
	boolStr := func(p *bool) string {
		return strconv.FormatBool(domain.BoolFromPtrWithDefault(false, p))
	}
	rows := [][]string{
		row("base-font", g.BaseFontSize != nil, strconv.Itoa(sp.BaseFontSize)),
		row("subheader-size", g.SubheaderSize != nil, strconv.Itoa(sp.SubheaderSize)),
		row("line-height", g.LineHeight != nil, strconv.FormatFloat(sp.LineHeight, 'f', -1, 64)),
		row("section-spacing", g.SectionSpacing != nil, strconv.Itoa(sp.SectionSpacing)),
		row("paragraph-spacing", g.ParagraphSpacing != nil, strconv.Itoa(sp.ParagraphSpacing)),
		row("icons", g.UseIconMode != nil, boolStr(g.UseIconMode)),
		row("single-line", g.SingleLineFields != nil, boolStr(g.SingleLineFields)),
		row("wrap", g.WrapFields != nil, boolStr(g.WrapFields)),
		row("center-subtitle", g.CenterSubtitle != nil, boolStr(g.CenterSubtitle)),
	}
	return RenderBox("Settings", RenderTable([]string{"SETTING", "VALUE", "SOURCE"}, rows))
}
