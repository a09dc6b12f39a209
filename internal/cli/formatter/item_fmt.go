package formatter

import (
	"strconv"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
)

const valueColumnWidth = 40

// FormatSectionList renders a document's sections in order.
func FormatSectionList(sections []*domain.Section) string {
	rows := make([][]string, 0, len(sections))
	for i, s := range sections {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			TruncID(s.ID),
			Bold(s.DisplayTitle()),
			KindBadge(s.Kind),
			VisibilityPill(s.Visible),
		})
	}
	return RenderBox("Sections", RenderTable([]string{"#", "ID", "TITLE", "KIND", "VISIBLE"}, rows))
}

// FormatItemList renders a section's items in order.
func FormatItemList(items []domain.Item) string {
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		fieldsCol := Dim("default")
		if it.HasAuthoredFields() {
			fieldsCol = StyleBlue.Render(strconv.Itoa(len(it.HeaderFields)))
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			TruncID(it.ID),
			Bold(Placeholder(Ellipsize(it.Title, valueColumnWidth))),
			Placeholder(Ellipsize(it.Subtitle, valueColumnWidth)),
			Placeholder(it.DateRange),
			fieldsCol,
			VisibilityPill(it.Visible),
		})
	}
	return RenderBox("Items", RenderTable([]string{"#", "ID", "TITLE", "SUBTITLE", "DATES", "FIELDS", "VISIBLE"}, rows))
}

// FormatFieldList renders a header-field list with each field's effective
// style under the given block defaults and settings.
func FormatFieldList(list []domain.HeaderField, block fields.BlockDefaults, g domain.GlobalSettings) string {
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		st := fields.Resolve(f, block, g)
		bold := Dim("-")
		if st.Bold {
			bold = Bold("B")
		}
		rows = append(rows, []string{
			StyleGreen.Render(f.ID),
			Placeholder(f.Label),
			Placeholder(Ellipsize(fields.DisplayValue(f), valueColumnWidth)),
			Dim(string(f.Kind)),
			string(st.Align),
			strconv.Itoa(st.FontSize),
			bold,
			VisibilityPill(f.IsVisible()),
		})
	}
	headers := []string{"ID", "LABEL", "VALUE", "KIND", "ALIGN", "SIZE", "BOLD", "VISIBLE"}
	return RenderBox("Fields", RenderTable(headers, rows))
}
