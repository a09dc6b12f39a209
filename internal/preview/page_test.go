package preview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vitae/internal/domain"
)

func visibleItem(id string) domain.Item {
	return domain.Item{ID: id, Visible: true}
}

func TestRenderItem_HiddenItemSuppressed(t *testing.T) {
	it := visibleItem("i1")
	it.Title = "MIT"
	it.Visible = false

	_, ok := RenderItem(it, domain.GlobalSettings{})
	assert.False(t, ok)
}

func TestRenderItem_EmptyItemSuppressed(t *testing.T) {
	_, ok := RenderItem(visibleItem("i1"), domain.GlobalSettings{})
	assert.False(t, ok)
}

func TestRenderItem_DescriptionAloneIsEnough(t *testing.T) {
	it := visibleItem("i1")
	it.Description = "<p>Led the team</p>"

	entry, ok := RenderItem(it, domain.GlobalSettings{})
	require.True(t, ok)
	assert.Empty(t, entry.Header)
	assert.Equal(t, "Led the team", entry.Description)
}

func TestRenderItem_HiddenFieldValuesDoNotCount(t *testing.T) {
	it := visibleItem("i1")
	it.HeaderFields = []domain.HeaderField{
		{ID: "a", Value: "secret", Visible: domain.Ptr(false)},
	}

	_, ok := RenderItem(it, domain.GlobalSettings{})
	assert.False(t, ok)
}

func TestRenderItem_SynthesizedHeaderWithStyles(t *testing.T) {
	it := visibleItem("i1")
	it.Title = "MIT"
	it.Subtitle = "CS · BSc"
	it.DateRange = "2019 - 2023"
	g := domain.GlobalSettings{BaseFontSize: domain.Ptr(12), CenterSubtitle: domain.Ptr(true)}

	entry, ok := RenderItem(it, g)
	require.True(t, ok)
	require.Len(t, entry.Header, 3)

	title, subtitle, dates := entry.Header[0], entry.Header[1], entry.Header[2]
	assert.Equal(t, domain.FieldIDTitle, title.FieldID)
	assert.True(t, title.Style.Bold)
	assert.Equal(t, 16, title.Style.FontSize)
	assert.Equal(t, domain.AlignCenter, subtitle.Style.Align)
	assert.Equal(t, 12, subtitle.Style.FontSize)
	assert.Equal(t, domain.AlignRight, dates.Style.Align)
	assert.Equal(t, "2019 - 2023", dates.Text)
}

func TestRenderItem_AuthoredFieldsKeepOrderAndFormatDates(t *testing.T) {
	it := visibleItem("i1")
	it.Title = "ignored seed"
	it.HeaderFields = []domain.HeaderField{
		{ID: "d", Kind: domain.FieldDate, Value: "2024-03-05", DateFormat: domain.DateYMD},
		{ID: "hidden", Value: "x", Visible: domain.Ptr(false)},
		{ID: "t", Value: "Acme", FontSize: domain.Ptr(20)},
	}

	entry, ok := RenderItem(it, domain.GlobalSettings{})
	require.True(t, ok)
	require.Len(t, entry.Header, 2)
	assert.Equal(t, "d", entry.Header[0].FieldID)
	assert.Equal(t, "2024/03/05", entry.Header[0].Text)
	assert.Equal(t, "Acme", entry.Header[1].Text)
	assert.Equal(t, 20, entry.Header[1].Style.FontSize)
}

func TestRenderSection_HiddenOrEmptySuppressed(t *testing.T) {
	sec := domain.Section{ID: "s1", Kind: domain.SectionCustom, Visible: true}
	_, ok := RenderSection(sec, []domain.Item{visibleItem("i1")}, domain.GlobalSettings{})
	assert.False(t, ok, "section with no displayable items")

	it := visibleItem("i2")
	it.Title = "Shown"
	sec.Visible = false
	_, ok = RenderSection(sec, []domain.Item{it}, domain.GlobalSettings{})
	assert.False(t, ok, "hidden section")
}

func TestRenderSection_DefaultTitles(t *testing.T) {
	it := visibleItem("i1")
	it.Title = "MIT"

	edu, ok := RenderSection(domain.Section{ID: "s1", Kind: domain.SectionEducation, Visible: true}, []domain.Item{it}, domain.GlobalSettings{})
	require.True(t, ok)
	assert.Equal(t, "Education", edu.Title)

	custom, ok := RenderSection(domain.Section{ID: "s2", Kind: domain.SectionCustom, Visible: true}, []domain.Item{it}, domain.GlobalSettings{})
	require.True(t, ok)
	assert.Equal(t, "Untitled Section", custom.Title)
}

func TestRenderHeading_BlockDefaultsApply(t *testing.T) {
	b := domain.BasicInfo{
		Name:      "Ada",
		Email:     "ada@example.com",
		BirthDate: "1815-12-10",
		ShowIcons: domain.Ptr(true),
		FontSize:  domain.Ptr(11),
	}
	g := domain.GlobalSettings{UseIconMode: domain.Ptr(false), BaseFontSize: domain.Ptr(14)}

	h := RenderHeading(b, g)
	assert.Equal(t, "Ada", h.Name)
	assert.Equal(t, domain.AlignLeft, h.Layout)
	require.Len(t, h.Contacts, 2)
	assert.True(t, h.Contacts[0].Style.ShowIcon)
	assert.Equal(t, 11, h.Contacts[0].Style.FontSize)
	assert.Equal(t, "1815/12", h.Contacts[1].Text)
}

func TestRenderHeading_AuthoredEmptyContactDropped(t *testing.T) {
	b := domain.BasicInfo{Fields: []domain.HeaderField{
		{ID: "email", Label: "Email"},
		{ID: "web", Label: "Website", Value: "ada.dev"},
	}}

	h := RenderHeading(b, domain.GlobalSettings{})
	require.Len(t, h.Contacts, 1)
	assert.Equal(t, "web", h.Contacts[0].FieldID)
}

func TestRenderDocument_SpacingDefaultsAndDeterminism(t *testing.T) {
	doc := domain.Document{ID: "d1", Basic: domain.BasicInfo{Name: "Ada"}}
	it := visibleItem("i1")
	it.Title = "MIT"
	sections := []SectionContent{
		{Section: domain.Section{ID: "s1", Kind: domain.SectionEducation, Visible: true}, Items: []domain.Item{it}},
		{Section: domain.Section{ID: "s2", Kind: domain.SectionCustom, Visible: true}},
	}

	first := RenderDocument(doc, sections)
	second := RenderDocument(doc, sections)
	assert.Empty(t, cmp.Diff(first, second))

	require.Len(t, first.Blocks, 1)
	assert.Equal(t, Spacing{
		SectionSpacing:   24,
		ParagraphSpacing: 0,
		LineHeight:       1.6,
		SubheaderSize:    16,
		BaseFontSize:     14,
	}, first.Spacing)
	assert.Empty(t, it.HeaderFields, "render must not materialize fields")
}
