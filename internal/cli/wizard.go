package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/vitae/internal/cli/formatter"
	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// vitaeHuhTheme returns a huh theme using the Gruvbox palette.
func vitaeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(vitaeHuhTheme()).WithShowHelp(false)
}

// validateOptionalPositiveInt accepts empty or a positive integer.
func validateOptionalPositiveInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number or leave empty")
	}
	return nil
}

func requiredText(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", strings.ToLower(title))
		}
		return nil
	}
}

// wizardInputText creates a huh form for a single text input.
func wizardInputText(title, placeholder string, required bool, result *string) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(result)
	if required {
		input = input.Validate(requiredText(title))
	}
	return newForm(huh.NewGroup(input))
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}

// sectionFormValues backs the add-section form.
type sectionFormValues struct {
	Title string
	Kind  domain.SectionKind
}

func wizardSection(v *sectionFormValues) *huh.Form {
	if v.Kind == "" {
		v.Kind = domain.SectionCustom
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[domain.SectionKind]().
				Title("Kind").
				Options(
					huh.NewOption("Custom", domain.SectionCustom),
					huh.NewOption("Education", domain.SectionEducation),
				).
				Value(&v.Kind),
			huh.NewInput().
				Title("Title").
				Placeholder("leave empty for the kind's default heading").
				Value(&v.Title),
		),
	)
}

// itemFormValues backs the add and edit item forms.
type itemFormValues struct {
	Title       string
	Subtitle    string
	DateRange   string
	Description string
}

func itemFormFrom(it domain.Item) itemFormValues {
	return itemFormValues{
		Title:       it.Title,
		Subtitle:    it.Subtitle,
		DateRange:   it.DateRange,
		Description: it.Description,
	}
}

// patch returns the members that differ from it.
func (v itemFormValues) patch(it domain.Item) domain.ItemPatch {
	var p domain.ItemPatch
	if v.Title != it.Title {
		p.Title = domain.Ptr(v.Title)
	}
	if v.Subtitle != it.Subtitle {
		p.Subtitle = domain.Ptr(v.Subtitle)
	}
	if v.DateRange != it.DateRange {
		p.DateRange = domain.Ptr(v.DateRange)
	}
	if v.Description != it.Description {
		p.Description = domain.Ptr(v.Description)
	}
	return p
}

func wizardItem(v *itemFormValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.Title),
			huh.NewInput().Title("Subtitle").Value(&v.Subtitle),
			huh.NewInput().Title("Dates").Placeholder("2020 - 2022").Value(&v.DateRange),
			huh.NewText().Title("Description").Value(&v.Description),
		),
	)
}

func wizardEducation(seed *domain.EducationSeed, description *string) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("School").Value(&seed.School).Validate(requiredText("School")),
			huh.NewInput().Title("Major").Value(&seed.Major),
			huh.NewInput().Title("Degree").Value(&seed.Degree),
			huh.NewInput().Title("GPA").Value(&seed.GPA),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start").Placeholder("2019-09").Value(&seed.StartDate),
			huh.NewInput().Title("End").Placeholder("2023-06").Value(&seed.EndDate),
			huh.NewText().Title("Description").Value(description),
		),
	)
}

// fieldFormValues backs the add and edit field forms.
type fieldFormValues struct {
	Label      string
	Value      string
	Kind       domain.FieldKind
	Align      domain.Align
	DateFormat domain.DateFormat
	Bold       bool
	FontSize   string
}

func fieldFormFrom(f domain.HeaderField) fieldFormValues {
	v := fieldFormValues{
		Label:      f.Label,
		Value:      f.Value,
		Kind:       f.Kind,
		Align:      f.Align,
		DateFormat: f.DateFormat,
		Bold:       f.Bold != nil && *f.Bold,
	}
	if v.Kind == "" {
		v.Kind = domain.FieldText
	}
	if v.Align == "" {
		v.Align = domain.AlignLeft
	}
	if v.DateFormat == "" {
		v.DateFormat = domain.DateYM
	}
	if f.FontSize != nil {
		v.FontSize = strconv.Itoa(*f.FontSize)
	}
	return v
}

// patch turns the form into a field patch. An empty font size goes back
// to inheriting.
func (v fieldFormValues) patch() domain.HeaderFieldPatch {
	p := domain.HeaderFieldPatch{
		Label:      domain.Ptr(strings.TrimSpace(v.Label)),
		Value:      domain.Ptr(v.Value),
		Kind:       domain.Ptr(v.Kind),
		Align:      domain.Ptr(v.Align),
		DateFormat: domain.Ptr(v.DateFormat),
		Bold:       domain.Ptr(v.Bold),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.FontSize)); err == nil && n > 0 {
		p.FontSize = domain.Ptr(n)
	} else {
		p.ClearFontSize = true
	}
	return p
}

// field returns a new field built from the form.
func (v fieldFormValues) field() domain.HeaderField {
	return v.patch().Apply(domain.HeaderField{})
}

func wizardField(v *fieldFormValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Label").Placeholder("optional").Value(&v.Label),
			huh.NewInput().Title("Value").Value(&v.Value),
			huh.NewSelect[domain.FieldKind]().
				Title("Kind").
				Options(
					huh.NewOption("Text", domain.FieldText),
					huh.NewOption("Date", domain.FieldDate),
				).
				Value(&v.Kind),
		),
		huh.NewGroup(
			huh.NewSelect[domain.Align]().
				Title("Align").
				Options(
					huh.NewOption("Left", domain.AlignLeft),
					huh.NewOption("Center", domain.AlignCenter),
					huh.NewOption("Right", domain.AlignRight),
				).
				Value(&v.Align),
			huh.NewSelect[domain.DateFormat]().
				Title("Date format").
				Options(
					huh.NewOption("Year and month", domain.DateYM),
					huh.NewOption("Full date", domain.DateYMD),
				).
				Value(&v.DateFormat),
			huh.NewConfirm().Title("Bold?").Value(&v.Bold),
			huh.NewInput().
				Title("Font size").
				Placeholder("inherit").
				Value(&v.FontSize).
				Validate(validateOptionalPositiveInt),
		),
	)
}

// basicFormValues backs the personal-info form.
type basicFormValues struct {
	Name      string
	Headline  string
	Email     string
	Phone     string
	Location  string
	Website   string
	BirthDate string
	Layout    domain.Align
}

func basicFormFrom(b domain.BasicInfo) basicFormValues {
	v := basicFormValues{
		Name:      b.Name,
		Headline:  b.Headline,
		Email:     b.Email,
		Phone:     b.Phone,
		Location:  b.Location,
		Website:   b.Website,
		BirthDate: b.BirthDate,
		Layout:    b.Layout,
	}
	if v.Layout == "" {
		v.Layout = domain.AlignLeft
	}
	return v
}

func (v basicFormValues) patch() domain.BasicPatch {
	return domain.BasicPatch{
		Name:      domain.Ptr(v.Name),
		Headline:  domain.Ptr(v.Headline),
		Email:     domain.Ptr(v.Email),
		Phone:     domain.Ptr(v.Phone),
		Location:  domain.Ptr(v.Location),
		Website:   domain.Ptr(v.Website),
		BirthDate: domain.Ptr(v.BirthDate),
		Layout:    domain.Ptr(v.Layout),
	}
}

func wizardBasic(v *basicFormValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name),
			huh.NewInput().Title("Headline").Value(&v.Headline),
			huh.NewSelect[domain.Align]().
				Title("Heading layout").
				Options(
					huh.NewOption("Left", domain.AlignLeft),
					huh.NewOption("Center", domain.AlignCenter),
					huh.NewOption("Right", domain.AlignRight),
				).
				Value(&v.Layout),
		),
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&v.Email),
			huh.NewInput().Title("Phone").Value(&v.Phone),
			huh.NewInput().Title("Location").Value(&v.Location),
			huh.NewInput().Title("Website").Value(&v.Website),
			huh.NewInput().Title("Birth date").Placeholder("YYYY-MM-DD").Value(&v.BirthDate),
		),
	)
}
