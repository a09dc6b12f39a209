package importer

import (
	"fmt"

	"github.com/alexanderramin/vitae/internal/domain"
)

var (
	validFieldKinds  = map[domain.FieldKind]bool{"": true, domain.FieldText: true, domain.FieldDate: true}
	validDateFormats = map[domain.DateFormat]bool{"": true, domain.DateYM: true, domain.DateYMD: true}
)

// ValidateResumeFile checks a parsed file before conversion and returns
// every problem found.
func ValidateResumeFile(f *ResumeFile) []error {
	var errs []error

	if f.Version > CurrentVersion {
		errs = append(errs, fmt.Errorf("version %d is newer than supported version %d", f.Version, CurrentVersion))
	}
	if f.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if f.Basic.Layout != "" && !f.Basic.Layout.Valid() {
		errs = append(errs, fmt.Errorf("basic.layout: invalid value %q", f.Basic.Layout))
	}
	if f.Basic.FontSize != nil && *f.Basic.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("basic.fontSize must be positive"))
	}
	errs = append(errs, validateFields("basic.fields", f.Basic.Fields)...)
	errs = append(errs, validateSettings(f.Settings)...)

	for i, s := range f.Sections {
		path := fmt.Sprintf("sections[%d]", i)
		if !domain.ValidSectionKinds[s.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", path, s.Kind))
		}
		for j, it := range s.Items {
			errs = append(errs, validateItem(fmt.Sprintf("%s.items[%d]", path, j), s.Kind, it)...)
		}
	}
	return errs
}

func validateItem(path, sectionKind string, it ItemFile) []error {
	var errs []error
	if it.Education != nil {
		if sectionKind != string(domain.SectionEducation) {
			errs = append(errs, fmt.Errorf("%s.education: only allowed in education sections", path))
		}
		if it.Education.School == "" {
			errs = append(errs, fmt.Errorf("%s.education.school is required", path))
		}
		if it.Title != "" || it.Subtitle != "" || it.DateRange != "" {
			errs = append(errs, fmt.Errorf("%s: education and title/subtitle/dateRange are mutually exclusive", path))
		}
	}
	return append(errs, validateFields(path+".fields", it.Fields)...)
}

func validateFields(path string, fields []domain.HeaderField) []error {
	var errs []error
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		fp := fmt.Sprintf("%s[%d]", path, i)
		if f.ID != "" {
			if seen[f.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", fp, f.ID))
			}
			seen[f.ID] = true
		}
		if !validFieldKinds[f.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", fp, f.Kind))
		}
		if f.Align != "" && !f.Align.Valid() {
			errs = append(errs, fmt.Errorf("%s.align: invalid value %q", fp, f.Align))
		}
		if !validDateFormats[f.DateFormat] {
			errs = append(errs, fmt.Errorf("%s.dateFormat: invalid value %q", fp, f.DateFormat))
		}
		if f.FontSize != nil && *f.FontSize <= 0 {
			errs = append(errs, fmt.Errorf("%s.fontSize must be positive", fp))
		}
	}
	return errs
}

func validateSettings(g domain.GlobalSettings) []error {
	var errs []error
	positive := []struct {
		name string
		v    *int
	}{
		{"settings.baseFontSize", g.BaseFontSize},
		{"settings.subheaderSize", g.SubheaderSize},
	}
	for _, p := range positive {
		if p.v != nil && *p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", p.name))
		}
	}
	nonNegative := []struct {
		name string
		v    *int
	}{
		{"settings.sectionSpacing", g.SectionSpacing},
		{"settings.paragraphSpacing", g.ParagraphSpacing},
	}
	for _, p := range nonNegative {
		if p.v != nil && *p.v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", p.name))
		}
	}
	if g.LineHeight != nil && *g.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("settings.lineHeight must be positive"))
	}
	return errs
}
