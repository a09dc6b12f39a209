package fields

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vitae/internal/domain"
)

// Hard-coded bottom of the cascade.
const (
	DefaultFontSize      = 14
	DefaultSubheaderSize = 16
	DefaultAlign         = domain.AlignLeft
)

// BlockDefaults is the middle tier of the cascade: defaults declared by the
// block that owns the field (the personal-info block). Items have none.
type BlockDefaults struct {
	ShowIcon   *bool
	FontSize   *int
	SingleLine *bool
}

// BasicDefaults returns the block tier declared by the personal-info block.
func BasicDefaults(b domain.BasicInfo) BlockDefaults {
	return BlockDefaults{ShowIcon: b.ShowIcons, FontSize: b.FontSize, SingleLine: b.SingleLine}
}

// Style is the effective presentation of one field.
type Style struct {
	ShowIcon   bool              `json:"showIcon"`
	FontSize   int               `json:"fontSize"`
	SingleLine bool              `json:"singleLine"`
	Bold       bool              `json:"bold"`
	Align      domain.Align      `json:"align"`
	Wrap       bool              `json:"wrap"`
	DateFormat domain.DateFormat `json:"dateFormat"`
}

// Resolve computes the effective style of f. It is pure and must be called
// on every render; settings change independently of fields.
func Resolve(f domain.HeaderField, block BlockDefaults, g domain.GlobalSettings) Style {
	return Style{
		ShowIcon:   ResolveShowIcon(f.ShowIcon, block.ShowIcon, g.UseIconMode),
		FontSize:   ResolveFontSize(f.FontSize, block.FontSize, g.BaseFontSize),
		SingleLine: ResolveSingleLine(f.SingleLine, block.SingleLine, g.SingleLineFields),
		Bold:       ResolveBold(f.Bold),
		Align:      ResolveAlign(f.Align),
		Wrap:       domain.BoolFromPtrWithDefault(false, g.WrapFields),
		DateFormat: resolveDateFormat(f.DateFormat),
	}
}

// ResolveShowIcon consults field, then block, then global icon mode; false
// when none is set.
func ResolveShowIcon(field, block, global *bool) bool {
	return domain.BoolFromPtrWithDefault(false, field, block, global)
}

// ResolveFontSize consults field, then block, then the global base size,
// falling back to DefaultFontSize.
func ResolveFontSize(field, block, global *int) int {
	return domain.IntFromPtrWithDefault(DefaultFontSize, field, block, global)
}

// ResolveSingleLine consults field, then block, then the global
// single-line setting; false when none is set.
func ResolveSingleLine(field, block, global *bool) bool {
	return domain.BoolFromPtrWithDefault(false, field, block, global)
}

// ResolveBold has no inherited tier: bold is always field-local.
func ResolveBold(field *bool) bool {
	return domain.BoolFromPtrWithDefault(false, field)
}

// ResolveAlign returns the field's own alignment when valid, otherwise
// DefaultAlign.
func ResolveAlign(field domain.Align) domain.Align {
	if field.Valid() {
		return field
	}
	return DefaultAlign
}

func resolveDateFormat(f domain.DateFormat) domain.DateFormat {
	if f == domain.DateYMD {
		return domain.DateYMD
	}
	return domain.DateYM
}

// DisplayValue returns the text shown for f: date fields are formatted,
// everything else passes through.
func DisplayValue(f domain.HeaderField) string {
	if f.Kind == domain.FieldDate {
		return FormatDate(f.Value, f.DateFormat)
	}
	return f.Value
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"2006/01/02",
	"2006/01",
}

// FormatDate renders YYYY/MM/DD for YMD and YYYY/MM otherwise. A value that
// does not parse is returned untouched.
func FormatDate(value string, format domain.DateFormat) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if format == domain.DateYMD {
			return fmt.Sprintf("%04d/%02d/%02d", t.Year(), int(t.Month()), t.Day())
		}
		return fmt.Sprintf("%04d/%02d", t.Year(), int(t.Month()))
	}
	return value
}
