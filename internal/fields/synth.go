package fields

import "github.com/alexanderramin/vitae/internal/domain"

// Synthesize derives the default header row of an item from its legacy
// seeds: title, subtitle, date range, in that order. Seeds with nothing to
// show are dropped. The result depends only on the inputs, so calling it
// on every read never disturbs an authored list.
func Synthesize(item domain.Item, g domain.GlobalSettings) []domain.HeaderField {
	base := domain.IntFromPtrWithDefault(DefaultFontSize, g.BaseFontSize)
	subtitleAlign := domain.AlignLeft
	if domain.BoolFromPtrWithDefault(false, g.CenterSubtitle) {
		subtitleAlign = domain.AlignCenter
	}

	candidates := []domain.HeaderField{
		{
			ID:       domain.FieldIDTitle,
			Value:    item.Title,
			Kind:     domain.FieldText,
			Align:    domain.AlignLeft,
			Bold:     domain.Ptr(true),
			FontSize: domain.Ptr(domain.IntFromPtrWithDefault(DefaultSubheaderSize, g.SubheaderSize)),
			Icon:     "User",
			ShowIcon: domain.Ptr(false),
			Visible:  domain.Ptr(true),
		},
		{
			ID:       domain.FieldIDSubtitle,
			Value:    item.Subtitle,
			Kind:     domain.FieldText,
			Align:    subtitleAlign,
			Bold:     domain.Ptr(false),
			FontSize: domain.Ptr(base),
			Icon:     "Tag",
			ShowIcon: domain.Ptr(false),
			Visible:  domain.Ptr(true),
		},
		{
			ID:       domain.FieldIDDateRange,
			Value:    item.DateRange,
			Kind:     domain.FieldText,
			Align:    domain.AlignRight,
			Bold:     domain.Ptr(false),
			FontSize: domain.Ptr(base),
			Icon:     "Calendar",
			ShowIcon: domain.Ptr(false),
			Visible:  domain.Ptr(true),
		},
	}
	return dropEmpty(candidates)
}

// Effective returns the authored field list when there is one, otherwise
// the synthesized default. It never writes back to the item.
func Effective(item domain.Item, g domain.GlobalSettings) []domain.HeaderField {
	if item.HasAuthoredFields() {
		return item.HeaderFields
	}
	return Synthesize(item, g)
}

// SynthesizeBasic derives the contact fields of the personal-info block.
// Contact fields carry a fixed label, so unlike item seeds they are kept
// only when their value is set. Only the birth date is date-typed.
func SynthesizeBasic(b domain.BasicInfo) []domain.HeaderField {
	contact := func(id, label, value, icon string, kind domain.FieldKind) domain.HeaderField {
		return domain.HeaderField{
			ID:      id,
			Label:   label,
			Value:   value,
			Kind:    kind,
			Icon:    icon,
			Visible: domain.Ptr(true),
		}
	}
	candidates := []domain.HeaderField{
		contact(domain.FieldIDEmail, "Email", b.Email, "Mail", domain.FieldText),
		contact(domain.FieldIDPhone, "Phone", b.Phone, "Phone", domain.FieldText),
		contact(domain.FieldIDLocation, "Location", b.Location, "MapPin", domain.FieldText),
		contact(domain.FieldIDWebsite, "Website", b.Website, "Globe", domain.FieldText),
		contact(domain.FieldIDBirthDate, "Birth Date", b.BirthDate, "Cake", domain.FieldDate),
	}
	out := make([]domain.HeaderField, 0, len(candidates))
	for _, f := range candidates {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// EffectiveBasic is Effective for the personal-info block.
func EffectiveBasic(b domain.BasicInfo) []domain.HeaderField {
	if len(b.Fields) > 0 {
		return b.Fields
	}
	return SynthesizeBasic(b)
}

func dropEmpty(candidates []domain.HeaderField) []domain.HeaderField {
	out := make([]domain.HeaderField, 0, len(candidates))
	for _, f := range candidates {
		if f.IsEmpty() {
			continue
		}
		out = append(out, f)
	}
	return out
}
