package domain

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Valid reports whether a is one of the three placements. The empty value
// is not valid here; it means "inherit" on a field.
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

type DateFormat string

const (
	DateYM  DateFormat = "YM"
	DateYMD DateFormat = "YMD"
)

type FieldKind string

const (
	FieldText FieldKind = "text"
	FieldDate FieldKind = "date"
)

type SectionKind string

const (
	SectionEducation SectionKind = "education"
	SectionCustom    SectionKind = "custom"
)

// ValidSectionKinds is the canonical set of accepted section kind strings.
var ValidSectionKinds = map[string]bool{
	"education": true, "custom": true,
}

// OwnerKind identifies what owns a header-field list.
type OwnerKind string

const (
	OwnerItem  OwnerKind = "item"
	OwnerBasic OwnerKind = "basic"
)

// Conventional ids of synthesized fields.
const (
	FieldIDTitle     = "title"
	FieldIDSubtitle  = "subtitle"
	FieldIDDateRange = "dateRange"

	FieldIDEmail     = "email"
	FieldIDPhone     = "phone"
	FieldIDLocation  = "location"
	FieldIDWebsite   = "website"
	FieldIDBirthDate = "birthDate"
)
