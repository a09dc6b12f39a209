package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/importer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumFlag is a pflag.Value restricted to a fixed set of string values.
type enumFlag[T ~string] struct {
	target  *T
	allowed []T
	typ     string
}

var _ pflag.Value = (*enumFlag[domain.Align])(nil)

func newEnumFlag[T ~string](target *T, typ string, allowed ...T) *enumFlag[T] {
	return &enumFlag[T]{target: target, allowed: allowed, typ: typ}
}

func (f *enumFlag[T]) String() string { return string(*f.target) }

func (f *enumFlag[T]) Type() string { return f.typ }

func (f *enumFlag[T]) Set(s string) error {
	s = strings.TrimSpace(s)
	for _, a := range f.allowed {
		if strings.EqualFold(string(a), s) {
			*f.target = a
			return nil
		}
	}
	names := make([]string, len(f.allowed))
	for i, a := range f.allowed {
		names[i] = string(a)
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

func alignFlag(target *domain.Align) *enumFlag[domain.Align] {
	return newEnumFlag(target, "align", domain.AlignLeft, domain.AlignCenter, domain.AlignRight)
}

func fieldKindFlag(target *domain.FieldKind) *enumFlag[domain.FieldKind] {
	return newEnumFlag(target, "kind", domain.FieldText, domain.FieldDate)
}

func dateFormatFlag(target *domain.DateFormat) *enumFlag[domain.DateFormat] {
	return newEnumFlag(target, "format", domain.DateYM, domain.DateYMD)
}

func sectionKindFlag(target *domain.SectionKind) *enumFlag[domain.SectionKind] {
	return newEnumFlag(target, "kind", domain.SectionCustom, domain.SectionEducation)
}

func fileFormatFlag(target *importer.Format) *enumFlag[importer.Format] {
	return newEnumFlag(target, "format", importer.FormatYAML, importer.FormatJSON)
}

// changed returns &v when the named flag was given on the command line.
func changed[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
