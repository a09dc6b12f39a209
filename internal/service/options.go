package service

import (
	"github.com/rs/zerolog"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
)

// Options carries the settings shared by the editing services.
type Options struct {
	// IDs generates item, section and field ids. Nil means UUIDs.
	IDs fields.IDGenerator
	// Policy decides how a reorder that is not a permutation is handled.
	Policy fields.ReorderPolicy
	// Defaults seed the settings of new documents.
	Defaults domain.GlobalSettings
	// Logger receives absorbed no-ops and background failures. Nil
	// discards them.
	Logger   *zerolog.Logger
	Observer UseCaseObserver
}

func (o Options) ids() fields.IDGenerator {
	if o.IDs == nil {
		return fields.UUIDGenerator{}
	}
	return o.IDs
}

func (o Options) observer() UseCaseObserver {
	return useCaseObserverOrNoop([]UseCaseObserver{o.Observer})
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
