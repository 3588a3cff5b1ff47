// Package sources defines the portal source contract and the registry the
// harvester iterates over. Concrete scrapers live in the portals subpackage.
package sources

import (
	"context"

	"github.com/jonesrussell/goleads/internal/domain"
)

// Source is one external portal producing demand signals.
type Source interface {
	// Name is the stable registry key, also stored on every signal.
	Name() string
	// Kind is the dominant signal type this portal produces. Individual
	// signals may still be reclassified downstream.
	Kind() domain.SignalType
	// Fetch retrieves the portal's current listings as normalized signals.
	// An empty slice with nil error means the portal listed nothing new.
	Fetch(ctx context.Context) ([]domain.Signal, error)
}
