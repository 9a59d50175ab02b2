package app

import (
	"context"
	"log/slog"

	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/state"
)

// Lister fetches the full catalogue.
type Lister interface {
	List(ctx context.Context) ([]catalogue.Entry, error)
}

// LoadCatalogue fetches the listing into a fresh store and returns its
// snapshot.
func LoadCatalogue(ctx context.Context, lister Lister, logger *slog.Logger) (state.Snapshot, error) {
	store := &state.Store{}
	err := refresh(ctx, store, lister, logger)
	return store.Snapshot(), err
}

func refresh(ctx context.Context, store *state.Store, lister Lister, logger *slog.Logger) error {
	entries, err := lister.List(ctx)
	if err != nil {
		store.Update(nil, err)
		logger.Warn("catalogue load failed", "error", err)
		return err
	}
	store.Update(entries, nil)
	logger.Debug("catalogue loaded", "entries", len(entries))
	return nil
}
