package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/config"
	"github.com/sells-group/field-allocator/internal/store"
)

// initStore opens and migrates the configured run store.
func initStore(ctx context.Context, c *config.Config) (store.Store, error) {
	st, err := store.Open(ctx, c.Store)
	if eris.Is(err, store.ErrDisabled) {
		return nil, eris.New("run persistence is disabled: set store.driver to sqlite or postgres")
	}
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	return st, nil
}
