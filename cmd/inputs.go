package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/fetcher"
)

// inputResolver fetches remote and zipped inputs into one scratch directory.
type inputResolver struct {
	fetcher fetcher.Fetcher
	dir     string
}

func newInputResolver() (*inputResolver, error) {
	dir, err := os.MkdirTemp("", "field-allocator-*")
	if err != nil {
		return nil, eris.Wrap(err, "create input work dir")
	}
	return &inputResolver{
		fetcher: fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
		dir:     dir,
	}, nil
}

// resolve returns a local path for src. Empty sources stay empty.
func (r *inputResolver) resolve(ctx context.Context, src string) (string, error) {
	if src == "" {
		return "", nil
	}
	return fetcher.Resolve(ctx, r.fetcher, src, r.dir)
}

// Close removes everything downloaded or extracted.
func (r *inputResolver) Close() error {
	return os.RemoveAll(r.dir)
}
