package parameters

import (
	"context"

	"github.com/go-git/go-billy/v5"
)

// Collector writes the raw parameters document to target.
type Collector interface {
	Collect(ctx context.Context, fs billy.Filesystem, target string) error
}

// CollectorFunc adapts a function to Collector.
type CollectorFunc func(ctx context.Context, fs billy.Filesystem, target string) error

// Collect calls f.
func (f CollectorFunc) Collect(ctx context.Context, fs billy.Filesystem, target string) error {
	return f(ctx, fs, target)
}
