package filesystem

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.FileSystem = (*Router)(nil)

// Router dispatches each call to the adapter registered for the locator scheme.
type Router struct {
	byScheme map[string]driven.SchemeFileSystem
}

// NewRouter creates a router over the given adapters. A later adapter
// claiming an already registered scheme replaces the earlier one.
func NewRouter(adapters ...driven.SchemeFileSystem) *Router {
	r := &Router{byScheme: make(map[string]driven.SchemeFileSystem)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds an adapter for every scheme it reports.
func (r *Router) Register(a driven.SchemeFileSystem) {
	if a == nil {
		return
	}
	for _, scheme := range a.Schemes() {
		r.byScheme[strings.ToLower(scheme)] = a
	}
}

// Supports reports whether a scheme has an adapter.
func (r *Router) Supports(scheme string) bool {
	_, ok := r.byScheme[strings.ToLower(scheme)]
	return ok
}

func (r *Router) route(loc domain.Locator) (driven.SchemeFileSystem, error) {
	a, ok := r.byScheme[loc.Scheme()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedScheme, loc.Scheme())
	}
	return a, nil
}

// List lists the children of dir.
func (r *Router) List(ctx context.Context, dir domain.Locator) ([]domain.Entry, error) {
	a, err := r.route(dir)
	if err != nil {
		return nil, err
	}
	return a.List(ctx, dir)
}

// Stat describes loc.
func (r *Router) Stat(ctx context.Context, loc domain.Locator) (*domain.Entry, error) {
	a, err := r.route(loc)
	if err != nil {
		return nil, err
	}
	return a.Stat(ctx, loc)
}

// CopyToPath copies src into the local file dst using the adapter owning src.
func (r *Router) CopyToPath(ctx context.Context, src domain.Locator, dst string) error {
	a, err := r.route(src)
	if err != nil {
		return err
	}
	return a.CopyToPath(ctx, src, dst)
}

// Remove deletes loc.
func (r *Router) Remove(ctx context.Context, loc domain.Locator) error {
	a, err := r.route(loc)
	if err != nil {
		return err
	}
	return a.Remove(ctx, loc)
}
