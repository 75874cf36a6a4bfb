package retrieval

import (
	"context"
	"time"

	"bookshop/internal/catalog"
)

// Catalog is the query side Local defers to.
type Catalog interface {
	All(ctx context.Context) (catalog.Collection, error)
	ByISBN(ctx context.Context, isbn string) (catalog.Book, error)
	ByAuthor(ctx context.Context, author string) (catalog.Collection, error)
	ByTitle(ctx context.Context, title string) (catalog.Collection, error)
}

// Local answers from the in-process catalog after a fixed delay.
type Local struct {
	catalog Catalog
	delay   time.Duration
}

func NewLocal(c Catalog, delay time.Duration) *Local {
	return &Local{catalog: c, delay: delay}
}

// Books fails with catalog.ErrEmptyCatalog when there is nothing to list.
func (l *Local) Books(ctx context.Context) *Promise[catalog.Collection] {
	return Defer(l.delay, func() (catalog.Collection, error) {
		books, err := l.catalog.All(ctx)
		if err != nil {
			return nil, err
		}
		if len(books) == 0 {
			return nil, catalog.ErrEmptyCatalog
		}
		return books, nil
	})
}

func (l *Local) Book(ctx context.Context, isbn string) *Promise[catalog.Book] {
	return Defer(l.delay, func() (catalog.Book, error) {
		return l.catalog.ByISBN(ctx, isbn)
	})
}

func (l *Local) ByAuthor(ctx context.Context, author string) *Promise[catalog.Collection] {
	return Defer(l.delay, func() (catalog.Collection, error) {
		return l.catalog.ByAuthor(ctx, author)
	})
}

func (l *Local) ByTitle(ctx context.Context, title string) *Promise[catalog.Collection] {
	return Defer(l.delay, func() (catalog.Collection, error) {
		return l.catalog.ByTitle(ctx, title)
	})
}
