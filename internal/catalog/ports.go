package catalog

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=catalog

// Repository is the read side of the catalog.
type Repository interface {
	Lookup(isbn string) (Book, bool)
	Entries() Collection
	Len() int
}

// Source loads the initial catalog contents at startup.
type Source interface {
	Load(ctx context.Context) (Collection, error)
}
