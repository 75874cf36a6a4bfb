package user

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=user

// Repository is the user registry. Insert must be an atomic insert-if-absent:
// of two concurrent inserts for one username exactly one succeeds, the other
// gets ErrDuplicateUsername.
type Repository interface {
	Insert(ctx context.Context, u User) error
	Get(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
}
