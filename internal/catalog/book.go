package catalog

import (
	"errors"
	"maps"
)

var (
	// ErrNotFound is returned when no book matches a lookup.
	ErrNotFound = errors.New("Book not found")
	// ErrNoAuthorMatch is returned when an author filter matches nothing.
	ErrNoAuthorMatch error = &notFoundError{msg: "No books found by this author"}
	// ErrNoTitleMatch is returned when a title filter matches nothing.
	ErrNoTitleMatch error = &notFoundError{msg: "No books found with this title"}
	// ErrEmptyCatalog is returned by retrieval strategies that expect at least
	// one book.
	ErrEmptyCatalog = errors.New("Books not found")

	ErrInvalidISBN   = errors.New("invalid isbn")
	ErrDuplicateISBN = errors.New("duplicate isbn")
)

// notFoundError is a not-found condition with its own message.
type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

// Book is a catalog record. Reviews maps a reviewer to the review text.
type Book struct {
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

func (b Book) clone() Book {
	b.Reviews = cloneReviews(b.Reviews)
	return b
}

func cloneReviews(reviews map[string]string) map[string]string {
	if reviews == nil {
		return map[string]string{}
	}
	return maps.Clone(reviews)
}
