package catalog

import (
	"context"
)

// Service answers catalog queries.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// All returns the whole catalog, which may be empty.
func (s *Service) All(ctx context.Context) (Collection, error) {
	return s.repo.Entries(), nil
}

// ByISBN returns the book stored under isbn.
func (s *Service) ByISBN(ctx context.Context, isbn string) (Book, error) {
	b, ok := s.repo.Lookup(isbn)
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

// ByAuthor returns every book whose author equals author exactly.
func (s *Service) ByAuthor(ctx context.Context, author string) (Collection, error) {
	return s.filter(func(b Book) bool { return b.Author == author }, ErrNoAuthorMatch)
}

// ByTitle returns every book whose title equals title exactly.
func (s *Service) ByTitle(ctx context.Context, title string) (Collection, error) {
	return s.filter(func(b Book) bool { return b.Title == title }, ErrNoTitleMatch)
}

// Reviews returns the reviews of the book stored under isbn.
func (s *Service) Reviews(ctx context.Context, isbn string) (map[string]string, error) {
	b, err := s.ByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return b.Reviews, nil
}

func (s *Service) filter(match func(Book) bool, none error) (Collection, error) {
	var out Collection
	for _, e := range s.repo.Entries() {
		if match(e.Book) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, none
	}
	return out, nil
}
