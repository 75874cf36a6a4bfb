package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Default returns the built-in shop catalog.
func Default() Collection {
	return Collection{
		{ISBN: "1", Book: Book{Author: "Chinua Achebe", Title: "Things Fall Apart", Reviews: map[string]string{}}},
		{ISBN: "2", Book: Book{Author: "Hans Christian Andersen", Title: "Fairy tales", Reviews: map[string]string{}}},
		{ISBN: "3", Book: Book{Author: "Dante Alighieri", Title: "The Divine Comedy", Reviews: map[string]string{}}},
		{ISBN: "4", Book: Book{Author: "Unknown", Title: "The Epic Of Gilgamesh", Reviews: map[string]string{}}},
		{ISBN: "5", Book: Book{Author: "Unknown", Title: "The Book Of Job", Reviews: map[string]string{}}},
		{ISBN: "6", Book: Book{Author: "Unknown", Title: "One Thousand and One Nights", Reviews: map[string]string{}}},
		{ISBN: "7", Book: Book{Author: "Unknown", Title: "Njál's Saga", Reviews: map[string]string{}}},
		{ISBN: "8", Book: Book{Author: "Jane Austen", Title: "Pride and Prejudice", Reviews: map[string]string{}}},
		{ISBN: "9", Book: Book{Author: "Honoré de Balzac", Title: "Le Père Goriot", Reviews: map[string]string{}}},
		{ISBN: "10", Book: Book{Author: "Samuel Beckett", Title: "Molloy, Malone Dies, The Unnamable, the trilogy", Reviews: map[string]string{}}},
	}
}

// DefaultSource serves the built-in catalog.
type DefaultSource struct{}

func (DefaultSource) Load(ctx context.Context) (Collection, error) {
	return Default(), nil
}

// FileSource reads a JSON object of the form {"<isbn>": {"author", "title", "reviews"}}.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (Collection, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", s.Path, err)
	}
	return c, nil
}
