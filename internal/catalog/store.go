package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// Store is the in-memory catalog. It is read-only once constructed, so
// concurrent readers need no locking.
type Store struct {
	entries Collection
	index   map[string]int
}

// NewStore builds a store from entries, keeping their order. Identifiers are
// trimmed; empty or duplicate identifiers are rejected.
func NewStore(entries Collection) (*Store, error) {
	s := &Store{
		entries: make(Collection, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := NormalizeISBN(e.ISBN)
		if key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidISBN, e.ISBN)
		}
		if _, exists := s.index[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateISBN, key)
		}
		s.index[key] = len(s.entries)
		s.entries = append(s.entries, Entry{ISBN: key, Book: e.Book.clone()})
	}
	return s, nil
}

// Lookup returns the book stored under isbn. When the literal form is not
// stored, the numeric form of isbn (its leading integer) is tried as well.
func (s *Store) Lookup(isbn string) (Book, bool) {
	if i, ok := s.index[isbn]; ok {
		return s.entries[i].Book.clone(), true
	}
	if n, ok := numericForm(isbn); ok && n != isbn {
		if i, ok := s.index[n]; ok {
			return s.entries[i].Book.clone(), true
		}
	}
	return Book{}, false
}

// Entries returns a copy of the catalog in insertion order.
func (s *Store) Entries() Collection {
	out := make(Collection, len(s.entries))
	for i, e := range s.entries {
		out[i] = Entry{ISBN: e.ISBN, Book: e.Book.clone()}
	}
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}

// NormalizeISBN returns the canonical stored form of an identifier.
func NormalizeISBN(isbn string) string {
	return strings.TrimSpace(isbn)
}

// numericForm parses the leading integer of s the way a lenient integer
// parse would: leading whitespace and a sign are allowed, trailing garbage is
// ignored. "007" becomes "7" and " 12abc" becomes "12".
func numericForm(s string) (string, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return "", false
	}
	digits := strings.TrimLeft(s[:end], "0")
	if digits == "" {
		return "0", true
	}
	if negative {
		digits = "-" + digits
	}
	return digits, true
}
