package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry pairs a book with the identifier it is stored under.
type Entry struct {
	ISBN string
	Book Book
}

// Collection is an identifier to Book mapping that keeps insertion order.
// It encodes as a JSON object whose keys follow that order.
type Collection []Entry

// Get returns the book stored under isbn.
func (c Collection) Get(isbn string) (Book, bool) {
	for _, e := range c {
		if e.ISBN == isbn {
			return e.Book, true
		}
	}
	return Book{}, false
}

// ISBNs returns the identifiers in order.
func (c Collection) ISBNs() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.ISBN
	}
	return out
}

func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(e.ISBN)
		if err != nil {
			return nil, err
		}
		value, err := marshal(e.Book)
		if err != nil {
			return nil, fmt.Errorf("encode book %q: %w", e.ISBN, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}

	out := Collection{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: unexpected key %v", tok)
		}
		var b Book
		if err := dec.Decode(&b); err != nil {
			return fmt.Errorf("catalog: decode book %q: %w", key, err)
		}
		out = append(out, Entry{ISBN: key, Book: b})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

// marshal encodes v without escaping HTML characters, so nested values render
// the same way the response encoder renders top-level ones.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
