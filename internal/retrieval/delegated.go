package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"bookshop/internal/catalog"
	"bookshop/internal/platform/catalogapi"
)

// Upstream fetches a path from a service exposing the plain catalog routes.
type Upstream interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// UpstreamError is any delegated-call failure other than a remote not-found.
type UpstreamError struct {
	Path   string
	Status int // 0 when no response was received
	Err    error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Delegated answers by calling the plain routes of an equivalent service and
// relaying the response body untouched.
type Delegated struct {
	upstream Upstream
}

func NewDelegated(upstream Upstream) *Delegated {
	return &Delegated{upstream: upstream}
}

// Books has no not-found outcome: any remote failure is an UpstreamError.
// An empty remote catalog fails with catalog.ErrEmptyCatalog, as Local does.
func (d *Delegated) Books(ctx context.Context) *Promise[json.RawMessage] {
	return d.fetch(ctx, "/", nil, requireBooks)
}

func (d *Delegated) Book(ctx context.Context, isbn string) *Promise[json.RawMessage] {
	return d.fetch(ctx, "/isbn/"+url.PathEscape(isbn), catalog.ErrNotFound, nil)
}

func (d *Delegated) ByAuthor(ctx context.Context, author string) *Promise[json.RawMessage] {
	return d.fetch(ctx, "/author/"+url.PathEscape(author), catalog.ErrNoAuthorMatch, nil)
}

func (d *Delegated) ByTitle(ctx context.Context, title string) *Promise[json.RawMessage] {
	return d.fetch(ctx, "/title/"+url.PathEscape(title), catalog.ErrNoTitleMatch, nil)
}

func requireBooks(body []byte) error {
	var books catalog.Collection
	if err := json.Unmarshal(body, &books); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	if len(books) == 0 {
		return catalog.ErrEmptyCatalog
	}
	return nil
}

// fetch relays the body at path. check, when set, vets a successful body.
func (d *Delegated) fetch(ctx context.Context, path string, notFound error, check func([]byte) error) *Promise[json.RawMessage] {
	return Defer(0, func() (json.RawMessage, error) {
		body, err := d.upstream.Get(ctx, path)
		if err == nil {
			if check != nil {
				if err := check(body); err != nil {
					return nil, err
				}
			}
			return json.RawMessage(body), nil
		}

		var se *catalogapi.StatusError
		status := 0
		if errors.As(err, &se) {
			status = se.StatusCode
			if status == http.StatusNotFound && notFound != nil {
				return nil, notFound
			}
		}
		return nil, &UpstreamError{Path: path, Status: status, Err: err}
	})
}
