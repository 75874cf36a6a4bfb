package retrieval

import (
	"context"
	"errors"
	"net/http"

	"bookshop/internal/catalog"
	"bookshop/internal/httpx"
)

// failure holds the response messages of one lookup kind.
type failure struct {
	notFound string
	failed   string
}

var (
	booksFailure  = failure{notFound: "Error retrieving books", failed: "Error retrieving books"}
	bookFailure   = failure{notFound: "Book not found", failed: "Error retrieving book details"}
	authorFailure = failure{notFound: "No books found by this author", failed: "Error retrieving book details by author"}
	titleFailure  = failure{notFound: "No books found with this title", failed: "Error retrieving book details by title"}
)

type HTTPHandler struct {
	local     *Local
	delegated *Delegated
}

func NewHTTPHandler(local *Local, delegated *Delegated) *HTTPHandler {
	return &HTTPHandler{local: local, delegated: delegated}
}

// RegisterRoutes mounts the three calling conventions for every lookup:
// -promise settles through callbacks, -async awaits, -axios delegates over HTTP.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /books-promise", h.BooksPromise)
	mux.HandleFunc("GET /books-async", h.BooksAsync)
	mux.HandleFunc("GET /books-axios", h.BooksDelegated)

	mux.HandleFunc("GET /isbn-promise/{isbn}", h.BookPromise)
	mux.HandleFunc("GET /isbn-async/{isbn}", h.BookAsync)
	mux.HandleFunc("GET /isbn-axios/{isbn}", h.BookDelegated)

	mux.HandleFunc("GET /author-promise/{author}", h.AuthorPromise)
	mux.HandleFunc("GET /author-async/{author}", h.AuthorAsync)
	mux.HandleFunc("GET /author-axios/{author}", h.AuthorDelegated)

	mux.HandleFunc("GET /title-promise/{title}", h.TitlePromise)
	mux.HandleFunc("GET /title-async/{title}", h.TitleAsync)
	mux.HandleFunc("GET /title-axios/{title}", h.TitleDelegated)
}

// BooksPromise handles GET /books-promise
// @Summary List the catalog (callback continuations)
// @Tags retrieval
// @Produce json
// @Success 200 {object} catalog.Collection
// @Failure 500 {object} httpx.MessageResponse
// @Router /books-promise [get]
func (h *HTTPHandler) BooksPromise(w http.ResponseWriter, r *http.Request) {
	settle(w, h.local.Books(r.Context()), booksFailure)
}

// BooksAsync handles GET /books-async
// @Summary List the catalog (awaited)
// @Tags retrieval
// @Produce json
// @Success 200 {object} catalog.Collection
// @Failure 500 {object} httpx.MessageResponse
// @Router /books-async [get]
func (h *HTTPHandler) BooksAsync(w http.ResponseWriter, r *http.Request) {
	await(w, r, h.local.Books(r.Context()), booksFailure)
}

// BooksDelegated handles GET /books-axios
// @Summary List the catalog (delegated over HTTP)
// @Tags retrieval
// @Produce json
// @Success 200 {object} catalog.Collection
// @Failure 500 {object} httpx.MessageResponse
// @Router /books-axios [get]
func (h *HTTPHandler) BooksDelegated(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.delegated.Books(r.Context()), booksFailure)
}

// BookPromise handles GET /isbn-promise/{isbn}
// @Summary Get book by ISBN (callback continuations)
// @Tags retrieval
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} catalog.Book
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /isbn-promise/{isbn} [get]
func (h *HTTPHandler) BookPromise(w http.ResponseWriter, r *http.Request) {
	settle(w, h.local.Book(r.Context(), r.PathValue("isbn")), bookFailure)
}

// BookAsync handles GET /isbn-async/{isbn}
// @Summary Get book by ISBN (awaited)
// @Tags retrieval
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} catalog.Book
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /isbn-async/{isbn} [get]
func (h *HTTPHandler) BookAsync(w http.ResponseWriter, r *http.Request) {
	await(w, r, h.local.Book(r.Context(), r.PathValue("isbn")), bookFailure)
}

// BookDelegated handles GET /isbn-axios/{isbn}
// @Summary Get book by ISBN (delegated over HTTP)
// @Tags retrieval
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} catalog.Book
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /isbn-axios/{isbn} [get]
func (h *HTTPHandler) BookDelegated(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.delegated.Book(r.Context(), r.PathValue("isbn")), bookFailure)
}

// AuthorPromise handles GET /author-promise/{author}
// @Summary List books by author (callback continuations)
// @Tags retrieval
// @Produce json
// @Param author path string true "Exact author name"
// @Success 200 {object} catalog.Collection
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /author-promise/{author} [get]
func (h *HTTPHandler) AuthorPromise(w http.ResponseWriter, r *http.Request) {
	settle(w, h.local.ByAuthor(r.Context(), r.PathValue("author")), authorFailure)
}

// AuthorAsync handles GET /author-async/{author}
// @Summary List books by author (awaited)
// @Tags retrieval
// @Produce json
// @Param author path string true "Exact author name"
// @Success 200 {object} catalog.Collection
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /author-async/{author} [get]
func (h *HTTPHandler) AuthorAsync(w http.ResponseWriter, r *http.Request) {
	await(w, r, h.local.ByAuthor(r.Context(), r.PathValue("author")), authorFailure)
}

// AuthorDelegated handles GET /author-axios/{author}
// @Summary List books by author (delegated over HTTP)
// @Tags retrieval
// @Produce json
// @Param author path string true "Exact author name"
// @Success 200 {object} catalog.Collection
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /author-axios/{author} [get]
func (h *HTTPHandler) AuthorDelegated(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.delegated.ByAuthor(r.Context(), r.PathValue("author")), authorFailure)
}

// TitlePromise handles GET /title-promise/{title}
// @Summary List books by title (callback continuations)
// @Tags retrieval
// @Produce json
// @Param title path string true "Exact title"
// @Success 200 {object} catalog.Collection
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /title-promise/{title} [get]
func (h *HTTPHandler) TitlePromise(w http.ResponseWriter, r *http.Request) {
	settle(w, h.local.ByTitle(r.Context(), r.PathValue("title")), titleFailure)
}

// TitleAsync handles GET /title-async/{title}
// @Summary List books by title (awaited)
// @Tags retrieval
// @Produce json
// @Param title path string true "Exact title"
// @Success 200 {object} catalog.Collection
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /title-async/{title} [get]
func (h *HTTPHandler) TitleAsync(w http.ResponseWriter, r *http.Request) {
	await(w, r, h.local.ByTitle(r.Context(), r.PathValue("title")), titleFailure)
}

// TitleDelegated handles GET /title-axios/{title}
// @Summary List books by title (delegated over HTTP)
// @Tags retrieval
// @Produce json
// @Param title path string true "Exact title"
// @Success 200 {object} catalog.Collection
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /title-axios/{title} [get]
func (h *HTTPHandler) TitleDelegated(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.delegated.ByTitle(r.Context(), r.PathValue("title")), titleFailure)
}

// settle writes the response from the promise's callbacks. The handler must
// not return before they ran, so it waits on Then's channel.
func settle[T any](w http.ResponseWriter, p *Promise[T], f failure) {
	<-p.Then(
		func(v T) { httpx.JSON(w, http.StatusOK, v) },
		func(err error) { writeFailure(w, err, f, true) },
	)
}

func await[T any](w http.ResponseWriter, r *http.Request, p *Promise[T], f failure) {
	v, err := p.Await(r.Context())
	if err != nil {
		if clientGone(r, err) {
			return
		}
		writeFailure(w, err, f, true)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

// relay is await for delegated results: a remote not-found carries no detail.
func relay[T any](w http.ResponseWriter, r *http.Request, p *Promise[T], f failure) {
	v, err := p.Await(r.Context())
	if err != nil {
		if clientGone(r, err) {
			return
		}
		f.failed += " with Axios"
		writeFailure(w, err, f, false)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func writeFailure(w http.ResponseWriter, err error, f failure, detail bool) {
	if errors.Is(err, catalog.ErrNotFound) {
		if detail {
			httpx.JSONError(w, http.StatusNotFound, f.notFound, err)
		} else {
			httpx.JSONMessage(w, http.StatusNotFound, f.notFound)
		}
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, f.failed, err)
}

func clientGone(r *http.Request, err error) bool {
	return r.Context().Err() != nil && errors.Is(err, context.Canceled)
}
