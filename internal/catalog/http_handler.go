package catalog

import (
	"errors"
	"net/http"

	"bookshop/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// RegisterRoutes mounts the plain catalog routes on mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.List)
	mux.HandleFunc("GET /isbn/{isbn}", h.GetByISBN)
	mux.HandleFunc("GET /author/{author}", h.ListByAuthor)
	mux.HandleFunc("GET /title/{title}", h.ListByTitle)
	mux.HandleFunc("GET /review/{isbn}", h.GetReviews)
}

// List handles GET /
// @Summary List the catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} Collection
// @Failure 500 {object} httpx.MessageResponse
// @Router / [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.All(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Error retrieving books", err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetByISBN handles GET /isbn/{isbn}
// @Summary Get book by ISBN
// @Tags catalog
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.MessageResponse
// @Router /isbn/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.ByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.writeLookupError(w, err, "Book not found", "Error retrieving book details")
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

// ListByAuthor handles GET /author/{author}
// @Summary List books by author
// @Tags catalog
// @Produce json
// @Param author path string true "Exact author name"
// @Success 200 {object} Collection
// @Failure 404 {object} httpx.MessageResponse
// @Router /author/{author} [get]
func (h *HTTPHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ByAuthor(r.Context(), r.PathValue("author"))
	if err != nil {
		h.writeLookupError(w, err, "No books found by this author", "Error retrieving books by author")
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// ListByTitle handles GET /title/{title}
// @Summary List books by title
// @Tags catalog
// @Produce json
// @Param title path string true "Exact title"
// @Success 200 {object} Collection
// @Failure 404 {object} httpx.MessageResponse
// @Router /title/{title} [get]
func (h *HTTPHandler) ListByTitle(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ByTitle(r.Context(), r.PathValue("title"))
	if err != nil {
		h.writeLookupError(w, err, "No books found with this title", "Error retrieving books by title")
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetReviews handles GET /review/{isbn}
// @Summary Get the reviews of a book
// @Tags catalog
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httpx.MessageResponse
// @Router /review/{isbn} [get]
func (h *HTTPHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.Reviews(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.writeLookupError(w, err, "Book not found", "Error retrieving reviews")
		return
	}
	httpx.JSON(w, http.StatusOK, reviews)
}

func (h *HTTPHandler) writeLookupError(w http.ResponseWriter, err error, notFound, failure string) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONMessage(w, http.StatusNotFound, notFound)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, failure, err)
}
