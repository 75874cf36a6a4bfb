package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bookshop/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// RegisterRoutes mounts the customer routes. requireAuth guards /customer/auth/*.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /customer/login", h.Login)
	mux.Handle("GET /customer/auth/me", requireAuth(http.HandlerFunc(h.Me)))
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// decodeCredentials treats an empty body as a request with no fields.
func decodeCredentials(r *http.Request) (credentialsReq, error) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return credentialsReq{}, err
	}
	return req, nil
}

// Register handles POST /register
// @Summary Register a new customer
// @Tags users
// @Accept json
// @Produce json
// @Param request body credentialsReq true "Registration request"
// @Success 201 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		httpx.JSONMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		var missing *MissingFieldError
		switch {
		case errors.As(err, &missing):
			httpx.JSONMessage(w, http.StatusBadRequest, missing.Error())
		case errors.Is(err, ErrDuplicateUsername):
			httpx.JSONMessage(w, http.StatusBadRequest, "Username already exists")
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	httpx.JSONMessage(w, http.StatusCreated, "User registered successfully")
}

// Login handles POST /customer/login
// @Summary Customer login
// @Tags users
// @Accept json
// @Produce json
// @Param request body credentialsReq true "Login request"
// @Success 200 {object} loginResp
// @Failure 400 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.MessageResponse
// @Router /customer/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		httpx.JSONMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		var missing *MissingFieldError
		switch {
		case errors.As(err, &missing):
			httpx.JSONMessage(w, http.StatusBadRequest, missing.Error())
		case errors.Is(err, ErrInvalidCredentials):
			httpx.JSONMessage(w, http.StatusUnauthorized, "Invalid login. Check username and password")
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, loginResp{Message: "Customer successfully logged in", Token: token})
}

// Me handles GET /customer/auth/me
// @Summary Current customer
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]any
// @Failure 401 {object} httpx.MessageResponse
// @Router /customer/auth/me [get]
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	username := httpx.UsernameFrom(r)
	if username == "" {
		httpx.JSONMessage(w, http.StatusUnauthorized, "User not logged in")
		return
	}

	u, err := h.service.Get(r.Context(), username)
	if err != nil {
		httpx.JSONMessage(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"username":   u.Username,
		"created_at": u.CreatedAt,
	})
}
