package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookshop/internal/httpx"
	"bookshop/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestMux(svc *Service) *http.ServeMux {
	mux := http.NewServeMux()
	NewHTTPHandler(svc).RegisterRoutes(mux, httpx.AuthMiddleware(testSecret))
	return mux
}

func TestHTTPHandler_Register(t *testing.T) {
	mux := newTestMux(newTestService())

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"success", `{"username":"alice","password":"secret"}`, http.StatusCreated, "User registered successfully"},
		{"duplicate", `{"username":"alice","password":"other"}`, http.StatusBadRequest, "Username already exists"},
		{"missing both", `{}`, http.StatusBadRequest, "Username is required"},
		{"empty body", ``, http.StatusBadRequest, "Username is required"},
		{"missing password", `{"username":"bob"}`, http.StatusBadRequest, "Password is required"},
		{"malformed", `{"username":`, http.StatusBadRequest, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			mux.ServeHTTP(w, r)

			res := testutil.RecordHTTPResponse(w)
			testutil.AssertResponseCode(t, res.Code, tt.wantCode)
			testutil.AssertResponseBody(t, res.Body, "message", tt.wantMsg)
		})
	}
}

func TestHTTPHandler_Register_InternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo, WithHashCost(bcrypt.MinCost)))

	mockRepo.EXPECT().Get(gomock.Any(), "alice").Return(User{}, ErrNotFound)
	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	w := httptest.NewRecorder()
	handler.Register(w, testutil.NewRequest(http.MethodPost, "/register", map[string]string{"username": "alice", "password": "pw"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHTTPHandler_LoginAndMe(t *testing.T) {
	svc := newTestService()
	mux := newTestMux(svc)
	_, err := svc.Register(t.Context(), "alice", "secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/customer/login", map[string]string{"username": "alice", "password": "secret"}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp loginResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Customer successfully logged in", resp.Message)
	require.NotEmpty(t, resp.Token)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodGet, "/customer/auth/me", nil, resp.Token))
	require.Equal(t, http.StatusOK, w.Code)
	res := testutil.RecordHTTPResponse(w)
	testutil.AssertResponseBody(t, res.Body, "username", "alice")
}

func TestHTTPHandler_Login_Failures(t *testing.T) {
	svc := newTestService()
	mux := newTestMux(svc)
	_, err := svc.Register(t.Context(), "alice", "secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/customer/login", map[string]string{"username": "alice", "password": "wrong"}))
	res := testutil.RecordHTTPResponse(w)
	testutil.AssertResponseCode(t, res.Code, http.StatusUnauthorized)
	testutil.AssertResponseBody(t, res.Body, "message", "Invalid login. Check username and password")

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/customer/login", map[string]string{"password": "secret"}))
	res = testutil.RecordHTTPResponse(w)
	testutil.AssertResponseCode(t, res.Code, http.StatusBadRequest)
	testutil.AssertResponseBody(t, res.Body, "message", "Username is required")
}

func TestHTTPHandler_Me_Unauthorized(t *testing.T) {
	mux := newTestMux(newTestService())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/customer/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodGet, "/customer/auth/me", nil, testutil.GenerateExpiredToken(testSecret, "alice")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token for a user the registry does not know.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodGet, "/customer/auth/me", nil, testutil.GenerateTestToken(testSecret, "ghost", time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
