package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/evergreenmedia/podcast-api/internal/config"
	"github.com/evergreenmedia/podcast-api/internal/repository"
	"github.com/evergreenmedia/podcast-api/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 30,
		BcryptCost:   bcrypt.MinCost,
	}
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func userRow(id, email, hash, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
		AddRow(id, "Some User", email, hash, role, time.Now().UTC())
}

func TestLoginSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	hash, err := utils.HashPassword("adminpassword", bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("admin@evergreen.com").
		WillReturnRows(userRow("u1", "admin@evergreen.com", hash, "admin"))

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	req, rec := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"admin@evergreen.com","password":"adminpassword"}`)

	require.NoError(t, h.Login(echo.New().NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"access_token"`)
	assert.Contains(t, body, `"token_type":"bearer"`)
	// The password hash must never appear in responses.
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, body, hash)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	hash, err := utils.HashPassword("rightpass", bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("admin@evergreen.com").
		WillReturnRows(userRow("u1", "admin@evergreen.com", hash, "admin"))

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	req, rec := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"admin@evergreen.com","password":"wrongpass"}`)

	require.NoError(t, h.Login(echo.New().NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	req, rec := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`)

	require.NoError(t, h.Login(echo.New().NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Same error body as a wrong password, so accounts cannot be enumerated.
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginMissingFields(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	req, rec := jsonRequest(http.MethodPost, "/v1/auth/login", `{"email":"a@b.com"}`)

	require.NoError(t, h.Login(echo.New().NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
