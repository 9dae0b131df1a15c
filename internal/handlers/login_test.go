package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/employwise/console/internal/api"
	"github.com/employwise/console/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ew_session" {
			return c
		}
	}
	return nil
}

func TestAuthHandler_ShowLogin(t *testing.T) {
	handler, _ := newTestAuthHandler(&services.MockUserAPI{})

	rec := httptest.NewRecorder()
	handler.ShowLogin(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign In")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &services.MockUserAPI{
		LoginFunc: func(ctx context.Context, creds api.Credentials) (string, error) {
			return "QpwL5tke4Pnpja7X4", nil
		},
	}
	handler, _ := newTestAuthHandler(mock)

	rec := httptest.NewRecorder()
	handler.Login(rec, newFormRequest(t, "/login", url.Values{
		"email":    {"eve.holt@reqres.in"},
		"password": {"cityslicka"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Login successful!")
	assert.Contains(t, body, `content="2;url=/users"`)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "expected a session cookie on successful login")
	assert.NotEmpty(t, cookie.Value)
	// Without remember-me the cookie lives only for the browser session
	assert.Zero(t, cookie.MaxAge)
}

func TestAuthHandler_Login_RememberMePersistsCookie(t *testing.T) {
	mock := &services.MockUserAPI{
		LoginFunc: func(ctx context.Context, creds api.Credentials) (string, error) {
			return "QpwL5tke4Pnpja7X4", nil
		},
	}
	handler, _ := newTestAuthHandler(mock)

	rec := httptest.NewRecorder()
	handler.Login(rec, newFormRequest(t, "/login", url.Values{
		"email":       {"eve.holt@reqres.in"},
		"password":    {"cityslicka"},
		"remember_me": {"true"},
	}))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, int((24 * 60 * 60)), cookie.MaxAge)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler, _ := newTestAuthHandler(&services.MockUserAPI{
		LoginFunc: func(ctx context.Context, creds api.Credentials) (string, error) {
			return "", &api.RequestError{StatusCode: 400, Body: `{"error":"user not found"}`}
		},
	})

	rec := httptest.NewRecorder()
	handler.Login(rec, newFormRequest(t, "/login", url.Values{
		"email":    {"wrong@reqres.in"},
		"password": {"nope"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid credentials")
	// The remote error body never reaches the page
	assert.NotContains(t, body, "user not found")
	// The submitted email stays in the form
	assert.Contains(t, body, `value="wrong@reqres.in"`)
	assert.Nil(t, sessionCookie(rec))
}

func TestAuthHandler_Login_ValidationFailureSkipsAPI(t *testing.T) {
	called := false
	handler, _ := newTestAuthHandler(&services.MockUserAPI{
		LoginFunc: func(ctx context.Context, creds api.Credentials) (string, error) {
			called = true
			return "token", nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Login(rec, newFormRequest(t, "/login", url.Values{
		"email":    {"not-an-email"},
		"password": {"cityslicka"},
	}))

	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.False(t, called, "malformed submissions must not reach the API")
}

func TestAuthHandler_Logout(t *testing.T) {
	handler, _ := newTestAuthHandler(&services.MockUserAPI{})

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)

	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ew_notice" {
			flash = c
		}
	}
	require.NotNil(t, flash, "expected the logout confirmation flash")
}
