package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/navigation"
)

type stubSession struct {
	token string
}

func (s stubSession) IsAuthenticated() bool { return s.token != "" }
func (s stubSession) Token() string         { return s.token }

func runRequireSession(t *testing.T, session stubSession, authHeader string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := RequireSession(session, navigation.NewGuard(navigation.DefaultRoutes), domain.RouteHome)
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRequireSession_Authenticated(t *testing.T) {
	called, err := runRequireSession(t, stubSession{token: "token-abc"}, "")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireSession_MatchingBearer(t *testing.T) {
	called, err := runRequireSession(t, stubSession{token: "token-abc"}, "Bearer token-abc")
	if err != nil || !called {
		t.Fatalf("expected pass-through, called=%v err=%v", called, err)
	}
}

func TestRequireSession_Unauthenticated(t *testing.T) {
	called, err := runRequireSession(t, stubSession{}, "")
	assertUnauthorized(t, err)
	if called {
		t.Fatalf("next must not run")
	}
}

func TestRequireSession_WrongBearer(t *testing.T) {
	called, err := runRequireSession(t, stubSession{token: "token-abc"}, "Bearer token-xyz")
	assertUnauthorized(t, err)
	if called {
		t.Fatalf("next must not run")
	}
}

func TestRequireSession_MalformedHeader(t *testing.T) {
	_, err := runRequireSession(t, stubSession{token: "token-abc"}, "token-abc")
	assertUnauthorized(t, err)
}

func TestRequireSession_PublicRoute(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	called := false
	mw := RequireSession(stubSession{}, navigation.NewGuard(navigation.DefaultRoutes), domain.RouteLogin)
	if err := mw(func(echo.Context) error { called = true; return nil })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("public route must not require a session")
	}
}

func runRequireBearer(t *testing.T, session stubSession, authHeader string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	mw := RequireSession(session, navigation.NewGuard(navigation.DefaultRoutes), domain.RouteHome, WithBearerRequired())
	err := mw(func(echo.Context) error { called = true; return nil })(c)
	return called, err
}

func TestRequireSession_BearerRequired_MissingHeader(t *testing.T) {
	called, err := runRequireBearer(t, stubSession{token: "signed-token"}, "")
	assertUnauthorized(t, err)
	if called {
		t.Fatalf("next must not run without a bearer token")
	}
}

func TestRequireSession_BearerRequired_MatchingHeader(t *testing.T) {
	called, err := runRequireBearer(t, stubSession{token: "signed-token"}, "Bearer signed-token")
	if err != nil || !called {
		t.Fatalf("expected pass-through, called=%v err=%v", called, err)
	}
}
