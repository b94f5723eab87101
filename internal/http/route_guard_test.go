package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func get(t *testing.T, env *testEnv, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRouteGuard_ProtectedRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/dashboard", "/personal-info", "/file-tax"} {
		w := get(t, env, path, "")
		if w.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestRouteGuard_AuthEntryRedirectsAuthenticated(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t, "a@b.com", "ext-1")

	for _, path := range []string{"/login", "/register"} {
		w := get(t, env, path, token)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/dashboard" {
			t.Fatalf("%s: expected redirect to /dashboard, got %q", path, loc)
		}
	}
}

func TestRouteGuard_PassThrough(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t, "a@b.com", "ext-1")

	// Anónimo en rutas de entrada pasa sin redirección.
	if w := get(t, env, "/login", ""); w.Code != http.StatusOK {
		t.Fatalf("anonymous /login: expected 200, got %d", w.Code)
	}
	// Autenticado en rutas protegidas pasa sin redirección.
	if w := get(t, env, "/dashboard", token); w.Code != http.StatusOK {
		t.Fatalf("authenticated /dashboard: expected 200, got %d", w.Code)
	}
	// La raíz nunca se toca.
	if w := get(t, env, "/", ""); w.Code != http.StatusOK {
		t.Fatalf("/: expected 200, got %d", w.Code)
	}
}

func TestRouteGuard_InvalidTokenTreatedAnonymous(t *testing.T) {
	env := newTestEnv(t)

	w := get(t, env, "/dashboard", "not-a-valid-token")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestSessionMiddleware_RefreshesCookie(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t, "a@b.com", "ext-1")

	w := get(t, env, "/dashboard", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cookie := sessionCookieFrom(t, w)
	if cookie == nil || cookie.Value != token {
		t.Fatalf("expected same token re-issued with extended expiry")
	}
	if cookie.MaxAge <= 0 {
		t.Fatalf("expected positive max-age, got %d", cookie.MaxAge)
	}
}
