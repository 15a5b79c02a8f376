package web_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartbartender/internal/domain"
	"smartbartender/internal/services/credential"
	"smartbartender/internal/store"
	"smartbartender/internal/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	handler http.Handler
	svc     *credential.Service
	files   *store.FileStore
	static  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	home := t.TempDir()
	static := filepath.Join(home, "static")
	require.NoError(t, os.MkdirAll(static, 0o700))

	fs := store.NewFileStore(filepath.Join(home, store.DefaultFileName))
	svc := credential.New(fs, nil, zap.NewNop())
	_, err := svc.EnsureDefaultAdmin(context.Background())
	require.NoError(t, err)

	srv, err := web.New(svc, web.Options{StaticDir: static, SiteURL: "https://example.com/bar"}, zap.NewNop())
	require.NoError(t, err)
	return &fixture{handler: srv.Handler(), svc: svc, files: fs, static: static}
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *fixture) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestFormPages(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"SMART BARTENDER", `action="/login"`, `action="/register"`}},
		{"/register", []string{"Create Account", `name="username"`, `name="password"`, "Show password"}},
		{"/forgot", []string{"Reset Password", `name="new_password"`}},
		{"/login", []string{"Login", `href="/forgot"`, `href="/register"`}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := f.get(t, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			for _, s := range tt.want {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestRegister_Flow(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/register", url.Values{"username": {"alice"}, "password": {"pass1"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success-text")
	assert.Contains(t, w.Body.String(), "created!")
	assert.Contains(t, w.Body.String(), `href="/login"`)

	w = f.post(t, "/register", url.Values{"username": {"alice"}, "password": {"pass2"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already exists.")
	assert.Contains(t, w.Body.String(), "Try another username")

	w = f.post(t, "/register", url.Values{"username": {"bob"}, "password": {"ab"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 4 characters.")

	names, err := f.svc.Usernames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Username{"admin", "alice"}, names)
}

func TestRegister_EscapesUsername(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/register", url.Values{"username": {"<script>x</script>"}, "password": {"pass1"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>x</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestRegister_InvalidUTF8_DoesNotOverwrite(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.RegisterUser(context.Background(), "bob\uFFFD", "victimpw"))

	w := f.post(t, "/register", url.Values{"username": {"bob\xff"}, "password": {"attacker"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already exists.")

	w = f.post(t, "/login", url.Values{"username": {"bob\uFFFD"}, "password": {"victimpw"}})
	assert.Contains(t, w.Body.String(), "Welcome")
}

func TestLogin_Flow(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/login", url.Values{"username": {"admin"}, "password": {"1234"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome, admin!")
	assert.Contains(t, w.Body.String(), `action="https://example.com/bar"`)
	assert.Contains(t, w.Body.String(), `action="/logout"`)

	w = f.post(t, "/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
	assert.NotContains(t, w.Body.String(), "Welcome")

	w = f.post(t, "/login", url.Values{"username": {"ghost"}, "password": {"1234"}})
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestForgot_Flow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w := f.post(t, "/forgot", url.Values{"username": {"nouser"}, "new_password": {"newpass1"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username not found.")

	w = f.post(t, "/forgot", url.Values{"username": {"admin"}, "new_password": {"abc"}})
	assert.Contains(t, w.Body.String(), "Password must be at least 4 characters.")
	assert.Contains(t, w.Body.String(), `href="/forgot"`)

	w = f.post(t, "/forgot", url.Values{"username": {"admin"}, "new_password": {"newpass1"}})
	assert.Contains(t, w.Body.String(), "Password reset successfully!")

	ok, err := f.svc.Authenticate(ctx, "admin", "newpass1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.svc.Authenticate(ctx, "admin", "1234")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMissingFields_BadRequest(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		path string
		form url.Values
	}{
		{"/register", url.Values{"username": {"alice"}}},
		{"/register", url.Values{"password": {"pass1"}}},
		{"/login", url.Values{"username": {""}, "password": {"pass1"}}},
		{"/forgot", url.Values{"username": {"admin"}, "password": {"wrong-field"}}},
	}
	for _, tt := range tests {
		w := f.post(t, tt.path, tt.form)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %v", tt.path, tt.form)
		assert.Contains(t, w.Body.String(), "Please fill in every field.")
	}
}

func TestLogout_Redirects(t *testing.T) {
	f := newFixture(t)
	w := f.get(t, "/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestStaticFiles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.static, "hello.txt"), []byte("hi"), 0o600))

	w := f.get(t, "/static/hello.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", w.Body.String())

	w = f.get(t, "/static/missing.png")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoute_NotFound(t *testing.T) {
	f := newFixture(t)
	w := f.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found.")
}

func TestCorruptStore_InternalError(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.files.Path(), []byte("{oops"), 0o600))

	for _, path := range []string{"/register", "/login"} {
		w := f.post(t, path, url.Values{"username": {"alice"}, "password": {"pass1"}})
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), "account store is unavailable")
	}
	w := f.post(t, "/forgot", url.Values{"username": {"alice"}, "new_password": {"pass1"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	raw, err := os.ReadFile(f.files.Path())
	require.NoError(t, err)
	assert.Equal(t, "{oops", string(raw))
}

func TestNew_Defaults(t *testing.T) {
	svc := credential.New(store.NewMemoryStore(nil), nil, nil)
	_, err := svc.EnsureDefaultAdmin(context.Background())
	require.NoError(t, err)

	srv, err := web.New(svc, web.Options{}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(url.Values{"username": {"admin"}, "password": {"1234"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), web.DefaultSiteURL)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	svc := credential.New(store.NewMemoryStore(nil), nil, nil)
	srv, err := web.New(svc, web.Options{ShutdownTimeout: time.Second}, zap.NewNop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "SMART BARTENDER")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
