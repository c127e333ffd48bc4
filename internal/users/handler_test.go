package users

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/handlers"
	"github.com/mwhitfield/placard/pkg/routes"
)

type fakeSystem struct {
	registerFn func(ctx context.Context, cmd RegisterCommand) (*User, error)
	loginFn    func(ctx context.Context, cmd LoginCommand) (*Session, error)
	getFn      func(ctx context.Context, id uuid.UUID) (*User, error)
	guardFn    func(next http.HandlerFunc) http.HandlerFunc
}

func (f *fakeSystem) Handler() *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(f, logger)
}

func (f *fakeSystem) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	return f.registerFn(ctx, cmd)
}

func (f *fakeSystem) Login(ctx context.Context, cmd LoginCommand) (*Session, error) {
	return f.loginFn(ctx, cmd)
}

func (f *fakeSystem) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeSystem) Guard(next http.HandlerFunc) http.HandlerFunc {
	if f.guardFn != nil {
		return f.guardFn(next)
	}
	return next
}

func serve(t *testing.T, sys System) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestRegister(t *testing.T) {
	sys := &fakeSystem{
		registerFn: func(ctx context.Context, cmd RegisterCommand) (*User, error) {
			return &User{
				ID:       uuid.New(),
				Username: cmd.Username,
				Email:    cmd.Email,
				Password: "$2a$10$hash",
			}, nil
		},
	}

	body := `{"username": "dwhitfield", "email": "dana@example.com", "password": "hunter22"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	serve(t, sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "$2a$10$hash") {
		t.Error("password hash leaked into response body")
	}

	var resp handlers.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "user registered successfully" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	sys := &fakeSystem{
		registerFn: func(ctx context.Context, cmd RegisterCommand) (*User, error) {
			t.Fatal("system should not be reached")
			return nil, nil
		},
	}
	mux := serve(t, sys)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username":`},
		{"missing username", `{"email": "dana@example.com", "password": "hunter22"}`},
		{"missing password", `{"username": "dwhitfield", "email": "dana@example.com"}`},
		{"invalid email", `{"username": "dwhitfield", "email": "nope", "password": "hunter22"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(tt.body))
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	sys := &fakeSystem{
		registerFn: func(ctx context.Context, cmd RegisterCommand) (*User, error) {
			return nil, ErrDuplicate
		},
	}

	body := `{"username": "dwhitfield", "email": "dana@example.com", "password": "hunter22"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	serve(t, sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	sys := &fakeSystem{
		loginFn: func(ctx context.Context, cmd LoginCommand) (*Session, error) {
			if cmd.Username != "dwhitfield" || cmd.Password != "hunter22" {
				t.Errorf("command = %+v", cmd)
			}
			return &Session{
				Token: "signed-token",
				User:  User{ID: uuid.New(), Username: cmd.Username},
			}, nil
		},
	}

	body := `{"username": "dwhitfield", "password": "hunter22"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	serve(t, sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "signed-token") {
		t.Error("session token missing from response")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	sys := &fakeSystem{
		loginFn: func(ctx context.Context, cmd LoginCommand) (*Session, error) {
			return nil, ErrInvalidCredentials
		},
	}

	body := `{"username": "dwhitfield", "password": "wrong"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	serve(t, sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestMe(t *testing.T) {
	user := &User{ID: uuid.New(), Username: "dwhitfield"}
	sys := &fakeSystem{
		guardFn: func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), userKey, user)
				next(w, r.WithContext(ctx))
			}
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	serve(t, sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dwhitfield") {
		t.Error("account missing from response")
	}
}

func TestMeWithoutContext(t *testing.T) {
	sys := &fakeSystem{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	serve(t, sys).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case insensitive scheme", "bearer abc.def.ghi", "abc.def.ghi", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"scheme only", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			if ok != tt.ok || got != tt.want {
				t.Errorf("bearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}
