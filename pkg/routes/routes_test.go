package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwhitfield/placard/pkg/routes"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/announcement",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: okHandler},
			{Method: "GET", Pattern: "/{id}", Handler: okHandler},
			{Method: "DELETE", Pattern: "/{id}", Handler: okHandler},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"list", "GET", "/announcement"},
		{"single", "GET", "/announcement/123"},
		{"delete", "DELETE", "/announcement/123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
		})
	}
}

func TestMethodMismatch(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/signatory",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: okHandler},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/signatory", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rec.Code)
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/auth",
		Children: []routes.Group{
			{
				Prefix: "/tokens",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/current", Handler: okHandler},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/tokens/current", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("nested route: got %d, want 200", rec.Code)
	}
}
