package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ac_remote_control/internal/service"
)

func getWithOrigin(r http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantCode   int
		wantHeader string
	}{
		{"listed origin", []string{"http://dash.local"}, "http://dash.local", http.StatusOK, "http://dash.local"},
		{"wildcard", []string{"*"}, "http://anything.local", http.StatusOK, "*"},
		{"unlisted origin", []string{"http://dash.local"}, "http://evil.local", http.StatusForbidden, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewHandler(&service.Service{}, nil, nil).AllowOrigins(tc.origins...).InitRoutes()
			w := getWithOrigin(r, tc.origin)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d", w.Code, tc.wantCode)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.wantHeader {
				t.Fatalf("allow-origin=%q want %q", got, tc.wantHeader)
			}
		})
	}
}

func TestCORS_DisabledByDefault(t *testing.T) {
	w := getWithOrigin(newTestRouter(&service.Service{}), "http://dash.local")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
