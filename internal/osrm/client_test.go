package osrm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yourorg/padondep/internal/config"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(config.OSRMConfig{
		BaseURL: baseURL,
		Profile: "driving",
		Timeout: timeout,
	})
}

func TestRouteOK(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{"distance": 2345.6, "duration": 321.0, "geometry": {"type":"LineString","coordinates":[[-87.073,20.629],[-87.08,20.65]]}}],
			"waypoints": [{"name":"Calle 10","location":[-87.073,20.629]},{"name":"","location":[-87.08,20.65]}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2*time.Second)
	result, err := c.Route(context.Background(), 20.629, -87.073, 20.65, -87.08, "")
	if err != nil {
		t.Fatalf("Route error: %v", err)
	}

	// OSRM espera lng,lat y el perfil por defecto de la config
	if !strings.HasPrefix(gotPath, "/route/v1/driving/-87.073000,20.629000;-87.080000,20.650000") {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
	if result.Routes[0].Distance != 2345.6 {
		t.Errorf("Expected distance 2345.6, got %v", result.Routes[0].Distance)
	}
	if len(result.Waypoints) != 2 {
		t.Errorf("Expected 2 waypoints, got %d", len(result.Waypoints))
	}
}

func TestRouteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2*time.Second)
	_, err := c.Route(context.Background(), 20.629, -87.073, 20.65, -87.08, "")
	if err == nil {
		t.Fatal("Expected error for upstream 500")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("Upstream failure must not report as timeout")
	}
}

func TestRouteNoRouteCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points","routes":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2*time.Second)
	_, err := c.Route(context.Background(), 0, 0, 1, 1, "")
	if err == nil {
		t.Fatal("Expected error for code != Ok")
	}
}

func TestRouteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 50*time.Millisecond)
	_, err := c.Route(context.Background(), 20.629, -87.073, 20.65, -87.08, "")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
}
