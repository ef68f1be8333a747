package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/padondep/internal/config"
)

// Cliente para el proveedor de routing externo (OSRM). El sistema solo
// reenvía la respuesta: no hay pathfinding propio.

// ErrTimeout indica que el proveedor no respondió dentro del plazo.
var ErrTimeout = errors.New("osrm: request timed out")

// Client habla con un servidor OSRM remoto.
type Client struct {
	baseURL    string
	profile    string
	httpClient *http.Client
}

// NewClient crea un cliente con base URL, perfil y timeout de la config.
func NewClient(cfg config.OSRMConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		profile: cfg.Profile,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Waypoint es un punto de ajuste retornado por OSRM.
type Waypoint struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"` // [lng, lat]
}

// Route es una ruta calculada: distancia en metros, duración en segundos
// y geometría GeoJSON tal como la entrega OSRM.
type Route struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry json.RawMessage `json:"geometry"`
}

// Result es la respuesta cruda del proveedor.
type Result struct {
	Code      string     `json:"code"`
	Message   string     `json:"message,omitempty"`
	Routes    []Route    `json:"routes"`
	Waypoints []Waypoint `json:"waypoints"`
}

// Route consulta una ruta entre dos puntos. OSRM espera lng,lat.
// profile vacío usa el perfil por defecto de la config.
func (c *Client) Route(ctx context.Context, originLat, originLng, destLat, destLng float64, profile string) (*Result, error) {
	if profile == "" {
		profile = c.profile
	}

	url := fmt.Sprintf("%s/route/v1/%s/%s,%s;%s,%s?overview=full&geometries=geojson",
		c.baseURL, profile,
		formatCoord(originLng), formatCoord(originLat),
		formatCoord(destLng), formatCoord(destLat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("osrm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("osrm: upstream status %d: %s", resp.StatusCode, string(body))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("osrm: decoding response: %w", err)
	}
	if result.Code != "Ok" {
		return nil, fmt.Errorf("osrm: upstream code %q: %s", result.Code, result.Message)
	}
	if len(result.Routes) == 0 {
		return nil, errors.New("osrm: no route in response")
	}

	return &result, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
