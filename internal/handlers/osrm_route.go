package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/padondep/internal/cache"
	"github.com/yourorg/padondep/internal/osrm"
	"github.com/yourorg/padondep/internal/validation"
)

// OSRMHandler proxia el proveedor de routing externo. No calcula nada:
// valida, consulta y reenvía distancia/duración/geometría/waypoints.
type OSRMHandler struct {
	client *osrm.Client
	cache  *cache.Cache
}

func NewOSRMHandler(client *osrm.Client, c *cache.Cache) *OSRMHandler {
	return &OSRMHandler{client: client, cache: c}
}

// OSRMRouteResponse es lo que se reenvía al cliente.
type OSRMRouteResponse struct {
	Distance  float64         `json:"distance"`
	Duration  float64         `json:"duration"`
	Geometry  json.RawMessage `json:"geometry"`
	Waypoints []osrm.Waypoint `json:"waypoints"`
}

// GetRoute handles GET /api/osrm-route?origin=lat,lng&dest=lat,lng&profile=.
func (h *OSRMHandler) GetRoute(c *fiber.Ctx) error {
	originLat, originLng, err := parseLatLng(c.Query("origin"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, `Parámetro "origin" inválido, se espera lat,lng`)
	}
	destLat, destLng, err := parseLatLng(c.Query("dest"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, `Parámetro "dest" inválido, se espera lat,lng`)
	}
	if err := validation.ValidateCoordinatePair(originLat, originLng, "origin"); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validation.ValidateCoordinatePair(destLat, destLng, "dest"); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	profile := strings.TrimSpace(c.Query("profile"))

	// El redibujado del mapa repite la misma consulta; el caché evita
	// golpear al proveedor en cada repintado
	key := fmt.Sprintf("osrm:%s|%s|%s", c.Query("origin"), c.Query("dest"), profile)
	if cached, found := h.cache.Get(key); found {
		if resp, ok := cached.(OSRMRouteResponse); ok {
			return c.JSON(resp)
		}
	}

	result, err := h.client.Route(c.Context(), originLat, originLng, destLat, destLng, profile)
	if errors.Is(err, osrm.ErrTimeout) {
		return c.Status(fiber.StatusGatewayTimeout).JSON(errDetail("El servicio de rutas tardó demasiado", err))
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(errDetail("No se pudo calcular la ruta", err))
	}

	resp := OSRMRouteResponse{
		Distance:  result.Routes[0].Distance,
		Duration:  result.Routes[0].Duration,
		Geometry:  result.Routes[0].Geometry,
		Waypoints: result.Waypoints,
	}
	h.cache.SetWithTTL(key, resp, 30*time.Second)

	return c.JSON(resp)
}

func parseLatLng(raw string) (float64, float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected lat,lng, got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
