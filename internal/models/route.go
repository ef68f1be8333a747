package models

import "time"

// Route representa una fila de la tabla `routes`.
// Las coordenadas son opcionales: una ruta puede guardarse solo con nombre.
type Route struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OriginLat *float64  `json:"origin_lat"`
	OriginLng *float64  `json:"origin_lng"`
	DestLat   *float64  `json:"dest_lat"`
	DestLng   *float64  `json:"dest_lng"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoutePayload es el cuerpo de POST/PUT de rutas. El update es un
// overwrite completo: los campos de coordenadas omitidos quedan en NULL.
type RoutePayload struct {
	Name      string   `json:"name"`
	OriginLat *float64 `json:"originLat"`
	OriginLng *float64 `json:"originLng"`
	DestLat   *float64 `json:"destLat"`
	DestLng   *float64 `json:"destLng"`
}
