package geo

import (
	"fmt"
	"math"
)

// Point es un par latitud/longitud en grados.
type Point struct {
	Lat float64
	Lng float64
}

// Distance retorna la distancia de círculo máximo entre dos puntos, en
// metros (haversine).
func Distance(a, b Point) float64 {
	const earthRadius = 6371000 // metros

	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// PathDistance suma la distancia entre puntos consecutivos de la secuencia.
func PathDistance(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// FormatDistance muestra metros redondeados bajo 1000 m y kilómetros con
// dos decimales desde ahí.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
