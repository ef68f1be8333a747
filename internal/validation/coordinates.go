package validation

import (
	"fmt"
	"math"
)

// CoordinateError representa un error de validación de coordenadas
type CoordinateError struct {
	Field   string
	Value   float64
	Message string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s (valor: %.6f)", e.Field, e.Message, e.Value)
}

// ValidateLatitude valida una coordenada de latitud
func ValidateLatitude(lat float64, fieldName string) error {
	if math.IsNaN(lat) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lat,
			Message: "valor NaN no permitido",
		}
	}

	if math.IsInf(lat, 0) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lat,
			Message: "valor infinito no permitido",
		}
	}

	if lat < -90 || lat > 90 {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lat,
			Message: "debe estar entre -90 y 90",
		}
	}

	return nil
}

// ValidateLongitude valida una coordenada de longitud
func ValidateLongitude(lng float64, fieldName string) error {
	if math.IsNaN(lng) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lng,
			Message: "valor NaN no permitido",
		}
	}

	if math.IsInf(lng, 0) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lng,
			Message: "valor infinito no permitido",
		}
	}

	if lng < -180 || lng > 180 {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lng,
			Message: "debe estar entre -180 y 180",
		}
	}

	return nil
}

// ValidateCoordinatePair valida un par de coordenadas (lat, lng)
func ValidateCoordinatePair(lat, lng float64, prefix string) error {
	if err := ValidateLatitude(lat, prefix+"Lat"); err != nil {
		return err
	}

	if err := ValidateLongitude(lng, prefix+"Lng"); err != nil {
		return err
	}

	return nil
}

// ValidateOptionalPair valida un par opcional de coordenadas: ambos nil
// pasa, medio par (solo lat o solo lng) es inválido, y un par completo
// debe ser finito y estar en rango.
func ValidateOptionalPair(lat, lng *float64, prefix string) error {
	if lat == nil && lng == nil {
		return nil
	}

	if lng == nil {
		return &CoordinateError{
			Field:   prefix + "Lng",
			Value:   *lat,
			Message: "par de coordenadas incompleto",
		}
	}
	if lat == nil {
		return &CoordinateError{
			Field:   prefix + "Lat",
			Value:   *lng,
			Message: "par de coordenadas incompleto",
		}
	}

	return ValidateCoordinatePair(*lat, *lng, prefix)
}
