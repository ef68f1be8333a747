package validation

import (
	"math"
	"testing"
)

func TestValidateLatitude(t *testing.T) {
	if err := ValidateLatitude(20.629, "originLat"); err != nil {
		t.Errorf("Expected valid latitude, got %v", err)
	}
	if err := ValidateLatitude(-91, "originLat"); err == nil {
		t.Error("Expected error for latitude out of range")
	}
	if err := ValidateLatitude(math.NaN(), "originLat"); err == nil {
		t.Error("Expected error for NaN latitude")
	}
	if err := ValidateLatitude(math.Inf(1), "originLat"); err == nil {
		t.Error("Expected error for infinite latitude")
	}
}

func TestValidateLongitude(t *testing.T) {
	if err := ValidateLongitude(-87.073, "originLng"); err != nil {
		t.Errorf("Expected valid longitude, got %v", err)
	}
	if err := ValidateLongitude(181, "originLng"); err == nil {
		t.Error("Expected error for longitude out of range")
	}
	if err := ValidateLongitude(math.NaN(), "originLng"); err == nil {
		t.Error("Expected error for NaN longitude")
	}
}

func TestValidateOptionalPair(t *testing.T) {
	// nil pasa sin error
	if err := ValidateOptionalPair(nil, nil, "origin"); err != nil {
		t.Errorf("Expected nil pair to pass, got %v", err)
	}

	lat := 20.65
	lng := -87.073
	if err := ValidateOptionalPair(&lat, &lng, "origin"); err != nil {
		t.Errorf("Expected complete pair to pass, got %v", err)
	}

	// Medio par es inválido en ambas direcciones
	if err := ValidateOptionalPair(&lat, nil, "dest"); err == nil {
		t.Error("Expected error for lat without lng")
	}
	if err := ValidateOptionalPair(nil, &lng, "dest"); err == nil {
		t.Error("Expected error for lng without lat")
	}

	bad := math.Inf(-1)
	if err := ValidateOptionalPair(&lat, &bad, "dest"); err == nil {
		t.Error("Expected error for infinite longitude in pair")
	}
}
