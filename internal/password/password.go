package password

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Servicio de credenciales. Los hashes bcrypt llevan el prefijo "$2";
// cualquier otro valor almacenado se trata como credencial legacy en texto
// plano y se compara directo. La migración al hash la decide el caller
// (verificar nunca muta).

// Hash produce un hash bcrypt con salt por llamada: el mismo texto nunca
// reproduce el mismo hash byte a byte.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	return string(b), err
}

// IsHash indica si el valor almacenado es un hash producido por este
// servicio (marcador estructural bcrypt).
func IsHash(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

// Verify compara el texto plano contra la credencial almacenada.
// Retorna (matched, needsUpgrade): needsUpgrade=true solo cuando la
// credencial era legacy y coincidió, señal de que el caller debe persistir
// un hash fresco (el write-back es oportunista y no fatal si falla).
func Verify(plaintext, stored string) (bool, bool) {
	if IsHash(stored) {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext))
		return err == nil, false
	}
	if stored == "" {
		return false, false
	}
	matched := stored == plaintext
	return matched, matched
}
