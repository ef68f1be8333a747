package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/yourorg/padondep/internal/models"
)

func TestLoginIssuesSessionToken(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")

	out := login(t, app, "ana@test.cl", "clave1234")
	if out.User.Email != "ana@test.cl" {
		t.Fatalf("user = %+v", out.User)
	}
	if out.Token == "" {
		t.Fatal("login debe emitir un token de sesión")
	}
	if out.ExpiresAt == nil {
		t.Fatal("login debe informar la expiración del token")
	}
	if out.User.LastLogin == nil {
		t.Fatal("login debe registrar lastLogin")
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")

	out := login(t, app, "  ANA@TEST.CL  ", "clave1234")
	if out.User.ID == 0 {
		t.Fatalf("user = %+v", out.User)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")

	// Mismo mensaje para contraseña errada y correo inexistente: no se
	// revela cuál de los dos falló
	for _, req := range []models.LoginRequest{
		{Email: "ana@test.cl", Password: "incorrecta"},
		{Email: "nadie@test.cl", Password: "clave1234"},
	} {
		resp := doRequest(t, app, http.MethodPost, "/api/auth/login", req, "")
		wantStatus(t, resp, http.StatusUnauthorized)
		wantErrorMessage(t, resp, "Credenciales inválidas")
	}
}

func TestLoginMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	for _, req := range []models.LoginRequest{
		{Password: "clave1234"},
		{Email: "ana@test.cl"},
		{Email: "   ", Password: "clave1234"},
	} {
		resp := doRequest(t, app, http.MethodPost, "/api/auth/login", req, "")
		wantStatus(t, resp, http.StatusBadRequest)
		wantErrorMessage(t, resp, "Correo y contraseña son obligatorios")
	}
}

func TestLoginMigratesLegacyCredential(t *testing.T) {
	app, mem := newTestApp(t)

	// Fila legado: la credencial quedó guardada en claro
	seeded, err := mem.CreateUser(context.Background(), "Ana Soto", "ana@test.cl", "secreta123")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	login(t, app, "ana@test.cl", "secreta123")

	upgraded, err := mem.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.HasPrefix(upgraded.PassHash, "$2") {
		t.Fatalf("la credencial no se migró a hash: %q", upgraded.PassHash)
	}

	// El segundo login pasa por la vía bcrypt con el hash ya migrado
	login(t, app, "ana@test.cl", "secreta123")

	final, _ := mem.GetUser(context.Background(), seeded.ID)
	if final.PassHash != upgraded.PassHash {
		t.Fatal("el hash no debe cambiar en logins posteriores")
	}
}

func TestLoginRateLimited(t *testing.T) {
	app, _ := newTestApp(t)

	var got429 bool
	for i := 0; i < 12; i++ {
		resp := doRequest(t, app, http.MethodPost, "/api/auth/login", models.LoginRequest{
			Email: "nadie@test.cl", Password: "x",
		}, "")
		if resp.StatusCode == http.StatusTooManyRequests {
			got429 = true
		}
		resp.Body.Close()
	}
	if !got429 {
		t.Fatal("el login debe rechazar tras exceder el límite por minuto")
	}
}

func TestChangePasswordRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")

	resp := doRequest(t, app, http.MethodPut, "/api/users/1/password", models.ChangePasswordRequest{
		CurrentPassword: "clave1234", NewPassword: "nueva1234",
	}, "")
	wantStatus(t, resp, http.StatusUnauthorized)
	wantErrorMessage(t, resp, "Token requerido")

	resp = doRequest(t, app, http.MethodPut, "/api/users/1/password", models.ChangePasswordRequest{
		CurrentPassword: "clave1234", NewPassword: "nueva1234",
	}, "token-falso")
	wantStatus(t, resp, http.StatusUnauthorized)
	wantErrorMessage(t, resp, "Token inválido")
}

func TestChangePasswordMinimumLength(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")
	token := login(t, app, "ana@test.cl", "clave1234").Token

	// 7 caracteres: rechazado sin tocar la credencial
	resp := doRequest(t, app, http.MethodPut, "/api/users/1/password", models.ChangePasswordRequest{
		CurrentPassword: "clave1234", NewPassword: "abcdefg",
	}, token)
	wantStatus(t, resp, http.StatusBadRequest)
	wantErrorMessage(t, resp, "La nueva contraseña debe tener al menos 8 caracteres")

	// 8 caracteres: aceptado
	resp = doRequest(t, app, http.MethodPut, "/api/users/1/password", models.ChangePasswordRequest{
		CurrentPassword: "clave1234", NewPassword: "abcdefgh",
	}, token)
	wantStatus(t, resp, http.StatusNoContent)

	// La contraseña anterior deja de servir
	badResp := doRequest(t, app, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "ana@test.cl", Password: "clave1234",
	}, "")
	wantStatus(t, badResp, http.StatusUnauthorized)

	login(t, app, "ana@test.cl", "abcdefgh")
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")
	token := login(t, app, "ana@test.cl", "clave1234").Token

	resp := doRequest(t, app, http.MethodPut, "/api/users/1/password", models.ChangePasswordRequest{
		CurrentPassword: "incorrecta", NewPassword: "nueva1234",
	}, token)
	wantStatus(t, resp, http.StatusUnauthorized)
	wantErrorMessage(t, resp, "Contraseña actual incorrecta")
}

func TestChangePasswordOnlyOwnAccount(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")
	createUser(t, app, "Beto", "Rojas", "beto@test.cl", "otra1234")
	token := login(t, app, "ana@test.cl", "clave1234").Token

	// El token de Ana no autoriza la cuenta de Beto, ni aunque conozca
	// su contraseña actual
	resp := doRequest(t, app, http.MethodPut, "/api/users/2/password", models.ChangePasswordRequest{
		CurrentPassword: "otra1234", NewPassword: "nueva1234",
	}, token)
	wantStatus(t, resp, http.StatusForbidden)
	wantErrorMessage(t, resp, "No puedes cambiar la contraseña de otro usuario")

	// La credencial de Beto sigue intacta
	login(t, app, "beto@test.cl", "otra1234")
}

func TestChangePasswordUserNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")
	token := login(t, app, "ana@test.cl", "clave1234").Token

	// La cuenta se elimina con el token aún vigente
	resp := doRequest(t, app, http.MethodDelete, "/api/users/1", nil, "")
	wantStatus(t, resp, http.StatusNoContent)

	resp = doRequest(t, app, http.MethodPut, "/api/users/1/password", models.ChangePasswordRequest{
		CurrentPassword: "clave1234", NewPassword: "nueva1234",
	}, token)
	wantStatus(t, resp, http.StatusNotFound)
	wantErrorMessage(t, resp, "Usuario no encontrado")
}
