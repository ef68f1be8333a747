package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración externa del sistema.
// Se lee una sola vez en el arranque; el resto del código recibe valores,
// nunca lee variables de entorno directamente.
type Config struct {
	MySQL  MySQLConfig
	OSRM   OSRMConfig
	Server ServerConfig
	Client ClientConfig
}

// MySQLConfig contiene los parámetros de conexión a la base de datos.
type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// OSRMConfig apunta al proveedor de routing externo.
type OSRMConfig struct {
	BaseURL string
	Profile string
	Timeout time.Duration
}

// ServerConfig contiene el puerto del API local.
type ServerConfig struct {
	Port string
}

// ClientConfig contiene la URL base que usa el cliente de escritorio.
type ClientConfig struct {
	BaseURL string
}

// Load lee .env (si existe) y construye la configuración con defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		MySQL: MySQLConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: getEnv("DB_NAME", "padondep"),
		},
		OSRM: OSRMConfig{
			BaseURL: strings.TrimRight(getEnv("OSRM_URL", "https://router.project-osrm.org"), "/"),
			Profile: getEnv("OSRM_PROFILE", "driving"),
			Timeout: time.Duration(getEnvInt("OSRM_TIMEOUT_MS", 10000)) * time.Millisecond,
		},
		Server: ServerConfig{
			Port: getEnv("API_PORT", "4799"),
		},
		Client: ClientConfig{
			BaseURL: strings.TrimRight(getEnv("BASE_URL", "http://127.0.0.1:4799"), "/"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
