package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/yourorg/padondep/internal/config"
)

// Connect abre el pool de conexiones MySQL. El pool es acotado: cada query
// adquiere una conexión y la libera implícitamente.
func Connect(cfg config.MySQLConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	return conn, nil
}

// EnsureSchema crea las tablas requeridas si no existen.
func EnsureSchema(conn *sql.DB) error {
	if skip := strings.TrimSpace(os.Getenv("DB_SKIP_SCHEMA")); strings.EqualFold(skip, "true") || skip == "1" {
		log.Printf("EnsureSchema: skipped (DB_SKIP_SCHEMA=%q)", skip)
		return nil
	}

	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS usuario (
			id_usuario INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			nombre VARCHAR(160) NOT NULL,
			email VARCHAR(120) NOT NULL UNIQUE,
			pass_hash VARCHAR(255) NOT NULL,
			activo TINYINT UNSIGNED NOT NULL DEFAULT 1,
			creado_en TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			actualizado_en TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			ultimo_login TIMESTAMP NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS routes (
			id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			origin_lat DECIMAL(10,6) NULL,
			origin_lng DECIMAL(10,6) NULL,
			dest_lat DECIMAL(10,6) NULL,
			dest_lng DECIMAL(10,6) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	return nil
}
