package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/yourorg/padondep/internal/config"
	appdb "github.com/yourorg/padondep/internal/db"
	"github.com/yourorg/padondep/internal/osrm"
	"github.com/yourorg/padondep/internal/routes"
	"github.com/yourorg/padondep/internal/store"
)

func main() {
	cfg := config.Load()

	app := fiber.New()
	app.Use(logger.New())

	// El renderer corre en el mismo equipo; CORS abierto como en el
	// shell de escritorio original
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// ============================================================
	// DB CONNECTION
	// ============================================================
	conn, err := appdb.Connect(cfg.MySQL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	for i := 0; ; i++ {
		if err := appdb.EnsureSchema(conn); err != nil {
			if i >= 5 {
				log.Fatalf("ensure schema error: %v", err)
			}
			log.Printf("ensure schema error: %v (retrying in 5s)", err)
			time.Sleep(5 * time.Second)
			continue
		}
		break
	}
	log.Printf("Conectado a MySQL (%s:%s) base %s", cfg.MySQL.Host, cfg.MySQL.Port, cfg.MySQL.Database)

	st := store.NewMySQL(conn)
	osrmClient := osrm.NewClient(cfg.OSRM)
	routes.Register(app, st, conn, osrmClient)

	// ============================================================
	// GRACEFUL SHUTDOWN
	// ============================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Señal de terminación recibida, cerrando servidor...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error cerrando servidor: %v", err)
		}
		if err := conn.Close(); err != nil {
			log.Printf("Error cerrando pool: %v", err)
		}
	}()

	log.Printf("API local escuchando en http://localhost:%s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
