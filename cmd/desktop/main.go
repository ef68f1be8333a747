package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yourorg/padondep/internal/client"
	"github.com/yourorg/padondep/internal/config"
	"github.com/yourorg/padondep/internal/geo"
	"github.com/yourorg/padondep/internal/models"
)

// Frontend de terminal: reemplaza el mapa por entradas lat,lng pero pasa
// por la misma máquina de estados que usaría una UI gráfica.

func main() {
	cfg := config.Load()
	api := client.NewAPI(cfg.Client.BaseURL)
	session := client.NewSession(api)
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Backend: %s\n", cfg.Client.BaseURL)
	if err := api.Health(); err != nil {
		fmt.Println("Aviso: el backend no responde:", err)
	}

	for {
		if session.CurrentUser() == nil {
			if done := anonymousMenu(reader, api, session); done {
				return
			}
			continue
		}
		if done := mainMenu(reader, api, session, cfg.OSRM.Profile); done {
			return
		}
	}
}

func anonymousMenu(reader *bufio.Reader, api *client.API, session *client.Session) bool {
	fmt.Println("==== PaDondep ====")
	fmt.Println("1) Iniciar sesión")
	fmt.Println("2) Registrarse")
	fmt.Println("3) Salir")
	fmt.Print("Opción: ")

	switch readLine(reader) {
	case "1":
		email := prompt(reader, "Correo: ")
		pass := prompt(reader, "Contraseña: ")
		u, err := session.Login(email, pass)
		if err != nil {
			fmt.Println("Error:", err)
			return false
		}
		fmt.Printf("Bienvenido, %s\n", u.FirstName)
	case "2":
		req := models.CreateUserRequest{
			FirstName: prompt(reader, "Nombre: "),
			LastName:  prompt(reader, "Apellido: "),
			Email:     prompt(reader, "Correo: "),
			Password:  prompt(reader, "Contraseña: "),
		}
		u, err := api.Register(req)
		if err != nil {
			fmt.Println("Error:", err)
			return false
		}
		fmt.Printf("Cuenta creada para %s (id %d). Ahora inicia sesión.\n", u.Email, u.ID)
	case "3":
		fmt.Println("Hasta luego")
		return true
	default:
		fmt.Println("Opción inválida")
	}
	fmt.Println()
	return false
}

func mainMenu(reader *bufio.Reader, api *client.API, session *client.Session, profile string) bool {
	c := session.Controls()
	fmt.Printf("==== PaDondep — %s ====\n", session.CurrentUser().Name)
	fmt.Println(" 1) Marcar origen")
	fmt.Println(" 2) Marcar destino")
	fmt.Println(" 3) Iniciar trazo libre")
	fmt.Println(" 4) Agregar punto al trazo")
	fmt.Println(" 5) Terminar trazo")
	fmt.Println(" 6) Limpiar trazo")
	fmt.Println(" 7) Calcular distancia")
	fmt.Println(" 8) Calcular ruta (proveedor externo)")
	fmt.Println(" 9) Listar rutas guardadas")
	fmt.Printf("10) %s\n", c.SaveLabel)
	fmt.Println("11) Editar ruta")
	fmt.Println("12) Eliminar ruta")
	fmt.Println("13) Mi ubicación")
	fmt.Println("14) Cambiar contraseña")
	fmt.Println("15) Cerrar sesión")
	fmt.Println("16) Salir")
	fmt.Print("Opción: ")

	switch readLine(reader) {
	case "1":
		session.SelectOrigin()
		if p, ok := promptPoint(reader, "Click en el mapa (lat,lng): "); ok {
			session.HandleMapClick(p)
			fmt.Println("Origen marcado")
		}
	case "2":
		session.SelectDest()
		if p, ok := promptPoint(reader, "Click en el mapa (lat,lng): "); ok {
			session.HandleMapClick(p)
			fmt.Println("Destino marcado")
		}
	case "3":
		session.StartDrawing()
		fmt.Println("Trazo iniciado: cada punto agregado se suma a la secuencia")
	case "4":
		if session.Mode() != client.ModeFreeDrawing {
			fmt.Println("Primero inicia el trazo")
			break
		}
		if p, ok := promptPoint(reader, "Punto (lat,lng): "); ok {
			session.HandleMapClick(p)
			fmt.Printf("Puntos en el trazo: %d\n", len(session.DrawnPoints()))
		}
	case "5":
		session.FinishDrawing()
		fmt.Println("Trazo terminado")
	case "6":
		session.ClearDrawing()
		fmt.Println("Trazo descartado")
	case "7":
		if !session.CanCalculate() {
			fmt.Println("Marca origen y destino, o traza al menos dos puntos")
			break
		}
		fmt.Println(session.DistanceInfo())
	case "8":
		doPlanRoute(api, session, profile)
	case "9":
		listRoutes(session)
	case "10":
		name := prompt(reader, "Nombre de la ruta: ")
		saved, err := session.Save(name)
		if err != nil {
			fmt.Println("Error:", err)
			break
		}
		fmt.Printf("Ruta %q guardada (id %d)\n", saved.Name, saved.ID)
	case "11":
		id, ok := promptID(reader)
		if !ok {
			break
		}
		r, err := api.GetRoute(id)
		if err != nil {
			fmt.Println("Error:", err)
			break
		}
		session.BeginEdit(r)
		fmt.Printf("Editando %q: ajusta picks y guarda con la opción 10\n", r.Name)
	case "12":
		id, ok := promptID(reader)
		if !ok {
			break
		}
		err := session.Delete(id, func() bool {
			return strings.EqualFold(prompt(reader, "¿Eliminar? (s/n): "), "s")
		})
		if err != nil {
			fmt.Println("Error:", err)
			break
		}
		fmt.Println("Listo")
	case "13":
		p, err := session.Locate(func() (geo.Point, error) {
			// Sin GPS en terminal: la posición se ingresa a mano
			if p, ok := promptPoint(reader, "Tu posición (lat,lng): "); ok {
				return p, nil
			}
			return geo.Point{}, fmt.Errorf("posición inválida")
		})
		if err != nil {
			fmt.Println("Error:", err)
			break
		}
		fmt.Printf("Ubicación: %.6f, %.6f\n", p.Lat, p.Lng)
	case "14":
		current := prompt(reader, "Contraseña actual: ")
		newPass := prompt(reader, "Contraseña nueva: ")
		if err := api.ChangePassword(session.CurrentUser().ID, current, newPass); err != nil {
			fmt.Println("Error:", err)
			break
		}
		fmt.Println("Contraseña actualizada")
	case "15":
		session.Logout()
		fmt.Println("Sesión cerrada")
	case "16":
		fmt.Println("Hasta luego")
		return true
	default:
		fmt.Println("Opción inválida")
	}
	fmt.Println()
	return false
}

func doPlanRoute(api *client.API, session *client.Session, profile string) {
	origin, dest := session.Origin(), session.Dest()
	if origin == nil || dest == nil {
		fmt.Println("Marca origen y destino primero")
		return
	}
	plan, err := api.PlanRoute(origin.Lat, origin.Lng, dest.Lat, dest.Lng, profile)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Ruta calculada: %s, %.0f s\n", geo.FormatDistance(plan.Distance), plan.Duration)
	for _, wp := range plan.Waypoints {
		if wp.Name != "" {
			fmt.Println("  vía", wp.Name)
		}
	}
}

func listRoutes(session *client.Session) {
	if err := session.ReloadRoutes(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	routes := session.Routes()
	if len(routes) == 0 {
		fmt.Println("No hay rutas guardadas")
		return
	}
	for _, r := range routes {
		fmt.Printf("  [%d] %s  origen=%s  destino=%s\n",
			r.ID, r.Name, formatPair(r.OriginLat, r.OriginLng), formatPair(r.DestLat, r.DestLng))
	}
}

func formatPair(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return "-"
	}
	return fmt.Sprintf("%.6f,%.6f", *lat, *lng)
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	return readLine(reader)
}

func promptPoint(reader *bufio.Reader, label string) (geo.Point, bool) {
	raw := prompt(reader, label)
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		fmt.Println("Formato esperado: lat,lng")
		return geo.Point{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		fmt.Println("Coordenadas inválidas")
		return geo.Point{}, false
	}
	return geo.Point{Lat: lat, Lng: lng}, true
}

func promptID(reader *bufio.Reader) (int64, bool) {
	raw := prompt(reader, "Id de la ruta: ")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fmt.Println("Id inválido")
		return 0, false
	}
	return id, true
}
