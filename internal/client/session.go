package client

import (
	"errors"
	"time"

	"github.com/yourorg/padondep/internal/cache"
	"github.com/yourorg/padondep/internal/geo"
	"github.com/yourorg/padondep/internal/models"
)

// Service es la porción del API que la sesión necesita. *API la satisface;
// los tests pueden sustituirla por un doble.
type Service interface {
	Login(email, pass string) (models.UserDTO, error)
	ClearToken()
	ListRoutes() ([]models.Route, error)
	CreateRoute(p models.RoutePayload) (models.Route, error)
	UpdateRoute(id int64, p models.RoutePayload) (models.Route, error)
	DeleteRoute(id int64) error
}

// SelectionMode indica qué captura el próximo click sobre el mapa.
// Los modos de selección son mutuamente excluyentes: activar uno
// cancela el otro.
type SelectionMode int

const (
	// ModeNone: los clicks sobre el mapa se ignoran.
	ModeNone SelectionMode = iota
	// ModeSelectingOrigin: el próximo click fija el origen.
	ModeSelectingOrigin
	// ModeSelectingDest: el próximo click fija el destino.
	ModeSelectingDest
	// ModeFreeDrawing: cada click agrega un punto al trazo libre.
	ModeFreeDrawing
)

const (
	saveLabelCreate = "Guardar ruta"
	saveLabelUpdate = "Actualizar ruta"
)

// Controls refleja el estado habilitado/deshabilitado de los botones del
// mapa, para que la UI lo pinte sin reconstruirlo.
type Controls struct {
	StartDrawEnabled  bool
	FinishDrawEnabled bool
	ClearDrawEnabled  bool
	CalculateEnabled  bool
	LocateEnabled     bool
	SaveLabel         string
}

// ErrNotAuthenticated se retorna al operar sin sesión iniciada.
var ErrNotAuthenticated = errors.New("sesión no iniciada")

// ErrLocateBusy indica que ya hay una geolocalización en curso.
var ErrLocateBusy = errors.New("geolocalización en curso")

// Session es todo el estado de interacción del cliente en un solo lugar:
// usuario autenticado, modo de selección, picks de origen/destino, trazo
// libre, ruta en edición y la última lista de rutas cargada.
type Session struct {
	api Service

	currentUser *models.UserDTO

	mode           SelectionMode
	origin         *geo.Point
	dest           *geo.Point
	drawnPoints    []geo.Point
	editingRouteID *int64

	routes []models.Route

	controls Controls

	// userCache guarda el usuario vigente para lecturas rápidas de la UI.
	userCache *cache.Cache

	locateGrace        time.Duration
	locateBlockedUntil time.Time
}

// NewSession crea una sesión ociosa sin usuario.
func NewSession(api Service) *Session {
	s := &Session{
		api:         api,
		userCache:   cache.New(time.Hour, 10*time.Minute),
		locateGrace: 500 * time.Millisecond,
	}
	s.resetInteraction()
	return s
}

func (s *Session) resetInteraction() {
	s.mode = ModeNone
	s.origin = nil
	s.dest = nil
	s.drawnPoints = nil
	s.editingRouteID = nil
	s.locateBlockedUntil = time.Time{}
	s.controls = Controls{
		StartDrawEnabled: true,
		SaveLabel:        saveLabelCreate,
	}
}

func (s *Session) refreshCalculate() {
	s.controls.CalculateEnabled = s.CanCalculate()
}

// CurrentUser retorna el usuario autenticado, o nil.
func (s *Session) CurrentUser() *models.UserDTO {
	return s.currentUser
}

// Mode retorna el modo de selección activo.
func (s *Session) Mode() SelectionMode {
	return s.mode
}

// Controls retorna el estado actual de los botones. La habilitación de
// geolocalización se deriva del deadline en el momento de la lectura.
func (s *Session) Controls() Controls {
	c := s.controls
	c.LocateEnabled = !time.Now().Before(s.locateBlockedUntil)
	return c
}

// Origin retorna el pick de origen, o nil.
func (s *Session) Origin() *geo.Point {
	return s.origin
}

// Dest retorna el pick de destino, o nil.
func (s *Session) Dest() *geo.Point {
	return s.dest
}

// DrawnPoints retorna el trazo libre acumulado.
func (s *Session) DrawnPoints() []geo.Point {
	return s.drawnPoints
}

// EditingRouteID retorna el id de la ruta en edición, o nil.
func (s *Session) EditingRouteID() *int64 {
	return s.editingRouteID
}

// Routes retorna la última lista cargada (id descendente).
func (s *Session) Routes() []models.Route {
	return s.routes
}

// Login autentica contra el backend y deja la sesión lista para operar.
func (s *Session) Login(email, pass string) (models.UserDTO, error) {
	u, err := s.api.Login(email, pass)
	if err != nil {
		return models.UserDTO{}, err
	}
	s.currentUser = &u
	s.userCache.Set("currentUser", u)
	s.resetInteraction()
	if err := s.ReloadRoutes(); err != nil {
		// La sesión queda iniciada aunque la primera carga falle;
		// la UI puede reintentar con ReloadRoutes.
		return u, err
	}
	return u, nil
}

// Logout descarta identidad, token, overlays y estado de dibujo.
func (s *Session) Logout() {
	s.currentUser = nil
	s.routes = nil
	s.userCache.Delete("currentUser")
	s.api.ClearToken()
	s.resetInteraction()
}

// ReloadRoutes recarga la lista completa desde el backend.
func (s *Session) ReloadRoutes() error {
	routes, err := s.api.ListRoutes()
	if err != nil {
		return err
	}
	s.routes = routes
	return nil
}

// SelectOrigin arma el próximo click como pick de origen. Cancela la
// selección de destino si estaba activa.
func (s *Session) SelectOrigin() {
	s.mode = ModeSelectingOrigin
}

// SelectDest arma el próximo click como pick de destino. Cancela la
// selección de origen si estaba activa.
func (s *Session) SelectDest() {
	s.mode = ModeSelectingDest
}

// HandleMapClick procesa un click sobre el mapa según el modo activo.
// En ModeNone el click se ignora.
func (s *Session) HandleMapClick(p geo.Point) {
	switch s.mode {
	case ModeSelectingOrigin:
		s.origin = &p
		s.mode = ModeNone
	case ModeSelectingDest:
		s.dest = &p
		s.mode = ModeNone
	case ModeFreeDrawing:
		s.drawnPoints = append(s.drawnPoints, p)
		s.controls.ClearDrawEnabled = true
	}
	s.refreshCalculate()
}

// StartDrawing entra en modo de trazo libre.
func (s *Session) StartDrawing() {
	s.mode = ModeFreeDrawing
	s.controls.StartDrawEnabled = false
	s.controls.FinishDrawEnabled = true
	s.controls.ClearDrawEnabled = len(s.drawnPoints) > 0
}

// FinishDrawing sale del modo de trazo conservando los puntos.
func (s *Session) FinishDrawing() {
	s.mode = ModeNone
	s.controls.StartDrawEnabled = true
	s.controls.FinishDrawEnabled = false
	s.controls.ClearDrawEnabled = len(s.drawnPoints) > 0
}

// ClearDrawing descarta el trazo y vuelve al estado inicial de dibujo.
func (s *Session) ClearDrawing() {
	s.drawnPoints = nil
	if s.mode == ModeFreeDrawing {
		s.mode = ModeNone
	}
	s.controls.StartDrawEnabled = true
	s.controls.FinishDrawEnabled = false
	s.controls.ClearDrawEnabled = false
	s.refreshCalculate()
}

// CanCalculate indica si hay material para calcular distancia o pedir una
// ruta al proveedor: ambos picks, o un trazo de al menos dos puntos.
func (s *Session) CanCalculate() bool {
	if len(s.drawnPoints) >= 2 {
		return true
	}
	return s.origin != nil && s.dest != nil
}

// DistanceInfo calcula la distancia del estado actual: la suma del trazo
// libre si existe, o la línea entre origen y destino.
func (s *Session) DistanceInfo() string {
	var meters float64
	switch {
	case len(s.drawnPoints) >= 2:
		meters = geo.PathDistance(s.drawnPoints)
	case s.origin != nil && s.dest != nil:
		meters = geo.Distance(*s.origin, *s.dest)
	}
	return "Distancia: " + geo.FormatDistance(meters)
}

// BeginEdit carga una ruta guardada al formulario. Los picks se pueblan
// solo con las coordenadas presentes; el botón de guardar pasa a modo
// actualización.
func (s *Session) BeginEdit(r models.Route) {
	id := r.ID
	s.editingRouteID = &id
	s.origin = nil
	s.dest = nil
	if r.OriginLat != nil && r.OriginLng != nil {
		s.origin = &geo.Point{Lat: *r.OriginLat, Lng: *r.OriginLng}
	}
	if r.DestLat != nil && r.DestLng != nil {
		s.dest = &geo.Point{Lat: *r.DestLat, Lng: *r.DestLng}
	}
	s.mode = ModeNone
	s.controls.SaveLabel = saveLabelUpdate
	s.refreshCalculate()
}

// CancelEdit abandona la edición sin tocar el backend.
func (s *Session) CancelEdit() {
	s.editingRouteID = nil
	s.controls.SaveLabel = saveLabelCreate
}

// buildPayload arma el cuerpo de guardado: picks explícitos si existen;
// si no, el primer y último punto del trazo libre.
func (s *Session) buildPayload(name string) models.RoutePayload {
	p := models.RoutePayload{Name: name}

	if s.origin != nil {
		p.OriginLat = &s.origin.Lat
		p.OriginLng = &s.origin.Lng
	} else if len(s.drawnPoints) > 0 {
		first := s.drawnPoints[0]
		p.OriginLat = &first.Lat
		p.OriginLng = &first.Lng
	}

	if s.dest != nil {
		p.DestLat = &s.dest.Lat
		p.DestLng = &s.dest.Lng
	} else if len(s.drawnPoints) > 0 {
		last := s.drawnPoints[len(s.drawnPoints)-1]
		p.DestLat = &last.Lat
		p.DestLng = &last.Lng
	}

	return p
}

// Save crea o actualiza según haya edición en curso. Tras un guardado
// exitoso el formulario vuelve al modo creación y la lista se recarga
// completa; si el backend rechaza, el estado queda intacto.
func (s *Session) Save(name string) (models.Route, error) {
	if s.currentUser == nil {
		return models.Route{}, ErrNotAuthenticated
	}

	payload := s.buildPayload(name)

	var (
		saved models.Route
		err   error
	)
	if s.editingRouteID != nil {
		saved, err = s.api.UpdateRoute(*s.editingRouteID, payload)
	} else {
		saved, err = s.api.CreateRoute(payload)
	}
	if err != nil {
		return models.Route{}, err
	}

	s.editingRouteID = nil
	s.controls.SaveLabel = saveLabelCreate
	if err := s.ReloadRoutes(); err != nil {
		return saved, err
	}
	return saved, nil
}

// Delete elimina una ruta previa confirmación. Si la ruta estaba en
// edición, la edición se cancela antes de llamar al backend.
func (s *Session) Delete(id int64, confirm func() bool) error {
	if s.currentUser == nil {
		return ErrNotAuthenticated
	}
	if confirm != nil && !confirm() {
		return nil
	}
	if s.editingRouteID != nil && *s.editingRouteID == id {
		s.CancelEdit()
	}
	if err := s.api.DeleteRoute(id); err != nil {
		return err
	}
	return s.ReloadRoutes()
}

// Locate ejecuta la geolocalización con guardia de reentrada: tras un
// éxito el botón queda bloqueado un período de gracia para evitar el
// doble click. Un fallo no bloquea, se puede reintentar al tiro. Toda la
// mutación ocurre en la goroutine del llamador.
func (s *Session) Locate(fn func() (geo.Point, error)) (geo.Point, error) {
	if time.Now().Before(s.locateBlockedUntil) {
		return geo.Point{}, ErrLocateBusy
	}

	p, err := fn()
	if err != nil {
		return geo.Point{}, err
	}

	s.locateBlockedUntil = time.Now().Add(s.locateGrace)
	return p, nil
}
