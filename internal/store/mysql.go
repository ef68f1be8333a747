package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/yourorg/padondep/internal/models"
)

const userColumns = "id_usuario, nombre, email, pass_hash, activo, creado_en, actualizado_en, ultimo_login"

// MySQL implementa Store sobre el pool database/sql.
type MySQL struct {
	db *sql.DB
}

// NewMySQL crea el store de producción.
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

func scanUser(row interface{ Scan(...interface{}) error }) (models.User, error) {
	var (
		u           models.User
		activo      int
		ultimoLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PassHash, &activo, &u.CreadoEn, &u.ActualizadoEn, &ultimoLogin)
	if err != nil {
		return models.User{}, err
	}
	u.Activo = activo == 1
	if ultimoLogin.Valid {
		t := ultimoLogin.Time
		u.UltimoLogin = &t
	}
	return u, nil
}

func (s *MySQL) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM usuario ORDER BY id_usuario DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *MySQL) GetUser(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM usuario WHERE id_usuario = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (s *MySQL) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM usuario WHERE email = ?", email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (s *MySQL) CreateUser(ctx context.Context, nombre, email, passHash string) (models.User, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO usuario (nombre, email, pass_hash, activo) VALUES (?, ?, ?, 1)",
		nombre, email, passHash)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	// Recarga la fila fresca: los timestamps los pone la base de datos
	return s.GetUser(ctx, id)
}

func (s *MySQL) UpdateUserCredential(ctx context.Context, id int64, passHash string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE usuario SET pass_hash = ? WHERE id_usuario = ?", passHash, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (s *MySQL) UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := s.db.ExecContext(ctx, "UPDATE usuario SET ultimo_login = ? WHERE id_usuario = ?", at, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (s *MySQL) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM usuario WHERE id_usuario = ?", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

const routeColumns = "id, name, origin_lat, origin_lng, dest_lat, dest_lng, created_at, updated_at"

func scanRoute(row interface{ Scan(...interface{}) error }) (models.Route, error) {
	var (
		r                                      models.Route
		originLat, originLng, destLat, destLng sql.NullFloat64
	)
	err := row.Scan(&r.ID, &r.Name, &originLat, &originLng, &destLat, &destLng, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return models.Route{}, err
	}
	r.OriginLat = nullFloat(originLat)
	r.OriginLng = nullFloat(originLng)
	r.DestLat = nullFloat(destLat)
	r.DestLng = nullFloat(destLng)
	return r, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (s *MySQL) ListRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+routeColumns+" FROM routes ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []models.Route{}
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (s *MySQL) GetRoute(ctx context.Context, id int64) (models.Route, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+routeColumns+" FROM routes WHERE id = ?", id)
	r, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, ErrNotFound
	}
	return r, err
}

func (s *MySQL) CreateRoute(ctx context.Context, p models.RoutePayload) (models.Route, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO routes (name, origin_lat, origin_lng, dest_lat, dest_lng) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.OriginLat, p.OriginLng, p.DestLat, p.DestLng)
	if err != nil {
		return models.Route{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Route{}, err
	}
	return s.GetRoute(ctx, id)
}

func (s *MySQL) UpdateRoute(ctx context.Context, id int64, p models.RoutePayload) (models.Route, error) {
	// MySQL reporta 0 filas afectadas cuando el update es no-op, así que
	// la existencia se decide releyendo la fila, no con RowsAffected.
	if _, err := s.db.ExecContext(ctx,
		"UPDATE routes SET name = ?, origin_lat = ?, origin_lng = ?, dest_lat = ?, dest_lng = ? WHERE id = ?",
		p.Name, p.OriginLat, p.OriginLng, p.DestLat, p.DestLng, id); err != nil {
		return models.Route{}, err
	}
	return s.GetRoute(ctx, id)
}

func (s *MySQL) DeleteRoute(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM routes WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// isDuplicateEntry detecta la violación del índice único (ER_DUP_ENTRY).
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
