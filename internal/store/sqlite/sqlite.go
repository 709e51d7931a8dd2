package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vovakirdan/gridspace-server/internal/store"
)

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user',
	avatar_id     TEXT REFERENCES avatars(id),
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS avatars (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	image_url TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS elements (
	id        TEXT PRIMARY KEY,
	image_url TEXT NOT NULL,
	width     INTEGER NOT NULL,
	height    INTEGER NOT NULL,
	static    BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS maps (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	thumbnail TEXT NOT NULL DEFAULT '',
	width     INTEGER NOT NULL,
	height    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS map_elements (
	map_id     TEXT NOT NULL REFERENCES maps(id),
	element_id TEXT NOT NULL REFERENCES elements(id),
	x          INTEGER NOT NULL,
	y          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS spaces (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	owner_id   INTEGER NOT NULL REFERENCES users(id),
	thumbnail  TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS space_elements (
	id         TEXT PRIMARY KEY,
	space_id   TEXT NOT NULL REFERENCES spaces(id),
	element_id TEXT NOT NULL REFERENCES elements(id),
	x          INTEGER NOT NULL,
	y          INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_space_elements_space ON space_elements(space_id);
CREATE INDEX IF NOT EXISTS idx_map_elements_map ON map_elements(map_id);
CREATE INDEX IF NOT EXISTS idx_spaces_owner ON spaces(owner_id);
`

// New creates a new SQLite store and applies the schema.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewWithSetup creates a new SQLite store and runs a setup function
// after applying the schema. Useful for tests to seed fixtures.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	s, err := New(dbPath)
	if err != nil {
		return nil, err
	}

	if setup != nil {
		if err := setup(s.db); err != nil {
			s.db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== UserStore implementation ====

// CreateUser creates a new user with hashed password and role.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string, role store.Role) (*store.User, error) {
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, username, passwordHash, role)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*store.User, error) {
	query := `
		SELECT id, username, password_hash, role, avatar_id, created_at
		FROM users
		WHERE id = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	query := `
		SELECT id, username, password_hash, role, avatar_id, created_at
		FROM users
		WHERE username = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

// GetUsersByIDs retrieves users for a set of IDs; missing IDs are skipped.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []int64) ([]*store.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, role, avatar_id, created_at
		FROM users
		WHERE id IN (%s)
	`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*store.User
	for rows.Next() {
		var user store.User
		var avatarID sql.NullString
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &avatarID, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if avatarID.Valid {
			user.AvatarID = &avatarID.String
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// UpdateUserAvatar sets the user's avatar. The avatar must exist.
func (s *SQLiteStore) UpdateUserAvatar(ctx context.Context, userID int64, avatarID string) error {
	if _, err := s.GetAvatarByID(ctx, avatarID); err != nil {
		return err
	}

	query := `UPDATE users SET avatar_id = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, avatarID, userID)
	if err != nil {
		return fmt.Errorf("update user avatar: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found: %w", store.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*store.User, error) {
	var user store.User
	var avatarID sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&avatarID,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", store.ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if avatarID.Valid {
		user.AvatarID = &avatarID.String
	}
	return &user, nil
}

// ==== AvatarStore implementation ====

// CreateAvatar adds an avatar to the catalog.
func (s *SQLiteStore) CreateAvatar(ctx context.Context, name, imageURL string) (*store.Avatar, error) {
	avatar := &store.Avatar{
		ID:       uuid.NewString(),
		Name:     name,
		ImageURL: imageURL,
	}

	query := `INSERT INTO avatars (id, name, image_url) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, avatar.ID, avatar.Name, avatar.ImageURL); err != nil {
		return nil, fmt.Errorf("insert avatar: %w", err)
	}

	return avatar, nil
}

// GetAvatarByID retrieves an avatar by ID.
func (s *SQLiteStore) GetAvatarByID(ctx context.Context, id string) (*store.Avatar, error) {
	query := `SELECT id, name, image_url FROM avatars WHERE id = ?`

	var avatar store.Avatar
	err := s.db.QueryRowContext(ctx, query, id).Scan(&avatar.ID, &avatar.Name, &avatar.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("avatar not found: %w", store.ErrNotFound)
		}
		return nil, fmt.Errorf("query avatar: %w", err)
	}

	return &avatar, nil
}

// ListAvatars lists the whole avatar catalog.
func (s *SQLiteStore) ListAvatars(ctx context.Context) ([]*store.Avatar, error) {
	query := `SELECT id, name, image_url FROM avatars ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query avatars: %w", err)
	}
	defer rows.Close()

	var avatars []*store.Avatar
	for rows.Next() {
		var avatar store.Avatar
		if err := rows.Scan(&avatar.ID, &avatar.Name, &avatar.ImageURL); err != nil {
			return nil, fmt.Errorf("scan avatar: %w", err)
		}
		avatars = append(avatars, &avatar)
	}

	return avatars, rows.Err()
}

// ==== ElementStore implementation ====

// CreateElement adds an element to the catalog.
func (s *SQLiteStore) CreateElement(ctx context.Context, imageURL string, width, height int, static bool) (*store.Element, error) {
	element := &store.Element{
		ID:       uuid.NewString(),
		ImageURL: imageURL,
		Width:    width,
		Height:   height,
		Static:   static,
	}

	query := `INSERT INTO elements (id, image_url, width, height, static) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, element.ID, element.ImageURL, element.Width, element.Height, element.Static); err != nil {
		return nil, fmt.Errorf("insert element: %w", err)
	}

	return element, nil
}

// UpdateElementImage replaces an element's image URL.
func (s *SQLiteStore) UpdateElementImage(ctx context.Context, id, imageURL string) error {
	query := `UPDATE elements SET image_url = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, imageURL, id)
	if err != nil {
		return fmt.Errorf("update element: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("element not found: %w", store.ErrNotFound)
	}
	return nil
}

// GetElementByID retrieves an element by ID.
func (s *SQLiteStore) GetElementByID(ctx context.Context, id string) (*store.Element, error) {
	query := `SELECT id, image_url, width, height, static FROM elements WHERE id = ?`

	var element store.Element
	err := s.db.QueryRowContext(ctx, query, id).Scan(&element.ID, &element.ImageURL, &element.Width, &element.Height, &element.Static)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("element not found: %w", store.ErrNotFound)
		}
		return nil, fmt.Errorf("query element: %w", err)
	}

	return &element, nil
}

// ListElements lists the whole element catalog.
func (s *SQLiteStore) ListElements(ctx context.Context) ([]*store.Element, error) {
	query := `SELECT id, image_url, width, height, static FROM elements`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query elements: %w", err)
	}
	defer rows.Close()

	var elements []*store.Element
	for rows.Next() {
		var element store.Element
		if err := rows.Scan(&element.ID, &element.ImageURL, &element.Width, &element.Height, &element.Static); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		elements = append(elements, &element)
	}

	return elements, rows.Err()
}

// ==== MapStore implementation ====

// CreateMap creates a map template together with its default placements.
func (s *SQLiteStore) CreateMap(ctx context.Context, m *store.MapTemplate, placements []store.MapElement) (*store.MapTemplate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	m.ID = uuid.NewString()
	query := `INSERT INTO maps (id, name, thumbnail, width, height) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, m.ID, m.Name, m.Thumbnail, m.Width, m.Height); err != nil {
		return nil, fmt.Errorf("insert map: %w", err)
	}

	for _, p := range placements {
		query := `INSERT INTO map_elements (map_id, element_id, x, y) VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, m.ID, p.ElementID, p.X, p.Y); err != nil {
			return nil, fmt.Errorf("insert map element: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return m, nil
}

// GetMapByID retrieves a map template by ID.
func (s *SQLiteStore) GetMapByID(ctx context.Context, id string) (*store.MapTemplate, error) {
	query := `SELECT id, name, thumbnail, width, height FROM maps WHERE id = ?`

	var m store.MapTemplate
	err := s.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Thumbnail, &m.Width, &m.Height)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("map not found: %w", store.ErrNotFound)
		}
		return nil, fmt.Errorf("query map: %w", err)
	}

	return &m, nil
}

// ListMapElements lists the default placements of a map template.
func (s *SQLiteStore) ListMapElements(ctx context.Context, mapID string) ([]store.MapElement, error) {
	query := `SELECT element_id, x, y FROM map_elements WHERE map_id = ?`

	rows, err := s.db.QueryContext(ctx, query, mapID)
	if err != nil {
		return nil, fmt.Errorf("query map elements: %w", err)
	}
	defer rows.Close()

	var placements []store.MapElement
	for rows.Next() {
		var p store.MapElement
		if err := rows.Scan(&p.ElementID, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scan map element: %w", err)
		}
		placements = append(placements, p)
	}

	return placements, rows.Err()
}

// ==== SpaceStore implementation ====

// CreateSpace creates a space, optionally seeded with placements copied
// from a map template.
func (s *SQLiteStore) CreateSpace(ctx context.Context, space *store.Space, placements []store.MapElement) (*store.Space, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	space.ID = uuid.NewString()
	query := `INSERT INTO spaces (id, name, width, height, owner_id, thumbnail) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, space.ID, space.Name, space.Width, space.Height, space.OwnerID, space.Thumbnail); err != nil {
		return nil, fmt.Errorf("insert space: %w", err)
	}

	for _, p := range placements {
		query := `INSERT INTO space_elements (id, space_id, element_id, x, y) VALUES (?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, uuid.NewString(), space.ID, p.ElementID, p.X, p.Y); err != nil {
			return nil, fmt.Errorf("insert space element: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.GetSpaceByID(ctx, space.ID)
}

// GetSpaceByID retrieves a space by ID.
func (s *SQLiteStore) GetSpaceByID(ctx context.Context, id string) (*store.Space, error) {
	query := `
		SELECT id, name, width, height, owner_id, thumbnail, created_at
		FROM spaces
		WHERE id = ?
	`
	var space store.Space
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&space.ID,
		&space.Name,
		&space.Width,
		&space.Height,
		&space.OwnerID,
		&space.Thumbnail,
		&space.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("space not found: %w", store.ErrNotFound)
		}
		return nil, fmt.Errorf("query space: %w", err)
	}

	return &space, nil
}

// DeleteSpace removes a space and its placements.
func (s *SQLiteStore) DeleteSpace(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM space_elements WHERE space_id = ?`, id); err != nil {
		return fmt.Errorf("delete space elements: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM spaces WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("space not found: %w", store.ErrNotFound)
	}

	return tx.Commit()
}

// ListSpacesByOwner lists spaces created by the given user.
func (s *SQLiteStore) ListSpacesByOwner(ctx context.Context, ownerID int64) ([]*store.Space, error) {
	query := `
		SELECT id, name, width, height, owner_id, thumbnail, created_at
		FROM spaces
		WHERE owner_id = ?
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query spaces: %w", err)
	}
	defer rows.Close()

	var spaces []*store.Space
	for rows.Next() {
		var space store.Space
		if err := rows.Scan(&space.ID, &space.Name, &space.Width, &space.Height, &space.OwnerID, &space.Thumbnail, &space.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		spaces = append(spaces, &space)
	}

	return spaces, rows.Err()
}

// AddSpaceElement places a catalog element inside a space.
func (s *SQLiteStore) AddSpaceElement(ctx context.Context, spaceID, elementID string, x, y int) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO space_elements (id, space_id, element_id, x, y) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, id, spaceID, elementID, x, y); err != nil {
		return "", fmt.Errorf("insert space element: %w", err)
	}
	return id, nil
}

// RemoveSpaceElement deletes a placement by its ID.
func (s *SQLiteStore) RemoveSpaceElement(ctx context.Context, placementID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM space_elements WHERE id = ?`, placementID)
	if err != nil {
		return fmt.Errorf("delete space element: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("space element not found: %w", store.ErrNotFound)
	}
	return nil
}

// ListSpaceElements lists placements in a space joined with their catalog attributes.
func (s *SQLiteStore) ListSpaceElements(ctx context.Context, spaceID string) ([]*store.PlacedElement, error) {
	query := `
		SELECT se.id, se.space_id, se.x, se.y, e.id, e.image_url, e.width, e.height, e.static
		FROM space_elements se
		JOIN elements e ON e.id = se.element_id
		WHERE se.space_id = ?
	`
	rows, err := s.db.QueryContext(ctx, query, spaceID)
	if err != nil {
		return nil, fmt.Errorf("query space elements: %w", err)
	}
	defer rows.Close()

	var placed []*store.PlacedElement
	for rows.Next() {
		var p store.PlacedElement
		if err := rows.Scan(&p.ID, &p.SpaceID, &p.X, &p.Y, &p.Element.ID, &p.Element.ImageURL, &p.Element.Width, &p.Element.Height, &p.Element.Static); err != nil {
			return nil, fmt.Errorf("scan space element: %w", err)
		}
		placed = append(placed, &p)
	}

	return placed, rows.Err()
}
