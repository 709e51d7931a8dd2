package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Role defines a user's privilege level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	AvatarID     *string // nil until the user picks an avatar
	CreatedAt    time.Time
}

// Avatar is a reusable character skin from the admin catalog.
type Avatar struct {
	ID       string // UUID
	Name     string
	ImageURL string
}

// Element is a placeable building block (chair, table, wall segment).
// Static elements block movement; decorative ones do not.
type Element struct {
	ID       string // UUID
	ImageURL string
	Width    int
	Height   int
	Static   bool
}

// MapTemplate is a reusable space layout with default element placements.
type MapTemplate struct {
	ID        string // UUID
	Name      string
	Thumbnail string
	Width     int
	Height    int
}

// MapElement is a default placement inside a map template.
type MapElement struct {
	ElementID string
	X         int
	Y         int
}

// Space is a user-created instance of an arena.
type Space struct {
	ID        string // UUID
	Name      string
	Width     int
	Height    int
	OwnerID   int64
	Thumbnail string
	CreatedAt time.Time
}

// PlacedElement is an element instance positioned inside a space,
// joined with its catalog attributes.
type PlacedElement struct {
	ID      string // UUID of the placement, not the element
	SpaceID string
	Element Element
	X       int
	Y       int
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user with hashed password and role.
	CreateUser(ctx context.Context, username, passwordHash string, role Role) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUsersByIDs retrieves users for a set of IDs; missing IDs are skipped.
	GetUsersByIDs(ctx context.Context, ids []int64) ([]*User, error)

	// UpdateUserAvatar sets the user's avatar. The avatar must exist.
	UpdateUserAvatar(ctx context.Context, userID int64, avatarID string) error
}

// AvatarStore handles the avatar catalog.
type AvatarStore interface {
	// CreateAvatar adds an avatar to the catalog.
	CreateAvatar(ctx context.Context, name, imageURL string) (*Avatar, error)

	// GetAvatarByID retrieves an avatar by ID.
	GetAvatarByID(ctx context.Context, id string) (*Avatar, error)

	// ListAvatars lists the whole avatar catalog.
	ListAvatars(ctx context.Context) ([]*Avatar, error)
}

// ElementStore handles the element catalog.
type ElementStore interface {
	// CreateElement adds an element to the catalog.
	CreateElement(ctx context.Context, imageURL string, width, height int, static bool) (*Element, error)

	// UpdateElementImage replaces an element's image URL.
	UpdateElementImage(ctx context.Context, id, imageURL string) error

	// GetElementByID retrieves an element by ID.
	GetElementByID(ctx context.Context, id string) (*Element, error)

	// ListElements lists the whole element catalog.
	ListElements(ctx context.Context) ([]*Element, error)
}

// MapStore handles map templates.
type MapStore interface {
	// CreateMap creates a map template together with its default placements.
	CreateMap(ctx context.Context, m *MapTemplate, placements []MapElement) (*MapTemplate, error)

	// GetMapByID retrieves a map template by ID.
	GetMapByID(ctx context.Context, id string) (*MapTemplate, error)

	// ListMapElements lists the default placements of a map template.
	ListMapElements(ctx context.Context, mapID string) ([]MapElement, error)
}

// SpaceStore handles spaces and the elements placed in them.
type SpaceStore interface {
	// CreateSpace creates a space, optionally seeded with placements
	// copied from a map template.
	CreateSpace(ctx context.Context, s *Space, placements []MapElement) (*Space, error)

	// GetSpaceByID retrieves a space by ID.
	GetSpaceByID(ctx context.Context, id string) (*Space, error)

	// DeleteSpace removes a space and its placements.
	DeleteSpace(ctx context.Context, id string) error

	// ListSpacesByOwner lists spaces created by the given user.
	ListSpacesByOwner(ctx context.Context, ownerID int64) ([]*Space, error)

	// AddSpaceElement places a catalog element inside a space and
	// returns the placement ID.
	AddSpaceElement(ctx context.Context, spaceID, elementID string, x, y int) (string, error)

	// RemoveSpaceElement deletes a placement by its ID.
	RemoveSpaceElement(ctx context.Context, placementID string) error

	// ListSpaceElements lists placements in a space joined with their
	// catalog attributes.
	ListSpaceElements(ctx context.Context, spaceID string) ([]*PlacedElement, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	AvatarStore
	ElementStore
	MapStore
	SpaceStore

	// Close closes the underlying database connection.
	Close() error
}
