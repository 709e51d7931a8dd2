package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/gridspace-server/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hash", store.RoleAdmin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Role != store.RoleAdmin {
		t.Errorf("expected admin role, got %s", user.Role)
	}
	if user.AvatarID != nil {
		t.Errorf("expected no avatar on fresh user, got %v", *user.AvatarID)
	}

	// Duplicate username must fail.
	if _, err := s.CreateUser(ctx, "alice", "hash", store.RoleUser); err == nil {
		t.Error("expected duplicate username to fail")
	}

	byName, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get user by username: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("expected id %d, got %d", user.ID, byName.ID)
	}

	if _, err := s.GetUserByID(ctx, 9999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUserAvatar(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "bob", "hash", store.RoleUser)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Unknown avatar is rejected.
	if err := s.UpdateUserAvatar(ctx, user.ID, "no-such-avatar"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown avatar, got %v", err)
	}

	avatar, err := s.CreateAvatar(ctx, "Timmy", "https://example.com/timmy.png")
	if err != nil {
		t.Fatalf("create avatar: %v", err)
	}

	if err := s.UpdateUserAvatar(ctx, user.ID, avatar.ID); err != nil {
		t.Fatalf("update user avatar: %v", err)
	}

	updated, err := s.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if updated.AvatarID == nil || *updated.AvatarID != avatar.ID {
		t.Errorf("expected avatar %s, got %v", avatar.ID, updated.AvatarID)
	}
}

func TestGetUsersByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateUser(ctx, "a", "hash", store.RoleUser)
	b, _ := s.CreateUser(ctx, "b", "hash", store.RoleUser)

	users, err := s.GetUsersByIDs(ctx, []int64{a.ID, b.ID, 424242})
	if err != nil {
		t.Fatalf("get users by ids: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	users, err = s.GetUsersByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("empty id list: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected no users for empty id list, got %d", len(users))
	}
}

func TestElementCatalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	element, err := s.CreateElement(ctx, "https://example.com/chair.png", 1, 1, true)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}

	if err := s.UpdateElementImage(ctx, element.ID, "https://example.com/chair2.png"); err != nil {
		t.Fatalf("update element: %v", err)
	}

	got, err := s.GetElementByID(ctx, element.ID)
	if err != nil {
		t.Fatalf("get element: %v", err)
	}
	if got.ImageURL != "https://example.com/chair2.png" {
		t.Errorf("image url not updated: %s", got.ImageURL)
	}
	if !got.Static {
		t.Error("expected static element")
	}

	if err := s.UpdateElementImage(ctx, "missing", "x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSpaceFromMapTemplate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner, _ := s.CreateUser(ctx, "owner", "hash", store.RoleUser)

	wall, err := s.CreateElement(ctx, "https://example.com/wall.png", 2, 1, true)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}

	tmpl, err := s.CreateMap(ctx, &store.MapTemplate{
		Name:      "interview room",
		Thumbnail: "https://example.com/thumb.png",
		Width:     100,
		Height:    200,
	}, []store.MapElement{
		{ElementID: wall.ID, X: 20, Y: 20},
		{ElementID: wall.ID, X: 18, Y: 20},
	})
	if err != nil {
		t.Fatalf("create map: %v", err)
	}

	placements, err := s.ListMapElements(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("list map elements: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}

	space, err := s.CreateSpace(ctx, &store.Space{
		Name:    "Test",
		Width:   tmpl.Width,
		Height:  tmpl.Height,
		OwnerID: owner.ID,
	}, placements)
	if err != nil {
		t.Fatalf("create space: %v", err)
	}

	placed, err := s.ListSpaceElements(ctx, space.ID)
	if err != nil {
		t.Fatalf("list space elements: %v", err)
	}
	if len(placed) != 2 {
		t.Fatalf("expected 2 placed elements, got %d", len(placed))
	}
	if placed[0].Element.Width != 2 || !placed[0].Element.Static {
		t.Errorf("catalog attributes not joined: %+v", placed[0].Element)
	}

	if err := s.DeleteSpace(ctx, space.ID); err != nil {
		t.Fatalf("delete space: %v", err)
	}
	if _, err := s.GetSpaceByID(ctx, space.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	placed, err = s.ListSpaceElements(ctx, space.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(placed) != 0 {
		t.Errorf("expected placements removed with space, got %d", len(placed))
	}
}

func TestAddRemoveSpaceElement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner, _ := s.CreateUser(ctx, "owner", "hash", store.RoleUser)
	desk, _ := s.CreateElement(ctx, "https://example.com/desk.png", 1, 1, false)

	space, err := s.CreateSpace(ctx, &store.Space{Name: "empty", Width: 10, Height: 10, OwnerID: owner.ID}, nil)
	if err != nil {
		t.Fatalf("create space: %v", err)
	}

	placementID, err := s.AddSpaceElement(ctx, space.ID, desk.ID, 3, 4)
	if err != nil {
		t.Fatalf("add space element: %v", err)
	}

	placed, err := s.ListSpaceElements(ctx, space.ID)
	if err != nil {
		t.Fatalf("list space elements: %v", err)
	}
	if len(placed) != 1 || placed[0].X != 3 || placed[0].Y != 4 {
		t.Fatalf("unexpected placements: %+v", placed)
	}

	if err := s.RemoveSpaceElement(ctx, placementID); err != nil {
		t.Fatalf("remove space element: %v", err)
	}
	if err := s.RemoveSpaceElement(ctx, placementID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second removal, got %v", err)
	}
}
