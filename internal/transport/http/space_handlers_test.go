package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/vovakirdan/gridspace-server/internal/store"
)

func TestCreateAndGetSpace(t *testing.T) {
	env := startTestEnv(t)

	_, token := signupAndSignin(t, env, "owner", store.RoleUser)

	// Missing dimensions and mapId.
	resp := postJSON(t, env, "/api/v1/space", token, `{"name":"bad"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 without dimensions, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Create from raw dimensions.
	resp = postJSON(t, env, "/api/v1/space", token, `{"name":"lobby","dimensions":"20x10"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var created struct {
		SpaceID string `json:"spaceId"`
	}
	decodeBody(t, resp, &created)
	if created.SpaceID == "" {
		t.Fatalf("expected spaceId in response")
	}

	// Fetch it back.
	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/space/"+created.SpaceID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	getResp, err := env.server.Client().Do(req)
	if err != nil {
		t.Fatalf("get space: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", getResp.StatusCode)
	}
	var space struct {
		Dimensions string                 `json:"dimensions"`
		Elements   []SpaceElementResponse `json:"elements"`
	}
	decodeBody(t, getResp, &space)
	if space.Dimensions != "20x10" {
		t.Errorf("expected dimensions 20x10, got %s", space.Dimensions)
	}
	if len(space.Elements) != 0 {
		t.Errorf("expected no elements, got %d", len(space.Elements))
	}

	// Unknown space ID.
	req, _ = http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/space/no-such-space", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	missResp, err := env.server.Client().Do(req)
	if err != nil {
		t.Fatalf("get unknown space: %v", err)
	}
	if missResp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown space, got %d", missResp.StatusCode)
	}
	missResp.Body.Close()
}

func TestCreateSpaceFromMapTemplate(t *testing.T) {
	env := startTestEnv(t)

	_, token := signupAndSignin(t, env, "owner", store.RoleUser)
	_, adminToken := signupAndSignin(t, env, "boss", store.RoleAdmin)

	element, err := env.store.CreateElement(context.Background(), "https://cdn.example.com/tree.png", 2, 2, true)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}

	// Referencing an unknown element fails the template.
	resp := postJSON(t, env, "/api/v1/admin/map", adminToken,
		`{"name":"broken","dimensions":"30x40","defaultElements":[{"elementId":"missing","x":0,"y":0}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown element, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, env, "/api/v1/admin/map", adminToken,
		`{"name":"forest","thumbnail":"https://cdn.example.com/forest-thumb.png","dimensions":"30x40",`+
			`"defaultElements":[{"elementId":"`+element.ID+`","x":5,"y":6}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var tmpl struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &tmpl)

	resp = postJSON(t, env, "/api/v1/space", token, `{"name":"glade","mapId":"`+tmpl.ID+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var created struct {
		SpaceID string `json:"spaceId"`
	}
	decodeBody(t, resp, &created)

	// The template seeds dimensions and default placements.
	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/space/"+created.SpaceID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	getResp, err := env.server.Client().Do(req)
	if err != nil {
		t.Fatalf("get space: %v", err)
	}
	var space struct {
		Dimensions string                 `json:"dimensions"`
		Elements   []SpaceElementResponse `json:"elements"`
	}
	decodeBody(t, getResp, &space)
	if space.Dimensions != "30x40" {
		t.Errorf("expected dimensions 30x40, got %s", space.Dimensions)
	}
	if len(space.Elements) != 1 {
		t.Fatalf("expected 1 seeded element, got %d", len(space.Elements))
	}
	if space.Elements[0].X != 5 || space.Elements[0].Y != 6 || !space.Elements[0].Static {
		t.Errorf("unexpected seeded element: %+v", space.Elements[0])
	}

	// Unknown template is rejected.
	resp = postJSON(t, env, "/api/v1/space", token, `{"name":"nope","mapId":"missing"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown map, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSpaceElementPlacement(t *testing.T) {
	env := startTestEnv(t)

	_, token := signupAndSignin(t, env, "owner", store.RoleUser)
	_, strangerToken := signupAndSignin(t, env, "stranger", store.RoleUser)

	ctx := context.Background()
	element, err := env.store.CreateElement(ctx, "https://cdn.example.com/crate.png", 3, 3, false)
	if err != nil {
		t.Fatalf("create element: %v", err)
	}

	resp := postJSON(t, env, "/api/v1/space", token, `{"name":"warehouse","dimensions":"10x10"}`)
	var created struct {
		SpaceID string `json:"spaceId"`
	}
	decodeBody(t, resp, &created)

	// Footprint sticking out of the space is rejected.
	resp = postJSON(t, env, "/api/v1/space/element", token,
		`{"spaceId":"`+created.SpaceID+`","elementId":"`+element.ID+`","x":8,"y":8}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for out-of-bounds placement, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Only the owner may edit the space.
	resp = postJSON(t, env, "/api/v1/space/element", strangerToken,
		`{"spaceId":"`+created.SpaceID+`","elementId":"`+element.ID+`","x":1,"y":1}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403 for non-owner, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// In-bounds placement by the owner succeeds.
	resp = postJSON(t, env, "/api/v1/space/element", token,
		`{"spaceId":"`+created.SpaceID+`","elementId":"`+element.ID+`","x":1,"y":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var placed struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &placed)
	if placed.ID == "" {
		t.Fatalf("expected placement id")
	}

	// And can be removed again.
	req, _ := http.NewRequest(http.MethodDelete, env.server.URL+"/api/v1/space/element/"+placed.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	delResp, err := env.server.Client().Do(req)
	if err != nil {
		t.Fatalf("delete placement: %v", err)
	}
	if delResp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", delResp.StatusCode)
	}
	delResp.Body.Close()
}

func TestDeleteSpaceOwnership(t *testing.T) {
	env := startTestEnv(t)

	_, ownerToken := signupAndSignin(t, env, "owner", store.RoleUser)
	_, strangerToken := signupAndSignin(t, env, "stranger", store.RoleUser)
	_, adminToken := signupAndSignin(t, env, "boss", store.RoleAdmin)

	createSpace := func() string {
		resp := postJSON(t, env, "/api/v1/space", ownerToken, `{"name":"temp","dimensions":"5x5"}`)
		var created struct {
			SpaceID string `json:"spaceId"`
		}
		decodeBody(t, resp, &created)
		return created.SpaceID
	}

	deleteSpace := func(id, token string) int {
		req, _ := http.NewRequest(http.MethodDelete, env.server.URL+"/api/v1/space/"+id, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := env.server.Client().Do(req)
		if err != nil {
			t.Fatalf("delete space: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	spaceID := createSpace()

	if code := deleteSpace(spaceID, strangerToken); code != http.StatusForbidden {
		t.Errorf("expected status 403 for stranger, got %d", code)
	}
	if code := deleteSpace(spaceID, ownerToken); code != http.StatusOK {
		t.Errorf("expected status 200 for owner, got %d", code)
	}
	if code := deleteSpace(spaceID, ownerToken); code != http.StatusBadRequest {
		t.Errorf("expected status 400 for deleted space, got %d", code)
	}

	// Admins can delete spaces they do not own.
	spaceID = createSpace()
	if code := deleteSpace(spaceID, adminToken); code != http.StatusOK {
		t.Errorf("expected status 200 for admin, got %d", code)
	}
}

func TestListSpacesReturnsOnlyOwn(t *testing.T) {
	env := startTestEnv(t)

	_, aliceToken := signupAndSignin(t, env, "alice", store.RoleUser)
	_, bobToken := signupAndSignin(t, env, "bob", store.RoleUser)

	postJSON(t, env, "/api/v1/space", aliceToken, `{"name":"a1","dimensions":"5x5"}`).Body.Close()
	postJSON(t, env, "/api/v1/space", aliceToken, `{"name":"a2","dimensions":"5x5"}`).Body.Close()
	postJSON(t, env, "/api/v1/space", bobToken, `{"name":"b1","dimensions":"5x5"}`).Body.Close()

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/space/all", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	resp, err := env.server.Client().Do(req)
	if err != nil {
		t.Fatalf("list spaces: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var list struct {
		Spaces []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			Dimensions string `json:"dimensions"`
		} `json:"spaces"`
	}
	decodeBody(t, resp, &list)
	if len(list.Spaces) != 2 {
		t.Fatalf("expected 2 spaces for alice, got %d", len(list.Spaces))
	}
	for _, s := range list.Spaces {
		if s.Name != "a1" && s.Name != "a2" {
			t.Errorf("unexpected space in alice's list: %+v", s)
		}
	}
}
