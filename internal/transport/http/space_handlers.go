package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gridspace-server/internal/store"
)

// SpaceHandlers provides HTTP handlers for space management.
type SpaceHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewSpaceHandlers creates a new space handlers instance.
func NewSpaceHandlers(st store.Store, logger *zerolog.Logger) *SpaceHandlers {
	return &SpaceHandlers{store: st, log: logger}
}

// CreateSpaceRequest creates a space either from raw dimensions or from a
// map template (which also seeds the template's default elements).
type CreateSpaceRequest struct {
	Name       string `json:"name" binding:"required"`
	Dimensions string `json:"dimensions"`
	MapID      string `json:"mapId"`
}

// CreateSpace handles space creation.
// POST /api/v1/space
func (h *SpaceHandlers) CreateSpace(c *gin.Context) {
	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	space := &store.Space{Name: req.Name, OwnerID: currentUserID(c)}
	var placements []store.MapElement

	if req.MapID != "" {
		tmpl, err := h.store.GetMapByID(c.Request.Context(), req.MapID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "map not found"})
				return
			}
			h.log.Error().Err(err).Msg("failed to load map")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			return
		}

		placements, err = h.store.ListMapElements(c.Request.Context(), tmpl.ID)
		if err != nil {
			h.log.Error().Err(err).Msg("failed to load map elements")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			return
		}

		space.Width = tmpl.Width
		space.Height = tmpl.Height
		space.Thumbnail = tmpl.Thumbnail
	} else {
		width, height, err := parseDimensions(req.Dimensions)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		space.Width = width
		space.Height = height
	}

	created, err := h.store.CreateSpace(c.Request.Context(), space, placements)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create space")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"spaceId": created.ID})
}

// SpaceElementResponse is one placed element in a space.
type SpaceElementResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Static   bool   `json:"static"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// GetSpace returns a space's dimensions and placed elements.
// GET /api/v1/space/:id
func (h *SpaceHandlers) GetSpace(c *gin.Context) {
	space, err := h.store.GetSpaceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "space not found"})
			return
		}
		h.log.Error().Err(err).Msg("failed to load space")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	placed, err := h.store.ListSpaceElements(c.Request.Context(), space.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load space elements")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	elements := make([]SpaceElementResponse, 0, len(placed))
	for _, p := range placed {
		elements = append(elements, SpaceElementResponse{
			ID:       p.ID,
			ImageURL: p.Element.ImageURL,
			Width:    p.Element.Width,
			Height:   p.Element.Height,
			Static:   p.Element.Static,
			X:        p.X,
			Y:        p.Y,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"dimensions": fmt.Sprintf("%dx%d", space.Width, space.Height),
		"elements":   elements,
	})
}

// ListSpaces returns the caller's spaces.
// GET /api/v1/space/all
func (h *SpaceHandlers) ListSpaces(c *gin.Context) {
	spaces, err := h.store.ListSpacesByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list spaces")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	type spaceResponse struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Dimensions string `json:"dimensions"`
		Thumbnail  string `json:"thumbnail,omitempty"`
	}

	resp := make([]spaceResponse, 0, len(spaces))
	for _, s := range spaces {
		resp = append(resp, spaceResponse{
			ID:         s.ID,
			Name:       s.Name,
			Dimensions: fmt.Sprintf("%dx%d", s.Width, s.Height),
			Thumbnail:  s.Thumbnail,
		})
	}

	c.JSON(http.StatusOK, gin.H{"spaces": resp})
}

// DeleteSpace removes a space. Only the owner or an admin may delete it.
// DELETE /api/v1/space/:id
func (h *SpaceHandlers) DeleteSpace(c *gin.Context) {
	space, err := h.store.GetSpaceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "space not found"})
			return
		}
		h.log.Error().Err(err).Msg("failed to load space")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	if space.OwnerID != currentUserID(c) && currentRole(c) != store.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not the space owner"})
		return
	}

	if err := h.store.DeleteSpace(c.Request.Context(), space.ID); err != nil {
		h.log.Error().Err(err).Msg("failed to delete space")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// AddSpaceElementRequest places a catalog element into a space.
type AddSpaceElementRequest struct {
	SpaceID   string `json:"spaceId" binding:"required"`
	ElementID string `json:"elementId" binding:"required"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// AddSpaceElement places an element inside a space owned by the caller.
// POST /api/v1/space/element
func (h *SpaceHandlers) AddSpaceElement(c *gin.Context) {
	var req AddSpaceElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	space, err := h.store.GetSpaceByID(c.Request.Context(), req.SpaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "space not found"})
			return
		}
		h.log.Error().Err(err).Msg("failed to load space")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	if space.OwnerID != currentUserID(c) && currentRole(c) != store.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not the space owner"})
		return
	}

	element, err := h.store.GetElementByID(c.Request.Context(), req.ElementID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "element not found"})
			return
		}
		h.log.Error().Err(err).Msg("failed to load element")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	// The whole element footprint must fit inside the space.
	if req.X < 0 || req.Y < 0 || req.X+element.Width > space.Width || req.Y+element.Height > space.Height {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "element placement out of bounds"})
		return
	}

	id, err := h.store.AddSpaceElement(c.Request.Context(), req.SpaceID, req.ElementID, req.X, req.Y)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to place element")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteSpaceElement removes a placed element.
// DELETE /api/v1/space/element/:id
func (h *SpaceHandlers) DeleteSpaceElement(c *gin.Context) {
	if err := h.store.RemoveSpaceElement(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "element not found"})
			return
		}
		h.log.Error().Err(err).Msg("failed to remove placed element")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
