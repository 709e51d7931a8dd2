package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gridspace-server/internal/store"
)

// AdminHandlers provides HTTP handlers for catalog management.
type AdminHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewAdminHandlers creates a new admin handlers instance.
func NewAdminHandlers(st store.Store, logger *zerolog.Logger) *AdminHandlers {
	return &AdminHandlers{store: st, log: logger}
}

// CreateAvatarRequest adds an avatar to the catalog.
type CreateAvatarRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

// CreateAvatar handles avatar catalog additions.
// POST /api/v1/admin/avatar
func (h *AdminHandlers) CreateAvatar(c *gin.Context) {
	var req CreateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	avatar, err := h.store.CreateAvatar(c.Request.Context(), req.Name, req.ImageURL)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create avatar")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarId": avatar.ID})
}

// CreateElementRequest adds a placeable element to the catalog.
type CreateElementRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	Width    int    `json:"width" binding:"required,min=1"`
	Height   int    `json:"height" binding:"required,min=1"`
	Static   bool   `json:"static"`
}

// CreateElement handles element catalog additions.
// POST /api/v1/admin/element
func (h *AdminHandlers) CreateElement(c *gin.Context) {
	var req CreateElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	element, err := h.store.CreateElement(c.Request.Context(), req.ImageURL, req.Width, req.Height, req.Static)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create element")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": element.ID})
}

// UpdateElementRequest replaces an element's image.
type UpdateElementRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

// UpdateElement handles element image updates.
// PUT /api/v1/admin/element/:id
func (h *AdminHandlers) UpdateElement(c *gin.Context) {
	var req UpdateElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.store.UpdateElementImage(c.Request.Context(), c.Param("id"), req.ImageURL)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "element not found"})
			return
		}
		h.log.Error().Err(err).Msg("failed to update element")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// MapElementRequest is one default placement in a map template.
type MapElementRequest struct {
	ElementID string `json:"elementId" binding:"required"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// CreateMapRequest adds a map template. Dimensions use the "WxH" form,
// e.g. "100x200".
type CreateMapRequest struct {
	Name            string              `json:"name" binding:"required"`
	Thumbnail       string              `json:"thumbnail"`
	Dimensions      string              `json:"dimensions" binding:"required"`
	DefaultElements []MapElementRequest `json:"defaultElements"`
}

// CreateMap handles map template creation.
// POST /api/v1/admin/map
func (h *AdminHandlers) CreateMap(c *gin.Context) {
	var req CreateMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	width, height, err := parseDimensions(req.Dimensions)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	placements := make([]store.MapElement, 0, len(req.DefaultElements))
	for _, p := range req.DefaultElements {
		if _, err := h.store.GetElementByID(c.Request.Context(), p.ElementID); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown element %s", p.ElementID)})
			return
		}
		placements = append(placements, store.MapElement{ElementID: p.ElementID, X: p.X, Y: p.Y})
	}

	tmpl, err := h.store.CreateMap(c.Request.Context(), &store.MapTemplate{
		Name:      req.Name,
		Thumbnail: req.Thumbnail,
		Width:     width,
		Height:    height,
	}, placements)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create map")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": tmpl.ID})
}

// parseDimensions parses the "WxH" wire form into positive cell counts.
func parseDimensions(s string) (width, height int, err error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("dimensions must look like 100x200")
	}

	width, errW := strconv.Atoi(parts[0])
	height, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive integers")
	}
	return width, height, nil
}
