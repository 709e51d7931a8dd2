package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/gridspace-server/internal/store"
)

// UpdateMetadataRequest sets the caller's avatar.
type UpdateMetadataRequest struct {
	AvatarID string `json:"avatarId" binding:"required"`
}

// UpdateMetadata sets the authenticated user's avatar.
// POST /api/v1/user/metadata
func (h *APIHandlers) UpdateMetadata(c *gin.Context) {
	var req UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.store.UpdateUserAvatar(c.Request.Context(), currentUserID(c), req.AvatarID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "avatar not found"})
			return
		}
		h.log.Error().Err(err).Int64("user_id", currentUserID(c)).Msg("failed to update metadata")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// UserAvatarResponse is one entry of the bulk metadata lookup.
type UserAvatarResponse struct {
	UserID   int64   `json:"userId"`
	AvatarID *string `json:"avatarId"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// BulkMetadata returns avatar info for a set of user IDs. The ids query
// parameter is a JSON array, e.g. ?ids=[1,2,3].
// GET /api/v1/user/metadata/bulk
func (h *APIHandlers) BulkMetadata(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ids parameter is required"})
		return
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ids must be a JSON array of user ids"})
		return
	}

	users, err := h.store.GetUsersByIDs(c.Request.Context(), ids)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load users")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	resp := make([]UserAvatarResponse, 0, len(users))
	for _, u := range users {
		entry := UserAvatarResponse{UserID: u.ID, AvatarID: u.AvatarID}
		if u.AvatarID != nil {
			if avatar, err := h.store.GetAvatarByID(c.Request.Context(), *u.AvatarID); err == nil {
				entry.ImageURL = avatar.ImageURL
			}
		}
		resp = append(resp, entry)
	}

	c.JSON(http.StatusOK, gin.H{"avatars": resp})
}
