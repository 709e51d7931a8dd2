package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gridspace-server/internal/auth"
	"github.com/vovakirdan/gridspace-server/internal/store"
)

// APIHandlers provides HTTP handlers for auth and avatar endpoints.
type APIHandlers struct {
	authService *auth.Service
	store       store.Store
	log         *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(authService *auth.Service, st store.Store, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		authService: authService,
		store:       st,
		log:         logger,
	}
}

// SignupRequest represents the signup request body. Type selects the
// account role: "admin" or "user".
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type"`
}

// SigninRequest represents the signin request body.
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupResponse carries the new account's ID.
type SignupResponse struct {
	UserID int64 `json:"userId"`
}

// SigninResponse carries the issued JWT.
type SigninResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Signup handles account creation.
// POST /api/v1/signup
func (h *APIHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid signup request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req.Username, req.Password, store.Role(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists),
			errors.Is(err, auth.ErrInvalidUsername),
			errors.Is(err, auth.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			h.log.Error().Err(err).Str("username", req.Username).Msg("failed to sign up user")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	h.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user signed up")
	c.JSON(http.StatusOK, SignupResponse{UserID: user.ID})
}

// Signin handles login.
// POST /api/v1/signin
func (h *APIHandlers) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid signin request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to sign in user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, SigninResponse{Token: token})
}

// AvatarResponse is one catalog avatar.
type AvatarResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// ListAvatars returns the public avatar catalog.
// GET /api/v1/avatars
func (h *APIHandlers) ListAvatars(c *gin.Context) {
	avatars, err := h.store.ListAvatars(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list avatars")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	resp := make([]AvatarResponse, 0, len(avatars))
	for _, a := range avatars {
		resp = append(resp, AvatarResponse{ID: a.ID, Name: a.Name, ImageURL: a.ImageURL})
	}
	c.JSON(http.StatusOK, gin.H{"avatars": resp})
}

// ElementResponse is one catalog element.
type ElementResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Static   bool   `json:"static"`
}

// ListElements returns the public element catalog.
// GET /api/v1/elements
func (h *APIHandlers) ListElements(c *gin.Context) {
	elements, err := h.store.ListElements(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list elements")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	resp := make([]ElementResponse, 0, len(elements))
	for _, e := range elements {
		resp = append(resp, ElementResponse{
			ID:       e.ID,
			ImageURL: e.ImageURL,
			Width:    e.Width,
			Height:   e.Height,
			Static:   e.Static,
		})
	}
	c.JSON(http.StatusOK, gin.H{"elements": resp})
}
