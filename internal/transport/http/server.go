package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gridspace-server/internal/auth"
	"github.com/vovakirdan/gridspace-server/internal/config"
	"github.com/vovakirdan/gridspace-server/internal/core"
	"github.com/vovakirdan/gridspace-server/internal/store"
)

// NewServer builds the HTTP server: REST API plus the ws endpoint.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	api := NewAPIHandlers(authService, st, logger)
	admin := NewAdminHandlers(st, logger)
	spaces := NewSpaceHandlers(st, logger)

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, authService, st, cfg, logger)))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/signup", api.Signup)
		v1.POST("/signin", api.Signin)
		v1.GET("/avatars", api.ListAvatars)
		v1.GET("/elements", api.ListElements)
		v1.GET("/user/metadata/bulk", api.BulkMetadata)

		authed := v1.Group("", AuthMiddleware(authService, logger))
		{
			authed.POST("/user/metadata", api.UpdateMetadata)

			authed.POST("/space", spaces.CreateSpace)
			authed.GET("/space/all", spaces.ListSpaces)
			authed.POST("/space/element", spaces.AddSpaceElement)
			authed.DELETE("/space/element/:id", spaces.DeleteSpaceElement)
			authed.GET("/space/:id", spaces.GetSpace)
			authed.DELETE("/space/:id", spaces.DeleteSpace)

			adm := authed.Group("/admin", AdminOnly())
			{
				adm.POST("/avatar", admin.CreateAvatar)
				adm.POST("/element", admin.CreateElement)
				adm.PUT("/element/:id", admin.UpdateElement)
				adm.POST("/map", admin.CreateMap)
			}
		}
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
