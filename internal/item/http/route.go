package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	// Search is public; everything else needs a caller identity.
	group.GET("/search", h.Search)

	auth := group.Group("")
	auth.Use(identityMiddleware)
	{
		auth.GET("", h.ListOwn)
		auth.GET("/:id", h.Get)
		auth.POST("", h.Create)
		auth.PATCH("/:id", h.Update)
		auth.POST("/:id/comment", h.AddComment)
	}
}
