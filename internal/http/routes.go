package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup is implemented by handlers that mount their routes under /api.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

var (
	_ RouteGroup = (*ProductHandler)(nil)
	_ RouteGroup = (*CategoryHandler)(nil)
	_ RouteGroup = (*BrandHandler)(nil)
	_ RouteGroup = (*UserHandler)(nil)
)
