package handler

import (
	"net/http"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/rbac"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// NavigationHandler serves the compiled-in role navigation table.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

func (h *NavigationHandler) RegisterRoutes(router *gin.RouterGroup) {
	navigation := router.Group("/api/navigation", middleware.RequireAuth())
	{
		navigation.GET("", h.GetPolicy)
		navigation.GET("/resolve", h.Resolve)
	}
}

// GetPolicy returns the caller's navigation policy
// @Summary      Get navigation policy
// @Description  Returns the menu items, allowed prefixes and default landing route for the caller's role
// @Tags         navigation
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=rbac.Policy}
// @Failure      404  {object}  response.Response
// @Router       /api/navigation [get]
func (h *NavigationHandler) GetPolicy(c *gin.Context) {
	policy, ok := rbac.PolicyFor(middleware.UserRole(c))
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "No navigation policy for role"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, policy))
}

// Resolve decides whether the caller may reach a frontend path
// @Summary      Resolve path
// @Description  Returns allowed, a redirect to the role's default route, or not-found for the given path
// @Tags         navigation
// @Security     BearerAuth
// @Produce      json
// @Param        path  query     string  true  "Frontend path to resolve"
// @Success      200   {object}  response.Response{data=rbac.Decision}
// @Failure      400   {object}  response.Response
// @Router       /api/navigation/resolve [get]
func (h *NavigationHandler) Resolve(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "path query parameter is required"))
		return
	}

	decision := rbac.Resolve(middleware.UserRole(c), path)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, decision))
}
