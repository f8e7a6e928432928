package handler

import (
	"net/http"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/service"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/enterprise", middleware.RequireRole(model.RoleEnterprise, model.RoleEmployee), h.Enterprise)
		dashboard.GET("/admin", middleware.RequireRole(model.RoleFandoroAdmin), h.Admin)
	}
}

// Enterprise returns the enterprise dashboard aggregates
// @Summary      Enterprise dashboard
// @Description  Returns SDG progress, emission totals, approval and compliance counts, and upcoming audits
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.EnterpriseDashboard}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/enterprise [get]
func (h *DashboardHandler) Enterprise(c *gin.Context) {
	dashboard, err := h.dashboardService.EnterpriseDashboard(c.Request.Context(), middleware.EnterpriseID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build dashboard: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// Admin returns platform-wide counts
// @Summary      Admin dashboard
// @Description  Returns enterprise counts, users per role and outstanding workflow counts
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.AdminDashboard}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	dashboard, err := h.dashboardService.AdminDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build dashboard: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
