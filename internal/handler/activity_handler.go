package handler

import (
	"net/http"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/service"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/pagination"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activity := router.Group("/api/activity", middleware.RequireRole(model.RoleFandoroAdmin))
	{
		activity.GET("", h.List)
	}
}

// List retrieves the activity log
// @Summary      List activity log
// @Description  Retrieves a paginated view of critical state changes, optionally filtered by action
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        action  query     string  false  "Filter by action"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Failure      500     {object}  response.Response
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.activityService.List(c.Request.Context(), c.Query("action"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch activity log"))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, entries, total, params.Page, params.Limit))
}
