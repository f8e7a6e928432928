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

type StakeholderHandler struct {
	stakeholderService service.StakeholderService
}

func NewStakeholderHandler(stakeholderService service.StakeholderService) *StakeholderHandler {
	return &StakeholderHandler{stakeholderService: stakeholderService}
}

func (h *StakeholderHandler) RegisterRoutes(router *gin.RouterGroup) {
	stakeholders := router.Group("/api/stakeholders", middleware.RequireRole(model.RoleEnterprise, model.RoleEmployee))
	{
		stakeholders.GET("", h.List)
		stakeholders.POST("", h.Create)
		stakeholders.PUT("/:id", h.Update)
		stakeholders.DELETE("/:id", h.Delete)
	}
}

// List retrieves the enterprise's stakeholder registry
// @Summary      List stakeholders
// @Description  Retrieves a paginated list of stakeholders, optionally filtered by category
// @Tags         stakeholders
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Param        category  query     string  false  "Filter by category"
// @Success      200       {object}  response.Response{data=response.Paginated}
// @Failure      400       {object}  response.Response
// @Router       /api/stakeholders [get]
func (h *StakeholderHandler) List(c *gin.Context) {
	params := pagination.Parse(c)

	stakeholders, total, err := h.stakeholderService.List(c.Request.Context(), middleware.EnterpriseID(c), c.Query("category"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, stakeholders, total, params.Page, params.Limit))
}

// Create registers a new stakeholder
// @Summary      Create stakeholder
// @Description  Adds a stakeholder to the enterprise's registry
// @Tags         stakeholders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StakeholderRequest  true  "Stakeholder Payload"
// @Success      201      {object}  response.Response{data=model.Stakeholder}
// @Failure      400      {object}  response.Response
// @Router       /api/stakeholders [post]
func (h *StakeholderHandler) Create(c *gin.Context) {
	var req service.StakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	stakeholder, err := h.stakeholderService.Create(c.Request.Context(), middleware.EnterpriseID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, stakeholder))
}

// Update modifies an existing stakeholder
// @Summary      Update stakeholder
// @Description  Updates a stakeholder's details by ID
// @Tags         stakeholders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Stakeholder ID"
// @Param        payload  body      service.StakeholderRequest  true  "Stakeholder Payload"
// @Success      200      {object}  response.Response{data=model.Stakeholder}
// @Failure      400      {object}  response.Response
// @Router       /api/stakeholders/{id} [put]
func (h *StakeholderHandler) Update(c *gin.Context) {
	var req service.StakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	stakeholder, err := h.stakeholderService.Update(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stakeholder))
}

// Delete removes a stakeholder
// @Summary      Delete stakeholder
// @Description  Soft deletes a stakeholder by ID
// @Tags         stakeholders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Stakeholder ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/stakeholders/{id} [delete]
func (h *StakeholderHandler) Delete(c *gin.Context) {
	if err := h.stakeholderService.Delete(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Stakeholder deleted successfully"))
}
