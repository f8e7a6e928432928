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

type ComplianceHandler struct {
	complianceService service.ComplianceService
}

func NewComplianceHandler(complianceService service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

func (h *ComplianceHandler) RegisterRoutes(router *gin.RouterGroup) {
	compliance := router.Group("/api/compliance", middleware.RequireRole(model.RoleEnterprise, model.RoleEmployee))
	{
		compliance.GET("", h.List)
		compliance.POST("", h.Create)
		compliance.PUT("/:id", h.Update)
		compliance.PUT("/:id/status", h.SetStatus)
		compliance.DELETE("/:id", h.Delete)
	}
}

// List retrieves the enterprise's compliance issues
// @Summary      List compliance issues
// @Description  Retrieves a paginated list of compliance issues, optionally filtered by severity and status
// @Tags         compliance
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Param        severity  query     string  false  "Filter by severity"
// @Param        status    query     string  false  "Filter by status"
// @Success      200       {object}  response.Response{data=response.Paginated}
// @Failure      400       {object}  response.Response
// @Router       /api/compliance [get]
func (h *ComplianceHandler) List(c *gin.Context) {
	params := pagination.Parse(c)

	issues, total, err := h.complianceService.List(c.Request.Context(), middleware.EnterpriseID(c), c.Query("severity"), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, issues, total, params.Page, params.Limit))
}

// Create records a new compliance issue
// @Summary      Create compliance issue
// @Description  Records a compliance issue in the open state
// @Tags         compliance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ComplianceIssueRequest  true  "Compliance Issue Payload"
// @Success      201      {object}  response.Response{data=model.ComplianceIssue}
// @Failure      400      {object}  response.Response
// @Router       /api/compliance [post]
func (h *ComplianceHandler) Create(c *gin.Context) {
	var req service.ComplianceIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	issue, err := h.complianceService.Create(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, issue))
}

// Update modifies an existing compliance issue
// @Summary      Update compliance issue
// @Description  Updates a compliance issue's details by ID
// @Tags         compliance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Issue ID"
// @Param        payload  body      service.ComplianceIssueRequest  true  "Compliance Issue Payload"
// @Success      200      {object}  response.Response{data=model.ComplianceIssue}
// @Failure      400      {object}  response.Response
// @Router       /api/compliance/{id} [put]
func (h *ComplianceHandler) Update(c *gin.Context) {
	var req service.ComplianceIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	issue, err := h.complianceService.Update(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, issue))
}

// SetStatus moves a compliance issue between open, in_progress and resolved
// @Summary      Set compliance issue status
// @Description  Updates the workflow status; resolving stamps the resolution time
// @Tags         compliance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Issue ID"
// @Param        payload  body      service.ComplianceStatusRequest  true  "Status Payload"
// @Success      200      {object}  response.Response{data=model.ComplianceIssue}
// @Failure      400      {object}  response.Response
// @Router       /api/compliance/{id}/status [put]
func (h *ComplianceHandler) SetStatus(c *gin.Context) {
	var req service.ComplianceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	issue, err := h.complianceService.SetStatus(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, issue))
}

// Delete removes a compliance issue
// @Summary      Delete compliance issue
// @Description  Soft deletes a compliance issue by ID
// @Tags         compliance
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Issue ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/compliance/{id} [delete]
func (h *ComplianceHandler) Delete(c *gin.Context) {
	if err := h.complianceService.Delete(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Compliance issue deleted successfully"))
}
