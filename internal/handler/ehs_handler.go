package handler

import (
	"errors"
	"net/http"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/service"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/pagination"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type EHSHandler struct {
	ehsService service.EHSService
}

func NewEHSHandler(ehsService service.EHSService) *EHSHandler {
	return &EHSHandler{ehsService: ehsService}
}

func (h *EHSHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Enterprise side: schedule and track audits
	audits := router.Group("/api/ehs/audits", middleware.RequireRole(model.RoleEnterprise, model.RoleEmployee))
	{
		audits.GET("", h.ListForEnterprise)
		audits.POST("", h.Schedule)
		audits.GET("/:id", h.GetAudit)
	}

	// Auditor side: execute assigned audits
	assigned := router.Group("/api/auditor/audits", middleware.RequireRole(model.RoleAuditor))
	{
		assigned.GET("", h.ListForAuditor)
		assigned.GET("/:id", h.GetAssignedAudit)
		assigned.PUT("/:id/start", h.Start)
		assigned.PUT("/:id/items/:itemID", h.AnswerItem)
		assigned.PUT("/:id/complete", h.Complete)
	}
}

// Schedule creates a new EHS audit with its checklist
// @Summary      Schedule EHS audit
// @Description  Schedules an audit at a site, assigns an auditor and seeds the checklist
// @Tags         ehs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ScheduleAuditRequest  true  "Schedule Audit Payload"
// @Success      201      {object}  response.Response{data=model.EHSAudit}
// @Failure      400      {object}  response.Response
// @Router       /api/ehs/audits [post]
func (h *EHSHandler) Schedule(c *gin.Context) {
	var req service.ScheduleAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	audit, err := h.ehsService.Schedule(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, audit))
}

// ListForEnterprise retrieves the enterprise's audits
// @Summary      List audits
// @Description  Retrieves a paginated list of the enterprise's EHS audits
// @Tags         ehs
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Failure      400     {object}  response.Response
// @Router       /api/ehs/audits [get]
func (h *EHSHandler) ListForEnterprise(c *gin.Context) {
	params := pagination.Parse(c)

	audits, total, err := h.ehsService.ListForEnterprise(c.Request.Context(), middleware.EnterpriseID(c), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, audits, total, params.Page, params.Limit))
}

// ListForAuditor retrieves audits assigned to the calling auditor
// @Summary      List assigned audits
// @Description  Retrieves a paginated list of audits assigned to the calling auditor
// @Tags         ehs
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Failure      400     {object}  response.Response
// @Router       /api/auditor/audits [get]
func (h *EHSHandler) ListForAuditor(c *gin.Context) {
	params := pagination.Parse(c)

	audits, total, err := h.ehsService.ListForAuditor(c.Request.Context(), middleware.UserID(c), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, audits, total, params.Page, params.Limit))
}

// GetAudit fetches one of the enterprise's audits with its checklist
// @Summary      Get audit
// @Description  Fetches an audit and its checklist items by ID, scoped to the caller's enterprise
// @Tags         ehs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Audit ID"
// @Success      200  {object}  response.Response{data=model.EHSAudit}
// @Failure      404  {object}  response.Response
// @Router       /api/ehs/audits/{id} [get]
func (h *EHSHandler) GetAudit(c *gin.Context) {
	audit, err := h.ehsService.GetAudit(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Audit not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, audit))
}

// GetAssignedAudit fetches an audit assigned to the calling auditor
// @Summary      Get assigned audit
// @Description  Fetches an audit and its checklist items; the audit must be assigned to the caller
// @Tags         ehs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Audit ID"
// @Success      200  {object}  response.Response{data=model.EHSAudit}
// @Failure      404  {object}  response.Response
// @Router       /api/auditor/audits/{id} [get]
func (h *EHSHandler) GetAssignedAudit(c *gin.Context) {
	audit, err := h.ehsService.GetAssignedAudit(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Audit not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, audit))
}

// Start moves a scheduled audit into in_progress
// @Summary      Start audit
// @Description  Moves a scheduled audit into the in_progress state
// @Tags         ehs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Audit ID"
// @Success      200  {object}  response.Response{data=model.EHSAudit}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/auditor/audits/{id}/start [put]
func (h *EHSHandler) Start(c *gin.Context) {
	audit, err := h.ehsService.Start(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		status := ehsErrorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, audit))
}

// AnswerItem records a response and score for one checklist item
// @Summary      Answer checklist item
// @Description  Records the auditor's response and score (0-5) for a checklist item
// @Tags         ehs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Audit ID"
// @Param        itemID   path      string                     true  "Checklist Item ID"
// @Param        payload  body      service.AnswerItemRequest  true  "Answer Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auditor/audits/{id}/items/{itemID} [put]
func (h *EHSHandler) AnswerItem(c *gin.Context) {
	var req service.AnswerItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	err := h.ehsService.AnswerItem(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("itemID"), req)
	if err != nil {
		status := ehsErrorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Item updated"))
}

// Complete closes an audit and computes the overall score
// @Summary      Complete audit
// @Description  Closes an in-progress audit once every checklist item is scored
// @Tags         ehs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Audit ID"
// @Success      200  {object}  response.Response{data=model.EHSAudit}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/auditor/audits/{id}/complete [put]
func (h *EHSHandler) Complete(c *gin.Context) {
	audit, err := h.ehsService.Complete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		status := ehsErrorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, audit))
}

func ehsErrorStatus(err error) int {
	if errors.Is(err, service.ErrAuditNotEditable) || errors.Is(err, service.ErrUnscoredItems) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
