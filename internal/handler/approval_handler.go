package handler

import (
	"errors"
	"net/http"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/service"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/pagination"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
}

func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/api/approvals", middleware.RequireAuth())
	{
		approvals.POST("", h.Submit)
		approvals.GET("", h.List)
		approvals.PUT("/:id/approve", h.Approve)
		approvals.PUT("/:id/reject", h.Reject)
	}
}

// Submit sends an ESG record for review
// @Summary      Submit for review
// @Description  Flips the record into the submitted state and creates a pending approval request in one transaction
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SubmitRequest  true  "Submit Payload"
// @Success      201      {object}  response.Response{data=service.ApprovalResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/approvals [post]
func (h *ApprovalHandler) Submit(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, err := h.approvalService.Submit(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		status := approvalErrorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, approval))
}

// List returns the caller's approval inbox or outbox
// @Summary      List approval requests
// @Description  Returns the caller's inbox (requests to review) or outbox (requests they submitted)
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        direction  query     string  false  "inbox or outbox (default inbox)"
// @Param        status     query     string  false  "Filter by status (pending, approved, rejected)"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 20)"
// @Success      200        {object}  response.Response{data=response.Paginated}
// @Failure      400        {object}  response.Response
// @Router       /api/approvals [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	params := pagination.Parse(c)
	direction := c.DefaultQuery("direction", service.DirectionInbox)

	requests, total, err := h.approvalService.ListForUser(c.Request.Context(), middleware.UserID(c), direction, c.Query("status"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, requests, total, params.Page, params.Limit))
}

// Approve resolves a pending approval request as approved
// @Summary      Approve submission
// @Description  Approves a pending request; the referenced record becomes approved. Terminal states are immutable.
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true   "Approval Request ID"
// @Param        payload  body      service.DecideRequest  false  "Optional comments"
// @Success      200      {object}  response.Response{data=service.ApprovalResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/approvals/{id}/approve [put]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject resolves a pending approval request as rejected
// @Summary      Reject submission
// @Description  Rejects a pending request; the referenced record becomes rejected and editable again. Terminal states are immutable.
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true   "Approval Request ID"
// @Param        payload  body      service.DecideRequest  false  "Optional comments"
// @Success      200      {object}  response.Response{data=service.ApprovalResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/approvals/{id}/reject [put]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *ApprovalHandler) decide(c *gin.Context, approve bool) {
	var req service.DecideRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
			return
		}
	}
	req.Approve = approve

	approval, err := h.approvalService.Decide(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		status := approvalErrorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, approval))
}

func approvalErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrPendingApprovalExists),
		errors.Is(err, service.ErrApprovalAlreadyResolved),
		errors.Is(err, service.ErrRecordNotSubmittable):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotApprover):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
