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

type MaterialityHandler struct {
	materialityService service.MaterialityService
}

func NewMaterialityHandler(materialityService service.MaterialityService) *MaterialityHandler {
	return &MaterialityHandler{materialityService: materialityService}
}

func (h *MaterialityHandler) RegisterRoutes(router *gin.RouterGroup) {
	materiality := router.Group("/api/materiality", middleware.RequireRole(model.RoleEnterprise, model.RoleEmployee))
	{
		materiality.GET("/assessments", h.ListAssessments)
		materiality.POST("/assessments", h.CreateAssessment)
		materiality.GET("/assessments/:id", h.GetAssessment)
		materiality.PUT("/assessments/:id/status", h.SetStatus)
		materiality.POST("/assessments/:id/topics", h.AddTopic)
		materiality.PUT("/topics/:id/ratings", h.RateTopic)
		materiality.GET("/assessments/:id/ranking", h.Ranking)
	}
}

// ListAssessments retrieves the enterprise's materiality assessments
// @Summary      List assessments
// @Description  Retrieves a paginated list of materiality assessments
// @Tags         materiality
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Paginated}
// @Failure      400    {object}  response.Response
// @Router       /api/materiality/assessments [get]
func (h *MaterialityHandler) ListAssessments(c *gin.Context) {
	params := pagination.Parse(c)

	assessments, total, err := h.materialityService.ListAssessments(c.Request.Context(), middleware.EnterpriseID(c), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, assessments, total, params.Page, params.Limit))
}

// CreateAssessment opens a new materiality assessment
// @Summary      Create assessment
// @Description  Creates a materiality assessment in the draft state
// @Tags         materiality
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateAssessmentRequest  true  "Assessment Payload"
// @Success      201      {object}  response.Response{data=model.MaterialityAssessment}
// @Failure      400      {object}  response.Response
// @Router       /api/materiality/assessments [post]
func (h *MaterialityHandler) CreateAssessment(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assessment, err := h.materialityService.CreateAssessment(c.Request.Context(), middleware.EnterpriseID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assessment))
}

// GetAssessment fetches one assessment
// @Summary      Get assessment
// @Description  Fetches a materiality assessment by ID
// @Tags         materiality
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=model.MaterialityAssessment}
// @Failure      404  {object}  response.Response
// @Router       /api/materiality/assessments/{id} [get]
func (h *MaterialityHandler) GetAssessment(c *gin.Context) {
	assessment, err := h.materialityService.GetAssessment(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// SetStatus activates or closes an assessment
// @Summary      Set assessment status
// @Description  Moves an assessment to active or closed; closed assessments are immutable
// @Tags         materiality
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Assessment ID"
// @Param        payload  body      object{status=string}  true  "Status Payload"
// @Success      200      {object}  response.Response{data=model.MaterialityAssessment}
// @Failure      400      {object}  response.Response
// @Router       /api/materiality/assessments/{id}/status [put]
func (h *MaterialityHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assessment, err := h.materialityService.SetStatus(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assessment))
}

// AddTopic adds an ESG topic to an assessment
// @Summary      Add topic
// @Description  Adds an environmental, social or governance topic to an open assessment
// @Tags         materiality
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Assessment ID"
// @Param        payload  body      service.AddTopicRequest  true  "Topic Payload"
// @Success      201      {object}  response.Response{data=model.MaterialityTopic}
// @Failure      400      {object}  response.Response
// @Router       /api/materiality/assessments/{id}/topics [post]
func (h *MaterialityHandler) AddTopic(c *gin.Context) {
	var req service.AddTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	topic, err := h.materialityService.AddTopic(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, topic))
}

// RateTopic records a stakeholder's importance rating for a topic
// @Summary      Rate topic
// @Description  Upserts a stakeholder's importance rating (1-5) for a topic
// @Tags         materiality
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Topic ID"
// @Param        payload  body      service.RateTopicRequest  true  "Rating Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/materiality/topics/{id}/ratings [put]
func (h *MaterialityHandler) RateTopic(c *gin.Context) {
	var req service.RateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.materialityService.RateTopic(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"), req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Rating recorded"))
}

// Ranking returns topics ranked by weighted stakeholder importance
// @Summary      Get topic ranking
// @Description  Returns the assessment's topics ordered by influence-weighted importance
// @Tags         materiality
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  response.Response{data=[]model.TopicRanking}
// @Failure      404  {object}  response.Response
// @Router       /api/materiality/assessments/{id}/ranking [get]
func (h *MaterialityHandler) Ranking(c *gin.Context) {
	ranking, err := h.materialityService.Ranking(c.Request.Context(), middleware.EnterpriseID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ranking))
}
