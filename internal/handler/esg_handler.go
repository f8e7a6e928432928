package handler

import (
	"net/http"
	"strconv"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/service"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/pagination"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type ESGHandler struct {
	esgService service.ESGService
}

func NewESGHandler(esgService service.ESGService) *ESGHandler {
	return &ESGHandler{esgService: esgService}
}

func (h *ESGHandler) RegisterRoutes(router *gin.RouterGroup) {
	esg := router.Group("/api/esg", middleware.RequireRole(model.RoleEnterprise, model.RoleEmployee))
	{
		esg.GET("/sdg", h.ListSDGProgress)
		esg.POST("/sdg", h.CreateSDGProgress)
		esg.PUT("/sdg/:id", h.UpdateSDGProgress)
		esg.DELETE("/sdg/:id", h.DeleteSDGProgress)

		esg.GET("/ghg", h.ListGHGEmissions)
		esg.POST("/ghg", h.CreateGHGEmission)
		esg.PUT("/ghg/:id", h.UpdateGHGEmission)
		esg.DELETE("/ghg/:id", h.DeleteGHGEmission)
	}
}

func (h *ESGHandler) listFilter(c *gin.Context) service.ESGListFilter {
	params := pagination.Parse(c)
	scope, _ := strconv.Atoi(c.Query("scope"))
	return service.ESGListFilter{
		ReportingPeriod: c.Query("period"),
		Status:          c.Query("status"),
		Scope:           scope,
		Page:            params.Page,
		Limit:           params.Limit,
	}
}

// ListSDGProgress retrieves the enterprise's SDG progress records
// @Summary      List SDG progress
// @Description  Retrieves a paginated list of SDG progress records for the caller's enterprise
// @Tags         esg
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        period  query     string  false  "Filter by reporting period"
// @Param        status  query     string  false  "Filter by record status"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Failure      500     {object}  response.Response
// @Router       /api/esg/sdg [get]
func (h *ESGHandler) ListSDGProgress(c *gin.Context) {
	filter := h.listFilter(c)

	records, total, err := h.esgService.ListSDGProgress(c.Request.Context(), middleware.EnterpriseID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve SDG progress: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, records, total, filter.Page, filter.Limit))
}

// CreateSDGProgress creates an SDG progress record in draft state
// @Summary      Create SDG progress
// @Description  Creates a new SDG progress record for the caller's enterprise
// @Tags         esg
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SDGProgressRequest  true  "SDG Progress Payload"
// @Success      201      {object}  response.Response{data=model.SDGProgress}
// @Failure      400      {object}  response.Response
// @Router       /api/esg/sdg [post]
func (h *ESGHandler) CreateSDGProgress(c *gin.Context) {
	var req service.SDGProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.esgService.CreateSDGProgress(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// UpdateSDGProgress updates a draft or rejected SDG progress record
// @Summary      Update SDG progress
// @Description  Updates an SDG progress record; records under review are locked
// @Tags         esg
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Record ID"
// @Param        payload  body      service.SDGProgressRequest  true  "SDG Progress Payload"
// @Success      200      {object}  response.Response{data=model.SDGProgress}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/esg/sdg/{id} [put]
func (h *ESGHandler) UpdateSDGProgress(c *gin.Context) {
	var req service.SDGProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.esgService.UpdateSDGProgress(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(esgErrorStatus(err), response.Error(esgErrorStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// DeleteSDGProgress soft deletes an SDG progress record
// @Summary      Delete SDG progress
// @Description  Soft deletes an SDG progress record; records under review are locked
// @Tags         esg
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/esg/sdg/{id} [delete]
func (h *ESGHandler) DeleteSDGProgress(c *gin.Context) {
	err := h.esgService.DeleteSDGProgress(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), c.Param("id"))
	if err != nil {
		c.JSON(esgErrorStatus(err), response.Error(esgErrorStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Record deleted successfully"))
}

// ListGHGEmissions retrieves the enterprise's GHG emission records
// @Summary      List GHG emissions
// @Description  Retrieves a paginated list of GHG emission records for the caller's enterprise
// @Tags         esg
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        period  query     string  false  "Filter by reporting period"
// @Param        status  query     string  false  "Filter by record status"
// @Param        scope   query     int     false  "Filter by emission scope (1, 2 or 3)"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Failure      500     {object}  response.Response
// @Router       /api/esg/ghg [get]
func (h *ESGHandler) ListGHGEmissions(c *gin.Context) {
	filter := h.listFilter(c)

	records, total, err := h.esgService.ListGHGEmissions(c.Request.Context(), middleware.EnterpriseID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve GHG emissions: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, records, total, filter.Page, filter.Limit))
}

// CreateGHGEmission creates a GHG emission record in draft state
// @Summary      Create GHG emission
// @Description  Creates a new GHG emission record for the caller's enterprise
// @Tags         esg
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.GHGEmissionRequest  true  "GHG Emission Payload"
// @Success      201      {object}  response.Response{data=model.GHGEmission}
// @Failure      400      {object}  response.Response
// @Router       /api/esg/ghg [post]
func (h *ESGHandler) CreateGHGEmission(c *gin.Context) {
	var req service.GHGEmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.esgService.CreateGHGEmission(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// UpdateGHGEmission updates a draft or rejected GHG emission record
// @Summary      Update GHG emission
// @Description  Updates a GHG emission record; records under review are locked
// @Tags         esg
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Record ID"
// @Param        payload  body      service.GHGEmissionRequest  true  "GHG Emission Payload"
// @Success      200      {object}  response.Response{data=model.GHGEmission}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/esg/ghg/{id} [put]
func (h *ESGHandler) UpdateGHGEmission(c *gin.Context) {
	var req service.GHGEmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.esgService.UpdateGHGEmission(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(esgErrorStatus(err), response.Error(esgErrorStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// DeleteGHGEmission soft deletes a GHG emission record
// @Summary      Delete GHG emission
// @Description  Soft deletes a GHG emission record; records under review are locked
// @Tags         esg
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/esg/ghg/{id} [delete]
func (h *ESGHandler) DeleteGHGEmission(c *gin.Context) {
	err := h.esgService.DeleteGHGEmission(c.Request.Context(), middleware.UserID(c), middleware.EnterpriseID(c), c.Param("id"))
	if err != nil {
		c.JSON(esgErrorStatus(err), response.Error(esgErrorStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Record deleted successfully"))
}

func esgErrorStatus(err error) int {
	if err == service.ErrRecordLocked {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
