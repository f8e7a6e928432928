package handler

import (
	"net/http"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/service"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports", middleware.RequireRole(model.RoleEnterprise, model.RoleEmployee))
	{
		reports.GET("/esg/export", h.ExportESG)
	}
}

// ExportESG downloads the enterprise's ESG report as an xlsx workbook
// @Summary      Export ESG report
// @Description  Renders the enterprise's SDG and emission records into an xlsx workbook
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        period  query  string  false  "Restrict to one reporting period"
// @Success      200
// @Failure      500  {object}  response.Response
// @Router       /api/reports/esg/export [get]
func (h *ReportHandler) ExportESG(c *gin.Context) {
	data, filename, err := h.reportService.ExportESGWorkbook(c.Request.Context(), middleware.EnterpriseID(c), c.Query("period"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to generate report: "+err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
