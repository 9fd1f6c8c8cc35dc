package handler

import (
	"net/http"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/service"
	"timetrack-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler sets up the routing dependencies for Report endpoints
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports", middleware.RequireAuth())
	{
		reports.GET("/overtime", h.Overtime)
		reports.GET("/totals", h.TotalsByType)
	}
}

// Overtime handles GET /api/reports/overtime
// @Summary      Overtime report
// @Description  Compares logged hours against the expected hours for the range's working days
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  true   "Range start (YYYY-MM-DD)"
// @Param        end_date    query     string  true   "Range end (YYYY-MM-DD)"
// @Param        user_id     query     string  false  "Target user (admin only)"
// @Success      200         {object}  response.Response{data=service.OvertimeReport}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/overtime [get]
func (h *ReportHandler) Overtime(c *gin.Context) {
	report, err := h.reportService.Overtime(c.Request.Context(), c.GetString("userID"), c.GetString("userRole"),
		c.Query("user_id"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// TotalsByType handles GET /api/reports/totals
// @Summary      Hour totals by type
// @Description  Aggregates logged hours per hour type over a date range
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  true   "Range start (YYYY-MM-DD)"
// @Param        end_date    query     string  true   "Range end (YYYY-MM-DD)"
// @Param        user_id     query     string  false  "Target user (admin only)"
// @Success      200         {object}  response.Response{data=[]repository.TypeTotal}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/totals [get]
func (h *ReportHandler) TotalsByType(c *gin.Context) {
	totals, err := h.reportService.TotalsByType(c.Request.Context(), c.GetString("userID"), c.GetString("userRole"),
		c.Query("user_id"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, totals))
}
