package handler

import (
	"net/http"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/service"
	"timetrack-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	shiftService service.ShiftService
}

// NewShiftHandler sets up the routing dependencies for Shift endpoints
func NewShiftHandler(shiftService service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ShiftHandler) RegisterRoutes(router *gin.RouterGroup) {
	shifts := router.Group("/api/shifts", middleware.RequireAuth())
	{
		shifts.PUT("", h.Upsert)
		shifts.DELETE("/:id", h.Delete)
		shifts.GET("", h.ListRange)
	}
}

// Upsert handles PUT /api/shifts
// @Summary      Upsert shift
// @Description  Creates or replaces the shift cell for a user and date
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpsertShiftDTO  true  "Shift Payload"
// @Success      200      {object}  response.Response{data=service.ShiftResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/shifts [put]
func (h *ShiftHandler) Upsert(c *gin.Context) {
	var req service.UpsertShiftDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	shift, err := h.shiftService.Upsert(c.Request.Context(), c.GetString("userID"), c.GetString("userRole"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, shift))
}

// Delete handles DELETE /api/shifts/:id
// @Summary      Delete shift
// @Description  Deletes a shift owned by the caller, or any shift when called by an admin
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shift ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *gin.Context) {
	if err := h.shiftService.Delete(c.Request.Context(), c.GetString("userID"), c.GetString("userRole"), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Shift deleted"))
}

// ListRange handles GET /api/shifts
// @Summary      List shifts
// @Description  Lists shifts for a date range; admins may pass user_id to view another user's calendar
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  true   "Range start (YYYY-MM-DD)"
// @Param        end_date    query     string  true   "Range end (YYYY-MM-DD)"
// @Param        user_id     query     string  false  "Target user (admin only)"
// @Success      200         {object}  response.Response{data=[]service.ShiftResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/shifts [get]
func (h *ShiftHandler) ListRange(c *gin.Context) {
	shifts, err := h.shiftService.ListRange(c.Request.Context(), c.GetString("userID"), c.GetString("userRole"),
		c.Query("user_id"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, shifts))
}
