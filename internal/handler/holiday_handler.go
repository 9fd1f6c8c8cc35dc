package handler

import (
	"net/http"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/model"
	"timetrack-backend/internal/service"
	"timetrack-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type HolidayHandler struct {
	holidayService service.HolidayService
}

// NewHolidayHandler sets up the routing dependencies for Holiday endpoints
func NewHolidayHandler(holidayService service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidayService: holidayService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *HolidayHandler) RegisterRoutes(router *gin.RouterGroup) {
	holidays := router.Group("/api/holidays")
	{
		holidays.GET("", middleware.RequireAuth(), h.List)

		admin := holidays.Group("", middleware.RequireRole(model.RoleAdmin))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// List handles GET /api/holidays
// @Summary      List holidays
// @Description  Lists all configured holidays
// @Tags         holidays
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.HolidayResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	holidays, err := h.holidayService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch holidays"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, holidays))
}

// Create handles POST /api/holidays
// @Summary      Create holiday
// @Description  Creates a holiday; at most one holiday may exist per date
// @Tags         holidays
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.HolidayDTO  true  "Holiday Payload"
// @Success      201      {object}  response.Response{data=service.HolidayResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req service.HolidayDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	holiday, err := h.holidayService.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, holiday))
}

// Update handles PUT /api/holidays/:id
// @Summary      Update holiday
// @Description  Updates a holiday's date, name, description or recurrence
// @Tags         holidays
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Holiday ID"
// @Param        payload  body      service.HolidayDTO  true  "Holiday Payload"
// @Success      200      {object}  response.Response{data=service.HolidayResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/holidays/{id} [put]
func (h *HolidayHandler) Update(c *gin.Context) {
	var req service.HolidayDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	holiday, err := h.holidayService.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, holiday))
}

// Delete handles DELETE /api/holidays/:id
// @Summary      Delete holiday
// @Description  Deletes a holiday by ID
// @Tags         holidays
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Holiday ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	if err := h.holidayService.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Holiday deleted"))
}
