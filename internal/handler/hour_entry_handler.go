package handler

import (
	"net/http"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/model"
	"timetrack-backend/internal/service"
	"timetrack-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type HourEntryHandler struct {
	hourService service.HourEntryService
}

// NewHourEntryHandler sets up the routing dependencies for HourEntry endpoints
func NewHourEntryHandler(hourService service.HourEntryService) *HourEntryHandler {
	return &HourEntryHandler{hourService: hourService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *HourEntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/api/hour-entries", middleware.RequireAuth())
	{
		entries.POST("", h.Create)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
		entries.POST("/bulk", h.BulkCreate)
		entries.POST("/batch", h.BatchUpdate)
		entries.GET("", h.List)
		entries.GET("/user/:id", middleware.RequireRole(model.RoleAdmin), h.ListForUser)
	}
}

// Create handles POST /api/hour-entries
// @Summary      Create hour entry
// @Description  Creates a manual hour entry, replacing any existing manual entry for the same date and type
// @Tags         hour-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.HourEntryDTO  true  "Hour Entry Payload"
// @Success      201      {object}  response.Response{data=service.HourEntryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/hour-entries [post]
func (h *HourEntryHandler) Create(c *gin.Context) {
	var req service.HourEntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.hourService.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// Update handles PUT /api/hour-entries/:id
// @Summary      Update hour entry
// @Description  Updates a manual hour entry owned by the caller
// @Tags         hour-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Entry ID"
// @Param        payload  body      service.HourEntryDTO  true  "Hour Entry Payload"
// @Success      200      {object}  response.Response{data=service.HourEntryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/hour-entries/{id} [put]
func (h *HourEntryHandler) Update(c *gin.Context) {
	var req service.HourEntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.hourService.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// Delete handles DELETE /api/hour-entries/:id
// @Summary      Delete hour entry
// @Description  Deletes a manual hour entry owned by the caller
// @Tags         hour-entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/hour-entries/{id} [delete]
func (h *HourEntryHandler) Delete(c *gin.Context) {
	if err := h.hourService.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Hour entry deleted"))
}

// BulkCreate handles POST /api/hour-entries/bulk
// @Summary      Bulk create hour entries
// @Description  Creates hour entries for every date in a range, optionally skipping weekends and holidays
// @Tags         hour-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkCreateDTO  true  "Bulk Create Payload"
// @Success      201      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Router       /api/hour-entries/bulk [post]
func (h *HourEntryHandler) BulkCreate(c *gin.Context) {
	var req service.BulkCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	count, err := h.hourService.BulkCreate(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, map[string]interface{}{
		"created": count,
	}))
}

// BatchUpdate handles POST /api/hour-entries/batch
// @Summary      Batch update hour entries
// @Description  Applies a list of create, update and delete changes in a single transaction
// @Tags         hour-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      []service.BatchChangeDTO  true  "Batch Changes"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/hour-entries/batch [post]
func (h *HourEntryHandler) BatchUpdate(c *gin.Context) {
	var changes []service.BatchChangeDTO
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.hourService.BatchUpdate(c.Request.Context(), c.GetString("userID"), changes); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Changes applied"))
}

// List handles GET /api/hour-entries for the caller's own hours
// @Summary      List hour rows
// @Description  Returns per-day rows for a date range with manual, tracked, total and grand total kinds
// @Tags         hour-entries
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  true   "Range start (YYYY-MM-DD)"
// @Param        end_date    query     string  true   "Range end (YYYY-MM-DD)"
// @Param        type        query     string  false  "Filter by hour type"
// @Success      200         {object}  response.Response{data=[]service.HourRow}
// @Failure      400         {object}  response.Response
// @Router       /api/hour-entries [get]
func (h *HourEntryHandler) List(c *gin.Context) {
	rows, err := h.hourService.List(c.Request.Context(), c.GetString("userID"),
		c.Query("start_date"), c.Query("end_date"), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ListForUser handles GET /api/hour-entries/user/:id for admins
// @Summary      List hour rows for a user
// @Description  Returns per-day rows for any user's date range
// @Tags         hour-entries
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true   "User ID"
// @Param        start_date  query     string  true   "Range start (YYYY-MM-DD)"
// @Param        end_date    query     string  true   "Range end (YYYY-MM-DD)"
// @Param        type        query     string  false  "Filter by hour type"
// @Success      200         {object}  response.Response{data=[]service.HourRow}
// @Failure      400         {object}  response.Response
// @Router       /api/hour-entries/user/{id} [get]
func (h *HourEntryHandler) ListForUser(c *gin.Context) {
	rows, err := h.hourService.List(c.Request.Context(), c.Param("id"),
		c.Query("start_date"), c.Query("end_date"), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
