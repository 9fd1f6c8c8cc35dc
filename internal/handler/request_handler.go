package handler

import (
	"net/http"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/model"
	"timetrack-backend/internal/service"
	"timetrack-backend/pkg/pagination"
	"timetrack-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler sets up the routing dependencies for Request endpoints
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests", middleware.RequireAuth())
	{
		requests.POST("", h.Submit)
		requests.GET("", h.ListOwn)
		requests.GET("/:id", h.Get)
		requests.PUT("/:id", h.Update)
		requests.PUT("/:id/cancel", h.Cancel)

		admin := requests.Group("", middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/all", h.ListAll)
			admin.PUT("/:id/approve", h.Approve)
			admin.PUT("/:id/reject", h.Reject)
			admin.PUT("/:id/cancel-approved", h.CancelApproved)
		}
	}
}

type reasonPayload struct {
	Reason string `json:"reason"`
}

// Submit handles POST /api/requests
// @Summary      Submit request
// @Description  Creates a new leave or work-location request in PENDING status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitRequestDTO  true  "Request Payload"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	var req service.SubmitRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.Submit(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListOwn handles GET /api/requests to list the caller's requests
// @Summary      List own requests
// @Description  Lists the authenticated user's requests, optionally filtered by status and type
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        type    query     string  false  "Filter by type"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response{data=[]service.RequestResponse}
// @Failure      500     {object}  response.Response
// @Router       /api/requests [get]
func (h *RequestHandler) ListOwn(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.RequestListFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Page:   p.Page,
		Limit:  p.Limit,
	}

	requests, total, err := h.requestService.ListForUser(c.Request.Context(), c.GetString("userID"), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch requests"))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, requests, total, p.Page, p.Limit))
}

// ListAll handles GET /api/requests/all to list every user's requests
// @Summary      List all requests
// @Description  Lists requests across all users, optionally filtered by status and type
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        type    query     string  false  "Filter by type"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response{data=[]service.RequestResponse}
// @Failure      500     {object}  response.Response
// @Router       /api/requests/all [get]
func (h *RequestHandler) ListAll(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.RequestListFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Page:   p.Page,
		Limit:  p.Limit,
	}

	requests, total, err := h.requestService.ListAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch requests"))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, requests, total, p.Page, p.Limit))
}

// Get handles GET /api/requests/:id
// @Summary      Get request
// @Description  Returns a single request; owners see their own, admins see any
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	result, err := h.requestService.Get(c.Request.Context(), c.GetString("userID"), c.GetString("userRole"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Update handles PUT /api/requests/:id
// @Summary      Update request
// @Description  Updates a pending request owned by the caller
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.UpdateRequestDTO  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) Update(c *gin.Context) {
	var req service.UpdateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Cancel handles PUT /api/requests/:id/cancel
// @Summary      Cancel request
// @Description  Cancels a pending request owned by the caller
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true   "Request ID"
// @Param        payload  body      reasonPayload  false  "Cancellation Reason"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/{id}/cancel [put]
func (h *RequestHandler) Cancel(c *gin.Context) {
	var req reasonPayload
	_ = c.ShouldBindJSON(&req) // reason is optional for a pending cancel

	result, err := h.requestService.Cancel(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Approve handles PUT /api/requests/:id/approve
// @Summary      Approve request
// @Description  Approves a pending request and generates hour entries and shifts for its working days
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/requests/{id}/approve [put]
func (h *RequestHandler) Approve(c *gin.Context) {
	result, err := h.requestService.Approve(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Reject handles PUT /api/requests/:id/reject
// @Summary      Reject request
// @Description  Rejects a pending request with a reason
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Request ID"
// @Param        payload  body      reasonPayload  true  "Rejection Reason"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/{id}/reject [put]
func (h *RequestHandler) Reject(c *gin.Context) {
	var req reasonPayload
	_ = c.ShouldBindJSON(&req)

	result, err := h.requestService.Reject(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CancelApproved handles PUT /api/requests/:id/cancel-approved
// @Summary      Cancel approved request
// @Description  Cancels an approved request, removing its generated hour entries and shifts
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Request ID"
// @Param        payload  body      reasonPayload  true  "Cancellation Reason"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/{id}/cancel-approved [put]
func (h *RequestHandler) CancelApproved(c *gin.Context) {
	var req reasonPayload
	_ = c.ShouldBindJSON(&req)

	result, err := h.requestService.CancelApproved(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
