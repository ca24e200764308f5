package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/service"
)

// StatusHandler adapts the status reference-data service to HTTP.
type StatusHandler struct {
	svc *service.StatusService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(svc *service.StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// StatusBody is the JSON body for creating or updating a status.
type StatusBody struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

// List godoc
// @Summary List request statuses
// @Tags statuses
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.RequestStatus
// @Failure 401 {object} ErrorResponse
// @Router /statuses [get]
func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.svc.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// Create godoc
// @Summary Create a status (privileged)
// @Tags statuses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param status body StatusBody true "Status fields"
// @Success 201 {object} models.RequestStatus
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /statuses [post]
func (h *StatusHandler) Create(c *gin.Context) {
	var body StatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status, err := h.svc.Create(currentUser(c), service.StatusInput{
		Name:      body.Name,
		Code:      body.Code,
		Color:     body.Color,
		SortOrder: body.SortOrder,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

// Update godoc
// @Summary Update a status (privileged)
// @Tags statuses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Status ID"
// @Param status body StatusBody true "Status fields"
// @Success 200 {object} models.RequestStatus
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /statuses/{id} [put]
func (h *StatusHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	var body StatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status, err := h.svc.Update(currentUser(c), id, service.StatusInput{
		Name:      body.Name,
		Code:      body.Code,
		Color:     body.Color,
		SortOrder: body.SortOrder,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Delete godoc
// @Summary Delete a status (privileged, restricted if referenced)
// @Tags statuses
// @Security BearerAuth
// @Param id path string true "Status ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /statuses/{id} [delete]
func (h *StatusHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	if err := h.svc.Delete(currentUser(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
