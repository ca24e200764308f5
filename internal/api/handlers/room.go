package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/service"
)

// RoomHandler adapts the room reference-data service to HTTP.
type RoomHandler struct {
	svc *service.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// RoomBody is the JSON body for creating or updating a room.
type RoomBody struct {
	Number      string `json:"number"`
	Description string `json:"description"`
}

// List godoc
// @Summary List rooms
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Room
// @Failure 401 {object} ErrorResponse
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.svc.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// Create godoc
// @Summary Create a room (privileged)
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param room body RoomBody true "Room fields"
// @Success 201 {object} models.Room
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var body RoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	room, err := h.svc.Create(currentUser(c), service.RoomInput{
		Number:      body.Number,
		Description: body.Description,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// Update godoc
// @Summary Update a room (privileged)
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param room body RoomBody true "Room fields"
// @Success 200 {object} models.Room
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	var body RoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	room, err := h.svc.Update(currentUser(c), id, service.RoomInput{
		Number:      body.Number,
		Description: body.Description,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// Delete godoc
// @Summary Delete a room (privileged, restricted if referenced)
// @Tags rooms
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
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
