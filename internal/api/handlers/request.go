package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/models"
	"github.com/maintdesk/maintdesk/internal/service"
)

// RequestHandler adapts the request lifecycle service to HTTP.
type RequestHandler struct {
	svc *service.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// CreateRequestBody is the JSON body for creating a request. Photos
// accept base64 strings or raw byte arrays.
type CreateRequestBody struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Priority      *models.Priority `json:"priority"`
	RoomID        *uuid.UUID       `json:"room_id"`
	ResponsibleID *uuid.UUID       `json:"responsible_id"`
	RequestTypeID *uuid.UUID       `json:"request_type_id"`
	Photos        [][]byte         `json:"photos"`
}

// UpdateRequestBody is the JSON body for a partial update. Omitted
// fields keep their stored value; a present photo list replaces the
// whole set.
type UpdateRequestBody struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Priority      *models.Priority `json:"priority"`
	RoomID        *uuid.UUID       `json:"room_id"`
	ResponsibleID *uuid.UUID       `json:"responsible_id"`
	RequestTypeID *uuid.UUID       `json:"request_type_id"`
	Photos        *[][]byte        `json:"photos"`
}

// ChangeStatusBody is the JSON body for a status transition.
type ChangeStatusBody struct {
	StatusID uuid.UUID `json:"status_id" binding:"required"`
}

// RatingBody is the JSON body for setting or clearing a rating.
type RatingBody struct {
	Rating *int `json:"rating"`
}

// List godoc
// @Summary List requests visible to the caller
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param show_completed query bool false "Include completed requests"
// @Success 200 {array} models.Request
// @Failure 401 {object} ErrorResponse
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	includeCompleted := c.Query("show_completed") == "true"

	requests, err := h.svc.List(currentUser(c), includeCompleted)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// Create godoc
// @Summary Create a request
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateRequestBody true "Request fields"
// @Success 201 {object} models.Request
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.svc.Create(currentUser(c), service.CreateRequestInput{
		Title:         body.Title,
		Description:   body.Description,
		Priority:      body.Priority,
		RoomID:        body.RoomID,
		ResponsibleID: body.ResponsibleID,
		RequestTypeID: body.RequestTypeID,
		Photos:        body.Photos,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// Get godoc
// @Summary Get a request with its photos
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} service.RequestDetail
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	detail, err := h.svc.Get(currentUser(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Update godoc
// @Summary Update request fields and optionally replace photos
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body UpdateRequestBody true "Fields to change"
// @Success 200 {object} models.Request
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /requests/{id} [put]
func (h *RequestHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	var body UpdateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.svc.Update(currentUser(c), id, service.UpdateRequestInput{
		Title:         body.Title,
		Description:   body.Description,
		Priority:      body.Priority,
		RoomID:        body.RoomID,
		ResponsibleID: body.ResponsibleID,
		RequestTypeID: body.RequestTypeID,
		Photos:        body.Photos,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ChangeStatus godoc
// @Summary Transition a request to another status
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param status body ChangeStatusBody true "Target status"
// @Success 200 {object} models.Request
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	var body ChangeStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status_id is required"})
		return
	}

	req, err := h.svc.ChangeStatus(currentUser(c), id, body.StatusID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Rate godoc
// @Summary Set or clear a request's rating
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param rating body RatingBody true "Rating (null clears)"
// @Success 200 {object} models.Request
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /requests/{id}/rating [patch]
func (h *RequestHandler) Rate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	var body RatingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.svc.Rate(currentUser(c), id, body.Rating)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Delete godoc
// @Summary Delete a request and its photos
// @Tags requests
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /requests/{id} [delete]
func (h *RequestHandler) Delete(c *gin.Context) {
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
