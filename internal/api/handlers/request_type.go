package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maintdesk/maintdesk/internal/service"
)

// TypeHandler exposes the read-only request type lookup.
type TypeHandler struct {
	svc *service.TypeService
}

// NewTypeHandler creates a new TypeHandler.
func NewTypeHandler(svc *service.TypeService) *TypeHandler {
	return &TypeHandler{svc: svc}
}

// List godoc
// @Summary List request types
// @Tags types
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.RequestType
// @Failure 401 {object} ErrorResponse
// @Router /types [get]
func (h *TypeHandler) List(c *gin.Context) {
	types, err := h.svc.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}
