package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/service"
)

// UserHandler adapts the account service to HTTP.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserBody is the JSON body for creating an account.
type CreateUserBody struct {
	Login    string    `json:"login"`
	Password string    `json:"password"`
	Name     string    `json:"name"`
	RoleID   uuid.UUID `json:"role_id"`
}

// List godoc
// @Summary List users (privileged)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(currentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListResponsible godoc
// @Summary List ordinary-role users eligible as responsible
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} ErrorResponse
// @Router /users/for-responsible [get]
func (h *UserHandler) ListResponsible(c *gin.Context) {
	users, err := h.svc.ListResponsible()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create godoc
// @Summary Create a user (privileged)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body CreateUserBody true "User fields"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var body CreateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.svc.Create(currentUser(c), service.CreateUserInput{
		Login:    body.Login,
		Password: body.Password,
		Name:     body.Name,
		RoleID:   body.RoleID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
