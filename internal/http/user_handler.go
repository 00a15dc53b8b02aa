package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/service"
)

// UserHandler serves the /users routes. Responses never include password hashes.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes implements RouteGroup.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/users.
//
// @Summary  List users
// @Tags     Users
// @Produce  json
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewList(dto.NewUserResponses(users)))
}

// Get handles GET /api/users/{id}.
//
// @Summary  Get user
// @Tags     Users
// @Produce  json
// @Param    id path int true "User id"
// @Success  200 {object} dto.SuccessResponse
// @Failure  404 {object} dto.ErrorResponse
// @Router   /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewUserResponse(u))
}

// Create handles POST /api/users.
//
// @Summary  Create user
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body dto.CreateUserRequest true "User"
// @Success  201 {object} dto.SuccessResponse
// @Failure  400 {object} dto.ErrorResponse
// @Failure  409 {object} dto.ErrorResponse "Email already in use"
// @Router   /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequestAndValidate[dto.CreateUserRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	u, err := h.users.Create(c.Request.Context(), req.ToModel(), req.Password)
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessCreated(dto.NewUserResponse(u))
}

// Update handles PATCH /api/users/{id}.
//
// @Summary  Update user
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    id      path int                  true "User id"
// @Param    request body dto.UserPatchRequest true "Fields to change"
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}
	req, err := BuildRequestAndValidate[dto.UserPatchRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	u, err := h.users.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewUserResponse(u))
}

// Delete handles DELETE /api/users/{id}.
//
// @Summary  Delete user
// @Tags     Users
// @Param    id path int true "User id"
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	deleteByID(c, h.users.DeleteByID)
}
