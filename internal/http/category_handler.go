package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/service"
)

// CategoryHandler serves the /categories routes.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// RegisterRoutes implements RouteGroup.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/categories.
//
// @Summary  List categories
// @Tags     Categories
// @Produce  json
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)
	categories, err := h.categories.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewList(categories))
}

// Get handles GET /api/categories/{id}.
//
// @Summary  Get category
// @Tags     Categories
// @Produce  json
// @Param    id path int true "Category id"
// @Success  200 {object} dto.SuccessResponse
// @Failure  404 {object} dto.ErrorResponse
// @Router   /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}
	cat, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(cat)
}

// Create handles POST /api/categories.
//
// @Summary  Create category
// @Tags     Categories
// @Accept   json
// @Produce  json
// @Param    request body dto.NamedRequest true "Category"
// @Success  201 {object} dto.SuccessResponse
// @Failure  409 {object} dto.ErrorResponse "Name already in use"
// @Router   /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequestAndValidate[dto.NamedRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	cat, err := h.categories.Save(c.Request.Context(), req.ToCategory())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessCreated(cat)
}

// Update handles PATCH /api/categories/{id}.
//
// @Summary  Update category
// @Tags     Categories
// @Accept   json
// @Produce  json
// @Param    id      path int                   true "Category id"
// @Param    request body dto.NamedPatchRequest true "Fields to change"
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}
	req, err := BuildRequestAndValidate[dto.NamedPatchRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	cat, err := h.categories.Update(c.Request.Context(), id, req.ToCategoryPatch())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(cat)
}

// Delete handles DELETE /api/categories/{id}.
//
// @Summary  Delete category
// @Tags     Categories
// @Param    id path int true "Category id"
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	deleteByID(c, h.categories.DeleteByID)
}
