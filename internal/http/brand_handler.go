package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/service"
)

// BrandHandler serves the /brands routes.
type BrandHandler struct {
	brands service.BrandService
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(brands service.BrandService) *BrandHandler {
	return &BrandHandler{brands: brands}
}

// RegisterRoutes implements RouteGroup.
func (h *BrandHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/brands")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/brands.
//
// @Summary  List brands
// @Tags     Brands
// @Produce  json
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)
	brands, err := h.brands.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewList(brands))
}

// Get handles GET /api/brands/{id}.
//
// @Summary  Get brand
// @Tags     Brands
// @Produce  json
// @Param    id path int true "Brand id"
// @Success  200 {object} dto.SuccessResponse
// @Failure  404 {object} dto.ErrorResponse
// @Router   /api/brands/{id} [get]
func (h *BrandHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}
	b, err := h.brands.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(b)
}

// Create handles POST /api/brands.
//
// @Summary  Create brand
// @Tags     Brands
// @Accept   json
// @Produce  json
// @Param    request body dto.NamedRequest true "Brand"
// @Success  201 {object} dto.SuccessResponse
// @Failure  409 {object} dto.ErrorResponse "Name already in use"
// @Router   /api/brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequestAndValidate[dto.NamedRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	b, err := h.brands.Save(c.Request.Context(), req.ToBrand())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessCreated(b)
}

// Update handles PATCH /api/brands/{id}.
//
// @Summary  Update brand
// @Tags     Brands
// @Accept   json
// @Produce  json
// @Param    id      path int                   true "Brand id"
// @Param    request body dto.NamedPatchRequest true "Fields to change"
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/brands/{id} [patch]
func (h *BrandHandler) Update(c *gin.Context) {
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
	b, err := h.brands.Update(c.Request.Context(), id, req.ToBrandPatch())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(b)
}

// Delete handles DELETE /api/brands/{id}.
//
// @Summary  Delete brand
// @Tags     Brands
// @Param    id path int true "Brand id"
// @Success  200 {object} dto.SuccessResponse
// @Router   /api/brands/{id} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	deleteByID(c, h.brands.DeleteByID)
}
