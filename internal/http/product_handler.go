package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/service"
)

// ProductHandler serves the /products routes.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes implements RouteGroup.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/products")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/products.
//
// @Summary      List products
// @Description  Returns every product, optionally narrowed by filters. A filter takes part only when its parameter is present; all present filters must match.
// @Tags         Products
// @Produce      json
// @Param        categoryId query int    false "Category id"
// @Param        brandId    query int    false "Brand id"
// @Param        minPrice   query number false "Minimum price (inclusive)"
// @Param        maxPrice   query number false "Maximum price (inclusive)"
// @Param        minStock   query int    false "Minimum stock (inclusive)"
// @Success      200 {object} dto.SuccessResponse
// @Failure      400 {object} dto.ErrorResponse "Non-numeric filter"
// @Failure      503 {object} dto.ErrorResponse "Backend unavailable"
// @Router       /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidQuery, err)
		return
	}
	if err := q.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidQuery, err)
		return
	}

	products, err := h.products.GetAll(c.Request.Context(), q.ToFilter())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewList(products))
}

// Get handles GET /api/products/{id}.
//
// @Summary      Get product
// @Tags         Products
// @Produce      json
// @Param        id path int true "Product id"
// @Success      200 {object} dto.SuccessResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(p)
}

// Create handles POST /api/products.
//
// @Summary      Create product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        request body dto.ProductRequest true "Product"
// @Success      201 {object} dto.SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse "Unknown category or brand"
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ProductRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	p, err := h.products.Save(c.Request.Context(), req.ToModel())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessCreated(p)
}

// Update handles PATCH /api/products/{id}.
//
// @Summary      Update product
// @Description  Applies a partial update. Omitted fields keep their current value.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id      path int                     true "Product id"
// @Param        request body dto.ProductPatchRequest true "Fields to change"
// @Success      200 {object} dto.SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.ProductPatchRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(p)
}

// Delete handles DELETE /api/products/{id}.
//
// @Summary      Delete product
// @Tags         Products
// @Produce      json
// @Param        id path int true "Product id"
// @Success      200 {object} dto.SuccessResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	deleteByID(c, h.products.DeleteByID)
}
