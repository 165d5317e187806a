package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/internal/service"
)

// ProductResponse is the catalog product as served to clients.
// DisplayName is resolved for the request's ?lang= locale; Georgian falls
// back to English when the translation is missing.
type ProductResponse struct {
	ID          string               `json:"id"`
	SKU         string               `json:"sku"`
	Name        domain.LocalizedText `json:"name"`
	DisplayName string               `json:"display_name"`
	Description domain.LocalizedText `json:"description"`
	CategoryID  *string              `json:"category_id,omitempty"`
	BrandID     *string              `json:"brand_id,omitempty"`
	Price       float64              `json:"price"`
	Currency    string               `json:"currency"`
	Stock       int                  `json:"stock"`
	MinOrderQty int                  `json:"min_order_qty"`
	Sizes       []string             `json:"sizes"`
	Images      []ImageResponse      `json:"images"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   string               `json:"created_at"`
}

type ImageResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := filterFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		catalog := service.NewCatalogService(repos, logger)
		products, total, err := catalog.ListProducts(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		locale := localeOf(c)
		responses := make([]ProductResponse, len(products))
		for i, product := range products {
			responses[i] = productResponseOf(product, locale)
		}

		c.JSON(http.StatusOK, gin.H{
			"products": responses,
			"total":    total,
			"limit":    filter.Limit,
			"offset":   filter.Offset,
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		catalog := service.NewCatalogService(repos, logger)
		product, err := catalog.GetProduct(c.Request.Context(), productID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, productResponseOf(product, localeOf(c)))
	}
}

// HandleListCategories handles GET /v1/categories
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := service.NewCatalogService(repos, logger)
		categories, err := catalog.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]gin.H, len(categories))
		for i, category := range categories {
			responses[i] = gin.H{
				"id":   category.ID.String(),
				"name": category.Name,
				"slug": category.Slug,
			}
		}

		c.JSON(http.StatusOK, gin.H{"categories": responses})
	}
}

// HandleListBrands handles GET /v1/brands
func HandleListBrands(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := service.NewCatalogService(repos, logger)
		brands, err := catalog.ListBrands(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]gin.H, len(brands))
		for i, brand := range brands {
			responses[i] = gin.H{
				"id":   brand.ID.String(),
				"name": brand.Name,
				"slug": brand.Slug,
			}
		}

		c.JSON(http.StatusOK, gin.H{"brands": responses})
	}
}

func filterFromQuery(c *gin.Context) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{
		Size:        c.Query("size"),
		Search:      c.Query("q"),
		InStockOnly: c.Query("in_stock") == "true",
		Sort:        repository.ProductSort(c.DefaultQuery("sort", string(repository.SortNewest))),
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errInvalidQuery("category_id")
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errInvalidQuery("brand_id")
		}
		filter.BrandID = &id
	}
	if raw := c.Query("min_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return filter, errInvalidQuery("min_price")
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return filter, errInvalidQuery("max_price")
		}
		filter.MaxPrice = &price
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	filter.Limit = limit

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Offset = offset

	return filter, nil
}

type queryError string

func (e queryError) Error() string { return string(e) }

func errInvalidQuery(param string) error {
	return queryError("invalid query parameter: " + param)
}

// localeOf resolves the response locale from the lang query parameter.
// Only "ka" is meaningful; everything else reads as English.
func localeOf(c *gin.Context) string {
	if c.Query("lang") == "ka" {
		return "ka"
	}
	return "en"
}

func productResponseOf(product *domain.Product, locale string) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID.String(),
		SKU:         product.SKU,
		Name:        product.Name,
		DisplayName: product.Name.In(locale),
		Description: product.Description,
		Price:       product.Price,
		Currency:    product.Currency,
		Stock:       product.Stock,
		MinOrderQty: product.MinOrderQty,
		Sizes:       product.Sizes,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if product.CategoryID != nil {
		id := product.CategoryID.String()
		resp.CategoryID = &id
	}
	if product.BrandID != nil {
		id := product.BrandID.String()
		resp.BrandID = &id
	}

	resp.Images = make([]ImageResponse, len(product.Images))
	for i, image := range product.Images {
		resp.Images[i] = ImageResponse{
			ID:       image.ID.String(),
			URL:      image.URL,
			Position: image.Position,
		}
	}

	return resp
}
