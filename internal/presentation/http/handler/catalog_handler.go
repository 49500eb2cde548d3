package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles barcode lookups
type CatalogHandler struct {
	catalogService *service.CatalogService
	cartService    *service.CartService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, cartService *service.CartService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, cartService: cartService}
}

// Resolve returns the product for a barcode priced for ?store_id=,
// defaulting to the store of the customer's cart
func (h *CatalogHandler) Resolve(c *gin.Context) {
	storeID := c.Query("store_id")
	if storeID == "" {
		storeID = h.cartService.Get(GetPrincipalID(c)).StoreID
	}

	product, err := h.catalogService.Resolve(c.Request.Context(), c.Param("barcode"), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}
