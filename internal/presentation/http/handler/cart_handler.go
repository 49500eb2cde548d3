package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/request"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
)

// CartHandler handles the customer's cart
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// SelectStore binds the cart to a store, emptying it if the store changes
func (h *CartHandler) SelectStore(c *gin.Context) {
	var req request.SelectStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.SelectStore(c.Request.Context(), GetPrincipalID(c), req.StoreID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Store selected", cart)
}

// Get returns the cart with totals
func (h *CartHandler) Get(c *gin.Context) {
	response.OK(c, "Cart retrieved successfully", h.cartService.Get(GetPrincipalID(c)))
}

// AddItem adds a scanned barcode to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartService.AddByBarcode(c.Request.Context(), GetPrincipalID(c), req.Barcode, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", cart)
}

// AdjustItem changes a line's quantity; reaching zero removes it
func (h *CartHandler) AdjustItem(c *gin.Context) {
	var req request.AdjustCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.Adjust(GetPrincipalID(c), c.Param("product_id"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated", cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.cartService.Clear(GetPrincipalID(c))
	response.NoContent(c)
}
