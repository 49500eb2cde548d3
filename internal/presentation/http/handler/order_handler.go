package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/request"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
	"github.com/sangkips/scango-api/pkg/pagination"
)

// OrderHandler handles checkout and order history
type OrderHandler struct {
	checkoutService *service.CheckoutService
	cartService     *service.CartService
	historyService  *service.HistoryService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	checkoutService *service.CheckoutService,
	cartService *service.CartService,
	historyService *service.HistoryService,
) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		historyService:  historyService,
	}
}

// Checkout places an order for the current cart
// @Summary Checkout
// @Tags orders
// @Param Idempotency-Key header string true "Unique key per checkout attempt"
// @Router /checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customerID := GetPrincipalID(c)
	storeID, items := h.cartService.Snapshot(customerID)

	output, err := h.checkoutService.Checkout(c.Request.Context(), &service.CheckoutInput{
		CustomerID:    customerID,
		StoreID:       storeID,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cartService.Clear(customerID)

	if !output.HistorySaved {
		response.CreatedWithWarning(c, "Order placed", "Order placed but could not be saved to your history", output)
		return
	}
	response.Created(c, "Order placed", output)
}

// List returns the customer's order history
func (h *OrderHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.historyService.List(c.Request.Context(), GetPrincipalID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Orders retrieved successfully", result)
}

// Get returns one order from the customer's history
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.historyService.Get(c.Request.Context(), GetPrincipalID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}
