package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
)

// StoreHandler handles store directory HTTP requests
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List returns all stores
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.storeService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stores retrieved successfully", stores)
}

// Nearest returns the store closest to ?lat=&lng=
func (h *StoreHandler) Nearest(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		response.BadRequest(c, "lat and lng query parameters are required")
		return
	}

	nearest, err := h.storeService.Nearest(c.Request.Context(), lat, lng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Nearest store retrieved successfully", nearest)
}

// OptimalCounter returns the active counter with the shortest queue in ?store_id=
func (h *StoreHandler) OptimalCounter(c *gin.Context) {
	counter, err := h.storeService.OptimalCounter(c.Request.Context(), c.Query("store_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Counter retrieved successfully", counter)
}
