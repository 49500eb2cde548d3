package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/request"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintSlip reprints the counter slip for a scanned receipt.
func (h *PrinterHandler) PrintSlip(c *gin.Context) {
	var req request.PrintSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	slip, err := h.printerService.PrintByCode(c.Request.Context(), req.Code, GetPrincipalName(c))
	if err != nil {
		// If the slip was built but printing failed, return it with a warning
		if slip != nil {
			response.SuccessWithWarning(c, "Slip generated but printing failed", err.Error(), gin.H{
				"slip": slip,
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Slip sent to printer", gin.H{
		"slip": slip,
	})
}
