package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/request"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
)

// StaffHandler handles cashier and guard terminal scans
type StaffHandler struct {
	receiptService *service.ReceiptService
	printerService *service.PrinterService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(receiptService *service.ReceiptService, printerService *service.PrinterService) *StaffHandler {
	return &StaffHandler{receiptService: receiptService, printerService: printerService}
}

// Lookup shows a receipt and what the terminal would do with it
func (h *StaffHandler) Lookup(c *gin.Context) {
	var req request.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	mode := enum.ScanMode(req.Mode)
	if mode == "" {
		mode = enum.ScanModeCashier
		if GetEmployeeRole(c) == enum.EmployeeRoleGuard {
			mode = enum.ScanModeGuard
		}
	}

	result, err := h.receiptService.Lookup(c.Request.Context(), req.Code, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt found", result)
}

// CollectPayment marks a cash receipt as paid and prints the counter slip.
// A printer problem does not undo the collection.
func (h *StaffHandler) CollectPayment(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	receipt, err := h.receiptService.CollectPayment(ctx, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	slip, err := h.printerService.PrintReceipt(ctx, receipt, GetPrincipalName(c))
	if err != nil {
		response.SuccessWithWarning(c, "Payment collected", err.Error(), gin.H{
			"receipt": receipt,
			"slip":    slip,
		})
		return
	}
	response.OK(c, "Payment collected", gin.H{
		"receipt": receipt,
		"slip":    slip,
	})
}

// VerifyExit consumes a paid receipt at the exit gate
func (h *StaffHandler) VerifyExit(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	receipt, err := h.receiptService.VerifyExit(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Exit verified", receipt)
}
