package request

// PrintSlipRequest is the request body for printing a counter slip.
type PrintSlipRequest struct {
	Code string `json:"code" binding:"required"`
}
