package request

// ScanRequest carries a scanned QR payload or a typed receipt number
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// LookupRequest previews a scan in the given terminal mode
type LookupRequest struct {
	Code string `json:"code" binding:"required"`
	Mode string `json:"mode" binding:"omitempty,oneof=CASHIER GUARD"`
}
