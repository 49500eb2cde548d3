package service

import (
	"context"
	"fmt"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/printer"
	"github.com/sangkips/scango-api/pkg/qrpayload"
	"go.uber.org/zap"
)

// PrinterService formats counter slips and sends them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	receipts    *ReceiptService
	stores      repository.StoreRepository
	printerType string
	log         *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receipts *ReceiptService,
	stores repository.StoreRepository,
	printerType string,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		stores:      stores,
		printerType: printerType,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// PrintByCode looks up the scanned receipt and prints its slip.
// A print failure is returned next to the slip so the caller can still show it.
func (s *PrinterService) PrintByCode(ctx context.Context, code, cashier string) (*entity.ReceiptSlip, error) {
	receipt, err := s.receipts.Find(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.PrintReceipt(ctx, receipt, cashier)
}

// PrintReceipt prints the slip for an already loaded receipt.
func (s *PrinterService) PrintReceipt(ctx context.Context, receipt *entity.Receipt, cashier string) (*entity.ReceiptSlip, error) {
	slip := s.BuildSlip(ctx, receipt, cashier)

	if err := s.printer.Print(ctx, FormatSlip(slip)); err != nil {
		s.log.Warn("printer error", zap.String("receipt_number", receipt.ReceiptNumber), zap.Error(err))
		return slip, fmt.Errorf("failed to print slip: %w", err)
	}
	return slip, nil
}

// BuildSlip composes the printable slip for a receipt.
func (s *PrinterService) BuildSlip(ctx context.Context, receipt *entity.Receipt, cashier string) *entity.ReceiptSlip {
	slip := &entity.ReceiptSlip{
		Header:        entity.SlipHeader{StoreName: receipt.StoreID},
		ReceiptNumber: receipt.ReceiptNumber,
		Date:          receipt.CreatedAt.Local().Format("2006-01-02 15:04"),
		Cashier:       cashier,
		PaymentMethod: receipt.PaymentMethod.String(),
		PaymentStatus: receipt.PaymentStatus.String(),
		Total:         receipt.TotalAmount,
	}

	if store, err := s.stores.GetByID(ctx, receipt.StoreID); err == nil && store != nil {
		slip.Header = entity.SlipHeader{StoreName: store.Name, Address: store.Address}
	}

	for _, line := range receipt.Items {
		slip.Items = append(slip.Items, entity.SlipItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.UnitPrice.Times(line.Quantity),
		})
		slip.Savings += (line.MRP - line.UnitPrice).Times(line.Quantity)
	}

	// the gate accepts a QR carrying only the receipt number
	if payload, err := qrpayload.Encode("", receipt.ReceiptNumber, receipt.CreatedAt); err == nil {
		slip.QRPayload = payload
	}
	return slip
}

// FormatSlip converts a ReceiptSlip into ESC/POS bytes.
func FormatSlip(r *entity.ReceiptSlip) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.ReceiptNumber).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total.String())
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice.String())
		}
	}

	doc.Separator('-')

	if r.Savings > 0 {
		doc.KeyValue("You saved:", r.Savings.String())
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total.String()).
		KeyValue("Status:", r.PaymentStatus).
		SetBold(false)

	doc.Separator('-')

	if r.QRPayload != "" {
		doc.SetAlign(printer.AlignCenter).
			Text("Show this code at the exit").
			QRCode(r.QRPayload, 6).
			SetAlign(printer.AlignLeft)
	}

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for shopping!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
