package service

import "ridehail/internal/domain/entity"

// QRCodeService renders payment receipts as QR codes.
type QRCodeService interface {
	// GeneratePaymentQR returns a PNG encoding the payment receipt.
	GeneratePaymentQR(payment *entity.Payment) ([]byte, error)

	// ParsePaymentQR extracts the payment and transaction ids from QR content.
	ParsePaymentQR(qrData string) (paymentID, transactionID string, err error)
}
