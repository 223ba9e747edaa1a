package qrcode

import (
	"encoding/json"
	"strings"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize   = 256
	receiptQRType = "payment_receipt"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// ReceiptData is the JSON encoded into a payment receipt QR code.
type ReceiptData struct {
	Type          string  `json:"type"`
	PaymentID     string  `json:"payment_id"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	URL           string  `json:"url,omitempty"`
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level, baseURL := defaultSize, "M", ""
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
		baseURL = strings.TrimRight(cfg.QRCode.BaseURL, "/")
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
		baseURL:              baseURL,
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GeneratePaymentQR renders the payment receipt as a PNG.
func (s *qrcodeService) GeneratePaymentQR(payment *entity.Payment) ([]byte, error) {
	if payment == nil || payment.ID == "" {
		return nil, errors.New("payment is required")
	}

	data := ReceiptData{
		Type:          receiptQRType,
		PaymentID:     payment.ID,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		Status:        payment.Status.String(),
	}
	if s.baseURL != "" {
		data.URL = s.baseURL + "/" + payment.ID
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParsePaymentQR reads back the ids from scanned receipt content.
func (s *qrcodeService) ParsePaymentQR(qrData string) (string, string, error) {
	var data ReceiptData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", "", errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != receiptQRType {
		return "", "", errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.PaymentID == "" {
		return "", "", errors.New("QR code has no payment id")
	}

	return data.PaymentID, data.TransactionID, nil
}
