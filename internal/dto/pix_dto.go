package dto

import "github.com/shopspring/decimal"

// PixCobrancaResponse carries the BR Code generated for a PIX charge.
// Valor is the outstanding remainder after partial payments, never the
// original total.
type PixCobrancaResponse struct {
	Payload string          `json:"payload"`
	Valor   decimal.Decimal `json:"valor"`
	TxID    string          `json:"txid"`
	// QRCodeBase64 is a PNG rendering of the payload, base64-encoded
	QRCodeBase64 string `json:"qrcode_base64,omitempty"`
}
