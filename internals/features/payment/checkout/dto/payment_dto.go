// file: internals/features/payment/checkout/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kursusku_backend/internals/features/payment/checkout/model"
)

// CheckoutResponse dikirim setelah transaksi Snap berhasil dibuat
type CheckoutResponse struct {
	FormationPaymentID      uuid.UUID `json:"formation_payment_id"`
	FormationPaymentOrderID string    `json:"formation_payment_order_id"`
	FormationPaymentAmount  float64   `json:"formation_payment_amount"`
	FormationPaymentStatus  string    `json:"formation_payment_status"`
	SnapToken               string    `json:"snap_token"`
	RedirectURL             string    `json:"redirect_url,omitempty"`
}

// PaymentResponse: satu baris pembayaran milik user
type PaymentResponse struct {
	FormationPaymentID          uuid.UUID  `json:"formation_payment_id"`
	FormationPaymentFormationID uuid.UUID  `json:"formation_payment_formation_id"`
	FormationPaymentPurchaseID  *uuid.UUID `json:"formation_payment_purchase_id,omitempty"`
	FormationPaymentAmount      float64    `json:"formation_payment_amount"`
	FormationPaymentOrderID     string     `json:"formation_payment_order_id"`
	FormationPaymentStatus      string     `json:"formation_payment_status"`
	FormationPaymentCreatedAt   time.Time  `json:"formation_payment_created_at"`
}

// FromPaymentModel membentuk PaymentResponse
func FromPaymentModel(p *model.FormationPaymentModel) PaymentResponse {
	return PaymentResponse{
		FormationPaymentID:          p.FormationPaymentID,
		FormationPaymentFormationID: p.FormationPaymentFormationID,
		FormationPaymentPurchaseID:  p.FormationPaymentPurchaseID,
		FormationPaymentAmount:      p.FormationPaymentAmount,
		FormationPaymentOrderID:     p.FormationPaymentOrderID,
		FormationPaymentStatus:      p.FormationPaymentStatus,
		FormationPaymentCreatedAt:   p.FormationPaymentCreatedAt,
	}
}

// FromPaymentModels membentuk daftar PaymentResponse
func FromPaymentModels(items []model.FormationPaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for i := range items {
		out = append(out, FromPaymentModel(&items[i]))
	}
	return out
}

// MidtransNotification adalah payload webhook Midtrans yang kita pakai
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
}
