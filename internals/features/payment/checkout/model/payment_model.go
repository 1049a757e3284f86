// file: internals/features/payment/checkout/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status pembayaran gateway
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusExpired  = "expired"
	PaymentStatusCanceled = "canceled"
)

// FormationPaymentModel merepresentasikan tabel formation_payments:
// satu attempt pembayaran Midtrans untuk satu formation.
type FormationPaymentModel struct {
	FormationPaymentID          uuid.UUID  `gorm:"column:formation_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"formation_payment_id"`
	FormationPaymentUserID      uuid.UUID  `gorm:"column:formation_payment_user_id;type:uuid;not null;index" json:"formation_payment_user_id"`
	FormationPaymentFormationID uuid.UUID  `gorm:"column:formation_payment_formation_id;type:uuid;not null;index" json:"formation_payment_formation_id"`
	FormationPaymentPurchaseID  *uuid.UUID `gorm:"column:formation_payment_purchase_id;type:uuid" json:"formation_payment_purchase_id,omitempty"`

	FormationPaymentAmount  float64 `gorm:"column:formation_payment_amount;type:numeric(12,2);not null" json:"formation_payment_amount"`
	FormationPaymentOrderID string  `gorm:"column:formation_payment_order_id;size:64;uniqueIndex;not null" json:"formation_payment_order_id"`
	FormationPaymentStatus  string  `gorm:"column:formation_payment_status;type:varchar(20);not null;default:'pending'" json:"formation_payment_status"`

	FormationPaymentSnapToken *string        `gorm:"column:formation_payment_snap_token;type:text" json:"formation_payment_snap_token,omitempty"`
	FormationPaymentMeta      datatypes.JSON `gorm:"column:formation_payment_meta;type:jsonb" json:"formation_payment_meta,omitempty"`

	FormationPaymentCreatedAt time.Time      `gorm:"column:formation_payment_created_at;autoCreateTime" json:"formation_payment_created_at"`
	FormationPaymentUpdatedAt time.Time      `gorm:"column:formation_payment_updated_at;autoUpdateTime" json:"formation_payment_updated_at"`
	FormationPaymentDeletedAt gorm.DeletedAt `gorm:"column:formation_payment_deleted_at;index" json:"-"`
}

func (FormationPaymentModel) TableName() string {
	return "formation_payments"
}
