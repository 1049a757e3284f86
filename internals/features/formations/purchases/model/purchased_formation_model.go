// file: internals/features/formations/purchases/model/purchased_formation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status pembelian; hanya "active" yang dihitung sebagai kepemilikan.
const (
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusCanceled = "canceled"
)

// PurchasedFormationModel merepresentasikan tabel purchased_formations.
// Satu user hanya boleh punya satu baris active per formation; dijaga oleh
// partial unique index (lihat EnsurePurchasedFormationIndexes).
type PurchasedFormationModel struct {
	PurchasedFormationID          uuid.UUID `gorm:"column:purchased_formation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"purchased_formation_id"`
	PurchasedFormationUserID      uuid.UUID `gorm:"column:purchased_formation_user_id;type:uuid;not null;index" json:"purchased_formation_user_id"`
	PurchasedFormationFormationID uuid.UUID `gorm:"column:purchased_formation_formation_id;type:uuid;not null;index" json:"purchased_formation_formation_id"`
	PurchasedFormationPrice       float64   `gorm:"column:purchased_formation_price;type:numeric(12,2);not null" json:"purchased_formation_price"`
	PurchasedFormationStatus      string    `gorm:"column:purchased_formation_status;type:varchar(20);not null;default:'active'" json:"purchased_formation_status"`

	PurchasedFormationCreatedAt time.Time      `gorm:"column:purchased_formation_created_at;autoCreateTime" json:"purchased_formation_created_at"`
	PurchasedFormationUpdatedAt time.Time      `gorm:"column:purchased_formation_updated_at;autoUpdateTime" json:"purchased_formation_updated_at"`
	PurchasedFormationDeletedAt gorm.DeletedAt `gorm:"column:purchased_formation_deleted_at;index" json:"-"`
}

func (PurchasedFormationModel) TableName() string {
	return "purchased_formations"
}

// EnsurePurchasedFormationIndexes membuat partial unique index yang menjadikan
// insert kedua untuk (user, formation) active gagal dengan 23505. Race
// check-then-insert dari dua device jadi aman di level database.
func EnsurePurchasedFormationIndexes(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_purchased_formations_user_formation_active
		ON purchased_formations (purchased_formation_user_id, purchased_formation_formation_id)
		WHERE purchased_formation_status = 'active'
		  AND purchased_formation_deleted_at IS NULL`).Error
}
