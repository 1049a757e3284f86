// file: internals/features/formations/purchases/service/purchase_store.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/formations/purchases/model"
)

// ErrFormationNotFound: formation tidak ada / sudah dihapus / belum terbit
var ErrFormationNotFound = errors.New("formation tidak ditemukan")

// FormationInfo adalah potongan kecil formation yang dibutuhkan resolver
type FormationInfo struct {
	FormationID          uuid.UUID
	FormationPrice       *float64
	FormationIsPublished bool
}

// PurchaseStore memisahkan resolver dari GORM supaya alurnya bisa diuji
// dengan store palsu.
type PurchaseStore interface {
	FindFormation(ctx context.Context, formationID uuid.UUID) (*FormationInfo, error)
	HasActivePurchase(ctx context.Context, userID, formationID uuid.UUID) (bool, error)
	CreatePurchase(ctx context.Context, rec *model.PurchasedFormationModel) error
}

/* =======================================================
   IMPLEMENTASI GORM
   ======================================================= */

type GormPurchaseStore struct {
	DB *gorm.DB
}

func NewGormPurchaseStore(db *gorm.DB) *GormPurchaseStore {
	return &GormPurchaseStore{DB: db}
}

func (s *GormPurchaseStore) FindFormation(ctx context.Context, formationID uuid.UUID) (*FormationInfo, error) {
	var out FormationInfo
	err := s.DB.WithContext(ctx).
		Table("formations").
		Select("formation_id, formation_price, formation_is_published").
		Where("formation_id = ? AND formation_deleted_at IS NULL", formationID).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GormPurchaseStore) HasActivePurchase(ctx context.Context, userID, formationID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&model.PurchasedFormationModel{}).
		Where("purchased_formation_user_id = ? AND purchased_formation_formation_id = ? AND purchased_formation_status = ?",
			userID, formationID, model.StatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormPurchaseStore) CreatePurchase(ctx context.Context, rec *model.PurchasedFormationModel) error {
	return s.DB.WithContext(ctx).Create(rec).Error
}
