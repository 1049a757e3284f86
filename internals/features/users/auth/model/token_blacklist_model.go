package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklistModel menyimpan HMAC dari access token yang sudah tidak berlaku
// (logout / ganti password). Kolom token berisi HMAC hex, bukan token mentah.
type TokenBlacklistModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Token     string         `gorm:"type:text;unique;not null" json:"token"`
	ExpiredAt time.Time      `gorm:"not null" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
