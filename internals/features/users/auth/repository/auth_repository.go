package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "kursusku_backend/internals/features/users/auth/model"
	userModel "kursusku_backend/internals/features/users/user/model"
	helperAuth "kursusku_backend/internals/helpers/auth"
)

/* =======================================================
   USERS
   ======================================================= */

// GetUserByEmail mencari user aktif berdasarkan email
func GetUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID mencari user berdasarkan ID
func GetUserByID(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername mencari user berdasarkan user_name
func GetUserByUsername(db *gorm.DB, username string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByGoogleID mencari user berdasarkan google_id
func GetUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsUsernameTaken mengecek apakah user_name sudah dipakai user lain (yang belum dihapus)
func IsUsernameTaken(db *gorm.DB, username string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&userModel.UserModel{}).
		Where("user_name = ?", username)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser menyimpan user baru
func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

// UpdateUserPassword mengganti password user
func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hashedPassword string) error {
	res := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", hashedPassword)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("user tidak ditemukan")
	}
	return nil
}

// UpdateUserName mengganti user_name
func UpdateUserName(db *gorm.DB, userID uuid.UUID, newUserName string) error {
	res := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("user_name", newUserName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("user tidak ditemukan")
	}
	return nil
}

/* =======================================================
   REFRESH TOKENS
   ======================================================= */

// CreateRefreshToken menyimpan refresh token (hash) baru
func CreateRefreshToken(db *gorm.DB, token *authModel.RefreshTokenModel) error {
	return db.Create(token).Error
}

// FindRefreshTokenByHashActive mencari refresh token aktif (belum expired, belum dihapus)
func FindRefreshTokenByHashActive(db *gorm.DB, hash []byte) (*authModel.RefreshTokenModel, error) {
	var rt authModel.RefreshTokenModel
	err := db.
		Where("token = ? AND expires_at > ?", hash, time.Now()).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshTokenByID menghapus (soft delete) refresh token berdasarkan ID
func RevokeRefreshTokenByID(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).
		Delete(&authModel.RefreshTokenModel{}).Error
}

// DeleteRefreshTokenByHash menghapus refresh token berdasarkan hash (dipakai saat logout)
func DeleteRefreshTokenByHash(db *gorm.DB, hash []byte) error {
	return db.Where("token = ?", hash).
		Delete(&authModel.RefreshTokenModel{}).Error
}

// DeleteRefreshTokensByUser menghapus semua refresh token milik user (force logout semua device)
func DeleteRefreshTokensByUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).
		Delete(&authModel.RefreshTokenModel{}).Error
}

/* =======================================================
   TOKEN BLACKLIST
   ======================================================= */

// BlacklistToken memasukkan access token ke blacklist (disimpan sebagai HMAC)
func BlacklistToken(db *gorm.DB, secret, rawToken string, expiredAt time.Time) error {
	return helperAuth.Add(context.Background(), db, rawToken, secret, expiredAt)
}

// CleanupExpiredBlacklist menghapus entri blacklist yang sudah kedaluwarsa
func CleanupExpiredBlacklist(db *gorm.DB) error {
	return helperAuth.PurgeExpired(context.Background(), db)
}

// CleanupExpiredRefreshTokens menghapus refresh token yang sudah kedaluwarsa
func CleanupExpiredRefreshTokens(db *gorm.DB) (int64, error) {
	res := db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&authModel.RefreshTokenModel{})
	return res.RowsAffected, res.Error
}
