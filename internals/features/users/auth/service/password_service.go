// file: internals/features/users/auth/service/password_service.go
package service

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	authHelper "kursusku_backend/internals/features/users/auth/helper"
	"kursusku_backend/internals/features/users/auth/repository"
	helper "kursusku_backend/internals/helpers"
)

/* =======================================================
   RESET PASSWORD (via security answer)
   ======================================================= */

// ResetPassword mengganti password setelah jawaban keamanan terverifikasi.
// Seluruh refresh token user ikut dicabut (force logout semua device).
func ResetPassword(db *gorm.DB, email, securityAnswer, newPassword string) error {
	if err := authHelper.ValidateResetPassword(email, newPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// verifikasi jawaban keamanan dulu
	if err := CheckSecurityAnswer(db, email, securityAnswer); err != nil {
		return err
	}

	user, err := repository.GetUserByEmail(db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Akun tidak ditemukan")
	}

	hashed, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}

	if err := repository.UpdateUserPassword(db, user.ID, hashed); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengganti password")
	}

	if err := repository.DeleteRefreshTokensByUser(db, user.ID); err != nil {
		log.Printf("[AUTH] gagal mencabut refresh token setelah reset password: %v", err)
	}
	return nil
}

/* =======================================================
   CHANGE PASSWORD (user login)
   ======================================================= */

// ChangePassword mengganti password user yang sedang login.
// Access token saat ini di-blacklist dan semua refresh token dicabut.
func ChangePassword(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Password lama dan baru wajib diisi")
	}
	if len(newPassword) < 8 {
		return fiber.NewError(fiber.StatusBadRequest, "Password baru minimal 8 karakter")
	}
	if oldPassword == newPassword {
		return fiber.NewError(fiber.StatusBadRequest, "Password baru harus berbeda dari password lama")
	}

	user, err := repository.GetUserByID(db, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Akun tidak ditemukan")
	}

	if !authHelper.CheckPasswordHash(oldPassword, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Password lama salah")
	}

	hashed, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}

	if err := repository.UpdateUserPassword(db, userID, hashed); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengganti password")
	}

	// cabut semua sesi lama
	if raw := helper.GetRawAccessToken(c); raw != "" {
		expiredAt := resolveBlacklistTTL(raw, time.Now().Add(accessTTL()))
		if errBl := repository.BlacklistToken(db, configs.JWTSecret, raw, expiredAt); errBl != nil {
			log.Printf("[AUTH] gagal blacklist token setelah ganti password: %v", errBl)
		}
	}
	if err := repository.DeleteRefreshTokensByUser(db, userID); err != nil {
		log.Printf("[AUTH] gagal mencabut refresh token setelah ganti password: %v", err)
	}

	clearAuthCookies(c)
	return nil
}
