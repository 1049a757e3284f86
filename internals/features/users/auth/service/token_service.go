// file: internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	"kursusku_backend/internals/features/users/auth/repository"
	helper "kursusku_backend/internals/helpers"
)

/* =======================================================
   REFRESH TOKEN (rotasi)
   ======================================================= */

// RefreshToken menukar refresh token (cookie) dengan pasangan token baru.
// Token lama dicabut (rotasi satu kali pakai). Wajib lolos cek CSRF.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	if err := helper.CheckCSRFCookieHeader(c); err != nil {
		return helper.Error(c, fiber.StatusForbidden, "CSRF token tidak valid")
	}

	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token tidak ditemukan")
	}

	// 1) verifikasi tanda tangan + claims
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode tanda tangan tidak valid")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token tidak valid atau kedaluwarsa")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helper.Error(c, fiber.StatusUnauthorized, "Token bukan refresh token")
	}

	// 2) cocokkan dengan hash yang tersimpan (belum dicabut)
	hash := hmacSHA256(raw, configs.JWTRefreshSecret)
	stored, err := repository.FindRefreshTokenByHashActive(db, hash)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Sesi sudah tidak berlaku, silakan login ulang")
	}

	// 3) ambil user
	idStr, _ := claims["id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil || userID != stored.UserID {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token tidak cocok dengan sesi")
	}
	user, err := repository.GetUserByID(db, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Akun tidak ditemukan")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	// 4) rotasi: cabut token lama sebelum menerbitkan yang baru
	if err := repository.RevokeRefreshTokenByID(db, stored.ID); err != nil {
		log.Printf("[AUTH] gagal mencabut refresh token lama: %v", err)
	}

	return issueTokensAndRespond(db, c, user, "Token berhasil diperbarui")
}

/* =======================================================
   CSRF SEED
   ======================================================= */

// IssueXSRF memasang cookie csrf_token baru dan mengembalikan nilainya.
// Dipanggil frontend sebelum logout/refresh berbasis cookie.
func IssueXSRF(c *fiber.Ctx) error {
	csrf := randomHex(16)
	c.Cookie(&fiber.Cookie{
		Name:     "csrf_token",
		Value:    csrf,
		Expires:  time.Now().Add(refreshTTL()),
		HTTPOnly: false,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
	})
	return helper.Success(c, "CSRF token diterbitkan", fiber.Map{
		"csrf_token": csrf,
	})
}
