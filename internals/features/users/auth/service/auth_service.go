// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	authHelper "kursusku_backend/internals/features/users/auth/helper"
	authModel "kursusku_backend/internals/features/users/auth/model"
	"kursusku_backend/internals/features/users/auth/repository"
	userModel "kursusku_backend/internals/features/users/user/model"
	helper "kursusku_backend/internals/helpers"
)

/* =======================================================
   KONSTANTA & TTL
   ======================================================= */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

// accessTTL membaca JWT_ACCESS_TTL_MINUTES (opsional)
func accessTTL() time.Duration {
	if v := configs.GetEnv("JWT_ACCESS_TTL_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			return time.Duration(mins) * time.Minute
		}
	}
	return accessTTLDefault
}

// refreshTTL membaca JWT_REFRESH_TTL_DAYS (opsional)
func refreshTTL() time.Duration {
	if v := configs.GetEnv("JWT_REFRESH_TTL_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	return refreshTTLDefault
}

/* =======================================================
   INPUT
   ======================================================= */

type RegisterInput struct {
	UserName         string `json:"user_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
}

type LoginInput struct {
	Identifier string `json:"identifier"` // email atau user_name
	Password   string `json:"password"`
}

/* =======================================================
   REGISTER
   ======================================================= */

// Register membuat akun baru dengan role default "user"
func Register(db *gorm.DB, input RegisterInput) error {
	if err := authHelper.ValidateRegisterInput(input.UserName, input.Email, input.Password, input.SecurityAnswer); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	userName := strings.TrimSpace(input.UserName)

	// pastikan email belum terdaftar
	if _, err := repository.GetUserByEmail(db, email); err == nil {
		return fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa email")
	}

	// pastikan user_name belum dipakai
	taken, err := repository.IsUsernameTaken(db, userName, uuid.Nil)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa user_name")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "User name sudah digunakan")
	}

	hashed, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := userModel.UserModel{
		UserName:         userName,
		Email:            email,
		Password:         hashed,
		SecurityQuestion: strings.TrimSpace(input.SecurityQuestion),
		SecurityAnswer:   strings.ToLower(strings.TrimSpace(input.SecurityAnswer)),
	}
	if err := user.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := repository.CreateUser(db, &user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat akun")
	}
	return nil
}

/* =======================================================
   LOGIN (email / user_name + password)
   ======================================================= */

// Login memverifikasi kredensial lalu menerbitkan access + refresh token
func Login(db *gorm.DB, c *fiber.Ctx, input LoginInput) error {
	if err := authHelper.ValidateLoginInput(input.Identifier, input.Password); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	identifier := strings.TrimSpace(input.Identifier)

	var (
		user *userModel.UserModel
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = repository.GetUserByEmail(db, strings.ToLower(identifier))
	} else {
		user, err = repository.GetUserByUsername(db, identifier)
	}
	if err != nil {
		// samakan pesan agar tidak bocor info akun
		return helper.Error(c, fiber.StatusUnauthorized, "Email/user name atau password salah")
	}

	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	if !authHelper.CheckPasswordHash(input.Password, user.Password) {
		return helper.Error(c, fiber.StatusUnauthorized, "Email/user name atau password salah")
	}

	return issueTokensAndRespond(db, c, user, "Login berhasil")
}

/* =======================================================
   LOGIN GOOGLE (id_token)
   ======================================================= */

// LoginGoogle memverifikasi Google ID token, membuat akun bila belum ada,
// lalu menerbitkan token seperti login biasa.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx, idToken string) error {
	if strings.TrimSpace(idToken) == "" {
		return helper.Error(c, fiber.StatusBadRequest, "id_token wajib diisi")
	}

	aud := configs.GetEnv("GOOGLE_CLIENT_ID")
	if aud == "" {
		return helper.Error(c, fiber.StatusInternalServerError, "GOOGLE_CLIENT_ID belum dikonfigurasi")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{aud}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Google ID token tidak valid")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Gagal membaca Google ID token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	googleID := claimSet.Sub
	fullName := strings.TrimSpace(claimSet.Name)

	// cari user berdasarkan google_id, lalu fallback email
	user, err := repository.GetUserByGoogleID(db, googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = repository.GetUserByEmail(db, email)
		if err == nil && user.GoogleID == nil {
			// tautkan akun lama dengan google_id
			user.GoogleID = &googleID
			if err := db.Model(user).Update("google_id", googleID).Error; err != nil {
				return helper.Error(c, fiber.StatusInternalServerError, "Gagal menautkan akun Google")
			}
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// buat akun baru otomatis
		dummyPass, errHash := authHelper.HashPassword(generateDummyPassword())
		if errHash != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
		newUser := userModel.UserModel{
			UserName:         suggestUserNameFromEmail(db, email),
			Email:            email,
			Password:         dummyPass,
			GoogleID:         &googleID,
			SecurityQuestion: "google",
			SecurityAnswer:   "google",
		}
		if fullName != "" {
			newUser.FullName = &fullName
		}
		if errCreate := repository.CreateUser(db, &newUser); errCreate != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun Google")
		}
		user = &newUser
	} else if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akun")
	}

	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	return issueTokensAndRespond(db, c, user, "Login Google berhasil")
}

// suggestUserNameFromEmail membentuk user_name unik dari local-part email
func suggestUserNameFromEmail(db *gorm.DB, email string) string {
	base := email
	if i := strings.Index(email, "@"); i > 0 {
		base = email[:i]
	}
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, strings.ToLower(base))
	if len(base) < 3 {
		base = "user" + base
	}
	if len(base) > 40 {
		base = base[:40]
	}

	candidate := base
	for i := 0; i < 5; i++ {
		taken, err := repository.IsUsernameTaken(db, candidate, uuid.Nil)
		if err != nil || !taken {
			return candidate
		}
		candidate = base + "_" + randomHex(3)
	}
	return base + "_" + randomHex(4)
}

/* =======================================================
   LOGOUT
   ======================================================= */

// Logout melakukan blacklist access token, menghapus refresh token,
// lalu membersihkan cookie. Wajib lolos cek CSRF double-submit.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	if err := helper.CheckCSRFCookieHeader(c); err != nil {
		return helper.Error(c, fiber.StatusForbidden, "CSRF token tidak valid")
	}

	// 1) blacklist access token (kalau ada)
	if raw := helper.GetRawAccessToken(c); raw != "" {
		expiredAt := resolveBlacklistTTL(raw, time.Now().Add(accessTTL()))
		if err := repository.BlacklistToken(db, configs.JWTSecret, raw, expiredAt); err != nil {
			log.Printf("[AUTH] gagal blacklist token saat logout: %v", err)
		}
	}

	// 2) hapus refresh token berdasarkan hash cookie (kalau ada)
	if refresh := helper.GetRefreshTokenFromCookie(c); refresh != "" {
		hash := hmacSHA256(refresh, configs.JWTRefreshSecret)
		if err := repository.DeleteRefreshTokenByHash(db, hash); err != nil {
			log.Printf("[AUTH] gagal hapus refresh token saat logout: %v", err)
		}
	}

	// 3) bersihkan cookie
	clearAuthCookies(c)

	return helper.Success(c, "Logout berhasil", nil)
}

/* =======================================================
   SECURITY ANSWER (lupa password)
   ======================================================= */

// CheckSecurityAnswer memeriksa jawaban keamanan untuk alur lupa password
func CheckSecurityAnswer(db *gorm.DB, email, answer string) error {
	if err := authHelper.ValidateSecurityAnswerInput(email, answer); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := repository.GetUserByEmail(db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Akun tidak ditemukan")
	}

	if !strings.EqualFold(strings.TrimSpace(answer), user.SecurityAnswer) {
		return fiber.NewError(fiber.StatusUnauthorized, "Jawaban keamanan salah")
	}
	return nil
}

// GetSecurityQuestion mengambil pertanyaan keamanan berdasarkan email
func GetSecurityQuestion(db *gorm.DB, email string) (string, error) {
	user, err := repository.GetUserByEmail(db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", fiber.NewError(fiber.StatusNotFound, "Akun tidak ditemukan")
	}
	return user.SecurityQuestion, nil
}

/* =======================================================
   PENERBITAN TOKEN
   ======================================================= */

// issueTokensAndRespond menerbitkan access + refresh token, menyimpan hash
// refresh token, memasang cookie, dan mengirim response login.
func issueTokensAndRespond(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel, message string) error {
	now := time.Now()
	accessExp := now.Add(accessTTL())
	refreshExp := now.Add(refreshTTL())

	accessToken, err := signToken(buildAccessClaims(user, now, accessExp), configs.JWTSecret)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refreshToken, err := signToken(buildRefreshClaims(user, now, refreshExp), configs.JWTRefreshSecret)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	// simpan hash refresh token (fast path, commit async)
	rec := authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     hmacSHA256(refreshToken, configs.JWTRefreshSecret),
		ExpiresAt: refreshExp,
	}
	if err := createRefreshTokenFast(db, &rec); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan sesi login")
	}

	csrf := randomHex(16)
	setAuthCookies(c, accessToken, refreshToken, csrf, accessExp, refreshExp)

	return helper.Success(c, message, fiber.Map{
		"user": fiber.Map{
			"id":        user.ID,
			"user_name": user.UserName,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
		"access_token": accessToken,
		"csrf_token":   csrf,
	})
}

// buildAccessClaims menyusun claims access token
func buildAccessClaims(user *userModel.UserModel, now time.Time, exp time.Time) jwt.MapClaims {
	fullName := ""
	if user.FullName != nil {
		fullName = *user.FullName
	}
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"full_name": fullName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
}

// buildRefreshClaims menyusun claims refresh token (ramping)
func buildRefreshClaims(user *userModel.UserModel, now time.Time, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": user.ID.String(),
		"id":  user.ID.String(),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
}

func signToken(claims jwt.MapClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// createRefreshTokenFast menulis refresh token dengan synchronous_commit OFF
// supaya login tidak menunggu fsync WAL.
func createRefreshTokenFast(db *gorm.DB, rec *authModel.RefreshTokenModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL synchronous_commit = OFF").Error; err != nil {
			// bukan fatal; lanjut dengan commit normal
			log.Printf("[AUTH] SET LOCAL synchronous_commit gagal: %v", err)
		}
		return tx.Create(rec).Error
	})
}

/* =======================================================
   COOKIE
   ======================================================= */

// setAuthCookies memasang access_token + refresh_token (HTTPOnly)
// dan csrf_token (terbaca JS, untuk double-submit).
func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken, csrf string, accessExp, refreshExp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  accessExp,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  refreshExp,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "csrf_token",
		Value:    csrf,
		Expires:  refreshExp,
		HTTPOnly: false,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token", "csrf_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: name != "csrf_token",
			Secure:   true,
			SameSite: "None",
			Path:     "/",
		})
	}
}

/* =======================================================
   UTIL
   ======================================================= */

func hmacSHA256(raw, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(raw))
	return m.Sum(nil)
}

// resolveBlacklistTTL membaca exp dari token; fallback bila token rusak
func resolveBlacklistTTL(rawToken string, fallback time.Time) time.Time {
	parser := jwt.Parser{SkipClaimsValidation: true}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return fallback
	}
	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case int64:
		return time.Unix(v, 0)
	}
	return fallback
}

func generateDummyPassword() string {
	return "google-" + randomHex(16)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}
