// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/auth/repository"
	"kursusku_backend/internals/features/users/auth/service"
	helper "kursusku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* =======================================================
   REGISTER & LOGIN
   ======================================================= */

// Register menangani pendaftaran akun baru
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	if err := service.Register(ac.DB, input); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi berhasil, silakan login", nil)
}

// Login menangani login email/user_name + password
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	return service.Login(ac.DB, c, input)
}

// LoginGoogle menangani login via Google ID token
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	return service.LoginGoogle(ac.DB, c, input.IDToken)
}

// Logout mencabut sesi aktif
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

/* =======================================================
   TOKEN
   ======================================================= */

// RefreshToken menukar refresh token dengan pasangan token baru
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

// CSRFToken menerbitkan cookie csrf_token untuk double-submit
func (ac *AuthController) CSRFToken(c *fiber.Ctx) error {
	return service.IssueXSRF(c)
}

/* =======================================================
   LUPA PASSWORD
   ======================================================= */

// ForgotPasswordQuestion mengambil pertanyaan keamanan berdasarkan email
func (ac *AuthController) ForgotPasswordQuestion(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	question, err := service.GetSecurityQuestion(ac.DB, input.Email)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Pertanyaan keamanan ditemukan", fiber.Map{
		"security_question": question,
	})
}

// CheckSecurityAnswer memverifikasi jawaban keamanan
func (ac *AuthController) CheckSecurityAnswer(c *fiber.Ctx) error {
	var input struct {
		Email          string `json:"email"`
		SecurityAnswer string `json:"security_answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	if err := service.CheckSecurityAnswer(ac.DB, input.Email, input.SecurityAnswer); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Jawaban keamanan benar", nil)
}

// ResetPassword mengganti password lewat alur lupa password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Email          string `json:"email"`
		SecurityAnswer string `json:"security_answer"`
		NewPassword    string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	if err := service.ResetPassword(ac.DB, input.Email, input.SecurityAnswer, input.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Password berhasil direset, silakan login ulang", nil)
}

// ChangePassword mengganti password user yang sedang login
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	if err := service.ChangePassword(ac.DB, c, userID, input.OldPassword, input.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Password berhasil diganti, silakan login ulang", nil)
}

/* =======================================================
   PROFIL SAYA
   ======================================================= */

// Me mengembalikan profil user yang sedang login
// beserta jumlah formasi yang sudah dibeli.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	user, err := repository.GetUserByID(ac.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Akun tidak ditemukan")
	}

	var purchasedCount int64
	if err := ac.DB.Table("purchased_formations").
		Where("purchased_formation_user_id = ? AND purchased_formation_status = 'active' AND purchased_formation_deleted_at IS NULL", userID).
		Count(&purchasedCount).Error; err != nil {
		purchasedCount = 0
	}

	return helper.Success(c, "Profil ditemukan", fiber.Map{
		"id":              user.ID,
		"user_name":       user.UserName,
		"full_name":       user.FullName,
		"email":           user.Email,
		"role":            user.Role,
		"is_active":       user.IsActive,
		"created_at":      user.CreatedAt,
		"purchased_count": purchasedCount,
	})
}

// UpdateUserName mengganti user_name user yang sedang login
func (ac *AuthController) UpdateUserName(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var input struct {
		UserName string `json:"user_name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	newName := strings.TrimSpace(input.UserName)
	if len(newName) < 3 || len(newName) > 50 {
		return helper.Error(c, fiber.StatusBadRequest, "user_name harus 3-50 karakter")
	}

	taken, err := repository.IsUsernameTaken(ac.DB, newName, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa user_name")
	}
	if taken {
		return helper.Error(c, fiber.StatusConflict, "User name sudah digunakan")
	}

	if err := repository.UpdateUserName(ac.DB, userID, newName); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengganti user_name")
	}
	return helper.Success(c, "User name berhasil diganti", fiber.Map{
		"user_name": newName,
	})
}
