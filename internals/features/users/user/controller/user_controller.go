// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/users/user/dto"
	"kursusku_backend/internals/features/users/user/model"
	helper "kursusku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// kolom yang boleh dipakai sort di listing user
var allowedUserSort = map[string]string{
	"created_at": "created_at",
	"user_name":  "user_name",
	"email":      "email",
}

/* =======================================================
   LIST & DETAIL (admin)
   ======================================================= */

// GetUsers mengembalikan daftar user (paginated, pencarian q)
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	orderClause, err := p.SafeOrderClause(allowedUserSort, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter sort tidak valid")
	}

	q := strings.TrimSpace(c.Query("q"))

	tx := uc.DB.Model(&model.UserModel{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		tx = tx.Where("role = ?", role)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung user")
	}

	var users []model.UserModel
	if err := tx.Order(orderClause).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar user")
	}

	return helper.JsonList(c, "Daftar user berhasil diambil",
		dto.FromModels(users),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GetUserByID mengembalikan detail satu user
func (uc *UserController) GetUserByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var user model.UserModel
	if err := uc.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	return helper.JsonOK(c, "User ditemukan", dto.FromModel(&user))
}

/* =======================================================
   MUTASI (admin)
   ======================================================= */

// UpdateUserActive mengaktifkan / menonaktifkan akun user
func (uc *UserController) UpdateUserActive(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil || input.IsActive == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Field is_active wajib diisi")
	}

	res := uc.DB.Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("is_active", *input.IsActive)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah status user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	msg := "User dinonaktifkan"
	if *input.IsActive {
		msg = "User diaktifkan"
	}
	return helper.JsonUpdated(c, msg, fiber.Map{
		"id":        id,
		"is_active": *input.IsActive,
	})
}

// UpdateUserRole mengganti role user (tidak bisa menetapkan owner lewat API)
func (uc *UserController) UpdateUserRole(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	switch role {
	case constants.RoleUser, constants.RoleInstructor, constants.RoleAdmin:
		// valid
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Role tidak valid")
	}

	res := uc.DB.Model(&model.UserModel{}).
		Where("id = ? AND role <> ?", id, constants.RoleOwner).
		Update("role", role)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah role user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan atau tidak boleh diubah")
	}

	return helper.JsonUpdated(c, "Role user berhasil diganti", fiber.Map{
		"id":   id,
		"role": role,
	})
}
