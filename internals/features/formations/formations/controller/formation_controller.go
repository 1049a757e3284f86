// file: internals/features/formations/formations/controller/formation_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/formations/formations/dto"
	"kursusku_backend/internals/features/formations/formations/model"
	helper "kursusku_backend/internals/helpers"
)

type FormationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFormationController(db *gorm.DB) *FormationController {
	return &FormationController{
		DB:       db,
		Validate: validator.New(),
	}
}

// kolom yang boleh dipakai sort di listing formation
var allowedFormationSort = map[string]string{
	"created_at": "formation_created_at",
	"title":      "formation_title",
	"price":      "formation_price",
}

/* =======================================================
   QUERY DASAR
   ======================================================= */

// withChapters memuat bab + kuis terurut posisi
func withChapters(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("formation_chapter_position ASC")
		}).
		Preload("Chapters.Quizzes", func(db *gorm.DB) *gorm.DB {
			return db.Order("formation_chapter_quiz_position ASC")
		})
}

// lookupPurchased mengembalikan set formation_id yang sudah dibeli user (status active)
func (fc *FormationController) lookupPurchased(c *fiber.Ctx, userID uuid.UUID, formationIDs []uuid.UUID) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(formationIDs))
	if len(formationIDs) == 0 {
		return out
	}

	var ids []uuid.UUID
	err := fc.DB.WithContext(c.Context()).
		Table("purchased_formations").
		Where("purchased_formation_user_id = ? AND purchased_formation_formation_id IN ? AND purchased_formation_status = 'active' AND purchased_formation_deleted_at IS NULL", userID, formationIDs).
		Pluck("purchased_formation_formation_id", &ids).Error
	if err != nil {
		log.Printf("[FORMATION] gagal cek status pembelian: %v", err)
		return out
	}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// optionalIsPurchased mengisi is_purchased bila request punya sesi login
// (SecondAuthMiddleware); anonim mengembalikan nil.
func (fc *FormationController) optionalIsPurchased(c *fiber.Ctx, formationID uuid.UUID) *bool {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	set := fc.lookupPurchased(c, userID, []uuid.UUID{formationID})
	v := set[formationID]
	return &v
}

/* =======================================================
   PUBLIK: DETAIL
   ======================================================= */

// GetFormationByID mengambil satu formation terbit berdasarkan UUID,
// lengkap dengan bab + kuis dan blok derivasi tampilan.
func (fc *FormationController) GetFormationByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	var formation model.FormationModel
	err = withChapters(fc.DB.WithContext(c.Context())).
		Where("formation_id = ? AND formation_is_published = TRUE", id).
		First(&formation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		}
		log.Printf("[FORMATION] gagal mengambil formation %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil formation")
	}

	resp := dto.FromFormationModel(&formation, true, fc.optionalIsPurchased(c, formation.FormationID))
	return helper.JsonOK(c, "Formation ditemukan", resp)
}

// GetFormationBySlug sama seperti GetFormationByID tapi lookup via slug
func (fc *FormationController) GetFormationBySlug(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Slug tidak boleh kosong")
	}

	var formation model.FormationModel
	err := withChapters(fc.DB.WithContext(c.Context())).
		Where("LOWER(formation_slug) = ? AND formation_is_published = TRUE", slug).
		First(&formation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		}
		log.Printf("[FORMATION] gagal mengambil formation slug=%s: %v", slug, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil formation")
	}

	resp := dto.FromFormationModel(&formation, true, fc.optionalIsPurchased(c, formation.FormationID))
	return helper.JsonOK(c, "Formation ditemukan", resp)
}

/* =======================================================
   PUBLIK: LIST (explore)
   ======================================================= */

// GetFormations mengembalikan daftar formation terbit (paginated + filter)
func (fc *FormationController) GetFormations(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	orderClause, err := p.SafeOrderClause(allowedFormationSort, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter sort tidak valid")
	}

	tx := fc.DB.WithContext(c.Context()).
		Model(&model.FormationModel{}).
		Where("formation_is_published = TRUE")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(formation_title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if theme := strings.TrimSpace(c.Query("theme")); theme != "" {
		tx = tx.Where("LOWER(formation_theme) = ?", strings.ToLower(theme))
	}
	if cert := strings.TrimSpace(c.Query("certificate")); cert != "" {
		tx = tx.Where("formation_certificate = ?", cert == "true" || cert == "1")
	}
	if free := strings.TrimSpace(c.Query("free")); free != "" {
		if free == "true" || free == "1" {
			tx = tx.Where("formation_price IS NULL OR formation_price = 0")
		} else {
			tx = tx.Where("formation_price > 0")
		}
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		tx = tx.Where("? = ANY(formation_tags)", tag)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Printf("[FORMATION] gagal menghitung formation: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar formation")
	}

	var items []model.FormationModel
	if err := tx.Order(orderClause).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&items).Error; err != nil {
		log.Printf("[FORMATION] gagal mengambil daftar formation: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar formation")
	}

	// enrichment is_purchased untuk user login
	var purchasedSet map[uuid.UUID]bool
	if userID, errAuth := helper.GetUserIDFromToken(c); errAuth == nil {
		ids := make([]uuid.UUID, 0, len(items))
		for i := range items {
			ids = append(ids, items[i].FormationID)
		}
		purchasedSet = fc.lookupPurchased(c, userID, ids)
	}

	return helper.JsonList(c, "Daftar formation berhasil diambil",
		dto.FromFormationModels(items, purchasedSet),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
