// file: internals/features/formations/formations/controller/formation_admin_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/formations/formations/dto"
	"kursusku_backend/internals/features/formations/formations/model"
	helper "kursusku_backend/internals/helpers"
	helperOSS "kursusku_backend/internals/helpers/oss"
)

// masa parkir cover lama di spam/ sebelum reaper menghapus permanen
const coverTrashRetention = 30 * 24 * time.Hour

// pgCode mengambil SQLSTATE dari error Postgres (pgx / driver lain)
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var sqlState interface{ SQLState() string }
	if errors.As(err, &sqlState) {
		return sqlState.SQLState()
	}
	return ""
}

/* =======================================================
   ADMIN: LIST & DETAIL (termasuk yang belum terbit)
   ======================================================= */

// GetFormationsAdmin mengembalikan seluruh formation (terbit + draft)
func (fc *FormationController) GetFormationsAdmin(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	orderClause, err := p.SafeOrderClause(allowedFormationSort, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter sort tidak valid")
	}

	tx := fc.DB.WithContext(c.Context()).Model(&model.FormationModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(formation_title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if pub := strings.TrimSpace(c.Query("published")); pub != "" {
		tx = tx.Where("formation_is_published = ?", pub == "true" || pub == "1")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung formation")
	}

	var items []model.FormationModel
	if err := tx.Order(orderClause).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar formation")
	}

	return helper.JsonList(c, "Daftar formation berhasil diambil",
		dto.FromFormationModels(items, nil),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GetFormationAdminByID detail tanpa filter is_published
func (fc *FormationController) GetFormationAdminByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	var formation model.FormationModel
	err = withChapters(fc.DB.WithContext(c.Context())).
		Where("formation_id = ?", id).
		First(&formation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil formation")
	}

	return helper.JsonOK(c, "Formation ditemukan", dto.FromFormationModel(&formation, true, nil))
}

/* =======================================================
   ADMIN: CREATE / UPDATE / DELETE
   ======================================================= */

// CreateFormation membuat formation baru (slug otomatis bila kosong)
func (fc *FormationController) CreateFormation(c *fiber.Ctx) error {
	var req dto.CreateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := fc.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Validasi gagal: "+err.Error())
	}

	formation := req.ToModel()

	// slug: pakai kiriman admin atau turunkan dari judul, lalu pastikan unik
	base := formation.FormationSlug
	if base == "" {
		base = helper.SuggestSlugFromName(formation.FormationTitle)
	} else {
		base = helper.Slugify(base, 160)
	}
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), fc.DB, "formations", "formation_slug", base,
		func(q *gorm.DB) *gorm.DB { return q.Where("formation_deleted_at IS NULL") }, 160)
	if err != nil {
		log.Printf("[FORMATION] gagal memastikan slug unik: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}
	formation.FormationSlug = slug

	if err := fc.DB.WithContext(c.Context()).Create(&formation).Error; err != nil {
		if pgCode(err) == "23505" {
			return helper.JsonError(c, fiber.StatusConflict, "Slug formation sudah dipakai")
		}
		log.Printf("[FORMATION] gagal membuat formation: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat formation")
	}

	return helper.JsonCreated(c, "Formation berhasil dibuat", dto.FromFormationModel(&formation, false, nil))
}

// UpdateFormation partial update; slug baru tetap dicek unik
func (fc *FormationController) UpdateFormation(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	var req dto.UpdateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := fc.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Validasi gagal: "+err.Error())
	}

	var formation model.FormationModel
	if err := fc.DB.WithContext(c.Context()).
		Where("formation_id = ?", id).
		First(&formation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil formation")
	}

	req.ApplyToModel(&formation)

	// slug kiriman admin dinormalisasi + dicek unik (exclude baris ini)
	if req.FormationSlug != nil {
		base := helper.Slugify(formation.FormationSlug, 160)
		slug, errSlug := helper.EnsureUniqueSlugCI(c.Context(), fc.DB, "formations", "formation_slug", base,
			func(q *gorm.DB) *gorm.DB {
				return q.Where("formation_deleted_at IS NULL AND formation_id <> ?", id)
			}, 160)
		if errSlug != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa slug")
		}
		formation.FormationSlug = slug
	}

	if err := fc.DB.WithContext(c.Context()).Save(&formation).Error; err != nil {
		if pgCode(err) == "23505" {
			return helper.JsonError(c, fiber.StatusConflict, "Slug formation sudah dipakai")
		}
		log.Printf("[FORMATION] gagal memperbarui formation %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui formation")
	}

	return helper.JsonUpdated(c, "Formation berhasil diperbarui", dto.FromFormationModel(&formation, false, nil))
}

// DeleteFormation soft delete; cover diparkir ke spam/ untuk reaper
func (fc *FormationController) DeleteFormation(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	var formation model.FormationModel
	if err := fc.DB.WithContext(c.Context()).
		Where("formation_id = ?", id).
		First(&formation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil formation")
	}

	// parkir cover lama (best-effort; URL non-OSS cuma dicatat lognya)
	if formation.FormationCoverURL != nil && *formation.FormationCoverURL != "" {
		if spamURL, errMove := helperOSS.MoveToSpamByPublicURLENV(*formation.FormationCoverURL, 0); errMove == nil {
			until := time.Now().Add(coverTrashRetention)
			_ = fc.DB.WithContext(c.Context()).Model(&model.FormationModel{}).
				Where("formation_id = ?", id).
				Updates(map[string]any{
					"formation_cover_trash_url":           spamURL,
					"formation_cover_delete_pending_until": until,
				}).Error
		} else {
			log.Printf("[FORMATION] cover tidak dipindah ke spam: %v", errMove)
		}
	}

	if err := fc.DB.WithContext(c.Context()).
		Where("formation_id = ?", id).
		Delete(&model.FormationModel{}).Error; err != nil {
		log.Printf("[FORMATION] gagal menghapus formation %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus formation")
	}

	return helper.JsonDeleted(c, "Formation berhasil dihapus", fiber.Map{"formation_id": id})
}

/* =======================================================
   ADMIN: UPLOAD COVER
   ======================================================= */

// UploadFormationCover menerima multipart "cover", konversi ke webp,
// unggah ke OSS (fallback Supabase), dan parkir cover lama ke spam/.
func (fc *FormationController) UploadFormationCover(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	var formation model.FormationModel
	if err := fc.DB.WithContext(c.Context()).
		Where("formation_id = ?", id).
		First(&formation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil formation")
	}

	fh, err := c.FormFile("cover")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File cover wajib diunggah (field: cover)")
	}
	if !constants.IsImageExt(fh.Filename) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "File harus berupa gambar (jpg/png/webp)")
	}

	var (
		coverURL string
		thumbURL string
	)

	// jalur utama: OSS; fallback: Supabase storage (sekalian thumbnail)
	if svc, errOSS := helperOSS.NewOSSServiceFromEnv(""); errOSS == nil {
		coverURL, err = svc.UploadAsWebP(c.Context(), fh, "formations/covers")
		if err != nil {
			return helper.FromFiberError(c, err)
		}
	} else {
		coverURL, thumbURL, err = helper.UploadCoverToSupabase("formations/covers", fh)
		if err != nil {
			log.Printf("[FORMATION] gagal unggah cover: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengunggah cover")
		}
	}

	updates := map[string]any{
		"formation_cover_url": coverURL,
	}
	if thumbURL != "" {
		updates["formation_cover_thumb_url"] = thumbURL
	}

	// parkir cover lama supaya bisa dipulihkan sebelum reaper lewat
	if formation.FormationCoverURL != nil && *formation.FormationCoverURL != "" && *formation.FormationCoverURL != coverURL {
		if spamURL, errMove := helperOSS.MoveToSpamByPublicURLENV(*formation.FormationCoverURL, 0); errMove == nil {
			updates["formation_cover_trash_url"] = spamURL
			updates["formation_cover_delete_pending_until"] = time.Now().Add(coverTrashRetention)
		} else {
			log.Printf("[FORMATION] cover lama tidak dipindah ke spam: %v", errMove)
		}
	}

	if err := fc.DB.WithContext(c.Context()).
		Model(&model.FormationModel{}).
		Where("formation_id = ?", id).
		Updates(updates).Error; err != nil {
		log.Printf("[FORMATION] gagal menyimpan URL cover: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan cover")
	}

	return helper.JsonUpdated(c, "Cover formation berhasil diperbarui", fiber.Map{
		"formation_id":              id,
		"formation_cover_url":       coverURL,
		"formation_cover_thumb_url": thumbURL,
	})
}
