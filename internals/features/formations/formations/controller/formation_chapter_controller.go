// file: internals/features/formations/formations/controller/formation_chapter_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/formations/formations/dto"
	"kursusku_backend/internals/features/formations/formations/model"
	helper "kursusku_backend/internals/helpers"
)

/* =======================================================
   SINKRONISASI COUNTER DENORMALISASI
   ======================================================= */

// recountFormation menyegarkan formation_chapter_count & formation_quiz_count
// setelah mutasi bab/kuis
func (fc *FormationController) recountFormation(c *fiber.Ctx, formationID uuid.UUID) {
	err := fc.DB.WithContext(c.Context()).Exec(`
		UPDATE formations SET
			formation_chapter_count = (
				SELECT COUNT(*) FROM formation_chapters
				WHERE formation_chapter_formation_id = ?
				  AND formation_chapter_deleted_at IS NULL
			),
			formation_quiz_count = (
				SELECT COUNT(*)
				FROM formation_chapter_quizzes q
				JOIN formation_chapters ch
				  ON ch.formation_chapter_id = q.formation_chapter_quiz_chapter_id
				WHERE ch.formation_chapter_formation_id = ?
				  AND ch.formation_chapter_deleted_at IS NULL
				  AND q.formation_chapter_quiz_deleted_at IS NULL
			)
		WHERE formation_id = ?`, formationID, formationID, formationID).Error
	if err != nil {
		log.Printf("[FORMATION] gagal sinkron counter formation %s: %v", formationID, err)
	}
}

// findChapter mengambil bab berdasarkan ID
func (fc *FormationController) findChapter(c *fiber.Ctx, chapterID uuid.UUID) (*model.FormationChapterModel, error) {
	var chapter model.FormationChapterModel
	err := fc.DB.WithContext(c.Context()).
		Where("formation_chapter_id = ?", chapterID).
		First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

/* =======================================================
   ADMIN: BAB
   ======================================================= */

// CreateChapter menambah bab baru; posisi default = posisi terakhir + 1
func (fc *FormationController) CreateChapter(c *fiber.Ctx) error {
	formationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	var req dto.CreateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := fc.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Validasi gagal: "+err.Error())
	}

	// pastikan formation ada
	var exists int64
	if err := fc.DB.WithContext(c.Context()).
		Model(&model.FormationModel{}).
		Where("formation_id = ?", formationID).
		Count(&exists).Error; err != nil || exists == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
	}

	position := 0
	if req.FormationChapterPosition != nil {
		position = *req.FormationChapterPosition
	} else {
		var next int
		if err := fc.DB.WithContext(c.Context()).Raw(`
			SELECT COALESCE(MAX(formation_chapter_position), 0) + 1
			FROM formation_chapters
			WHERE formation_chapter_formation_id = ?
			  AND formation_chapter_deleted_at IS NULL`, formationID).
			Scan(&next).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menentukan posisi bab")
		}
		position = next
	}

	chapter := model.FormationChapterModel{
		FormationChapterFormationID: formationID,
		FormationChapterTitle:       strings.TrimSpace(req.FormationChapterTitle),
		FormationChapterPosition:    position,
	}
	if err := fc.DB.WithContext(c.Context()).Create(&chapter).Error; err != nil {
		if pgCode(err) == "23505" {
			return helper.JsonError(c, fiber.StatusConflict, "Posisi bab sudah dipakai")
		}
		log.Printf("[FORMATION] gagal membuat bab: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat bab")
	}

	fc.recountFormation(c, formationID)
	return helper.JsonCreated(c, "Bab berhasil dibuat", chapter)
}

// UpdateChapter mengganti judul / posisi bab
func (fc *FormationController) UpdateChapter(c *fiber.Ctx) error {
	chapterID, err := helper.ParseUUIDParam(c, "chapterId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID bab tidak valid")
	}

	var req dto.UpdateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := fc.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Validasi gagal: "+err.Error())
	}

	chapter, err := fc.findChapter(c, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bab tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bab")
	}

	if req.FormationChapterTitle != nil {
		chapter.FormationChapterTitle = strings.TrimSpace(*req.FormationChapterTitle)
	}
	if req.FormationChapterPosition != nil {
		chapter.FormationChapterPosition = *req.FormationChapterPosition
	}

	if err := fc.DB.WithContext(c.Context()).Save(chapter).Error; err != nil {
		if pgCode(err) == "23505" {
			return helper.JsonError(c, fiber.StatusConflict, "Posisi bab sudah dipakai")
		}
		log.Printf("[FORMATION] gagal memperbarui bab %s: %v", chapterID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui bab")
	}

	return helper.JsonUpdated(c, "Bab berhasil diperbarui", chapter)
}

// DeleteChapter soft delete bab beserta pengaruhnya ke counter
func (fc *FormationController) DeleteChapter(c *fiber.Ctx) error {
	chapterID, err := helper.ParseUUIDParam(c, "chapterId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID bab tidak valid")
	}

	chapter, err := fc.findChapter(c, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bab tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bab")
	}

	if err := fc.DB.WithContext(c.Context()).
		Where("formation_chapter_id = ?", chapterID).
		Delete(&model.FormationChapterModel{}).Error; err != nil {
		log.Printf("[FORMATION] gagal menghapus bab %s: %v", chapterID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus bab")
	}

	fc.recountFormation(c, chapter.FormationChapterFormationID)
	return helper.JsonDeleted(c, "Bab berhasil dihapus", fiber.Map{"formation_chapter_id": chapterID})
}

/* =======================================================
   ADMIN: KUIS
   ======================================================= */

// CreateQuiz menambah kuis pada satu bab
func (fc *FormationController) CreateQuiz(c *fiber.Ctx) error {
	chapterID, err := helper.ParseUUIDParam(c, "chapterId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID bab tidak valid")
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := fc.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Validasi gagal: "+err.Error())
	}

	chapter, err := fc.findChapter(c, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bab tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bab")
	}

	position := 1
	if req.FormationChapterQuizPosition != nil {
		position = *req.FormationChapterQuizPosition
	} else {
		var next int
		if err := fc.DB.WithContext(c.Context()).Raw(`
			SELECT COALESCE(MAX(formation_chapter_quiz_position), 0) + 1
			FROM formation_chapter_quizzes
			WHERE formation_chapter_quiz_chapter_id = ?
			  AND formation_chapter_quiz_deleted_at IS NULL`, chapterID).
			Scan(&next).Error; err == nil {
			position = next
		}
	}

	quiz := model.FormationChapterQuizModel{
		FormationChapterQuizChapterID: chapterID,
		FormationChapterQuizTitle:     strings.TrimSpace(req.FormationChapterQuizTitle),
		FormationChapterQuizPosition:  position,
	}
	if err := fc.DB.WithContext(c.Context()).Create(&quiz).Error; err != nil {
		log.Printf("[FORMATION] gagal membuat kuis: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kuis")
	}

	fc.recountFormation(c, chapter.FormationChapterFormationID)
	return helper.JsonCreated(c, "Kuis berhasil dibuat", quiz)
}

// UpdateQuiz mengganti judul / posisi kuis
func (fc *FormationController) UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kuis tidak valid")
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := fc.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Validasi gagal: "+err.Error())
	}

	var quiz model.FormationChapterQuizModel
	if err := fc.DB.WithContext(c.Context()).
		Where("formation_chapter_quiz_id = ?", quizID).
		First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kuis tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kuis")
	}

	if req.FormationChapterQuizTitle != nil {
		quiz.FormationChapterQuizTitle = strings.TrimSpace(*req.FormationChapterQuizTitle)
	}
	if req.FormationChapterQuizPosition != nil {
		quiz.FormationChapterQuizPosition = *req.FormationChapterQuizPosition
	}

	if err := fc.DB.WithContext(c.Context()).Save(&quiz).Error; err != nil {
		log.Printf("[FORMATION] gagal memperbarui kuis %s: %v", quizID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kuis")
	}

	return helper.JsonUpdated(c, "Kuis berhasil diperbarui", quiz)
}

// DeleteQuiz soft delete kuis
func (fc *FormationController) DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kuis tidak valid")
	}

	var quiz model.FormationChapterQuizModel
	if err := fc.DB.WithContext(c.Context()).
		Where("formation_chapter_quiz_id = ?", quizID).
		First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kuis tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kuis")
	}

	if err := fc.DB.WithContext(c.Context()).
		Where("formation_chapter_quiz_id = ?", quizID).
		Delete(&model.FormationChapterQuizModel{}).Error; err != nil {
		log.Printf("[FORMATION] gagal menghapus kuis %s: %v", quizID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kuis")
	}

	// cari formation induk untuk sinkron counter
	if chapter, errCh := fc.findChapter(c, quiz.FormationChapterQuizChapterID); errCh == nil {
		fc.recountFormation(c, chapter.FormationChapterFormationID)
	}

	return helper.JsonDeleted(c, "Kuis berhasil dihapus", fiber.Map{"formation_chapter_quiz_id": quizID})
}
