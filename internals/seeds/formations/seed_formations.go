// file: internals/seeds/formations/seed_formations.go
package formations

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/formations/formations/model"
	helper "kursusku_backend/internals/helpers"
)

type ChapterSeed struct {
	Title    string   `json:"title"`
	Position int      `json:"position"`
	Quizzes  []string `json:"quizzes"`
}

type FormationSeed struct {
	FormationTitle       string        `json:"formation_title"`
	FormationSlug        string        `json:"formation_slug"`
	FormationDescription string        `json:"formation_description"`
	FormationTheme       string        `json:"formation_theme"`
	FormationPrice       *float64      `json:"formation_price"`
	FormationCertificate bool          `json:"formation_certificate"`
	FormationTags        []string      `json:"formation_tags"`
	Chapters             []ChapterSeed `json:"chapters"`
}

// SeedFormationsFromJSON mengisi katalog formation (+bab & kuis) dari file
// JSON; slug yang sudah ada dilewati supaya seeder aman dijalankan berulang.
func SeedFormationsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file formation:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var inputs []FormationSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	for _, data := range inputs {
		slug := strings.TrimSpace(data.FormationSlug)
		if slug == "" {
			slug = helper.SuggestSlugFromName(data.FormationTitle)
		}

		var count int64
		if err := db.Model(&model.FormationModel{}).
			Where("LOWER(formation_slug) = ?", strings.ToLower(slug)).
			Count(&count).Error; err != nil {
			log.Printf("❌ Gagal cek slug '%s': %v", slug, err)
			continue
		}
		if count > 0 {
			log.Printf("ℹ️ Formation dengan slug '%s' sudah ada, dilewati.", slug)
			continue
		}

		quizTotal := 0
		for _, ch := range data.Chapters {
			quizTotal += len(ch.Quizzes)
		}

		formation := model.FormationModel{
			FormationTitle:        data.FormationTitle,
			FormationSlug:         slug,
			FormationDescription:  data.FormationDescription,
			FormationTheme:        data.FormationTheme,
			FormationPrice:        data.FormationPrice,
			FormationCertificate:  data.FormationCertificate,
			FormationTags:         pq.StringArray(data.FormationTags),
			FormationChapterCount: len(data.Chapters),
			FormationQuizCount:    quizTotal,
			FormationIsPublished:  true,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&formation).Error; err != nil {
				return err
			}
			for i, ch := range data.Chapters {
				position := ch.Position
				if position <= 0 {
					position = i + 1
				}
				chapter := model.FormationChapterModel{
					FormationChapterFormationID: formation.FormationID,
					FormationChapterTitle:       ch.Title,
					FormationChapterPosition:    position,
				}
				if err := tx.Create(&chapter).Error; err != nil {
					return err
				}
				for j, quizTitle := range ch.Quizzes {
					quiz := model.FormationChapterQuizModel{
						FormationChapterQuizChapterID: chapter.FormationChapterID,
						FormationChapterQuizTitle:     quizTitle,
						FormationChapterQuizPosition:  j + 1,
					}
					if err := tx.Create(&quiz).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("❌ Gagal insert formation '%s': %v", data.FormationTitle, err)
		} else {
			log.Printf("✅ Berhasil insert formation '%s' (%d bab, %d kuis)",
				data.FormationTitle, len(data.Chapters), quizTotal)
		}
	}
}
