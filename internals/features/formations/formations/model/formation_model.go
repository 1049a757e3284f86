// file: internals/features/formations/formations/model/formation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// FormationModel merepresentasikan tabel formations (kursus yang bisa dibeli)
type FormationModel struct {
	FormationID          uuid.UUID `gorm:"column:formation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"formation_id"`
	FormationTitle       string    `gorm:"column:formation_title;size:255;not null" json:"formation_title"`
	FormationSlug        string    `gorm:"column:formation_slug;size:160;uniqueIndex;not null" json:"formation_slug"`
	FormationDescription string    `gorm:"column:formation_description;type:text" json:"formation_description"`
	FormationTheme       string    `gorm:"column:formation_theme;size:80;not null" json:"formation_theme"`

	// counter denormalisasi; sumber kebenaran tetap chapters/quizzes kalau ter-preload
	FormationQuizCount    int `gorm:"column:formation_quiz_count;not null;default:0" json:"formation_quiz_count"`
	FormationChapterCount int `gorm:"column:formation_chapter_count;not null;default:0" json:"formation_chapter_count"`

	FormationCertificate bool           `gorm:"column:formation_certificate;not null;default:false" json:"formation_certificate"`
	FormationPrice       *float64       `gorm:"column:formation_price;type:numeric(12,2)" json:"formation_price,omitempty"`
	FormationTags        pq.StringArray `gorm:"column:formation_tags;type:text[]" json:"formation_tags,omitempty"`
	FormationIsPublished bool           `gorm:"column:formation_is_published;not null;default:true" json:"formation_is_published"`

	// cover webp + thumbnail; kolom trash dipakai reaper saat cover diganti/dihapus
	FormationCoverURL                *string    `gorm:"column:formation_cover_url;type:text" json:"formation_cover_url,omitempty"`
	FormationCoverThumbURL           *string    `gorm:"column:formation_cover_thumb_url;type:text" json:"formation_cover_thumb_url,omitempty"`
	FormationCoverTrashURL           *string    `gorm:"column:formation_cover_trash_url;type:text" json:"-"`
	FormationCoverDeletePendingUntil *time.Time `gorm:"column:formation_cover_delete_pending_until" json:"-"`

	FormationCreatedAt time.Time      `gorm:"column:formation_created_at;autoCreateTime" json:"formation_created_at"`
	FormationUpdatedAt time.Time      `gorm:"column:formation_updated_at;autoUpdateTime" json:"formation_updated_at"`
	FormationDeletedAt gorm.DeletedAt `gorm:"column:formation_deleted_at;index" json:"-"`

	// relasi bab terurut (preload opsional)
	Chapters []FormationChapterModel `gorm:"foreignKey:FormationChapterFormationID;references:FormationID" json:"chapters,omitempty"`
}

func (FormationModel) TableName() string {
	return "formations"
}
