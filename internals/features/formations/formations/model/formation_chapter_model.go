// file: internals/features/formations/formations/model/formation_chapter_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormationChapterModel merepresentasikan bab terurut dalam satu formation.
// Posisi unik per formation (uq_formation_chapters_formation_position).
type FormationChapterModel struct {
	FormationChapterID          uuid.UUID `gorm:"column:formation_chapter_id;type:uuid;default:gen_random_uuid();primaryKey" json:"formation_chapter_id"`
	FormationChapterFormationID uuid.UUID `gorm:"column:formation_chapter_formation_id;type:uuid;not null;uniqueIndex:uq_formation_chapters_formation_position" json:"formation_chapter_formation_id"`
	FormationChapterTitle       string    `gorm:"column:formation_chapter_title;size:255;not null" json:"formation_chapter_title"`
	FormationChapterPosition    int       `gorm:"column:formation_chapter_position;not null;uniqueIndex:uq_formation_chapters_formation_position" json:"formation_chapter_position"`

	FormationChapterCreatedAt time.Time      `gorm:"column:formation_chapter_created_at;autoCreateTime" json:"formation_chapter_created_at"`
	FormationChapterUpdatedAt time.Time      `gorm:"column:formation_chapter_updated_at;autoUpdateTime" json:"formation_chapter_updated_at"`
	FormationChapterDeletedAt gorm.DeletedAt `gorm:"column:formation_chapter_deleted_at;index" json:"-"`

	Quizzes []FormationChapterQuizModel `gorm:"foreignKey:FormationChapterQuizChapterID;references:FormationChapterID" json:"quizzes,omitempty"`
}

func (FormationChapterModel) TableName() string {
	return "formation_chapters"
}
