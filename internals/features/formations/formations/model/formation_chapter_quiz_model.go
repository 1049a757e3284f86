// file: internals/features/formations/formations/model/formation_chapter_quiz_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormationChapterQuizModel merepresentasikan kuis dalam satu bab
type FormationChapterQuizModel struct {
	FormationChapterQuizID        uuid.UUID `gorm:"column:formation_chapter_quiz_id;type:uuid;default:gen_random_uuid();primaryKey" json:"formation_chapter_quiz_id"`
	FormationChapterQuizChapterID uuid.UUID `gorm:"column:formation_chapter_quiz_chapter_id;type:uuid;not null;index" json:"formation_chapter_quiz_chapter_id"`
	FormationChapterQuizTitle     string    `gorm:"column:formation_chapter_quiz_title;size:255;not null" json:"formation_chapter_quiz_title"`
	FormationChapterQuizPosition  int       `gorm:"column:formation_chapter_quiz_position;not null;default:1" json:"formation_chapter_quiz_position"`

	FormationChapterQuizCreatedAt time.Time      `gorm:"column:formation_chapter_quiz_created_at;autoCreateTime" json:"formation_chapter_quiz_created_at"`
	FormationChapterQuizUpdatedAt time.Time      `gorm:"column:formation_chapter_quiz_updated_at;autoUpdateTime" json:"formation_chapter_quiz_updated_at"`
	FormationChapterQuizDeletedAt gorm.DeletedAt `gorm:"column:formation_chapter_quiz_deleted_at;index" json:"-"`
}

func (FormationChapterQuizModel) TableName() string {
	return "formation_chapter_quizzes"
}
