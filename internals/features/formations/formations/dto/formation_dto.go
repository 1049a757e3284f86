// file: internals/features/formations/formations/dto/formation_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"kursusku_backend/internals/features/formations/formations/model"
)

/* =======================================================
   REQUEST
   ======================================================= */

type CreateFormationRequest struct {
	FormationTitle       string   `json:"formation_title" validate:"required,min=3,max=255"`
	FormationSlug        string   `json:"formation_slug" validate:"omitempty,min=3,max=160"`
	FormationDescription string   `json:"formation_description" validate:"omitempty"`
	FormationTheme       string   `json:"formation_theme" validate:"required,max=80"`
	FormationQuizCount   *int     `json:"formation_quiz_count" validate:"omitempty,gte=0"`
	FormationChapterCnt  *int     `json:"formation_chapter_count" validate:"omitempty,gte=0"`
	FormationCertificate *bool    `json:"formation_certificate"`
	FormationPrice       *float64 `json:"formation_price" validate:"omitempty,gte=0"`
	FormationTags        []string `json:"formation_tags" validate:"omitempty,dive,min=1,max=50"`
	FormationIsPublished *bool    `json:"formation_is_published"`
}

// ToModel membentuk FormationModel baru dari request create
func (r *CreateFormationRequest) ToModel() model.FormationModel {
	m := model.FormationModel{
		FormationTitle:       strings.TrimSpace(r.FormationTitle),
		FormationSlug:        strings.TrimSpace(r.FormationSlug),
		FormationDescription: strings.TrimSpace(r.FormationDescription),
		FormationTheme:       strings.TrimSpace(r.FormationTheme),
		FormationPrice:       r.FormationPrice,
		FormationIsPublished: true,
	}
	if r.FormationQuizCount != nil {
		m.FormationQuizCount = *r.FormationQuizCount
	}
	if r.FormationChapterCnt != nil {
		m.FormationChapterCount = *r.FormationChapterCnt
	}
	if r.FormationCertificate != nil {
		m.FormationCertificate = *r.FormationCertificate
	}
	if r.FormationIsPublished != nil {
		m.FormationIsPublished = *r.FormationIsPublished
	}
	if len(r.FormationTags) > 0 {
		m.FormationTags = pq.StringArray(r.FormationTags)
	}
	return m
}

type UpdateFormationRequest struct {
	FormationTitle       *string   `json:"formation_title" validate:"omitempty,min=3,max=255"`
	FormationSlug        *string   `json:"formation_slug" validate:"omitempty,min=3,max=160"`
	FormationDescription *string   `json:"formation_description"`
	FormationTheme       *string   `json:"formation_theme" validate:"omitempty,max=80"`
	FormationQuizCount   *int      `json:"formation_quiz_count" validate:"omitempty,gte=0"`
	FormationChapterCnt  *int      `json:"formation_chapter_count" validate:"omitempty,gte=0"`
	FormationCertificate *bool     `json:"formation_certificate"`
	FormationPrice       *float64  `json:"formation_price" validate:"omitempty,gte=0"`
	FormationClearPrice  bool      `json:"formation_clear_price"` // true = jadikan gratis (price NULL)
	FormationTags        *[]string `json:"formation_tags" validate:"omitempty,dive,min=1,max=50"`
	FormationIsPublished *bool     `json:"formation_is_published"`
}

// ApplyToModel menerapkan field yang dikirim saja (partial update)
func (r *UpdateFormationRequest) ApplyToModel(m *model.FormationModel) {
	if r.FormationTitle != nil {
		m.FormationTitle = strings.TrimSpace(*r.FormationTitle)
	}
	if r.FormationSlug != nil {
		m.FormationSlug = strings.TrimSpace(*r.FormationSlug)
	}
	if r.FormationDescription != nil {
		m.FormationDescription = strings.TrimSpace(*r.FormationDescription)
	}
	if r.FormationTheme != nil {
		m.FormationTheme = strings.TrimSpace(*r.FormationTheme)
	}
	if r.FormationQuizCount != nil {
		m.FormationQuizCount = *r.FormationQuizCount
	}
	if r.FormationChapterCnt != nil {
		m.FormationChapterCount = *r.FormationChapterCnt
	}
	if r.FormationCertificate != nil {
		m.FormationCertificate = *r.FormationCertificate
	}
	if r.FormationClearPrice {
		m.FormationPrice = nil
	} else if r.FormationPrice != nil {
		m.FormationPrice = r.FormationPrice
	}
	if r.FormationTags != nil {
		m.FormationTags = pq.StringArray(*r.FormationTags)
	}
	if r.FormationIsPublished != nil {
		m.FormationIsPublished = *r.FormationIsPublished
	}
}

type CreateChapterRequest struct {
	FormationChapterTitle    string `json:"formation_chapter_title" validate:"required,min=2,max=255"`
	FormationChapterPosition *int   `json:"formation_chapter_position" validate:"omitempty,gte=1"`
}

type UpdateChapterRequest struct {
	FormationChapterTitle    *string `json:"formation_chapter_title" validate:"omitempty,min=2,max=255"`
	FormationChapterPosition *int    `json:"formation_chapter_position" validate:"omitempty,gte=1"`
}

type CreateQuizRequest struct {
	FormationChapterQuizTitle    string `json:"formation_chapter_quiz_title" validate:"required,min=2,max=255"`
	FormationChapterQuizPosition *int   `json:"formation_chapter_quiz_position" validate:"omitempty,gte=1"`
}

type UpdateQuizRequest struct {
	FormationChapterQuizTitle    *string `json:"formation_chapter_quiz_title" validate:"omitempty,min=2,max=255"`
	FormationChapterQuizPosition *int    `json:"formation_chapter_quiz_position" validate:"omitempty,gte=1"`
}

/* =======================================================
   RESPONSE
   ======================================================= */

type FormationQuizResponse struct {
	FormationChapterQuizID       uuid.UUID `json:"formation_chapter_quiz_id"`
	FormationChapterQuizTitle    string    `json:"formation_chapter_quiz_title"`
	FormationChapterQuizPosition int       `json:"formation_chapter_quiz_position"`
}

type FormationChapterResponse struct {
	FormationChapterID       uuid.UUID               `json:"formation_chapter_id"`
	FormationChapterTitle    string                  `json:"formation_chapter_title"`
	FormationChapterPosition int                     `json:"formation_chapter_position"`
	Quizzes                  []FormationQuizResponse `json:"quizzes"`
}

// FormationResponse adalah bentuk lengkap satu formation untuk klien,
// sudah berisi blok derivasi tampilan.
type FormationResponse struct {
	FormationID          uuid.UUID `json:"formation_id"`
	FormationTitle       string    `json:"formation_title"`
	FormationSlug        string    `json:"formation_slug"`
	FormationDescription string    `json:"formation_description"`
	FormationTheme       string    `json:"formation_theme"`

	// derivasi (lihat formation_display.go)
	FormationThemeBrightness string `json:"formation_theme_brightness"`
	EffectiveChapterCount    int    `json:"effective_chapter_count"`
	EffectiveQuizCount       int    `json:"effective_quiz_count"`

	FormationQuizCount    int      `json:"formation_quiz_count"`
	FormationChapterCount int      `json:"formation_chapter_count"`
	FormationCertificate  bool     `json:"formation_certificate"`
	FormationPrice        *float64 `json:"formation_price,omitempty"`
	FormationCoverURL     string   `json:"formation_cover_url,omitempty"`
	FormationCoverThumb   string   `json:"formation_cover_thumb_url,omitempty"`
	FormationTags         []string `json:"formation_tags,omitempty"`
	FormationIsPublished  bool     `json:"formation_is_published"`

	// hanya terisi bila request datang dengan sesi login (SecondAuth)
	IsPurchased *bool `json:"is_purchased,omitempty"`

	Chapters []FormationChapterResponse `json:"chapters,omitempty"`

	FormationCreatedAt time.Time `json:"formation_created_at"`
	FormationUpdatedAt time.Time `json:"formation_updated_at"`
}

// FromFormationModel membentuk response lengkap dari model (+preload bab)
func FromFormationModel(m *model.FormationModel, withChapters bool, isPurchased *bool) FormationResponse {
	resp := FormationResponse{
		FormationID:          m.FormationID,
		FormationTitle:       m.FormationTitle,
		FormationSlug:        m.FormationSlug,
		FormationDescription: m.FormationDescription,
		FormationTheme:       m.FormationTheme,

		FormationThemeBrightness: ThemeBrightness(m.FormationTheme),
		EffectiveChapterCount:    EffectiveChapterCount(m),
		EffectiveQuizCount:       EffectiveQuizCount(m),

		FormationQuizCount:    m.FormationQuizCount,
		FormationChapterCount: m.FormationChapterCount,
		FormationCertificate:  m.FormationCertificate,
		FormationPrice:        m.FormationPrice,
		FormationCoverURL:     CoverURL(m),
		FormationTags:         m.FormationTags,
		FormationIsPublished:  m.FormationIsPublished,
		IsPurchased:           isPurchased,

		FormationCreatedAt: m.FormationCreatedAt,
		FormationUpdatedAt: m.FormationUpdatedAt,
	}
	if m.FormationCoverThumbURL != nil {
		resp.FormationCoverThumb = strings.TrimSpace(*m.FormationCoverThumbURL)
	}

	if withChapters && len(m.Chapters) > 0 {
		chapters := make([]FormationChapterResponse, 0, len(m.Chapters))
		for i := range m.Chapters {
			ch := &m.Chapters[i]
			quizzes := make([]FormationQuizResponse, 0, len(ch.Quizzes))
			for j := range ch.Quizzes {
				q := &ch.Quizzes[j]
				quizzes = append(quizzes, FormationQuizResponse{
					FormationChapterQuizID:       q.FormationChapterQuizID,
					FormationChapterQuizTitle:    q.FormationChapterQuizTitle,
					FormationChapterQuizPosition: q.FormationChapterQuizPosition,
				})
			}
			chapters = append(chapters, FormationChapterResponse{
				FormationChapterID:       ch.FormationChapterID,
				FormationChapterTitle:    ch.FormationChapterTitle,
				FormationChapterPosition: ch.FormationChapterPosition,
				Quizzes:                  quizzes,
			})
		}
		resp.Chapters = chapters
	}
	return resp
}

// FromFormationModels membentuk daftar response ringkas (tanpa bab).
// purchasedSet boleh nil (anonim); kalau ada, is_purchased ikut terisi.
func FromFormationModels(items []model.FormationModel, purchasedSet map[uuid.UUID]bool) []FormationResponse {
	out := make([]FormationResponse, 0, len(items))
	for i := range items {
		var isPurchased *bool
		if purchasedSet != nil {
			v := purchasedSet[items[i].FormationID]
			isPurchased = &v
		}
		out = append(out, FromFormationModel(&items[i], false, isPurchased))
	}
	return out
}
