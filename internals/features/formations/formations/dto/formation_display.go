// file: internals/features/formations/formations/dto/formation_display.go
package dto

import (
	"strings"

	"kursusku_backend/internals/features/formations/formations/model"
)

/* =======================================================
   DERIVASI TAMPILAN (fungsi murni, tanpa side effect)
   ======================================================= */

const (
	BrightnessDark  = "dark"
	BrightnessLight = "light"
)

// Kata kunci tema gelap dicek lebih dulu; tema yang cocok dua-duanya
// dihitung gelap.
var darkThemeKeywords = []string{
	"dark", "noir", "black", "sombre", "nuit", "night",
	"navy", "marine", "violet", "purple", "indigo", "bleu", "blue",
}

var lightThemeKeywords = []string{
	"light", "clair", "blanc", "white", "jaune", "yellow",
	"beige", "pastel", "creme", "cream", "rose", "pink",
}

// ThemeBrightness mengklasifikasikan tema menjadi "dark" / "light".
// Default "dark" kalau tidak ada kata kunci yang cocok.
func ThemeBrightness(theme string) string {
	t := strings.ToLower(theme)
	for _, k := range darkThemeKeywords {
		if strings.Contains(t, k) {
			return BrightnessDark
		}
	}
	for _, k := range lightThemeKeywords {
		if strings.Contains(t, k) {
			return BrightnessLight
		}
	}
	return BrightnessDark
}

// EffectiveChapterCount: pakai panjang daftar bab kalau ter-preload dan
// tidak kosong, selain itu pakai counter denormalisasi.
func EffectiveChapterCount(m *model.FormationModel) int {
	if len(m.Chapters) > 0 {
		return len(m.Chapters)
	}
	return m.FormationChapterCount
}

// EffectiveQuizCount: jumlahkan kuis per bab kalau daftar bab ter-preload,
// selain itu pakai counter denormalisasi.
func EffectiveQuizCount(m *model.FormationModel) int {
	if len(m.Chapters) > 0 {
		total := 0
		for i := range m.Chapters {
			total += len(m.Chapters[i].Quizzes)
		}
		return total
	}
	return m.FormationQuizCount
}

// CoverURL mengembalikan URL cover, kosong kalau belum ada
// (klien menampilkan placeholder).
func CoverURL(m *model.FormationModel) string {
	if m.FormationCoverURL != nil {
		return strings.TrimSpace(*m.FormationCoverURL)
	}
	return ""
}
