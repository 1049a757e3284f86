package dto

import (
	"testing"

	"kursusku_backend/internals/features/formations/formations/model"
)

func TestThemeBrightness(t *testing.T) {
	// kata kunci gelap
	darkThemes := []string{"dark", "Noir Profond", "NUIT", "navy-classic", "violet royal", "bleu ocean"}
	for _, theme := range darkThemes {
		if got := ThemeBrightness(theme); got != BrightnessDark {
			t.Errorf("Expected ThemeBrightness(%q) to be %q, got %q", theme, BrightnessDark, got)
		}
	}

	// kata kunci terang
	lightThemes := []string{"light", "Clair", "blanc casse", "JAUNE", "pastel dream", "rose tendre"}
	for _, theme := range lightThemes {
		if got := ThemeBrightness(theme); got != BrightnessLight {
			t.Errorf("Expected ThemeBrightness(%q) to be %q, got %q", theme, BrightnessLight, got)
		}
	}
}

func TestThemeBrightnessDarkWinsOverLight(t *testing.T) {
	// tema yang memuat kata kunci gelap DAN terang harus gelap
	mixed := []string{"dark light", "bleu clair", "navy pastel", "blanc nuit"}
	for _, theme := range mixed {
		if got := ThemeBrightness(theme); got != BrightnessDark {
			t.Errorf("Expected ThemeBrightness(%q) to be %q (dark wins), got %q", theme, BrightnessDark, got)
		}
	}
}

func TestThemeBrightnessDefaultsToDark(t *testing.T) {
	unknown := []string{"", "vert", "emerald", "sunset orange"}
	for _, theme := range unknown {
		if got := ThemeBrightness(theme); got != BrightnessDark {
			t.Errorf("Expected ThemeBrightness(%q) to default to %q, got %q", theme, BrightnessDark, got)
		}
	}
}

func TestEffectiveChapterCountPrefersNested(t *testing.T) {
	m := &model.FormationModel{
		FormationChapterCount: 9,
		Chapters: []model.FormationChapterModel{
			{FormationChapterTitle: "Bab 1"},
			{FormationChapterTitle: "Bab 2"},
			{FormationChapterTitle: "Bab 3"},
		},
	}

	if got := EffectiveChapterCount(m); got != 3 {
		t.Errorf("Expected EffectiveChapterCount to be 3 (nested wins), got %d", got)
	}
}

func TestEffectiveChapterCountFallsBackToDenormalized(t *testing.T) {
	m := &model.FormationModel{FormationChapterCount: 7}

	if got := EffectiveChapterCount(m); got != 7 {
		t.Errorf("Expected EffectiveChapterCount to be 7 (denormalized), got %d", got)
	}
}

func TestEffectiveQuizCountSumsNestedQuizzes(t *testing.T) {
	m := &model.FormationModel{
		FormationQuizCount: 99,
		Chapters: []model.FormationChapterModel{
			{Quizzes: []model.FormationChapterQuizModel{{}, {}}},
			{Quizzes: []model.FormationChapterQuizModel{{}}},
			{Quizzes: nil},
		},
	}

	if got := EffectiveQuizCount(m); got != 3 {
		t.Errorf("Expected EffectiveQuizCount to be 3 (sum of nested), got %d", got)
	}
}

func TestEffectiveQuizCountFallsBackToDenormalized(t *testing.T) {
	m := &model.FormationModel{FormationQuizCount: 12}

	if got := EffectiveQuizCount(m); got != 12 {
		t.Errorf("Expected EffectiveQuizCount to be 12 (denormalized), got %d", got)
	}
}

func TestCoverURL(t *testing.T) {
	url := "https://cdn.example.com/kursus/cover.webp"
	m := &model.FormationModel{FormationCoverURL: &url}

	if got := CoverURL(m); got != url {
		t.Errorf("Expected CoverURL to be %q, got %q", url, got)
	}

	// tanpa cover → kosong, klien pakai placeholder
	empty := &model.FormationModel{}
	if got := CoverURL(empty); got != "" {
		t.Errorf("Expected CoverURL to be empty, got %q", got)
	}
}

func TestFromFormationModelDerivedBlock(t *testing.T) {
	price := 29.5
	cover := "https://cdn.example.com/kursus/go.webp"
	m := &model.FormationModel{
		FormationTitle:        "Go dari Nol",
		FormationTheme:        "bleu nuit",
		FormationPrice:        &price,
		FormationCoverURL:     &cover,
		FormationChapterCount: 4,
		FormationQuizCount:    10,
	}

	resp := FromFormationModel(m, false, nil)

	if resp.FormationThemeBrightness != BrightnessDark {
		t.Errorf("Expected FormationThemeBrightness to be %q, got %q", BrightnessDark, resp.FormationThemeBrightness)
	}
	if resp.EffectiveChapterCount != 4 {
		t.Errorf("Expected EffectiveChapterCount to be 4, got %d", resp.EffectiveChapterCount)
	}
	if resp.EffectiveQuizCount != 10 {
		t.Errorf("Expected EffectiveQuizCount to be 10, got %d", resp.EffectiveQuizCount)
	}
	if resp.FormationCoverURL != cover {
		t.Errorf("Expected FormationCoverURL to be %q, got %q", cover, resp.FormationCoverURL)
	}
	if resp.IsPurchased != nil {
		t.Errorf("Expected IsPurchased to be nil for anonymous, got %v", *resp.IsPurchased)
	}
}
