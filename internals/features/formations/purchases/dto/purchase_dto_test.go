package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	formationModel "kursusku_backend/internals/features/formations/formations/model"
	"kursusku_backend/internals/features/formations/purchases/model"
)

func TestFromPurchaseModel(t *testing.T) {
	now := time.Now()
	purchase := &model.PurchasedFormationModel{
		PurchasedFormationID:          uuid.New(),
		PurchasedFormationUserID:      uuid.New(),
		PurchasedFormationFormationID: uuid.New(),
		PurchasedFormationPrice:       49.99,
		PurchasedFormationStatus:      model.StatusActive,
		PurchasedFormationCreatedAt:   now,
	}

	resp := FromPurchaseModel(purchase, nil)

	if resp.PurchasedFormationID != purchase.PurchasedFormationID {
		t.Errorf("Expected id %v, got %v", purchase.PurchasedFormationID, resp.PurchasedFormationID)
	}
	if resp.PurchasedFormationPrice != 49.99 {
		t.Errorf("Expected price 49.99, got %v", resp.PurchasedFormationPrice)
	}
	if resp.PurchasedFormationStatus != model.StatusActive {
		t.Errorf("Expected status %q, got %q", model.StatusActive, resp.PurchasedFormationStatus)
	}
	if resp.Formation != nil {
		t.Errorf("Expected no formation summary, got %v", resp.Formation)
	}
}

func TestFromPurchaseModelWithFormationSummary(t *testing.T) {
	cover := "https://cdn.example.com/kursus/cover.webp"
	price := 29.5
	formation := &formationModel.FormationModel{
		FormationID:          uuid.New(),
		FormationTitle:       "Go dari Nol",
		FormationSlug:        "go-dari-nol",
		FormationTheme:       "bleu nuit",
		FormationCoverURL:    &cover,
		FormationCertificate: true,
		FormationPrice:       &price,
	}
	purchase := &model.PurchasedFormationModel{
		PurchasedFormationID:          uuid.New(),
		PurchasedFormationFormationID: formation.FormationID,
		PurchasedFormationPrice:       price,
		PurchasedFormationStatus:      model.StatusActive,
	}

	resp := FromPurchaseModel(purchase, formation)

	if resp.Formation == nil {
		t.Fatalf("Expected formation summary to be present")
	}
	if resp.Formation.FormationTitle != "Go dari Nol" {
		t.Errorf("Expected title %q, got %q", "Go dari Nol", resp.Formation.FormationTitle)
	}
	if resp.Formation.FormationCoverURL != cover {
		t.Errorf("Expected cover %q, got %q", cover, resp.Formation.FormationCoverURL)
	}
	if resp.Formation.FormationPrice == nil || *resp.Formation.FormationPrice != 29.5 {
		t.Errorf("Expected price 29.5, got %v", resp.Formation.FormationPrice)
	}
}
