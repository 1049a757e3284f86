// file: internals/features/formations/purchases/dto/purchase_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	formationModel "kursusku_backend/internals/features/formations/formations/model"
	"kursusku_backend/internals/features/formations/purchases/model"
)

// FormationSummary: ringkasan formation untuk daftar pembelian
type FormationSummary struct {
	FormationID          uuid.UUID `json:"formation_id"`
	FormationTitle       string    `json:"formation_title"`
	FormationSlug        string    `json:"formation_slug"`
	FormationTheme       string    `json:"formation_theme"`
	FormationCoverURL    string    `json:"formation_cover_url,omitempty"`
	FormationCertificate bool      `json:"formation_certificate"`
	FormationPrice       *float64  `json:"formation_price,omitempty"`
}

// PurchasedFormationResponse: satu baris pembelian milik user
type PurchasedFormationResponse struct {
	PurchasedFormationID          uuid.UUID `json:"purchased_formation_id"`
	PurchasedFormationFormationID uuid.UUID `json:"purchased_formation_formation_id"`
	PurchasedFormationPrice       float64   `json:"purchased_formation_price"`
	PurchasedFormationStatus      string    `json:"purchased_formation_status"`
	PurchasedFormationCreatedAt   time.Time `json:"purchased_formation_created_at"`

	Formation *FormationSummary `json:"formation,omitempty"`
}

// FromPurchaseModel membentuk response; formation boleh nil kalau
// ringkasannya tidak dimuat.
func FromPurchaseModel(p *model.PurchasedFormationModel, f *formationModel.FormationModel) PurchasedFormationResponse {
	resp := PurchasedFormationResponse{
		PurchasedFormationID:          p.PurchasedFormationID,
		PurchasedFormationFormationID: p.PurchasedFormationFormationID,
		PurchasedFormationPrice:       p.PurchasedFormationPrice,
		PurchasedFormationStatus:      p.PurchasedFormationStatus,
		PurchasedFormationCreatedAt:   p.PurchasedFormationCreatedAt,
	}
	if f != nil {
		summary := FormationSummary{
			FormationID:          f.FormationID,
			FormationTitle:       f.FormationTitle,
			FormationSlug:        f.FormationSlug,
			FormationTheme:       f.FormationTheme,
			FormationCertificate: f.FormationCertificate,
			FormationPrice:       f.FormationPrice,
		}
		if f.FormationCoverURL != nil {
			summary.FormationCoverURL = *f.FormationCoverURL
		}
		resp.Formation = &summary
	}
	return resp
}
