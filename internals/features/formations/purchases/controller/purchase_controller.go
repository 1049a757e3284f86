// file: internals/features/formations/purchases/controller/purchase_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formationModel "kursusku_backend/internals/features/formations/formations/model"
	"kursusku_backend/internals/features/formations/purchases/dto"
	"kursusku_backend/internals/features/formations/purchases/model"
	"kursusku_backend/internals/features/formations/purchases/service"
	helper "kursusku_backend/internals/helpers"
)

type PurchaseController struct {
	DB       *gorm.DB
	Resolver *service.PurchaseResolver
	Store    service.PurchaseStore
}

func NewPurchaseController(db *gorm.DB) *PurchaseController {
	store := service.NewGormPurchaseStore(db)
	return &PurchaseController{
		DB:       db,
		Resolver: service.NewPurchaseResolver(store),
		Store:    store,
	}
}

/* =======================================================
   BELI
   ======================================================= */

// Purchase menangani POST /formations/:id/purchase.
// Auth di group ini opsional supaya pesan 401-nya spesifik.
func (pc *PurchaseController) Purchase(c *fiber.Ctx) error {
	formationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Anda harus login untuk membeli")
	}

	result, err := pc.Resolver.Purchase(c.Context(), userID, formationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMustLogin):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Anda harus login untuk membeli")
		case errors.Is(err, service.ErrPurchaseInFlight):
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Pembelian sedang diproses")
		case errors.Is(err, service.ErrAlreadyPurchased):
			return helper.JsonError(c, fiber.StatusConflict, "Formasi sudah dibeli")
		case errors.Is(err, service.ErrFormationNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		default:
			log.Printf("[PURCHASE] user=%s formation=%s gagal: %v", userID, formationID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pembelian")
		}
	}

	return helper.JsonCreated(c, "Formasi berhasil dibeli", fiber.Map{
		"purchase":    dto.FromPurchaseModel(result.Purchase, nil),
		"redirect_to": result.RedirectTo,
	})
}

// PurchaseStatus menangani GET /formations/:id/purchase-status
func (pc *PurchaseController) PurchaseStatus(c *fiber.Ctx) error {
	formationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	has, err := pc.Store.HasActivePurchase(c.Context(), userID, formationID)
	if err != nil {
		log.Printf("[PURCHASE] gagal cek status user=%s formation=%s: %v", userID, formationID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa status pembelian")
	}

	return helper.JsonOK(c, "Status pembelian ditemukan", fiber.Map{
		"formation_id": formationID,
		"is_purchased": has,
	})
}

/* =======================================================
   MILIK SAYA
   ======================================================= */

// GetMyPurchasedFormations menangani GET /purchased-formations:
// daftar pembelian active milik user, dengan ringkasan formation.
func (pc *PurchaseController) GetMyPurchasedFormations(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	base := pc.DB.WithContext(c.Context()).
		Model(&model.PurchasedFormationModel{}).
		Where("purchased_formation_user_id = ? AND purchased_formation_status = ?", userID, model.StatusActive)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[PURCHASE] gagal menghitung pembelian user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pembelian")
	}

	var purchases []model.PurchasedFormationModel
	if err := base.Order("purchased_formation_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&purchases).Error; err != nil {
		log.Printf("[PURCHASE] gagal mengambil pembelian user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pembelian")
	}

	// muat ringkasan formation sekali jalan
	formationByID := make(map[uuid.UUID]*formationModel.FormationModel, len(purchases))
	if len(purchases) > 0 {
		ids := make([]uuid.UUID, 0, len(purchases))
		for i := range purchases {
			ids = append(ids, purchases[i].PurchasedFormationFormationID)
		}
		var formations []formationModel.FormationModel
		if err := pc.DB.WithContext(c.Context()).
			Where("formation_id IN ?", ids).
			Find(&formations).Error; err != nil {
			log.Printf("[PURCHASE] gagal memuat ringkasan formation: %v", err)
		}
		for i := range formations {
			formationByID[formations[i].FormationID] = &formations[i]
		}
	}

	out := make([]dto.PurchasedFormationResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, dto.FromPurchaseModel(&purchases[i], formationByID[purchases[i].PurchasedFormationFormationID]))
	}

	return helper.JsonList(c, "Daftar pembelian berhasil diambil", out,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
