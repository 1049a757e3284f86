// file: internals/features/payment/checkout/controller/payment_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	purchaseService "kursusku_backend/internals/features/formations/purchases/service"
	"kursusku_backend/internals/features/payment/checkout/dto"
	"kursusku_backend/internals/features/payment/checkout/model"
	"kursusku_backend/internals/features/payment/checkout/service"
	helper "kursusku_backend/internals/helpers"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

/* =======================================================
   CHECKOUT
   ======================================================= */

// Checkout menangani POST /formations/:id/checkout (login wajib).
// Mengembalikan Snap token untuk dibuka di aplikasi.
func (pc *PaymentController) Checkout(c *fiber.Ctx) error {
	formationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID formation tidak valid")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// detail customer untuk halaman pembayaran
	var cust struct {
		UserName string
		Email    string
	}
	if err := pc.DB.WithContext(c.Context()).
		Table("users").
		Select("user_name, email").
		Where("id = ?", userID).
		Scan(&cust).Error; err != nil {
		log.Printf("[PAYMENT] gagal memuat user %s: %v", userID, err)
	}

	result, err := service.CreateCheckout(c.Context(), pc.DB, userID, formationID, cust.UserName, cust.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentDisabled):
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Pembayaran belum tersedia")
		case errors.Is(err, service.ErrFormationFree):
			return helper.JsonError(c, fiber.StatusBadRequest, "Formation ini gratis, langsung beli tanpa checkout")
		case errors.Is(err, purchaseService.ErrAlreadyPurchased):
			return helper.JsonError(c, fiber.StatusConflict, "Formasi sudah dibeli")
		case errors.Is(err, purchaseService.ErrFormationNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Formation tidak ditemukan")
		default:
			log.Printf("[PAYMENT] checkout user=%s formation=%s gagal: %v", userID, formationID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat transaksi pembayaran")
		}
	}

	return helper.JsonCreated(c, "Transaksi pembayaran dibuat", dto.CheckoutResponse{
		FormationPaymentID:      result.Payment.FormationPaymentID,
		FormationPaymentOrderID: result.Payment.FormationPaymentOrderID,
		FormationPaymentAmount:  result.Payment.FormationPaymentAmount,
		FormationPaymentStatus:  result.Payment.FormationPaymentStatus,
		SnapToken:               result.SnapToken,
		RedirectURL:             result.RedirectURL,
	})
}

/* =======================================================
   WEBHOOK
   ======================================================= */

// MidtransWebhook menangani POST /payments/notification.
// Tanpa auth; keaslian dicek lewat signature_key.
func (pc *PaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var notif dto.MidtransNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload notifikasi tidak valid")
	}
	if notif.OrderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id wajib diisi")
	}

	if err := service.HandleNotification(c.Context(), pc.DB, notif, c.Body()); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Notifikasi diproses", fiber.Map{
		"order_id": notif.OrderID,
	})
}

/* =======================================================
   MILIK SAYA
   ======================================================= */

// GetMyPayments menangani GET /payments: riwayat pembayaran user
func (pc *PaymentController) GetMyPayments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	base := pc.DB.WithContext(c.Context()).
		Model(&model.FormationPaymentModel{}).
		Where("formation_payment_user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		base = base.Where("formation_payment_status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[PAYMENT] gagal menghitung payment user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat pembayaran")
	}

	var items []model.FormationPaymentModel
	if err := base.Order("formation_payment_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&items).Error; err != nil {
		log.Printf("[PAYMENT] gagal mengambil payment user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat pembayaran")
	}

	return helper.JsonList(c, "Riwayat pembayaran berhasil diambil", dto.FromPaymentModels(items),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
