// file: internals/features/payment/checkout/service/midtrans_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	purchaseService "kursusku_backend/internals/features/formations/purchases/service"
	paymentModel "kursusku_backend/internals/features/payment/checkout/model"
)

/* =======================================================
   KLIEN SNAP
   ======================================================= */

var (
	snapClient    snap.Client
	midtransReady bool
)

// InitMidtrans menyiapkan klien Snap. MIDTRANS_ENV=production untuk live,
// selain itu sandbox. Server key kosong menonaktifkan checkout.
func InitMidtrans(serverKey string) {
	if strings.TrimSpace(serverKey) == "" {
		log.Println("[PAYMENT] ⚠️ MIDTRANS_SERVER_KEY kosong; checkout dinonaktifkan")
		return
	}
	env := midtrans.Sandbox
	if strings.EqualFold(configs.GetEnv("MIDTRANS_ENV"), "production") {
		env = midtrans.Production
	}
	snapClient.New(serverKey, env)
	midtransReady = true
	log.Println("[PAYMENT] ✅ Midtrans Snap siap")
}

var (
	ErrPaymentDisabled = errors.New("pembayaran belum dikonfigurasi")
	ErrFormationFree   = errors.New("formation ini gratis")
)

// CheckoutResult membawa hasil pembuatan transaksi Snap
type CheckoutResult struct {
	Payment     *paymentModel.FormationPaymentModel
	SnapToken   string
	RedirectURL string
}

/* =======================================================
   CHECKOUT
   ======================================================= */

// CreateCheckout membuat formation_payment pending + Snap token.
// Pending yang masih hidup untuk (user, formation) dipakai ulang supaya
// tap ganda tidak menumpuk transaksi di gateway.
func CreateCheckout(ctx context.Context, db *gorm.DB, userID, formationID uuid.UUID, userName, userEmail string) (*CheckoutResult, error) {
	if !midtransReady {
		return nil, ErrPaymentDisabled
	}

	store := purchaseService.NewGormPurchaseStore(db)

	formation, err := store.FindFormation(ctx, formationID)
	if err != nil {
		return nil, err
	}
	if !formation.FormationIsPublished {
		return nil, purchaseService.ErrFormationNotFound
	}

	price := purchaseService.DefaultFormationPrice
	if formation.FormationPrice != nil {
		price = *formation.FormationPrice
	}
	if price <= 0 {
		return nil, ErrFormationFree
	}

	has, err := store.HasActivePurchase(ctx, userID, formationID)
	if err != nil {
		return nil, fmt.Errorf("cek pembelian: %w", err)
	}
	if has {
		return nil, purchaseService.ErrAlreadyPurchased
	}

	// pakai ulang pending yang belum kedaluwarsa
	var existing paymentModel.FormationPaymentModel
	errFind := db.WithContext(ctx).
		Where("formation_payment_user_id = ? AND formation_payment_formation_id = ? AND formation_payment_status = ? AND formation_payment_created_at > ?",
			userID, formationID, paymentModel.PaymentStatusPending, time.Now().Add(-pendingTTL())).
		Order("formation_payment_created_at DESC").
		First(&existing).Error
	if errFind == nil && existing.FormationPaymentSnapToken != nil {
		return &CheckoutResult{
			Payment:   &existing,
			SnapToken: *existing.FormationPaymentSnapToken,
		}, nil
	}

	// judul untuk item detail di halaman pembayaran
	var title string
	if err := db.WithContext(ctx).
		Table("formations").
		Select("formation_title").
		Where("formation_id = ?", formationID).
		Scan(&title).Error; err != nil || title == "" {
		title = "Formation"
	}

	orderID := fmt.Sprintf("KURSUS-%d-%s", time.Now().Unix(), strings.ToUpper(uuid.NewString()[:8]))
	grossAmt := int64(math.Round(price))

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmt,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: userName,
			Email: userEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    formationID.String(),
				Name:  title,
				Price: grossAmt,
				Qty:   1,
			},
		},
	}

	snapResp, errSnap := snapClient.CreateTransaction(snapReq)
	if errSnap != nil {
		log.Printf("[PAYMENT] gagal membuat transaksi Snap order=%s: %v", orderID, errSnap)
		return nil, fmt.Errorf("gagal membuat transaksi pembayaran")
	}

	payment := paymentModel.FormationPaymentModel{
		FormationPaymentUserID:      userID,
		FormationPaymentFormationID: formationID,
		FormationPaymentAmount:      price,
		FormationPaymentOrderID:     orderID,
		FormationPaymentStatus:      paymentModel.PaymentStatusPending,
		FormationPaymentSnapToken:   &snapResp.Token,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		log.Printf("[PAYMENT] gagal menyimpan payment order=%s: %v", orderID, err)
		return nil, fmt.Errorf("gagal menyimpan pembayaran")
	}

	return &CheckoutResult{
		Payment:     &payment,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

// pendingTTL membaca PAYMENT_PENDING_TTL_HOURS (default 24 jam)
func pendingTTL() time.Duration {
	if v := configs.GetEnv("PAYMENT_PENDING_TTL_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			return time.Duration(h) * time.Hour
		}
	}
	return 24 * time.Hour
}

/* =======================================================
   SCHEDULER: EXPIRE PENDING
   ======================================================= */

// StartPendingPaymentExpiryScheduler menandai payment pending yang melewati
// TTL sebagai expired. Jalan tiap 30 menit.
func StartPendingPaymentExpiryScheduler(db *gorm.DB) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := c.AddFunc("*/30 * * * *", func() {
		cutoff := time.Now().Add(-pendingTTL())
		res := db.Model(&paymentModel.FormationPaymentModel{}).
			Where("formation_payment_status = ? AND formation_payment_created_at < ?",
				paymentModel.PaymentStatusPending, cutoff).
			Update("formation_payment_status", paymentModel.PaymentStatusExpired)
		if res.Error != nil {
			log.Printf("[PAYMENT] gagal expire payment pending: %v", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("[PAYMENT] %d payment pending kedaluwarsa", res.RowsAffected)
		}
	})
	if err != nil {
		log.Printf("[PAYMENT] gagal mendaftarkan scheduler expire: %v", err)
		return
	}

	c.Start()
	log.Println("[PAYMENT] Scheduler expire payment pending aktif (tiap 30 menit)")
}
