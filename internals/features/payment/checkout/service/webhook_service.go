// file: internals/features/payment/checkout/service/webhook_service.go
package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	purchaseModel "kursusku_backend/internals/features/formations/purchases/model"
	purchaseService "kursusku_backend/internals/features/formations/purchases/service"
	"kursusku_backend/internals/features/payment/checkout/dto"
	paymentModel "kursusku_backend/internals/features/payment/checkout/model"
)

/* =======================================================
   VERIFIKASI & MAPPING STATUS
   ======================================================= */

// VerifySignatureKey mencocokkan signature webhook Midtrans:
// sha512(order_id + status_code + gross_amount + server_key)
func VerifySignatureKey(orderID, statusCode, grossAmount, signatureKey, serverKey string) bool {
	if signatureKey == "" || serverKey == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:]) == strings.ToLower(strings.TrimSpace(signatureKey))
}

// MapTransactionStatus memetakan transaction_status (+fraud_status) Midtrans
// ke status internal formation_payments.
func MapTransactionStatus(transactionStatus, fraudStatus string) string {
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case "capture":
		switch strings.ToLower(strings.TrimSpace(fraudStatus)) {
		case "accept":
			return paymentModel.PaymentStatusPaid
		case "challenge":
			return paymentModel.PaymentStatusPending
		default:
			return paymentModel.PaymentStatusFailed
		}
	case "settlement":
		return paymentModel.PaymentStatusPaid
	case "pending":
		return paymentModel.PaymentStatusPending
	case "deny":
		return paymentModel.PaymentStatusFailed
	case "cancel":
		return paymentModel.PaymentStatusCanceled
	case "expire":
		return paymentModel.PaymentStatusExpired
	case "refund", "partial_refund", "chargeback":
		return paymentModel.PaymentStatusCanceled
	default:
		return paymentModel.PaymentStatusPending
	}
}

// status terminal tidak boleh diturunkan oleh notifikasi yang datang terlambat
func isTerminalStatus(status string) bool {
	switch status {
	case paymentModel.PaymentStatusPaid,
		paymentModel.PaymentStatusCanceled,
		paymentModel.PaymentStatusExpired:
		return true
	}
	return false
}

/* =======================================================
   HANDLE NOTIFICATION
   ======================================================= */

// HandleNotification memproses webhook Midtrans: verifikasi signature,
// update status payment, dan saat paid membuat purchased_formation aktif
// (idempotent terhadap retry notifikasi).
func HandleNotification(ctx context.Context, db *gorm.DB, notif dto.MidtransNotification, rawBody []byte) error {
	serverKey := configs.GetEnv("MIDTRANS_SERVER_KEY")
	if !VerifySignatureKey(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey, serverKey) {
		return fiber.NewError(fiber.StatusUnauthorized, "Signature tidak valid")
	}

	var payment paymentModel.FormationPaymentModel
	if err := db.WithContext(ctx).
		Where("formation_payment_order_id = ?", notif.OrderID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Order tidak ditemukan")
		}
		return err
	}

	newStatus := MapTransactionStatus(notif.TransactionStatus, notif.FraudStatus)

	// retry dengan status sama, atau notifikasi telat pada status terminal
	if payment.FormationPaymentStatus == newStatus {
		return nil
	}
	if isTerminalStatus(payment.FormationPaymentStatus) {
		log.Printf("[PAYMENT] abaikan notifikasi %s untuk order=%s (status sudah %s)",
			newStatus, notif.OrderID, payment.FormationPaymentStatus)
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"formation_payment_status": newStatus,
		}
		if len(rawBody) > 0 {
			updates["formation_payment_meta"] = datatypes.JSON(rawBody)
		}

		if newStatus == paymentModel.PaymentStatusPaid && payment.FormationPaymentPurchaseID == nil {
			resolver := purchaseService.NewPurchaseResolver(purchaseService.NewGormPurchaseStore(tx))
			rec, err := resolver.GrantPurchase(ctx, payment.FormationPaymentUserID, payment.FormationPaymentFormationID, payment.FormationPaymentAmount)
			switch {
			case err == nil:
				updates["formation_payment_purchase_id"] = rec.PurchasedFormationID
			case errors.Is(err, purchaseService.ErrAlreadyPurchased):
				// sudah ada pembelian aktif; link ke baris yang ada
				var existing purchaseModel.PurchasedFormationModel
				if errFind := tx.
					Where("purchased_formation_user_id = ? AND purchased_formation_formation_id = ? AND purchased_formation_status = ?",
						payment.FormationPaymentUserID, payment.FormationPaymentFormationID, purchaseModel.StatusActive).
					First(&existing).Error; errFind == nil {
					updates["formation_payment_purchase_id"] = existing.PurchasedFormationID
				}
			default:
				return err
			}
		}

		return tx.Model(&paymentModel.FormationPaymentModel{}).
			Where("formation_payment_order_id = ?", notif.OrderID).
			Updates(updates).Error
	})
}
