// file: internals/features/payment/checkout/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/payment/checkout/controller"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

// PaymentRoutes mendaftarkan endpoint pembayaran Midtrans.
//
// Webhook notifikasi harus tetap publik (path-nya ada di skip list
// AuthMiddleware); keasliannya diverifikasi lewat signature_key.
func PaymentRoutes(app *fiber.App, db *gorm.DB) {
	paymentController := controller.NewPaymentController(db)

	// webhook dari Midtrans, tanpa auth
	app.Post("/api/payments/notification", paymentController.MidtransWebhook)

	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	user.Post("/formations/:id/checkout", paymentController.Checkout)
	user.Get("/payments", paymentController.GetMyPayments)
}
