// file: internals/route/details/payment_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentRoute "kursusku_backend/internals/features/payment/checkout/route"
)

func PaymentRoutes(app *fiber.App, db *gorm.DB) {
	paymentRoute.PaymentRoutes(app, db)
}
