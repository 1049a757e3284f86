// file: internals/route/details/purchase_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	purchaseRoute "kursusku_backend/internals/features/formations/purchases/route"
)

func PurchaseRoutes(app *fiber.App, db *gorm.DB) {
	purchaseRoute.PurchasedFormationRoutes(app, db)
}
