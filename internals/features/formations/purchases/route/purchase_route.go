// file: internals/features/formations/purchases/route/purchase_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/formations/purchases/controller"
	"kursusku_backend/internals/middlewares"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

// PurchasedFormationRoutes mendaftarkan endpoint pembelian.
//
// Aksi beli memakai SecondAuthMiddleware (auth opsional) supaya user anonim
// mendapat 401 "Anda harus login untuk membeli" dari controller, bukan pesan
// generik middleware.
func PurchasedFormationRoutes(app *fiber.App, db *gorm.DB) {
	purchaseController := controller.NewPurchaseController(db)

	action := app.Group("/api/u/formations", authMiddleware.SecondAuthMiddleware(db))
	action.Post("/:id/purchase", middlewares.PurchaseRateLimiter(), purchaseController.Purchase)
	action.Get("/:id/purchase-status", purchaseController.PurchaseStatus)

	mine := app.Group("/api/u/purchased-formations", authMiddleware.AuthMiddleware(db))
	mine.Get("/", purchaseController.GetMyPurchasedFormations)
}
