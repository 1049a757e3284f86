// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
	routeDetails "kursusku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH / USER BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → JWT opsional; kalau login, is_purchased ikut terisi
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public",
		authMiddleware.SecondAuthMiddleware(db),
	)

	// ADMIN → wajib login + role admin ke atas
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("mengelola formation"), constants.AdminAndAbove),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Formation routes...")
	routeDetails.FormationRoutes(public, admin, db)

	log.Println("[INFO] Mounting Purchase routes...")
	routeDetails.PurchaseRoutes(app, db)

	log.Println("[INFO] Mounting Payment routes...")
	routeDetails.PaymentRoutes(app, db)
}
