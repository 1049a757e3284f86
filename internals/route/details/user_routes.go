// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	userRoute "kursusku_backend/internals/features/users/user/route"
	rateLimiter "kursusku_backend/internals/middlewares"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api",
		rateLimiter.GlobalRateLimiter(),
	)

	// 🔐 hanya admin/owner
	adminGroup := api.Group("/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("mengelola user"), constants.AdminAndAbove),
	)
	userRoute.UserAdminRoutes(adminGroup, db)
}
