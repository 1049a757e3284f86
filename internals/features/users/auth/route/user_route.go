// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/auth/controller"
	"kursusku_backend/internals/middlewares"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

// AuthRoutes mendaftarkan seluruh endpoint autentikasi di /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	api := app.Group("/api/auth")

	/* ===== Publik ===== */
	api.Get("/csrf", authController.CSRFToken)
	api.Post("/register", middlewares.RegisterRateLimiter(), authController.Register)
	api.Post("/login", middlewares.LoginRateLimiter(), authController.Login)
	api.Post("/login-google", middlewares.LoginRateLimiter(), authController.LoginGoogle)
	api.Post("/refresh-token", authController.RefreshToken)

	/* ===== Lupa password (tanpa login) ===== */
	api.Post("/forgot-password/question", authController.ForgotPasswordQuestion)
	api.Post("/forgot-password/check", authController.CheckSecurityAnswer)
	api.Post("/forgot-password/reset", authController.ResetPassword)

	/* ===== Wajib login ===== */
	protected := api.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Post("/change-password", authController.ChangePassword)
	protected.Get("/me", authController.Me)
	protected.Patch("/update-user-name", authController.UpdateUserName)
}
