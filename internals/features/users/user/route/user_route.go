// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/user/controller"
)

// UserAdminRoutes mendaftarkan endpoint manajemen user.
// Dipasang di group admin (/api/a) yang sudah dibungkus auth + cek role.
func UserAdminRoutes(api fiber.Router, db *gorm.DB) {
	userController := controller.NewUserController(db)

	users := api.Group("/users")
	users.Get("/", userController.GetUsers)
	users.Get("/:id", userController.GetUserByID)
	users.Patch("/:id/active", userController.UpdateUserActive)
	users.Patch("/:id/role", userController.UpdateUserRole)
}
