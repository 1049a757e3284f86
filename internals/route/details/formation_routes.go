// file: internals/route/details/formation_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	formationRoute "kursusku_backend/internals/features/formations/formations/route"
)

// FormationRoutes memasang katalog formation ke group public & admin
// yang sudah dibungkus middleware di index.
func FormationRoutes(public fiber.Router, admin fiber.Router, db *gorm.DB) {
	formationRoute.FormationPublicRoutes(public, db)
	formationRoute.FormationAdminRoutes(admin, db)
}
