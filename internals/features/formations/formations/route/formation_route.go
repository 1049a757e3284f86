// file: internals/features/formations/formations/route/formation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/formations/formations/controller"
)

// FormationPublicRoutes mendaftarkan endpoint katalog publik.
// Dipasang di group /api/public yang sudah memakai SecondAuthMiddleware,
// jadi is_purchased ikut terisi untuk user login tanpa mewajibkan login.
func FormationPublicRoutes(api fiber.Router, db *gorm.DB) {
	formationController := controller.NewFormationController(db)

	formations := api.Group("/formations")
	formations.Get("/", formationController.GetFormations)
	formations.Get("/by-slug/:slug", formationController.GetFormationBySlug)
	formations.Get("/:id", formationController.GetFormationByID)
}

// FormationAdminRoutes mendaftarkan endpoint pengelolaan katalog.
// Dipasang di group /api/a (auth + cek role admin).
func FormationAdminRoutes(api fiber.Router, db *gorm.DB) {
	formationController := controller.NewFormationController(db)

	formations := api.Group("/formations")
	formations.Get("/", formationController.GetFormationsAdmin)
	formations.Post("/", formationController.CreateFormation)
	formations.Get("/:id", formationController.GetFormationAdminByID)
	formations.Patch("/:id", formationController.UpdateFormation)
	formations.Delete("/:id", formationController.DeleteFormation)
	formations.Put("/:id/cover", formationController.UploadFormationCover)

	// bab
	formations.Post("/:id/chapters", formationController.CreateChapter)
	formations.Patch("/chapters/:chapterId", formationController.UpdateChapter)
	formations.Delete("/chapters/:chapterId", formationController.DeleteChapter)

	// kuis
	formations.Post("/chapters/:chapterId/quizzes", formationController.CreateQuiz)
	formations.Patch("/quizzes/:quizId", formationController.UpdateQuiz)
	formations.Delete("/quizzes/:quizId", formationController.DeleteQuiz)
}
