// file: internals/seeds/runner.go
package seeds

import (
	"gorm.io/gorm"

	formations "kursusku_backend/internals/seeds/formations"
	users "kursusku_backend/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {

	//* User
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")

	//* Katalog
	formations.SeedFormationsFromJSON(db, "internals/seeds/formations/data_formations.json")

}
