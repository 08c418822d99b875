package seeds

import (
	"gorm.io/gorm"

	category "formshub_backend/internals/seeds/categories"
	user "formshub_backend/internals/seeds/users"
)

// RunAllSeeds mengisi data awal untuk development.
// Dipanggil dari main hanya saat RUN_SEEDS=true.
func RunAllSeeds(db *gorm.DB) {
	user.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	category.SeedCategoriesFromJSON(db, "internals/seeds/categories/data_categories.json")
}
