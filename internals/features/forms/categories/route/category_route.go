package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "formshub_backend/internals/features/forms/categories/controller"
)

// CategoryRoutes: CRUD kategori milik user — Base: <api>/categories
func CategoryRoutes(api fiber.Router, db *gorm.DB) {
	categoryController := controller.NewCategoryController(db)

	categories := api.Group("/categories")
	categories.Get("/", categoryController.List)
	categories.Post("/", categoryController.Create)
	categories.Get("/:id", categoryController.GetByID)
	categories.Put("/:id", categoryController.Update)
	categories.Delete("/:id", categoryController.Delete)
}
