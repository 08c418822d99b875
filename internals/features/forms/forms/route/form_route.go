package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "formshub_backend/internals/features/forms/forms/controller"
)

// FormRoutes: CRUD form + question inline — Base: <api>/forms
func FormRoutes(api fiber.Router, db *gorm.DB) {
	formController := controller.NewFormController(db)

	forms := api.Group("/forms")
	forms.Get("/", formController.List)
	forms.Post("/", formController.Create)
	forms.Get("/:id", formController.GetByID)
	forms.Put("/:id", formController.Update)
	forms.Delete("/:id", formController.Delete)
}
