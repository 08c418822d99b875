package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "formshub_backend/internals/features/forms/processes/controller"
	submissionController "formshub_backend/internals/features/forms/submissions/controller"
)

// ProcessRoutes: proses + halaman welcome/end + submit — Base: <api>/processes
func ProcessRoutes(api fiber.Router, db *gorm.DB) {
	processController := controller.NewProcessController(db)
	submitController := submissionController.NewSubmissionController(db)

	processes := api.Group("/processes")
	processes.Get("/", processController.List)
	processes.Post("/", processController.Create)
	processes.Get("/:id", processController.GetByID)
	processes.Patch("/:id", processController.UpdateSettings)
	processes.Put("/:id/forms", processController.ReplaceForms)
	processes.Delete("/:id", processController.Delete)

	processes.Get("/:id/welcome", processController.Welcome)
	processes.Get("/:id/end", processController.End)

	// submit seluruh jawaban process (atomik)
	processes.Post("/:id/submit", submitController.Submit)
}
