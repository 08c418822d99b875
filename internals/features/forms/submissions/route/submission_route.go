package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "formshub_backend/internals/features/forms/submissions/controller"
)

// SubmissionRoutes: riwayat sesi responden — Base: <api>/sessions
func SubmissionRoutes(api fiber.Router, db *gorm.DB) {
	submissionController := controller.NewSubmissionController(db)

	sessions := api.Group("/sessions")
	sessions.Get("/", submissionController.MySessions)
	sessions.Get("/:session_id", submissionController.GetSession)
}
