package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardController "formshub_backend/internals/features/reports/dashboard/controller"
	controller "formshub_backend/internals/features/reports/reports/controller"
)

// ReportRoutes: statistik & report per process + dashboard user
func ReportRoutes(api fiber.Router, db *gorm.DB) {
	reportController := controller.NewReportController(db)
	dashController := dashboardController.NewDashboardController(db)

	processes := api.Group("/processes")
	processes.Get("/:id/stats", reportController.ProcessStats)
	processes.Get("/:id/reports", reportController.List)
	processes.Post("/:id/reports", reportController.Generate)

	api.Get("/reports/:report_id", reportController.GetByID)
	api.Get("/dashboard", dashController.Me)
}
