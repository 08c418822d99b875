package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportRoute "formshub_backend/internals/features/reports/reports/route"
)

// ReportRoutes memasang statistik, report snapshot, dan dashboard
func ReportRoutes(api fiber.Router, db *gorm.DB) {
	reportRoute.ReportRoutes(api, db)
}
