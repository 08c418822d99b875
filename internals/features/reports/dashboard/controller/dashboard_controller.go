package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formshub_backend/internals/features/reports/reports/service"
	helper "formshub_backend/internals/helpers"
)

type DashboardController struct {
	Service *service.AggregationService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: service.NewAggregationService(db)}
}

// =============================
// 🏠 Dashboard per-user (overview / visibility / statistics)
// =============================
func (ctrl *DashboardController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	dashboard, err := ctrl.Service.UserDashboard(c.Context(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Dashboard", dashboard)
}
