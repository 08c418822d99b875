package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formshub_backend/internals/features/reports/reports/dto"
	"formshub_backend/internals/features/reports/reports/service"
	helper "formshub_backend/internals/helpers"
)

var validateReport = validator.New()

type ReportController struct {
	Service *service.AggregationService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Service: service.NewAggregationService(db)}
}

func parseReportProcessID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, helper.JsonError(c, fiber.StatusBadRequest, "ID process tidak valid")
	}
	return uint(id), nil
}

// =============================
// 📊 Statistik live satu process (owner/admin)
// =============================
func (ctrl *ReportController) ProcessStats(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	processID, err := parseReportProcessID(c)
	if err != nil {
		return err
	}

	if err := ctrl.Service.EnsureProcessOwned(c.Context(), userID, helper.IsAdmin(c), processID); err != nil {
		return helper.FromFiberError(c, err)
	}

	stats, err := ctrl.Service.ProcessStats(c.Context(), processID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Statistik process", stats)
}

// =============================
// 🧾 Generate report (snapshot write-once)
// =============================
func (ctrl *ReportController) Generate(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	processID, err := parseReportProcessID(c)
	if err != nil {
		return err
	}

	var req dto.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateReport.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	report, err := ctrl.Service.GenerateReport(c.Context(), userID, helper.IsAdmin(c), processID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Report berhasil dibuat", report)
}

// =============================
// 🔍 Detail satu report
// =============================
func (ctrl *ReportController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	reportID, err := strconv.ParseUint(c.Params("report_id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID report tidak valid")
	}

	report, err := ctrl.Service.GetReport(c.Context(), userID, helper.IsAdmin(c), uint(reportID))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail report", report)
}

// =============================
// 📄 List report satu process
// =============================
func (ctrl *ReportController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	processID, err := parseReportProcessID(c)
	if err != nil {
		return err
	}

	reports, err := ctrl.Service.ListReports(c.Context(), userID, helper.IsAdmin(c), processID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar report", reports)
}
