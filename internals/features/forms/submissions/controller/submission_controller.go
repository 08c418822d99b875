package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formshub_backend/internals/features/forms/submissions/dto"
	"formshub_backend/internals/features/forms/submissions/model"
	"formshub_backend/internals/features/forms/submissions/service"
	helper "formshub_backend/internals/helpers"
)

var validateSubmission = validator.New()

type SubmissionController struct {
	DB      *gorm.DB
	Service *service.SubmissionService
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{
		DB:      db,
		Service: service.NewSubmissionService(db),
	}
}

// =============================
// 📨 Submit seluruh jawaban process (atomik)
// =============================
func (ctrl *SubmissionController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	processID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID process tidak valid")
	}

	var req dto.SubmitProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateSubmission.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	actor := service.Actor{ID: userID, IsAdmin: helper.IsAdmin(c)}
	result, err := ctrl.Service.SubmitProcess(c.Context(), actor, uint(processID), req.Answers)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, result.Message, result)
}

// =============================
// 📄 Riwayat sesi milik responden
// =============================
func (ctrl *SubmissionController) MySessions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctrl.DB.WithContext(c.Context()).
		Model(&model.ResponseSessionModel{}).
		Where("response_session_responder_id = ?", userID).
		Order("response_session_started_at DESC")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung sesi")
	}

	var sessions []model.ResponseSessionModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return helper.JsonList(c, "Riwayat sesi", sessions, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// 🔍 Detail satu sesi + jawaban (responden sendiri atau admin)
// =============================
func (ctrl *SubmissionController) GetSession(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sessionID := c.Params("session_id")
	q := ctrl.DB.WithContext(c.Context()).
		Preload("Answers").
		Where("response_session_id = ?", sessionID)
	if !helper.IsAdmin(c) {
		q = q.Where("response_session_responder_id = ?", userID)
	}

	var session model.ResponseSessionModel
	if err := q.First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return helper.JsonOK(c, "Detail sesi", session)
}
