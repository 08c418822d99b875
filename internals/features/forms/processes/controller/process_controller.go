package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	categoryModel "formshub_backend/internals/features/forms/categories/model"
	formModel "formshub_backend/internals/features/forms/forms/model"
	"formshub_backend/internals/features/forms/processes/dto"
	"formshub_backend/internals/features/forms/processes/model"
	sessionModel "formshub_backend/internals/features/forms/submissions/model"
	helper "formshub_backend/internals/helpers"
	helperAuth "formshub_backend/internals/helpers/auth"
)

var validateProcess = validator.New()

type ProcessController struct {
	DB *gorm.DB
}

func NewProcessController(db *gorm.DB) *ProcessController {
	return &ProcessController{DB: db}
}

// =============================
// 📄 List process (publik atau milik sendiri)
// =============================
func (ctrl *ProcessController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	params := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	orderClause, err := params.SafeOrderClause(map[string]string{
		"created_at": "process_created_at",
		"name":       "process_name",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter sort tidak valid")
	}

	q := ctrl.DB.WithContext(c.Context()).Model(&model.ProcessModel{})
	if !helper.IsAdmin(c) {
		q = q.Where("process_is_public = ? OR process_creator_id = ?", true, userID)
	}
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("process_name LIKE ?", like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung process")
	}

	var processes []model.ProcessModel
	if err := q.Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Offset(params.Offset()).Limit(params.Limit()).
		Find(&processes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil process")
	}

	items := make([]dto.ProcessDetailDTO, 0, len(processes))
	for _, p := range processes {
		items = append(items, dto.ToProcessDetailDTO(p))
	}
	return helper.JsonList(c, "Daftar process", items, helper.BuildPaginationFromOffset(total, params.Offset(), params.Limit()))
}

// =============================
// ➕ Build process + form set (satu transaksi)
// =============================
func (ctrl *ProcessController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BuildProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateProcess.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.ensureCategoryOwned(c, req.CategoryID, userID); err != nil {
		return err
	}
	if err := ctrl.ensureFormsUsable(c, req.Forms, userID); err != nil {
		return err
	}

	processType := req.ProcessType
	if processType == "" {
		processType = model.ProcessTypeLinear
	}

	process := model.ProcessModel{
		ProcessName:        req.Name,
		ProcessDescription: req.Description,
		ProcessCreatorID:   userID,
		ProcessCategoryID:  req.CategoryID,
		ProcessIsPublic:    req.IsPublic,
		ProcessType:        processType,
	}
	if req.AccessPassword != nil && *req.AccessPassword != "" {
		hash, herr := bcrypt.GenerateFromPassword([]byte(*req.AccessPassword), bcrypt.DefaultCost)
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengamankan password akses")
		}
		h := string(hash)
		process.ProcessAccessPasswordHash = &h
	}

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&process).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat process")
		}
		if len(req.Forms) > 0 {
			links := buildProcessForms(process.ProcessID, req.Forms)
			if err := tx.Create(&links).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusConflict, "Form yang sama dipasang dua kali di process ini")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memasang form ke process")
			}
			process.Forms = links
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Process berhasil dibuat", dto.ToProcessDetailDTO(process))
}

// =============================
// 🔍 Detail process + form terurut
// =============================
func (ctrl *ProcessController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	process, err := ctrl.findViewable(c, userID, helper.IsAdmin(c), true)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail process", dto.ToProcessDetailDTO(*process))
}

// =============================
// 👋 Welcome page (sebelum responden mulai)
// =============================
func (ctrl *ProcessController) Welcome(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	process, err := ctrl.findViewable(c, userID, helper.IsAdmin(c), false)
	if err != nil {
		return err
	}

	var totalForms int64
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&model.ProcessFormModel{}).
		Where("process_form_process_id = ?", process.ProcessID).
		Count(&totalForms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung form")
	}

	return helper.JsonOK(c, "Welcome page", dto.ProcessWelcomeDTO{
		ProcessID:   process.ProcessID,
		Title:       process.ProcessName,
		Description: process.ProcessDescription,
		ProcessType: process.ProcessType,
		TotalForms:  totalForms,
	})
}

// =============================
// 🏁 End page (setelah submit)
// =============================
func (ctrl *ProcessController) End(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	process, err := ctrl.findViewable(c, userID, helper.IsAdmin(c), false)
	if err != nil {
		return err
	}

	var totalSubmissions int64
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&sessionModel.ResponseSessionModel{}).
		Where("response_session_process_id = ? AND response_session_status = ?",
			process.ProcessID, sessionModel.SessionStatusSubmitted).
		Count(&totalSubmissions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung submission")
	}

	return helper.JsonOK(c, "End page", dto.ProcessEndDTO{
		ProcessID:        process.ProcessID,
		Title:            process.ProcessName,
		Description:      process.ProcessDescription,
		TotalSubmissions: totalSubmissions,
	})
}

// =============================
// ✏️ Update settings (owner/admin)
// =============================
func (ctrl *ProcessController) UpdateSettings(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	process, err := ctrl.findOwned(c, userID, helper.IsAdmin(c))
	if err != nil {
		return err
	}

	var req dto.UpdateProcessSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateProcess.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.CategoryID != nil {
		if err := ctrl.ensureCategoryOwned(c, req.CategoryID, userID); err != nil {
			return err
		}
		process.ProcessCategoryID = req.CategoryID
	}
	if req.Name != nil {
		process.ProcessName = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		process.ProcessDescription = req.Description
	}
	if req.IsPublic != nil {
		process.ProcessIsPublic = *req.IsPublic
	}
	if req.ProcessType != nil {
		process.ProcessType = *req.ProcessType
	}
	if req.AccessPassword != nil {
		if *req.AccessPassword == "" {
			process.ProcessAccessPasswordHash = nil
		} else {
			hash, herr := bcrypt.GenerateFromPassword([]byte(*req.AccessPassword), bcrypt.DefaultCost)
			if herr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengamankan password akses")
			}
			h := string(hash)
			process.ProcessAccessPasswordHash = &h
		}
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(process).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui process")
	}
	return helper.JsonUpdated(c, "Process berhasil diperbarui", dto.ToProcessDetailDTO(*process))
}

// =============================
// 🔁 Replace form set (hapus semua lalu pasang ulang, satu transaksi)
// =============================
func (ctrl *ProcessController) ReplaceForms(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	process, err := ctrl.findOwned(c, userID, helper.IsAdmin(c))
	if err != nil {
		return err
	}

	var req dto.ReplaceProcessFormsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateProcess.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ctrl.ensureFormsUsable(c, req.Forms, userID); err != nil {
		return err
	}

	var links []model.ProcessFormModel
	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("process_form_process_id = ?", process.ProcessID).
			Delete(&model.ProcessFormModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal melepas form lama")
		}
		links = buildProcessForms(process.ProcessID, req.Forms)
		if err := tx.Create(&links).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Form yang sama dipasang dua kali di process ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memasang form ke process")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	process.Forms = links
	return helper.JsonUpdated(c, "Form set process berhasil diganti", dto.ToProcessDetailDTO(*process))
}

// =============================
// ❌ Delete process
// =============================
func (ctrl *ProcessController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	process, err := ctrl.findOwned(c, userID, helper.IsAdmin(c))
	if err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("process_form_process_id = ?", process.ProcessID).
			Delete(&model.ProcessFormModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal melepas form process")
		}
		if err := tx.Delete(process).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus process")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Process berhasil dihapus", fiber.Map{"process_id": process.ProcessID})
}

/* ===================== internal ===================== */

func buildProcessForms(processID uint, inputs []dto.ProcessFormInput) []model.ProcessFormModel {
	links := make([]model.ProcessFormModel, 0, len(inputs))
	for i, in := range inputs {
		order := in.OrderIndex
		if order == 0 {
			order = i
		}
		links = append(links, model.ProcessFormModel{
			ProcessFormProcessID:  processID,
			ProcessFormFormID:     in.FormID,
			ProcessFormOrderIndex: order,
		})
	}
	return links
}

func parseProcessID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID process tidak valid")
	}
	return uint(id), nil
}

// findViewable: publik boleh dilihat siapa pun; privat milik orang lain tampak
// tidak ada (404)
func (ctrl *ProcessController) findViewable(c *fiber.Ctx, userID uuid.UUID, isAdmin, withForms bool) (*model.ProcessModel, error) {
	id, err := parseProcessID(c)
	if err != nil {
		return nil, err
	}

	q := ctrl.DB.WithContext(c.Context()).Where("process_id = ?", id)
	if withForms {
		q = q.Preload("Forms", func(db *gorm.DB) *gorm.DB {
			return db.Order("process_form_order_index ASC")
		}).Preload("Forms.Form").Preload("Forms.Form.Question")
	}

	var process model.ProcessModel
	if err := q.First(&process).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Process tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil process")
	}
	if !helperAuth.CanView(userID, process.ProcessCreatorID, process.ProcessIsPublic, isAdmin) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Process tidak ditemukan")
	}
	return &process, nil
}

// findOwned: untuk mutasi — hanya owner/admin, selain itu 404
func (ctrl *ProcessController) findOwned(c *fiber.Ctx, userID uuid.UUID, isAdmin bool) (*model.ProcessModel, error) {
	id, err := parseProcessID(c)
	if err != nil {
		return nil, err
	}

	var process model.ProcessModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("process_id = ?", id).First(&process).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Process tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil process")
	}
	if !helperAuth.CanModify(userID, process.ProcessCreatorID, isAdmin) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Process tidak ditemukan")
	}
	return &process, nil
}

func (ctrl *ProcessController) ensureCategoryOwned(c *fiber.Ctx, categoryID *uint, userID uuid.UUID) error {
	if categoryID == nil || helper.IsAdmin(c) {
		return nil
	}
	var count int64
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&categoryModel.CategoryModel{}).
		Where("category_id = ? AND category_owner_id = ?", *categoryID, userID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kategori")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kategori ini bukan milik Anda")
	}
	return nil
}

// ensureFormsUsable: form yang dipasang harus milik user atau publik
func (ctrl *ProcessController) ensureFormsUsable(c *fiber.Ctx, inputs []dto.ProcessFormInput, userID uuid.UUID) error {
	if len(inputs) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.FormID)
	}

	var forms []formModel.FormModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("form_id IN ?", ids).Find(&forms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa form")
	}

	isAdmin := helper.IsAdmin(c)
	usable := make(map[uint]bool, len(forms))
	for _, f := range forms {
		usable[f.FormID] = isAdmin || f.FormIsPublic || f.FormCreatorID == userID
	}
	for _, in := range inputs {
		ok, found := usable[in.FormID]
		if !found {
			return helper.JsonError(c, fiber.StatusBadRequest,
				"Form #"+strconv.FormatUint(uint64(in.FormID), 10)+" tidak ditemukan")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest,
				"Form #"+strconv.FormatUint(uint64(in.FormID), 10)+" tidak dapat dipakai")
		}
	}
	return nil
}
