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
	"formshub_backend/internals/features/forms/forms/dto"
	"formshub_backend/internals/features/forms/forms/model"
	helper "formshub_backend/internals/helpers"
)

var validateForm = validator.New()

type FormController struct {
	DB *gorm.DB
}

func NewFormController(db *gorm.DB) *FormController {
	return &FormController{DB: db}
}

// =============================
// 📄 List form milik user
// =============================
func (ctrl *FormController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctrl.DB.WithContext(c.Context()).
		Model(&model.FormModel{}).
		Where("form_creator_id = ?", userID).
		Order("form_created_at DESC")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung form")
	}

	var forms []model.FormModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&forms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil form")
	}

	items := make([]dto.FormListItemDTO, 0, len(forms))
	for _, f := range forms {
		items = append(items, dto.ToFormListItemDTO(f))
	}
	return helper.JsonList(c, "Daftar form", items, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// ➕ Create form (question inline, one-to-one)
// =============================
func (ctrl *FormController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateForm.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// validasi konfigurasi question SEKALI di sini — bukan per jawaban
	if req.Question != nil {
		info, perr := dto.ParseQuestionInfo(req.Question.QuestionInfo)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, perr.Error())
		}
		if cerr := info.ValidateConfig(); cerr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, cerr.Error())
		}
	}

	if err := ctrl.ensureCategoryOwned(c, req.CategoryID, userID); err != nil {
		return err
	}

	form := model.FormModel{
		FormTitle:       req.Title,
		FormDescription: req.Description,
		FormCreatorID:   userID,
		FormCategoryID:  req.CategoryID,
		FormIsPublic:    req.IsPublic,
	}
	if req.AccessPassword != nil && *req.AccessPassword != "" {
		hash, herr := bcrypt.GenerateFromPassword([]byte(*req.AccessPassword), bcrypt.DefaultCost)
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengamankan password akses")
		}
		h := string(hash)
		form.FormAccessPasswordHash = &h
	}

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&form).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat form")
		}
		if req.Question != nil {
			question := model.QuestionModel{
				QuestionFormID:     form.FormID,
				QuestionText:       req.Question.QuestionText,
				QuestionInfo:       req.Question.QuestionInfo,
				QuestionIsRequired: req.Question.IsRequired,
				QuestionOrderIndex: req.Question.OrderIndex,
			}
			if err := tx.Create(&question).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusConflict, "Form sudah memiliki question")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat question")
			}
			form.Question = &question
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Form berhasil dibuat", dto.ToFormDTO(form))
}

// =============================
// 🔍 Detail form + question (owner atau admin)
// =============================
func (ctrl *FormController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	form, err := ctrl.findOwned(c, userID, helper.IsAdmin(c), true)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail form", dto.ToFormDTO(*form))
}

// =============================
// ✏️ Update form (partial; question inline ikut di-upsert)
// =============================
func (ctrl *FormController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	form, err := ctrl.findOwned(c, userID, helper.IsAdmin(c), true)
	if err != nil {
		return err
	}

	var req dto.UpdateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateForm.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Question != nil {
		info, perr := dto.ParseQuestionInfo(req.Question.QuestionInfo)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, perr.Error())
		}
		if cerr := info.ValidateConfig(); cerr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, cerr.Error())
		}
	}
	if req.CategoryID != nil {
		if err := ctrl.ensureCategoryOwned(c, req.CategoryID, userID); err != nil {
			return err
		}
		form.FormCategoryID = req.CategoryID
	}

	if req.Title != nil {
		form.FormTitle = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		form.FormDescription = req.Description
	}
	if req.IsPublic != nil {
		form.FormIsPublic = *req.IsPublic
	}
	if req.AccessPassword != nil {
		if *req.AccessPassword == "" {
			form.FormAccessPasswordHash = nil
		} else {
			hash, herr := bcrypt.GenerateFromPassword([]byte(*req.AccessPassword), bcrypt.DefaultCost)
			if herr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengamankan password akses")
			}
			h := string(hash)
			form.FormAccessPasswordHash = &h
		}
	}

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(form).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui form")
		}
		if req.Question != nil {
			if form.Question != nil {
				form.Question.QuestionText = req.Question.QuestionText
				form.Question.QuestionInfo = req.Question.QuestionInfo
				form.Question.QuestionIsRequired = req.Question.IsRequired
				form.Question.QuestionOrderIndex = req.Question.OrderIndex
				if err := tx.Save(form.Question).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui question")
				}
			} else {
				question := model.QuestionModel{
					QuestionFormID:     form.FormID,
					QuestionText:       req.Question.QuestionText,
					QuestionInfo:       req.Question.QuestionInfo,
					QuestionIsRequired: req.Question.IsRequired,
					QuestionOrderIndex: req.Question.OrderIndex,
				}
				if err := tx.Create(&question).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat question")
				}
				form.Question = &question
			}
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Form berhasil diperbarui", dto.ToFormDTO(*form))
}

// =============================
// ❌ Delete form (question & answers ikut terhapus cascade)
// =============================
func (ctrl *FormController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	form, err := ctrl.findOwned(c, userID, helper.IsAdmin(c), false)
	if err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_form_id = ?", form.FormID).Delete(&model.QuestionModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus question")
		}
		if err := tx.Delete(form).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus form")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Form berhasil dihapus", fiber.Map{"form_id": form.FormID})
}

/* ===================== internal ===================== */

// findOwned: form milik orang lain tampak tidak ada (404)
func (ctrl *FormController) findOwned(c *fiber.Ctx, userID uuid.UUID, isAdmin bool, withQuestion bool) (*model.FormModel, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID form tidak valid")
	}

	q := ctrl.DB.WithContext(c.Context()).Where("form_id = ?", uint(id))
	if !isAdmin {
		q = q.Where("form_creator_id = ?", userID)
	}
	if withQuestion {
		q = q.Preload("Question")
	}

	var form model.FormModel
	if err := q.First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Form tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil form")
	}
	return &form, nil
}

// ensureCategoryOwned: kategori yang dipakai harus milik user (admin bebas)
func (ctrl *FormController) ensureCategoryOwned(c *fiber.Ctx, categoryID *uint, userID uuid.UUID) error {
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
