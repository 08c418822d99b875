package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"formshub_backend/internals/features/forms/categories/dto"
	"formshub_backend/internals/features/forms/categories/model"
	helper "formshub_backend/internals/helpers"
)

var validateCategory = validator.New()

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// =============================
// 📄 List kategori milik user (search opsional ?q=)
// =============================
func (ctrl *CategoryController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.WithContext(c.Context()).
		Model(&model.CategoryModel{}).
		Where("category_owner_id = ?", userID).
		Order("category_created_at DESC")

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("category_name LIKE ? OR category_description LIKE ?", like, like)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kategori")
	}

	var categories []model.CategoryModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&categories).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}

	items := make([]dto.CategoryDTO, 0, len(categories))
	for _, cat := range categories {
		items = append(items, dto.ToCategoryDTO(cat))
	}
	return helper.JsonList(c, "Daftar kategori", items, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// ➕ Create kategori
// =============================
func (ctrl *CategoryController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateCategory.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	category := dto.ToCategoryModel(req, userID)
	if err := ctrl.DB.WithContext(c.Context()).Create(&category).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kategori")
	}
	return helper.JsonCreated(c, "Kategori berhasil dibuat", dto.ToCategoryDTO(category))
}

// =============================
// 🔍 Detail kategori (owner atau admin)
// =============================
func (ctrl *CategoryController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	category, err := ctrl.findOwned(c, userID, helper.IsAdmin(c))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail kategori", dto.ToCategoryDTO(*category))
}

// =============================
// ✏️ Update kategori
// =============================
func (ctrl *CategoryController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	category, err := ctrl.findOwned(c, userID, helper.IsAdmin(c))
	if err != nil {
		return err
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validateCategory.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Name != nil {
		category.CategoryName = *req.Name
	}
	if req.Description != nil {
		category.CategoryDescription = req.Description
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(category).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kategori")
	}
	return helper.JsonUpdated(c, "Kategori berhasil diperbarui", dto.ToCategoryDTO(*category))
}

// =============================
// ❌ Delete kategori (form/process yang memakai akan ter-set NULL)
// =============================
func (ctrl *CategoryController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	category, err := ctrl.findOwned(c, userID, helper.IsAdmin(c))
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.Context()).Delete(category).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kategori")
	}
	return helper.JsonDeleted(c, "Kategori berhasil dihapus", fiber.Map{"category_id": category.CategoryID})
}

// findOwned: kategori milik orang lain tampak tidak ada (404)
func (ctrl *CategoryController) findOwned(c *fiber.Ctx, userID uuid.UUID, isAdmin bool) (*model.CategoryModel, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID kategori tidak valid")
	}

	q := ctrl.DB.WithContext(c.Context()).Where("category_id = ?", uint(id))
	if !isAdmin {
		q = q.Where("category_owner_id = ?", userID)
	}

	var category model.CategoryModel
	if err := q.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}
	return &category, nil
}
