package dto

import (
	"time"

	"github.com/google/uuid"

	"formshub_backend/internals/features/forms/categories/model"
)

// =============================
// 📤 Response DTO
// =============================
type CategoryDTO struct {
	CategoryID  uint      `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// =============================
// 📥 Request DTO (Create / Update)
// =============================
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty"`
}

// =============================
// 🔁 Converters
// =============================
func ToCategoryDTO(m model.CategoryModel) CategoryDTO {
	return CategoryDTO{
		CategoryID:  m.CategoryID,
		Name:        m.CategoryName,
		Description: m.CategoryDescription,
		OwnerID:     m.CategoryOwnerID,
		CreatedAt:   m.CategoryCreatedAt,
		UpdatedAt:   m.CategoryUpdatedAt,
	}
}

func ToCategoryModel(req CreateCategoryRequest, ownerID uuid.UUID) model.CategoryModel {
	return model.CategoryModel{
		CategoryName:        req.Name,
		CategoryDescription: req.Description,
		CategoryOwnerID:     ownerID,
	}
}
