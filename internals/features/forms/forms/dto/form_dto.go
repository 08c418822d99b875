package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"formshub_backend/internals/features/forms/forms/model"
)

// =============================
// 📥 Request DTO (Create / Update, question inline one-to-one)
// =============================
type QuestionInlineRequest struct {
	QuestionText string         `json:"question_text" validate:"required"`
	QuestionInfo datatypes.JSON `json:"question_info" validate:"required"`
	IsRequired   bool           `json:"is_required"`
	OrderIndex   int            `json:"order_index" validate:"omitempty,min=0"`
}

type CreateFormRequest struct {
	Title          string                 `json:"title" validate:"required,max=255"`
	Description    *string                `json:"description"`
	CategoryID     *uint                  `json:"category_id"`
	IsPublic       bool                   `json:"is_public"`
	AccessPassword *string                `json:"access_password" validate:"omitempty,max=72"`
	Question       *QuestionInlineRequest `json:"question"`
}

type UpdateFormRequest struct {
	Title          *string                `json:"title" validate:"omitempty,max=255"`
	Description    *string                `json:"description"`
	CategoryID     *uint                  `json:"category_id"`
	IsPublic       *bool                  `json:"is_public"`
	AccessPassword *string                `json:"access_password" validate:"omitempty,max=72"`
	Question       *QuestionInlineRequest `json:"question"`
}

// =============================
// 📤 Response DTO
// =============================
type QuestionDTO struct {
	QuestionID   uint           `json:"question_id"`
	QuestionText string         `json:"question_text"`
	QuestionInfo datatypes.JSON `json:"question_info"`
	IsRequired   bool           `json:"is_required"`
	OrderIndex   int            `json:"order_index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type FormDTO struct {
	FormID      uint         `json:"form_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	CreatorID   uuid.UUID    `json:"creator_id"`
	CategoryID  *uint        `json:"category_id,omitempty"`
	IsPublic    bool         `json:"is_public"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Question    *QuestionDTO `json:"question,omitempty"`
}

type FormListItemDTO struct {
	FormID     uint      `json:"form_id"`
	Title      string    `json:"title"`
	CategoryID *uint     `json:"category_id,omitempty"`
	IsPublic   bool      `json:"is_public"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// =============================
// 🔁 Converters
// =============================
func ToQuestionDTO(m model.QuestionModel) QuestionDTO {
	return QuestionDTO{
		QuestionID:   m.QuestionID,
		QuestionText: m.QuestionText,
		QuestionInfo: m.QuestionInfo,
		IsRequired:   m.QuestionIsRequired,
		OrderIndex:   m.QuestionOrderIndex,
		CreatedAt:    m.QuestionCreatedAt,
		UpdatedAt:    m.QuestionUpdatedAt,
	}
}

func ToFormDTO(m model.FormModel) FormDTO {
	out := FormDTO{
		FormID:      m.FormID,
		Title:       m.FormTitle,
		Description: m.FormDescription,
		CreatorID:   m.FormCreatorID,
		CategoryID:  m.FormCategoryID,
		IsPublic:    m.FormIsPublic,
		CreatedAt:   m.FormCreatedAt,
		UpdatedAt:   m.FormUpdatedAt,
	}
	if m.Question != nil {
		q := ToQuestionDTO(*m.Question)
		out.Question = &q
	}
	return out
}

func ToFormListItemDTO(m model.FormModel) FormListItemDTO {
	return FormListItemDTO{
		FormID:     m.FormID,
		Title:      m.FormTitle,
		CategoryID: m.FormCategoryID,
		IsPublic:   m.FormIsPublic,
		CreatedAt:  m.FormCreatedAt,
		UpdatedAt:  m.FormUpdatedAt,
	}
}
