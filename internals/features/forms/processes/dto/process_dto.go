package dto

import (
	"time"

	"github.com/google/uuid"

	formDTO "formshub_backend/internals/features/forms/forms/dto"
	"formshub_backend/internals/features/forms/processes/model"
)

// =============================
// 📥 Request DTO
// =============================
type ProcessFormInput struct {
	FormID     uint `json:"form_id" validate:"required"`
	OrderIndex int  `json:"order_index" validate:"min=0"`
}

type BuildProcessRequest struct {
	Name           string             `json:"name" validate:"required,max=255"`
	Description    *string            `json:"description"`
	CategoryID     *uint              `json:"category_id"`
	IsPublic       bool               `json:"is_public"`
	AccessPassword *string            `json:"access_password" validate:"omitempty,max=72"`
	ProcessType    string             `json:"process_type" validate:"omitempty,oneof=linear free"`
	Forms          []ProcessFormInput `json:"forms" validate:"omitempty,dive"`
}

// ReplaceProcessFormsRequest mengganti seluruh form set process sekaligus
type ReplaceProcessFormsRequest struct {
	Forms []ProcessFormInput `json:"forms" validate:"required,min=1,dive"`
}

type UpdateProcessSettingsRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=255"`
	Description    *string `json:"description"`
	CategoryID     *uint   `json:"category_id"`
	IsPublic       *bool   `json:"is_public"`
	AccessPassword *string `json:"access_password" validate:"omitempty,max=72"`
	ProcessType    *string `json:"process_type" validate:"omitempty,oneof=linear free"`
}

// =============================
// 📤 Response DTO
// =============================
type ProcessFormDTO struct {
	FormID     uint             `json:"form_id"`
	OrderIndex int              `json:"order_index"`
	Form       *formDTO.FormDTO `json:"form,omitempty"`
}

type ProcessDetailDTO struct {
	ProcessID   uint             `json:"process_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	CreatorID   uuid.UUID        `json:"creator_id"`
	CategoryID  *uint            `json:"category_id,omitempty"`
	IsPublic    bool             `json:"is_public"`
	ProcessType string           `json:"process_type"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Forms       []ProcessFormDTO `json:"forms"`
}

// ProcessWelcomeDTO: halaman pembuka sebelum responden mulai
type ProcessWelcomeDTO struct {
	ProcessID   uint    `json:"process_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	ProcessType string  `json:"process_type"`
	TotalForms  int64   `json:"total_forms"`
}

// ProcessEndDTO: halaman penutup setelah submit
type ProcessEndDTO struct {
	ProcessID        uint    `json:"process_id"`
	Title            string  `json:"title"`
	Description      *string `json:"description,omitempty"`
	TotalSubmissions int64   `json:"total_submissions"`
}

// =============================
// 🔁 Converters
// =============================
func ToProcessDetailDTO(m model.ProcessModel) ProcessDetailDTO {
	out := ProcessDetailDTO{
		ProcessID:   m.ProcessID,
		Name:        m.ProcessName,
		Description: m.ProcessDescription,
		CreatorID:   m.ProcessCreatorID,
		CategoryID:  m.ProcessCategoryID,
		IsPublic:    m.ProcessIsPublic,
		ProcessType: m.ProcessType,
		CreatedAt:   m.ProcessCreatedAt,
		UpdatedAt:   m.ProcessUpdatedAt,
		Forms:       make([]ProcessFormDTO, 0, len(m.Forms)),
	}
	for _, pf := range m.Forms {
		item := ProcessFormDTO{
			FormID:     pf.ProcessFormFormID,
			OrderIndex: pf.ProcessFormOrderIndex,
		}
		if pf.Form != nil {
			f := formDTO.ToFormDTO(*pf.Form)
			item.Form = &f
		}
		out.Forms = append(out.Forms, item)
	}
	return out
}
