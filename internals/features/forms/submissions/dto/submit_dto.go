package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// =============================
// 📥 Request DTO
// =============================
type SubmitAnswerItem struct {
	FormID uint            `json:"form_id" validate:"required"`
	Answer json.RawMessage `json:"answer"`
}

type SubmitProcessRequest struct {
	Answers []SubmitAnswerItem `json:"answers" validate:"required,min=1,dive"`
}

// =============================
// 📤 Response DTO
// =============================
type SubmitProcessResponse struct {
	SessionID    uuid.UUID `json:"session_id"`
	Message      string    `json:"message"`
	SavedAnswers int       `json:"saved_answers"`
}
