package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	FormModel "formshub_backend/internals/features/forms/forms/model"
)

// AnswerModel: jawaban satu responden untuk Question milik satu Form dalam satu sesi.
// Invariant: maksimal satu answer per (session, form); question harus milik form yang sama.
type AnswerModel struct {
	AnswerID                uint           `gorm:"column:answer_id;primaryKey;autoIncrement" json:"answer_id"`
	AnswerResponseSessionID uuid.UUID      `gorm:"column:answer_response_session_id;type:uuid;not null;uniqueIndex:uq_session_form" json:"answer_response_session_id"`
	AnswerFormID            uint           `gorm:"column:answer_form_id;not null;uniqueIndex:uq_session_form" json:"answer_form_id"`
	AnswerQuestionID        uint           `gorm:"column:answer_question_id;not null;index" json:"answer_question_id"`
	AnswerJSON              datatypes.JSON `gorm:"column:answer_json;not null" json:"answer_json"`
	AnswerCreatedAt         time.Time      `gorm:"column:answer_created_at;autoCreateTime" json:"answer_created_at"`

	// Relations
	Session  *ResponseSessionModel    `gorm:"foreignKey:AnswerResponseSessionID;constraint:OnDelete:CASCADE" json:"-"`
	Form     *FormModel.FormModel     `gorm:"foreignKey:AnswerFormID;constraint:OnDelete:CASCADE" json:"-"`
	Question *FormModel.QuestionModel `gorm:"foreignKey:AnswerQuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AnswerModel) TableName() string {
	return "answers"
}
