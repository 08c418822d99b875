package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ProcessModel "formshub_backend/internals/features/forms/processes/model"
	UserModel "formshub_backend/internals/features/users/user/model"
)

const (
	SessionStatusDraft     = "draft"
	SessionStatusSubmitted = "submitted"
	SessionStatusAbandoned = "abandoned"
)

// ResponseSessionModel: satu percobaan responden terhadap satu Process.
// Invariant: submitted_at terisi ⇔ status = submitted.
type ResponseSessionModel struct {
	ResponseSessionID          uuid.UUID  `gorm:"column:response_session_id;type:uuid;primaryKey" json:"response_session_id"`
	ResponseSessionProcessID   uint       `gorm:"column:response_session_process_id;not null;index" json:"response_session_process_id"`
	ResponseSessionResponderID uuid.UUID  `gorm:"column:response_session_responder_id;type:uuid;not null;index" json:"response_session_responder_id"`
	ResponseSessionStatus      string     `gorm:"column:response_session_status;type:varchar(20);not null;default:'draft'" json:"response_session_status"`
	ResponseSessionStartedAt   time.Time  `gorm:"column:response_session_started_at;autoCreateTime" json:"response_session_started_at"`
	ResponseSessionSubmittedAt *time.Time `gorm:"column:response_session_submitted_at" json:"response_session_submitted_at,omitempty"`

	// Relations
	Process   *ProcessModel.ProcessModel `gorm:"foreignKey:ResponseSessionProcessID;constraint:OnDelete:CASCADE" json:"-"`
	Responder *UserModel.UserModel       `gorm:"foreignKey:ResponseSessionResponderID" json:"-"`
	Answers   []AnswerModel              `gorm:"foreignKey:AnswerResponseSessionID" json:"answers,omitempty"`
}

func (ResponseSessionModel) TableName() string {
	return "response_sessions"
}

// BeforeCreate mengisi UUID kalau belum di-set (gen_random_uuid tidak ada di semua engine)
func (m *ResponseSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResponseSessionID == uuid.Nil {
		m.ResponseSessionID = uuid.New()
	}
	return nil
}
