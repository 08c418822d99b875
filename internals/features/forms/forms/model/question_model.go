package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionModel: kontrak jawaban untuk satu Form (one-to-one).
// question_info berisi konfigurasi bertipe (text/select/checkbox),
// divalidasi saat create/update form — bukan per jawaban.
type QuestionModel struct {
	QuestionID         uint           `gorm:"column:question_id;primaryKey;autoIncrement" json:"question_id"`
	QuestionFormID     uint           `gorm:"column:question_form_id;not null;uniqueIndex" json:"question_form_id"`
	QuestionText       string         `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionInfo       datatypes.JSON `gorm:"column:question_info;not null" json:"question_info"`
	QuestionIsRequired bool           `gorm:"column:question_is_required;not null;default:false" json:"question_is_required"`
	QuestionOrderIndex int            `gorm:"column:question_order_index;not null;default:0" json:"question_order_index"`
	QuestionCreatedAt  time.Time      `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt  time.Time      `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`

	// Relations
	Form *FormModel `gorm:"foreignKey:QuestionFormID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuestionModel) TableName() string {
	return "questions"
}
