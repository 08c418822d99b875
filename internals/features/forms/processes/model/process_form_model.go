package model

import (
	FormModel "formshub_backend/internals/features/forms/forms/model"
)

// ProcessFormModel: join table Process ↔ Form.
// Invariant: satu form hanya boleh muncul sekali per process
// (unique index process_id+form_id).
type ProcessFormModel struct {
	ProcessFormID         uint `gorm:"column:process_form_id;primaryKey;autoIncrement" json:"process_form_id"`
	ProcessFormProcessID  uint `gorm:"column:process_form_process_id;not null;uniqueIndex:uq_process_form" json:"process_form_process_id"`
	ProcessFormFormID     uint `gorm:"column:process_form_form_id;not null;uniqueIndex:uq_process_form" json:"process_form_form_id"`
	ProcessFormOrderIndex int  `gorm:"column:process_form_order_index;not null;default:0" json:"process_form_order_index"`

	// Relations
	Form *FormModel.FormModel `gorm:"foreignKey:ProcessFormFormID;constraint:OnDelete:CASCADE" json:"form,omitempty"`
}

func (ProcessFormModel) TableName() string {
	return "process_forms"
}
