package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	ProcessModel "formshub_backend/internals/features/forms/processes/model"
	UserModel "formshub_backend/internals/features/users/user/model"
)

const (
	ReportTypeSummary  = "summary"
	ReportTypeDetailed = "detailed"
	ReportTypeCustom   = "custom"
)

// ReportModel: snapshot agregat untuk satu Process. Write-once: sekali
// digenerate tidak pernah di-update, hanya dibuat baru.
type ReportModel struct {
	ReportID          uint           `gorm:"column:report_id;primaryKey;autoIncrement" json:"report_id"`
	ReportProcessID   uint           `gorm:"column:report_process_id;not null;index" json:"report_process_id"`
	ReportTitle       *string        `gorm:"column:report_title;size:255" json:"report_title,omitempty"`
	ReportType        string         `gorm:"column:report_type;type:varchar(50);not null;default:'summary'" json:"report_type"`
	ReportData        datatypes.JSON `gorm:"column:report_data;not null" json:"report_data"`
	ReportNote        *string        `gorm:"column:report_note;type:text" json:"report_note,omitempty"`
	ReportCreatedBy   *uuid.UUID     `gorm:"column:report_created_by;type:uuid" json:"report_created_by,omitempty"`
	ReportGeneratedAt time.Time      `gorm:"column:report_generated_at;autoCreateTime" json:"report_generated_at"`
	ReportCreatedAt   time.Time      `gorm:"column:report_created_at;autoCreateTime" json:"report_created_at"`

	// Relations
	Process   *ProcessModel.ProcessModel `gorm:"foreignKey:ReportProcessID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedBy *UserModel.UserModel       `gorm:"foreignKey:ReportCreatedBy;constraint:OnDelete:SET NULL" json:"-"`
}

func (ReportModel) TableName() string {
	return "reports"
}
