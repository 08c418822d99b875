package model

import (
	"time"

	"github.com/google/uuid"

	CategoryModel "formshub_backend/internals/features/forms/categories/model"
	UserModel "formshub_backend/internals/features/users/user/model"
)

const (
	ProcessTypeLinear = "linear"
	ProcessTypeFree   = "free"
)

// ProcessModel: urutan form yang dikerjakan responden sebagai satu alur
type ProcessModel struct {
	ProcessID                 uint      `gorm:"column:process_id;primaryKey;autoIncrement" json:"process_id"`
	ProcessName               string    `gorm:"column:process_name;size:255;not null" json:"process_name"`
	ProcessDescription        *string   `gorm:"column:process_description;type:text" json:"process_description,omitempty"`
	ProcessCreatorID          uuid.UUID `gorm:"column:process_creator_id;type:uuid;not null;index" json:"process_creator_id"`
	ProcessCategoryID         *uint     `gorm:"column:process_category_id;index" json:"process_category_id,omitempty"`
	ProcessIsPublic           bool      `gorm:"column:process_is_public;not null;default:false" json:"process_is_public"`
	ProcessAccessPasswordHash *string   `gorm:"column:process_access_password_hash;size:128" json:"-"`
	ProcessType               string    `gorm:"column:process_type;type:varchar(20);not null;default:'linear'" json:"process_type"`
	ProcessCreatedAt          time.Time `gorm:"column:process_created_at;autoCreateTime" json:"process_created_at"`
	ProcessUpdatedAt          time.Time `gorm:"column:process_updated_at;autoUpdateTime" json:"process_updated_at"`

	// Relations
	Creator  *UserModel.UserModel         `gorm:"foreignKey:ProcessCreatorID" json:"-"`
	Category *CategoryModel.CategoryModel `gorm:"foreignKey:ProcessCategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Forms    []ProcessFormModel           `gorm:"foreignKey:ProcessFormProcessID" json:"forms,omitempty"`
}

func (ProcessModel) TableName() string {
	return "processes"
}
