package model

import (
	"time"

	"github.com/google/uuid"

	UserModel "formshub_backend/internals/features/users/user/model"
)

// CategoryModel: label milik satu user untuk mengelompokkan form & process
type CategoryModel struct {
	CategoryID          uint      `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	CategoryName        string    `gorm:"column:category_name;size:100;not null" json:"category_name"`
	CategoryDescription *string   `gorm:"column:category_description;type:text" json:"category_description,omitempty"`
	CategoryOwnerID     uuid.UUID `gorm:"column:category_owner_id;type:uuid;not null;index" json:"category_owner_id"`
	CategoryCreatedAt   time.Time `gorm:"column:category_created_at;autoCreateTime" json:"category_created_at"`
	CategoryUpdatedAt   time.Time `gorm:"column:category_updated_at;autoUpdateTime" json:"category_updated_at"`

	// Relations
	Owner *UserModel.UserModel `gorm:"foreignKey:CategoryOwnerID" json:"-"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
