package model

import (
	"time"

	"github.com/google/uuid"

	CategoryModel "formshub_backend/internals/features/forms/categories/model"
	UserModel "formshub_backend/internals/features/users/user/model"
)

// FormModel: satu unit pertanyaan. Question-nya one-to-one (lihat question_model.go)
type FormModel struct {
	FormID                 uint      `gorm:"column:form_id;primaryKey;autoIncrement" json:"form_id"`
	FormTitle              string    `gorm:"column:form_title;size:255;not null" json:"form_title"`
	FormDescription        *string   `gorm:"column:form_description;type:text" json:"form_description,omitempty"`
	FormCreatorID          uuid.UUID `gorm:"column:form_creator_id;type:uuid;not null;index" json:"form_creator_id"`
	FormCategoryID         *uint     `gorm:"column:form_category_id;index" json:"form_category_id,omitempty"`
	FormIsPublic           bool      `gorm:"column:form_is_public;not null;default:false" json:"form_is_public"`
	FormAccessPasswordHash *string   `gorm:"column:form_access_password_hash;size:128" json:"-"`
	FormCreatedAt          time.Time `gorm:"column:form_created_at;autoCreateTime" json:"form_created_at"`
	FormUpdatedAt          time.Time `gorm:"column:form_updated_at;autoUpdateTime" json:"form_updated_at"`

	// Relations
	Creator  *UserModel.UserModel         `gorm:"foreignKey:FormCreatorID" json:"-"`
	Category *CategoryModel.CategoryModel `gorm:"foreignKey:FormCategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Question *QuestionModel               `gorm:"foreignKey:QuestionFormID" json:"question,omitempty"`
}

func (FormModel) TableName() string {
	return "forms"
}
