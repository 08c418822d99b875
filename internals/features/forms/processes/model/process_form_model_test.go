package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	categoryModel "formshub_backend/internals/features/forms/categories/model"
	formModel "formshub_backend/internals/features/forms/forms/model"
	userModel "formshub_backend/internals/features/users/user/model"
)

func TestProcessFormUniquePairing(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:process_form_test?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&categoryModel.CategoryModel{},
		&formModel.FormModel{},
		&formModel.QuestionModel{},
		&ProcessModel{},
		&ProcessFormModel{},
	))

	creator := uuid.New()
	process := ProcessModel{
		ProcessName:      "Alur Pendaftaran",
		ProcessCreatorID: creator,
		ProcessIsPublic:  true,
		ProcessType:      ProcessTypeLinear,
	}
	require.NoError(t, db.Create(&process).Error)

	form := formModel.FormModel{FormTitle: "Data Diri", FormCreatorID: creator}
	require.NoError(t, db.Create(&form).Error)

	require.NoError(t, db.Create(&ProcessFormModel{
		ProcessFormProcessID: process.ProcessID,
		ProcessFormFormID:    form.FormID,
	}).Error)

	// pasangan (process, form) yang sama kedua kali ditolak unique index;
	// TranslateError memetakannya ke ErrDuplicatedKey untuk cabang 409
	err = db.Create(&ProcessFormModel{
		ProcessFormProcessID:  process.ProcessID,
		ProcessFormFormID:     form.FormID,
		ProcessFormOrderIndex: 1,
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// form lain di process yang sama tetap boleh
	form2 := formModel.FormModel{FormTitle: "Alamat", FormCreatorID: creator}
	require.NoError(t, db.Create(&form2).Error)
	assert.NoError(t, db.Create(&ProcessFormModel{
		ProcessFormProcessID:  process.ProcessID,
		ProcessFormFormID:     form2.FormID,
		ProcessFormOrderIndex: 1,
	}).Error)
}
