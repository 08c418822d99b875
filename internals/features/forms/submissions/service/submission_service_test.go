package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	categoryModel "formshub_backend/internals/features/forms/categories/model"
	formModel "formshub_backend/internals/features/forms/forms/model"
	processModel "formshub_backend/internals/features/forms/processes/model"
	"formshub_backend/internals/features/forms/submissions/dto"
	"formshub_backend/internals/features/forms/submissions/model"
	userModel "formshub_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&categoryModel.CategoryModel{},
		&formModel.FormModel{},
		&formModel.QuestionModel{},
		&processModel.ProcessModel{},
		&processModel.ProcessFormModel{},
		&model.ResponseSessionModel{},
		&model.AnswerModel{},
	))
	return db
}

// seedProcess membuat process + n form (masing-masing dengan question text
// required) milik creator, lalu mengembalikan form ID-nya berurutan.
func seedProcess(t *testing.T, db *gorm.DB, creator uuid.UUID, isPublic bool, questionInfos ...string) (uint, []uint) {
	t.Helper()

	process := processModel.ProcessModel{
		ProcessName:      "Survei Onboarding",
		ProcessCreatorID: creator,
		ProcessIsPublic:  isPublic,
		ProcessType:      processModel.ProcessTypeLinear,
	}
	require.NoError(t, db.Create(&process).Error)

	formIDs := make([]uint, 0, len(questionInfos))
	for i, info := range questionInfos {
		form := formModel.FormModel{
			FormTitle:     fmt.Sprintf("Form %d", i+1),
			FormCreatorID: creator,
			FormIsPublic:  isPublic,
		}
		require.NoError(t, db.Create(&form).Error)

		question := formModel.QuestionModel{
			QuestionFormID:     form.FormID,
			QuestionText:       fmt.Sprintf("Pertanyaan %d", i+1),
			QuestionInfo:       datatypes.JSON([]byte(info)),
			QuestionIsRequired: true,
		}
		require.NoError(t, db.Create(&question).Error)

		pf := processModel.ProcessFormModel{
			ProcessFormProcessID:  process.ProcessID,
			ProcessFormFormID:     form.FormID,
			ProcessFormOrderIndex: i,
		}
		require.NoError(t, db.Create(&pf).Error)

		formIDs = append(formIDs, form.FormID)
	}
	return process.ProcessID, formIDs
}

func countRows(t *testing.T, db *gorm.DB, value any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestSubmitProcess_Success(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()
	responder := uuid.New()

	processID, formIDs := seedProcess(t, db, creator, true,
		`{"type":"text","min_length":2}`,
		`{"type":"select","options":[{"id":"ya","label":"Ya"},{"id":"tidak","label":"Tidak"}]}`,
	)

	svc := NewSubmissionService(db)
	result, err := svc.SubmitProcess(context.Background(), Actor{ID: responder}, processID, []dto.SubmitAnswerItem{
		{FormID: formIDs[0], Answer: json.RawMessage(`{"value":"jawaban panjang"}`)},
		{FormID: formIDs[1], Answer: json.RawMessage(`{"value":"ya"}`)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SavedAnswers)
	assert.Equal(t, "Jawaban berhasil disimpan", result.Message)

	var session model.ResponseSessionModel
	require.NoError(t, db.Where("response_session_id = ?", result.SessionID).First(&session).Error)
	assert.Equal(t, model.SessionStatusSubmitted, session.ResponseSessionStatus)
	require.NotNil(t, session.ResponseSessionSubmittedAt)
	assert.Equal(t, responder, session.ResponseSessionResponderID)

	assert.EqualValues(t, 2, countRows(t, db, &model.AnswerModel{}))
}

func TestSubmitProcess_RepeatCreatesNewSession(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()
	responder := uuid.New()

	processID, formIDs := seedProcess(t, db, creator, true, `{"type":"text"}`)
	svc := NewSubmissionService(db)

	items := []dto.SubmitAnswerItem{{FormID: formIDs[0], Answer: json.RawMessage(`{"value":"a"}`)}}

	first, err := svc.SubmitProcess(context.Background(), Actor{ID: responder}, processID, items)
	require.NoError(t, err)
	second, err := svc.SubmitProcess(context.Background(), Actor{ID: responder}, processID, items)
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.EqualValues(t, 2, countRows(t, db, &model.ResponseSessionModel{}))
}

func TestSubmitProcess_RollbackOnInvalidMembership(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()

	processID, formIDs := seedProcess(t, db, creator, true,
		`{"type":"text"}`,
		`{"type":"text"}`,
	)

	// form valid tapi bukan anggota process
	outsider := formModel.FormModel{FormTitle: "Di luar process", FormCreatorID: creator}
	require.NoError(t, db.Create(&outsider).Error)

	svc := NewSubmissionService(db)
	_, err := svc.SubmitProcess(context.Background(), Actor{ID: uuid.New()}, processID, []dto.SubmitAnswerItem{
		{FormID: formIDs[0], Answer: json.RawMessage(`{"value":"ok"}`)},
		{FormID: outsider.FormID, Answer: json.RawMessage(`{"value":"nyasar"}`)},
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Contains(t, err.Error(), "bukan bagian dari process ini")

	// rollback penuh: tidak ada session ataupun answer yang bocor
	assert.EqualValues(t, 0, countRows(t, db, &model.ResponseSessionModel{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.AnswerModel{}))
}

func TestSubmitProcess_DuplicateFormIDs(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()

	processID, formIDs := seedProcess(t, db, creator, true, `{"type":"text"}`)

	svc := NewSubmissionService(db)
	_, err := svc.SubmitProcess(context.Background(), Actor{ID: uuid.New()}, processID, []dto.SubmitAnswerItem{
		{FormID: formIDs[0], Answer: json.RawMessage(`{"value":"satu"}`)},
		{FormID: formIDs[0], Answer: json.RawMessage(`{"value":"dua"}`)},
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Contains(t, err.Error(), "muncul lebih dari sekali")
	assert.EqualValues(t, 0, countRows(t, db, &model.ResponseSessionModel{}))
}

func TestSubmitProcess_RequiredEmptyAnswer(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()

	processID, formIDs := seedProcess(t, db, creator, true, `{"type":"text"}`)

	svc := NewSubmissionService(db)
	_, err := svc.SubmitProcess(context.Background(), Actor{ID: uuid.New()}, processID, []dto.SubmitAnswerItem{
		{FormID: formIDs[0], Answer: json.RawMessage(`{"value":""}`)},
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Contains(t, err.Error(), fmt.Sprintf("Form #%d:", formIDs[0]))
	assert.EqualValues(t, 0, countRows(t, db, &model.AnswerModel{}))
}

func TestSubmitProcess_PrivateProcessForbidden(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()

	processID, formIDs := seedProcess(t, db, creator, false, `{"type":"text"}`)
	svc := NewSubmissionService(db)

	items := []dto.SubmitAnswerItem{{FormID: formIDs[0], Answer: json.RawMessage(`{"value":"x"}`)}}

	_, err := svc.SubmitProcess(context.Background(), Actor{ID: uuid.New()}, processID, items)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	// creator sendiri tetap boleh
	_, err = svc.SubmitProcess(context.Background(), Actor{ID: creator}, processID, items)
	assert.NoError(t, err)

	// admin juga boleh
	_, err = svc.SubmitProcess(context.Background(), Actor{ID: uuid.New(), IsAdmin: true}, processID, items)
	assert.NoError(t, err)
}

func TestSubmitProcess_EmptyProcess(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()

	processID, _ := seedProcess(t, db, creator, true) // tanpa form

	svc := NewSubmissionService(db)
	_, err := svc.SubmitProcess(context.Background(), Actor{ID: uuid.New()}, processID, []dto.SubmitAnswerItem{
		{FormID: 999, Answer: json.RawMessage(`{"value":"x"}`)},
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Contains(t, err.Error(), "belum memiliki form")
}

func TestSubmitProcess_ProcessNotFound(t *testing.T) {
	db := newTestDB(t)

	svc := NewSubmissionService(db)
	_, err := svc.SubmitProcess(context.Background(), Actor{ID: uuid.New()}, 12345, []dto.SubmitAnswerItem{
		{FormID: 1, Answer: json.RawMessage(`{"value":"x"}`)},
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestSubmitProcess_EmptyItems(t *testing.T) {
	db := newTestDB(t)

	svc := NewSubmissionService(db)
	_, err := svc.SubmitProcess(context.Background(), Actor{ID: uuid.New()}, 1, nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}
