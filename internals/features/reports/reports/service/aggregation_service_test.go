package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

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
	sessionModel "formshub_backend/internals/features/forms/submissions/model"
	"formshub_backend/internals/features/reports/reports/dto"
	"formshub_backend/internals/features/reports/reports/model"
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
		&sessionModel.ResponseSessionModel{},
		&sessionModel.AnswerModel{},
		&model.ReportModel{},
	))
	return db
}

func seedProcess(t *testing.T, db *gorm.DB, creator uuid.UUID, isPublic bool) uint {
	t.Helper()
	process := processModel.ProcessModel{
		ProcessName:      "Survei Kepuasan",
		ProcessCreatorID: creator,
		ProcessIsPublic:  isPublic,
		ProcessType:      processModel.ProcessTypeLinear,
	}
	require.NoError(t, db.Create(&process).Error)
	return process.ProcessID
}

func seedForm(t *testing.T, db *gorm.DB, creator uuid.UUID, title string) uint {
	t.Helper()
	form := formModel.FormModel{FormTitle: title, FormCreatorID: creator}
	require.NoError(t, db.Create(&form).Error)
	return form.FormID
}

func attachForm(t *testing.T, db *gorm.DB, processID, formID uint, order int) {
	t.Helper()
	require.NoError(t, db.Create(&processModel.ProcessFormModel{
		ProcessFormProcessID:  processID,
		ProcessFormFormID:     formID,
		ProcessFormOrderIndex: order,
	}).Error)
}

func seedSession(t *testing.T, db *gorm.DB, processID uint, responder uuid.UUID, status string, answers int) {
	t.Helper()
	session := sessionModel.ResponseSessionModel{
		ResponseSessionProcessID:   processID,
		ResponseSessionResponderID: responder,
		ResponseSessionStatus:      status,
	}
	if status == sessionModel.SessionStatusSubmitted {
		now := time.Now().UTC()
		session.ResponseSessionSubmittedAt = &now
	}
	require.NoError(t, db.Create(&session).Error)

	for i := 0; i < answers; i++ {
		formID := seedForm(t, db, responder, fmt.Sprintf("Form jawaban %d", i))
		require.NoError(t, db.Create(&sessionModel.AnswerModel{
			AnswerResponseSessionID: session.ResponseSessionID,
			AnswerFormID:            formID,
			AnswerQuestionID:        1,
			AnswerJSON:              datatypes.JSON([]byte(`{"value":"ok"}`)),
		}).Error)
	}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestProcessStats_NoSessions(t *testing.T) {
	db := newTestDB(t)
	processID := seedProcess(t, db, uuid.New(), true)

	svc := NewAggregationService(db)
	stats, err := svc.ProcessStats(context.Background(), processID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, stats.TotalSessionsStarted)
	assert.EqualValues(t, 0, stats.TotalSessionsSubmitted)
	assert.Equal(t, float64(0), stats.SubmissionRate)
	assert.EqualValues(t, 0, stats.ParticipantsCount)
	assert.EqualValues(t, 0, stats.TotalAnswers)
}

func TestProcessStats_RateAndParticipants(t *testing.T) {
	db := newTestDB(t)
	creator := uuid.New()
	processID := seedProcess(t, db, creator, true)

	respA := uuid.New()
	respB := uuid.New()
	// respA: 2 sesi (1 submitted), respB: 1 sesi submitted → 2 dari 3 submitted
	seedSession(t, db, processID, respA, sessionModel.SessionStatusSubmitted, 2)
	seedSession(t, db, processID, respA, sessionModel.SessionStatusDraft, 0)
	seedSession(t, db, processID, respB, sessionModel.SessionStatusSubmitted, 1)

	svc := NewAggregationService(db)
	stats, err := svc.ProcessStats(context.Background(), processID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalSessionsStarted)
	assert.EqualValues(t, 2, stats.TotalSessionsSubmitted)
	assert.InDelta(t, 66.67, stats.SubmissionRate, 0.001)
	assert.EqualValues(t, 2, stats.ParticipantsCount)
	assert.EqualValues(t, 3, stats.TotalAnswers)
}

func TestUserDashboard_EmptyUser(t *testing.T) {
	db := newTestDB(t)

	svc := NewAggregationService(db)
	dash, err := svc.UserDashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.EqualValues(t, 0, dash.Overview.TotalProcesses)
	assert.EqualValues(t, 0, dash.Overview.TotalForms)
	assert.EqualValues(t, 0, dash.Overview.TotalSubmissions)
	assert.Equal(t, float64(0), dash.Statistics.AvgFormsPerProcess)
	assert.Nil(t, dash.Statistics.MostUsedForm)
}

func TestUserDashboard_Aggregates(t *testing.T) {
	db := newTestDB(t)
	user := uuid.New()

	p1 := seedProcess(t, db, user, true)
	p2 := seedProcess(t, db, user, false)

	favorit := seedForm(t, db, user, "Form Favorit")
	biasa := seedForm(t, db, user, "Form Biasa")

	// favorit dipakai di dua process, biasa cuma satu → avg (2+1)/2 = 1.5
	attachForm(t, db, p1, favorit, 0)
	attachForm(t, db, p1, biasa, 1)
	attachForm(t, db, p2, favorit, 0)

	seedSession(t, db, p1, user, sessionModel.SessionStatusSubmitted, 0)

	svc := NewAggregationService(db)
	dash, err := svc.UserDashboard(context.Background(), user)
	require.NoError(t, err)

	assert.EqualValues(t, 2, dash.Overview.TotalProcesses)
	assert.EqualValues(t, 2, dash.Overview.TotalForms)
	assert.EqualValues(t, 1, dash.Overview.TotalSubmissions)
	assert.EqualValues(t, 1, dash.Visibility.PublicProcesses)
	assert.EqualValues(t, 1, dash.Visibility.PrivateProcesses)
	assert.InDelta(t, 1.5, dash.Statistics.AvgFormsPerProcess, 0.001)
	require.NotNil(t, dash.Statistics.MostUsedForm)
	assert.Equal(t, "Form Favorit", *dash.Statistics.MostUsedForm)
}

func TestEnsureProcessOwned(t *testing.T) {
	db := newTestDB(t)
	owner := uuid.New()
	processID := seedProcess(t, db, owner, true)

	svc := NewAggregationService(db)
	ctx := context.Background()

	assert.NoError(t, svc.EnsureProcessOwned(ctx, owner, false, processID))
	assert.NoError(t, svc.EnsureProcessOwned(ctx, uuid.New(), true, processID))

	// process orang lain tampak tidak ada — bukan 403
	err := svc.EnsureProcessOwned(ctx, uuid.New(), false, processID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	err = svc.EnsureProcessOwned(ctx, owner, false, 9999)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestGenerateAndListReports(t *testing.T) {
	db := newTestDB(t)
	owner := uuid.New()
	processID := seedProcess(t, db, owner, true)
	seedSession(t, db, processID, uuid.New(), sessionModel.SessionStatusSubmitted, 1)

	svc := NewAggregationService(db)
	ctx := context.Background()

	title := "Snapshot mingguan"
	report, err := svc.GenerateReport(ctx, owner, false, processID, dto.GenerateReportRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, processID, report.ProcessID)
	assert.Equal(t, model.ReportTypeSummary, report.ReportType)
	require.NotNil(t, report.Title)
	assert.Equal(t, title, *report.Title)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(report.Data, &payload))
	assert.EqualValues(t, 1, payload["total_sessions_started"])
	assert.EqualValues(t, 1, payload["total_sessions_submitted"])

	list, err := svc.ListReports(ctx, owner, false, processID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, report.ReportID, list[0].ReportID)

	// detail mengikuti ownership process-nya
	got, err := svc.GetReport(ctx, owner, false, report.ReportID)
	require.NoError(t, err)
	assert.Equal(t, report.ReportID, got.ReportID)

	_, err = svc.GetReport(ctx, uuid.New(), false, report.ReportID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	// bukan owner → report tak terlihat
	_, err = svc.ListReports(ctx, uuid.New(), false, processID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}
