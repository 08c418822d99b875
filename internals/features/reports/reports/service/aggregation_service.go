package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formModel "formshub_backend/internals/features/forms/forms/model"
	processModel "formshub_backend/internals/features/forms/processes/model"
	sessionModel "formshub_backend/internals/features/forms/submissions/model"
	"formshub_backend/internals/features/reports/reports/dto"
	"formshub_backend/internals/features/reports/reports/model"

	helperAuth "formshub_backend/internals/helpers/auth"
)

// AggregationService: pembaca agregat read-only di atas data yang sudah
// commit. Tidak pernah dipanggil di dalam transaksi submission.
type AggregationService struct {
	DB *gorm.DB
}

func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{DB: db}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UserDashboard: overview + visibility split + statistik per user
func (s *AggregationService) UserDashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardDTO, error) {
	db := s.DB.WithContext(ctx)

	var totalProcesses, totalForms, totalSubmissions, publicProcesses int64

	if err := db.Model(&processModel.ProcessModel{}).
		Where("process_creator_id = ?", userID).Count(&totalProcesses).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung process")
	}
	if err := db.Model(&formModel.FormModel{}).
		Where("form_creator_id = ?", userID).Count(&totalForms).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung form")
	}
	if err := db.Model(&sessionModel.ResponseSessionModel{}).
		Where("response_session_responder_id = ?", userID).Count(&totalSubmissions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung submission")
	}
	if err := db.Model(&processModel.ProcessModel{}).
		Where("process_creator_id = ? AND process_is_public = ?", userID, true).
		Count(&publicProcesses).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung process publik")
	}

	// rata-rata jumlah form per process milik user; 0 kalau tidak punya process
	var avgForms float64
	if err := db.Raw(`
		SELECT COALESCE(AVG(form_count), 0) FROM (
			SELECT COUNT(*) AS form_count
			FROM process_forms pf
			JOIN processes p ON p.process_id = pf.process_form_process_id
			WHERE p.process_creator_id = ?
			GROUP BY pf.process_form_process_id
		) t
	`, userID).Scan(&avgForms).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung rata-rata form")
	}

	// form yang paling sering dipakai lintas process milik user; null kalau belum ada
	var mostUsed struct {
		FormTitle  string
		UsageCount int64
	}
	var mostUsedForm *string
	row := db.Raw(`
		SELECT f.form_title, COUNT(*) AS usage_count
		FROM process_forms pf
		JOIN processes p ON p.process_id = pf.process_form_process_id
		JOIN forms f ON f.form_id = pf.process_form_form_id
		WHERE p.process_creator_id = ?
		GROUP BY f.form_id, f.form_title
		ORDER BY usage_count DESC, f.form_id ASC
		LIMIT 1
	`, userID).Scan(&mostUsed)
	if row.Error != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung form terpopuler")
	}
	if row.RowsAffected > 0 && mostUsed.UsageCount > 0 {
		title := mostUsed.FormTitle
		mostUsedForm = &title
	}

	return &dto.DashboardDTO{
		Overview: dto.DashboardOverview{
			TotalProcesses:   totalProcesses,
			TotalForms:       totalForms,
			TotalSubmissions: totalSubmissions,
		},
		Visibility: dto.DashboardVisibility{
			PublicProcesses:  publicProcesses,
			PrivateProcesses: totalProcesses - publicProcesses,
		},
		Statistics: dto.DashboardStatistics{
			AvgFormsPerProcess: round2(avgForms),
			MostUsedForm:       mostUsedForm,
		},
	}, nil
}

// ProcessStats: submitted/started*100 — 0 saat belum ada sesi (tanpa div-by-zero)
func (s *AggregationService) ProcessStats(ctx context.Context, processID uint) (*dto.ProcessStatsDTO, error) {
	db := s.DB.WithContext(ctx)

	var started, submitted, participants, totalAnswers int64

	if err := db.Model(&sessionModel.ResponseSessionModel{}).
		Where("response_session_process_id = ?", processID).Count(&started).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung sesi")
	}
	if err := db.Model(&sessionModel.ResponseSessionModel{}).
		Where("response_session_process_id = ? AND response_session_status = ?",
			processID, sessionModel.SessionStatusSubmitted).
		Count(&submitted).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung sesi submitted")
	}
	if err := db.Raw(`
		SELECT COUNT(DISTINCT response_session_responder_id)
		FROM response_sessions
		WHERE response_session_process_id = ?
	`, processID).Scan(&participants).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung responden")
	}
	if err := db.Raw(`
		SELECT COUNT(*)
		FROM answers a
		JOIN response_sessions rs ON rs.response_session_id = a.answer_response_session_id
		WHERE rs.response_session_process_id = ?
	`, processID).Scan(&totalAnswers).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung jawaban")
	}

	rate := float64(0)
	if started > 0 {
		rate = round2(float64(submitted) / float64(started) * 100)
	}

	return &dto.ProcessStatsDTO{
		ProcessID:              processID,
		TotalSessionsStarted:   started,
		TotalSessionsSubmitted: submitted,
		SubmissionRate:         rate,
		ParticipantsCount:      participants,
		TotalAnswers:           totalAnswers,
	}, nil
}

// EnsureProcessOwned: report hanya untuk owner process (atau admin);
// process milik orang lain tampak tidak ada (404)
func (s *AggregationService) EnsureProcessOwned(ctx context.Context, actorID uuid.UUID, isAdmin bool, processID uint) error {
	var process processModel.ProcessModel
	if err := s.DB.WithContext(ctx).
		Where("process_id = ?", processID).First(&process).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Process tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil process")
	}
	if !helperAuth.CanModify(actorID, process.ProcessCreatorID, isAdmin) {
		return fiber.NewError(fiber.StatusNotFound, "Process tidak ditemukan")
	}
	return nil
}

// GenerateReport: hitung snapshot lalu simpan sebagai artifact write-once.
func (s *AggregationService) GenerateReport(ctx context.Context, actorID uuid.UUID, isAdmin bool, processID uint, req dto.GenerateReportRequest) (*dto.ReportDTO, error) {
	db := s.DB.WithContext(ctx)

	if err := s.EnsureProcessOwned(ctx, actorID, isAdmin, processID); err != nil {
		return nil, err
	}

	stats, err := s.ProcessStats(ctx, processID)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"total_sessions_started":   stats.TotalSessionsStarted,
		"total_sessions_submitted": stats.TotalSessionsSubmitted,
		"response_rate":            stats.SubmissionRate,
		"participants_count":       stats.ParticipantsCount,
		"total_answers":            stats.TotalAnswers,
		"computed_at":              time.Now().UTC().Format(time.RFC3339),
	}
	raw, merr := json.Marshal(payload)
	if merr != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyusun data report")
	}

	reportType := req.ReportType
	if reportType == "" {
		reportType = model.ReportTypeSummary
	}

	report := model.ReportModel{
		ReportProcessID: processID,
		ReportTitle:     req.Title,
		ReportType:      reportType,
		ReportData:      raw,
		ReportNote:      req.Note,
		ReportCreatedBy: &actorID,
	}
	if err := db.Create(&report).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan report")
	}

	out := dto.ToReportDTO(report)
	return &out, nil
}

// GetReport: detail satu report; akses mengikuti ownership process-nya
func (s *AggregationService) GetReport(ctx context.Context, actorID uuid.UUID, isAdmin bool, reportID uint) (*dto.ReportDTO, error) {
	var report model.ReportModel
	if err := s.DB.WithContext(ctx).
		Where("report_id = ?", reportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Report tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil report")
	}

	if err := s.EnsureProcessOwned(ctx, actorID, isAdmin, report.ReportProcessID); err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Report tidak ditemukan")
	}

	out := dto.ToReportDTO(report)
	return &out, nil
}

// ListReports: report milik satu process, terbaru dulu
func (s *AggregationService) ListReports(ctx context.Context, actorID uuid.UUID, isAdmin bool, processID uint) ([]dto.ReportDTO, error) {
	db := s.DB.WithContext(ctx)

	if err := s.EnsureProcessOwned(ctx, actorID, isAdmin, processID); err != nil {
		return nil, err
	}

	var reports []model.ReportModel
	if err := db.Where("report_process_id = ?", processID).
		Order("report_generated_at DESC").
		Find(&reports).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil report")
	}

	out := make([]dto.ReportDTO, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.ToReportDTO(r))
	}
	return out, nil
}
