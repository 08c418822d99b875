package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"formshub_backend/internals/features/reports/reports/model"
)

// =============================
// 📥 Request DTO
// =============================
type GenerateReportRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	ReportType string  `json:"report_type" validate:"omitempty,oneof=summary detailed custom"`
	Note       *string `json:"note"`
}

// =============================
// 📤 Response DTO
// =============================
type ReportDTO struct {
	ReportID    uint           `json:"report_id"`
	ProcessID   uint           `json:"process_id"`
	Title       *string        `json:"title,omitempty"`
	ReportType  string         `json:"report_type"`
	Data        datatypes.JSON `json:"data"`
	Note        *string        `json:"note,omitempty"`
	CreatedBy   *uuid.UUID     `json:"created_by,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// DashboardDTO: agregat per-user (overview / visibility / statistics)
type DashboardDTO struct {
	Overview   DashboardOverview   `json:"overview"`
	Visibility DashboardVisibility `json:"visibility"`
	Statistics DashboardStatistics `json:"statistics"`
}

type DashboardOverview struct {
	TotalProcesses   int64 `json:"total_processes"`
	TotalForms       int64 `json:"total_forms"`
	TotalSubmissions int64 `json:"total_submissions"`
}

type DashboardVisibility struct {
	PublicProcesses  int64 `json:"public_processes"`
	PrivateProcesses int64 `json:"private_processes"`
}

type DashboardStatistics struct {
	AvgFormsPerProcess float64 `json:"avg_forms_per_process"`
	MostUsedForm       *string `json:"most_used_form"`
}

// ProcessStatsDTO: statistik read-only satu process
type ProcessStatsDTO struct {
	ProcessID              uint    `json:"process_id"`
	TotalSessionsStarted   int64   `json:"total_sessions_started"`
	TotalSessionsSubmitted int64   `json:"total_sessions_submitted"`
	SubmissionRate         float64 `json:"submission_rate"`
	ParticipantsCount      int64   `json:"participants_count"`
	TotalAnswers           int64   `json:"total_answers"`
}

// =============================
// 🔁 Converters
// =============================
func ToReportDTO(m model.ReportModel) ReportDTO {
	return ReportDTO{
		ReportID:    m.ReportID,
		ProcessID:   m.ReportProcessID,
		Title:       m.ReportTitle,
		ReportType:  m.ReportType,
		Data:        m.ReportData,
		Note:        m.ReportNote,
		CreatedBy:   m.ReportCreatedBy,
		GeneratedAt: m.ReportGeneratedAt,
	}
}
