package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formModel "formshub_backend/internals/features/forms/forms/model"
	processModel "formshub_backend/internals/features/forms/processes/model"
	"formshub_backend/internals/features/forms/submissions/dto"
	"formshub_backend/internals/features/forms/submissions/model"

	formDTO "formshub_backend/internals/features/forms/forms/dto"
	helperAuth "formshub_backend/internals/helpers/auth"
)

// Actor: identitas pemanggil untuk cek akses (di-resolve dari token oleh controller)
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

type SubmissionService struct {
	DB *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{DB: db}
}

// SubmitProcess: satu-satunya transactional boundary untuk mengubah batch
// jawaban menjadi ResponseSession final.
//
// Urutan precondition (masing-masing kelas kegagalan sendiri):
//  1. access guard (403)
//  2. form_id duplikat (400)
//  3. process minimal punya satu form (400)
//  4. semua form_id anggota form set process saat ini (400)
//  5. setiap form punya Question (400, tetap menyebut form-nya)
//  6. isi jawaban valid terhadap konfigurasi question (400)
//
// Semua write (session draft → answers → submitted) satu transaksi;
// kegagalan apa pun = rollback penuh, tidak ada row yang bocor.
func (s *SubmissionService) SubmitProcess(ctx context.Context, actor Actor, processID uint, items []dto.SubmitAnswerItem) (*dto.SubmitProcessResponse, error) {
	if len(items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Daftar jawaban tidak boleh kosong")
	}

	var result dto.SubmitProcessResponse

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// === 0) Process harus ada ===
		var process processModel.ProcessModel
		if err := tx.Where("process_id = ?", processID).First(&process).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Process tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil process")
		}

		// === 1) Access guard — sebelum validasi maupun persist apa pun ===
		if err := helperAuth.EnsureCanSubmit(actor.ID, process.ProcessCreatorID, process.ProcessIsPublic, actor.IsAdmin); err != nil {
			return err
		}

		// === 2) form_id duplikat — ditolak sebelum lookup Question ===
		seen := make(map[uint]struct{}, len(items))
		for _, item := range items {
			if _, dup := seen[item.FormID]; dup {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Form #%d muncul lebih dari sekali dalam jawaban", item.FormID))
			}
			seen[item.FormID] = struct{}{}
		}

		// === 3) Form set process dihitung saat submit, bukan dari cache ===
		var processForms []processModel.ProcessFormModel
		if err := tx.Where("process_form_process_id = ?", processID).Find(&processForms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil form process")
		}
		if len(processForms) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Process ini belum memiliki form")
		}
		memberSet := make(map[uint]struct{}, len(processForms))
		for _, pf := range processForms {
			memberSet[pf.ProcessFormFormID] = struct{}{}
		}

		// === 4) Membership ===
		formIDs := make([]uint, 0, len(items))
		for _, item := range items {
			if _, ok := memberSet[item.FormID]; !ok {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Form #%d bukan bagian dari process ini", item.FormID))
			}
			formIDs = append(formIDs, item.FormID)
		}

		// === 5) Question per form (satu query) ===
		var questions []formModel.QuestionModel
		if err := tx.Where("question_form_id IN ?", formIDs).Find(&questions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil question")
		}
		questionByForm := make(map[uint]formModel.QuestionModel, len(questions))
		for _, q := range questions {
			questionByForm[q.QuestionFormID] = q
		}

		// === 6) Validasi isi jawaban per item ===
		answers := make([]model.AnswerModel, 0, len(items))
		for _, item := range items {
			question, ok := questionByForm[item.FormID]
			if !ok {
				// integritas konfigurasi, bukan salah input user — tapi tetap
				// ditolak sambil menyebut form-nya
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Form #%d belum memiliki question", item.FormID))
			}

			info, perr := formDTO.ParseQuestionInfo(question.QuestionInfo)
			if perr != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Konfigurasi question untuk form #%d tidak valid", item.FormID))
			}
			if verr := info.ValidateAnswer(item.Answer, question.QuestionIsRequired); verr != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Form #%d: %s", item.FormID, verr.Error()))
			}

			raw := item.Answer
			if len(raw) == 0 {
				raw = []byte("null")
			}
			answers = append(answers, model.AnswerModel{
				AnswerFormID:     item.FormID,
				AnswerQuestionID: question.QuestionID,
				AnswerJSON:       []byte(raw),
			})
		}

		// === Writes: session draft → answers → submitted ===
		session := model.ResponseSessionModel{
			ResponseSessionProcessID:   processID,
			ResponseSessionResponderID: actor.ID,
			ResponseSessionStatus:      model.SessionStatusDraft,
		}
		if err := tx.Create(&session).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat response session")
		}

		for i := range answers {
			answers[i].AnswerResponseSessionID = session.ResponseSessionID
		}
		if err := tx.Create(&answers).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Jawaban ganda untuk form yang sama dalam satu sesi")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan jawaban")
		}

		now := time.Now().UTC()
		if err := tx.Model(&model.ResponseSessionModel{}).
			Where("response_session_id = ?", session.ResponseSessionID).
			Updates(map[string]any{
				"response_session_status":       model.SessionStatusSubmitted,
				"response_session_submitted_at": now,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memfinalisasi response session")
		}

		result = dto.SubmitProcessResponse{
			SessionID:    session.ResponseSessionID,
			Message:      "Jawaban berhasil disimpan",
			SavedAnswers: len(answers),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
