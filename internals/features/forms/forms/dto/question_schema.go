package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

/* ===========================================================
   Konvensi JSON untuk question_info & answer_json
   -----------------------------------------------------------
   question_info:
   {
     "type": "text" | "select" | "checkbox",
     // type = text:
     "placeholder": "opsional",
     "min_length": 0,
     "max_length": 255,
     // type = select / checkbox:
     "options": [{"id": "opt1", "label": "Option 1", "value": "opsional"}, ...],
     // select berperilaku seperti checkbox dengan max_select = 1
     "min_select": 0,
     "max_select": 1 | n
   }

   answer_json:
   - text:     {"value": "jawaban"}
   - select:   {"value": "opt_id"}
   - checkbox: {"values": ["opt_id_1", "opt_id_2", ...]}
=============================================================*/

const (
	QuestionTypeText     = "text"
	QuestionTypeSelect   = "select"
	QuestionTypeCheckbox = "checkbox"
)

type QuestionOption struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value *string `json:"value,omitempty"`
}

// QuestionInfo: tagged union, di-dispatch lewat Type
type QuestionInfo struct {
	Type string `json:"type"`

	// text
	Placeholder *string `json:"placeholder,omitempty"`
	MinLength   *int    `json:"min_length,omitempty"`
	MaxLength   *int    `json:"max_length,omitempty"`

	// select / checkbox
	Options   []QuestionOption `json:"options,omitempty"`
	MinSelect *int             `json:"min_select,omitempty"`
	MaxSelect *int             `json:"max_select,omitempty"`
}

// ParseQuestionInfo decode raw JSONB ke QuestionInfo (tanpa validasi logika)
func ParseQuestionInfo(raw []byte) (*QuestionInfo, error) {
	if len(raw) == 0 {
		return nil, errors.New("question_info must be a JSON object")
	}
	var info QuestionInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, errors.New("question_info must be a JSON object")
	}
	return &info, nil
}

// NormalizedType: type dibandingkan case-insensitive
func (qi *QuestionInfo) NormalizedType() string {
	return strings.ToLower(strings.TrimSpace(qi.Type))
}

// ValidateConfig memvalidasi struktur & logika question_info.
// Dipanggil SEKALI saat Question dibuat/di-update — bukan per jawaban.
func (qi *QuestionInfo) ValidateConfig() error {
	switch qi.NormalizedType() {
	case QuestionTypeText:
		if qi.MinLength != nil && qi.MaxLength != nil && *qi.MinLength > *qi.MaxLength {
			return errors.New("min_length cannot be greater than max_length")
		}
	case QuestionTypeSelect, QuestionTypeCheckbox:
		if len(qi.Options) == 0 {
			return errors.New("options must be a non-empty list for select/checkbox types")
		}
		for _, opt := range qi.Options {
			if strings.TrimSpace(opt.ID) == "" || strings.TrimSpace(opt.Label) == "" {
				return errors.New("each option must have at least 'id' and 'label'")
			}
		}
		if qi.NormalizedType() == QuestionTypeSelect {
			if qi.MaxSelect != nil && *qi.MaxSelect != 1 {
				return errors.New("for select type, max_select must be 1")
			}
		} else {
			if qi.MinSelect != nil && qi.MaxSelect != nil && *qi.MinSelect > *qi.MaxSelect {
				return errors.New("min_select cannot be greater than max_select")
			}
		}
	default:
		return errors.New("question_info.type must be one of: text, select, checkbox")
	}
	return nil
}

func (qi *QuestionInfo) optionIDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(qi.Options))
	for _, opt := range qi.Options {
		set[opt.ID] = struct{}{}
	}
	return set
}

/* ===========================================================
   Validasi jawaban (dipakai Submission Orchestrator)
=============================================================*/

type textAnswer struct {
	Value *string `json:"value"`
}

type selectAnswer struct {
	Value *string `json:"value"`
}

type checkboxAnswer struct {
	Values []string `json:"values"`
}

// IsEmptyAnswer: jawaban dianggap kosong bila null, string kosong, atau object kosong
func IsEmptyAnswer(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s == `""` || s == "{}" {
		return true
	}
	return false
}

// ValidateAnswer memvalidasi satu answer_json terhadap konfigurasi question.
// Aturan required/empty dicek dulu; jawaban opsional yang kosong langsung lolos.
func (qi *QuestionInfo) ValidateAnswer(raw json.RawMessage, isRequired bool) error {
	empty := IsEmptyAnswer(raw)
	if empty {
		if isRequired {
			return errors.New("answer for required question cannot be empty")
		}
		return nil
	}

	switch qi.NormalizedType() {
	case QuestionTypeText:
		var ans textAnswer
		if err := json.Unmarshal(raw, &ans); err != nil {
			return errors.New(`text answer must look like {"value": "..."}`)
		}
		if ans.Value == nil || strings.TrimSpace(*ans.Value) == "" {
			if isRequired {
				return errors.New("answer for required question cannot be empty")
			}
			return nil
		}
		n := utf8.RuneCountInString(*ans.Value)
		if qi.MinLength != nil && n < *qi.MinLength {
			return fmt.Errorf("answer must be at least %d characters", *qi.MinLength)
		}
		if qi.MaxLength != nil && n > *qi.MaxLength {
			return fmt.Errorf("answer must be at most %d characters", *qi.MaxLength)
		}

	case QuestionTypeSelect:
		var ans selectAnswer
		if err := json.Unmarshal(raw, &ans); err != nil {
			return errors.New(`select answer must look like {"value": "<option id>"}`)
		}
		if ans.Value == nil || strings.TrimSpace(*ans.Value) == "" {
			if isRequired {
				return errors.New("answer for required question cannot be empty")
			}
			return nil
		}
		if _, ok := qi.optionIDSet()[*ans.Value]; !ok {
			return fmt.Errorf("option %q is not a valid choice", *ans.Value)
		}

	case QuestionTypeCheckbox:
		var ans checkboxAnswer
		if err := json.Unmarshal(raw, &ans); err != nil {
			return errors.New(`checkbox answer must look like {"values": ["<option id>", ...]}`)
		}
		if len(ans.Values) == 0 {
			if isRequired {
				return errors.New("answer for required question cannot be empty")
			}
			return nil
		}
		optSet := qi.optionIDSet()
		seen := make(map[string]struct{}, len(ans.Values))
		for _, v := range ans.Values {
			if _, ok := optSet[v]; !ok {
				return fmt.Errorf("option %q is not a valid choice", v)
			}
			if _, dup := seen[v]; dup {
				return fmt.Errorf("option %q selected more than once", v)
			}
			seen[v] = struct{}{}
		}
		if qi.MinSelect != nil && len(ans.Values) < *qi.MinSelect {
			return fmt.Errorf("select at least %d options", *qi.MinSelect)
		}
		if qi.MaxSelect != nil && len(ans.Values) > *qi.MaxSelect {
			return fmt.Errorf("select at most %d options", *qi.MaxSelect)
		}

	default:
		// konfigurasi rusak di storage; tetap ditolak, bukan error 500
		return errors.New("question configuration is invalid")
	}
	return nil
}
