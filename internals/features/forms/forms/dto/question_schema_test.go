package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func intPtr(n int) *int { return &n }

func mustInfo(t *testing.T, raw string) *QuestionInfo {
	t.Helper()
	info, err := ParseQuestionInfo([]byte(raw))
	require.NoError(t, err)
	return info
}

func TestParseQuestionInfo(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		info, err := ParseQuestionInfo([]byte(`{"type":"text","max_length":10}`))
		require.NoError(t, err)
		assert.Equal(t, "text", info.Type)
		require.NotNil(t, info.MaxLength)
		assert.Equal(t, 10, *info.MaxLength)
	})

	t.Run("empty raw", func(t *testing.T) {
		_, err := ParseQuestionInfo(nil)
		assert.Error(t, err)
	})

	t.Run("broken json", func(t *testing.T) {
		_, err := ParseQuestionInfo([]byte(`{"type":`))
		assert.Error(t, err)
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"text minimal", `{"type":"text"}`, ""},
		{"text case-insensitive", `{"type":"TEXT"}`, ""},
		{"text min > max", `{"type":"text","min_length":10,"max_length":5}`, "min_length cannot be greater than max_length"},
		{"select valid", `{"type":"select","options":[{"id":"a","label":"A"}]}`, ""},
		{"select without options", `{"type":"select"}`, "options must be a non-empty list"},
		{"select max_select != 1", `{"type":"select","options":[{"id":"a","label":"A"}],"max_select":3}`, "max_select must be 1"},
		{"option missing label", `{"type":"checkbox","options":[{"id":"a"}]}`, "each option must have at least"},
		{"checkbox min > max", `{"type":"checkbox","options":[{"id":"a","label":"A"},{"id":"b","label":"B"}],"min_select":3,"max_select":2}`, "min_select cannot be greater than max_select"},
		{"unknown type", `{"type":"rating"}`, "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustInfo(t, tt.raw).ValidateConfig()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateAnswer_Text(t *testing.T) {
	info := &QuestionInfo{Type: QuestionTypeText, MinLength: intPtr(3), MaxLength: intPtr(5)}

	tests := []struct {
		name     string
		raw      string
		required bool
		wantErr  string
	}{
		{"valid", `{"value":"abcd"}`, true, ""},
		{"required null", `null`, true, "cannot be empty"},
		{"required empty object", `{}`, true, "cannot be empty"},
		{"required empty string value", `{"value":""}`, true, "cannot be empty"},
		{"optional empty passes", `null`, false, ""},
		{"optional empty value passes", `{"value":""}`, false, ""},
		{"too short", `{"value":"ab"}`, true, "at least 3"},
		{"too long", `{"value":"abcdef"}`, true, "at most 5"},
		{"wrong shape", `[1,2]`, true, "text answer must look like"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := info.ValidateAnswer(json.RawMessage(tt.raw), tt.required)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateAnswer_Select(t *testing.T) {
	info := &QuestionInfo{
		Type: QuestionTypeSelect,
		Options: []QuestionOption{
			{ID: "red", Label: "Merah"},
			{ID: "blue", Label: "Biru"},
		},
	}

	assert.NoError(t, info.ValidateAnswer(json.RawMessage(`{"value":"red"}`), true))

	err := info.ValidateAnswer(json.RawMessage(`{"value":"green"}`), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid choice")

	err = info.ValidateAnswer(json.RawMessage(`null`), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	assert.NoError(t, info.ValidateAnswer(json.RawMessage(`null`), false))
}

func TestValidateAnswer_Checkbox(t *testing.T) {
	info := &QuestionInfo{
		Type: QuestionTypeCheckbox,
		Options: []QuestionOption{
			{ID: "a", Label: "A"},
			{ID: "b", Label: "B"},
			{ID: "c", Label: "C"},
		},
		MinSelect: intPtr(1),
		MaxSelect: intPtr(2),
	}

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"one choice", `{"values":["a"]}`, ""},
		{"two choices", `{"values":["a","c"]}`, ""},
		{"unknown option", `{"values":["z"]}`, "not a valid choice"},
		{"duplicate option", `{"values":["a","a"]}`, "selected more than once"},
		{"above max_select", `{"values":["a","b","c"]}`, "at most 2"},
		{"empty required", `{"values":[]}`, "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := info.ValidateAnswer(json.RawMessage(tt.raw), true)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

// Property: jawaban text dalam rentang [min,max] selalu lolos, di luar selalu ditolak
func TestValidateAnswer_TextLengthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		min := rapid.IntRange(1, 20).Draw(t, "min")
		max := rapid.IntRange(min, 40).Draw(t, "max")
		n := rapid.IntRange(1, 60).Draw(t, "n")

		info := &QuestionInfo{Type: QuestionTypeText, MinLength: intPtr(min), MaxLength: intPtr(max)}
		value := strings.Repeat("x", n)
		raw, _ := json.Marshal(map[string]string{"value": value})

		err := info.ValidateAnswer(raw, true)
		if n >= min && n <= max {
			if err != nil {
				t.Fatalf("panjang %d dalam [%d,%d] harus lolos: %v", n, min, max, err)
			}
		} else if err == nil {
			t.Fatalf("panjang %d di luar [%d,%d] harus ditolak", n, min, max)
		}
	})
}

// Property: required + empty selalu ditolak untuk semua tipe
func TestValidateAnswer_RequiredEmptyProperty(t *testing.T) {
	emptyPayloads := []string{``, `null`, `""`, `{}`}
	infos := []*QuestionInfo{
		{Type: QuestionTypeText},
		{Type: QuestionTypeSelect, Options: []QuestionOption{{ID: "a", Label: "A"}}},
		{Type: QuestionTypeCheckbox, Options: []QuestionOption{{ID: "a", Label: "A"}}},
	}

	for _, info := range infos {
		for _, payload := range emptyPayloads {
			name := fmt.Sprintf("%s/%q", info.Type, payload)
			t.Run(name, func(t *testing.T) {
				assert.Error(t, info.ValidateAnswer(json.RawMessage(payload), true))
				assert.NoError(t, info.ValidateAnswer(json.RawMessage(payload), false))
			})
		}
	}
}
