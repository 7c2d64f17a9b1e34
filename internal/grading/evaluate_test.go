package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"radicaltutor/internal/models"
)

func TestQuizIsExactAndCaseSensitive(t *testing.T) {
	question := models.QuizQuestion{Question: "Meaning of 氵?", CorrectAnswer: models.NewValue("water")}

	tests := []struct {
		name      string
		submitted any
		want      bool
	}{
		{name: "exact match", submitted: "water", want: true},
		{name: "different case", submitted: "Water", want: false},
		{name: "surrounding whitespace", submitted: " water", want: false},
		{name: "wrong answer", submitted: "tree", want: false},
		{name: "missing answer", submitted: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, expected := Quiz(question, tt.submitted)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "water", expected)
		})
	}
}

func TestQuizIsTypeSensitive(t *testing.T) {
	question := models.QuizQuestion{CorrectAnswer: models.NewValue(float64(3))}

	got, _ := Quiz(question, "3")
	assert.False(t, got, "string must not equal number")

	got, _ = Quiz(question, float64(3))
	assert.True(t, got)
}

func TestQuizWithoutCorrectAnswer(t *testing.T) {
	question := models.QuizQuestion{Question: "Broken"}

	got, expected := Quiz(question, "anything")
	assert.False(t, got)
	assert.Equal(t, MissingAnswer, expected)

	got, _ = Quiz(question, nil)
	assert.False(t, got, "a nil submission must not match a missing answer")
}

func TestPracticeRecall(t *testing.T) {
	item := models.PracticeItem{Type: "recall", CorrectAnswer: models.NewValue("water")}

	tests := []struct {
		name       string
		answer     any
		want       bool
		wantRecord any
	}{
		{name: "trimmed and case-insensitive", answer: " Water ", want: true, wantRecord: "Water"},
		{name: "upper case", answer: "WATER", want: true, wantRecord: "WATER"},
		{name: "wrong", answer: "fire", want: false, wantRecord: "fire"},
		{name: "empty", answer: "", want: false, wantRecord: ""},
		{name: "not a string", answer: float64(1), want: false, wantRecord: float64(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Practice(item, Submission{Answer: tt.answer})
			assert.Equal(t, models.PracticeRecall, result.Type)
			assert.Equal(t, tt.want, result.IsCorrect)
			assert.Equal(t, tt.wantRecord, result.UserAnswer)
		})
	}
}

func TestPracticeRecallFoldsUnicode(t *testing.T) {
	item := models.PracticeItem{Type: "recall", CorrectAnswer: models.NewValue("Straße")}

	result := Practice(item, Submission{Answer: "STRASSE"})
	assert.True(t, result.IsCorrect)
}

func TestPracticeRecallKeepsExpectedAnswerAsWritten(t *testing.T) {
	item := models.PracticeItem{Type: "recall", CorrectAnswer: models.NewValue(" water ")}

	result := Practice(item, Submission{Answer: "water"})
	assert.False(t, result.IsCorrect)
	result = Practice(item, Submission{Answer: " water "})
	assert.False(t, result.IsCorrect, "the submitted answer is trimmed before comparing")
}

func TestPracticeRecallNonStringExpected(t *testing.T) {
	item := models.PracticeItem{Type: "recall", CorrectAnswer: models.NewValue(float64(3))}

	result := Practice(item, Submission{Answer: "3"})
	assert.False(t, result.IsCorrect)
}

func TestPracticeMatching(t *testing.T) {
	item := models.PracticeItem{
		Type:         "matching",
		CorrectPairs: map[string]any{"a": "1", "b": "3"},
	}

	tests := []struct {
		name  string
		pairs map[string]any
		want  bool
	}{
		{name: "all pairs", pairs: map[string]any{"a": "1", "b": "3"}, want: true},
		{name: "one wrong value", pairs: map[string]any{"a": "1", "b": "2"}, want: false},
		{name: "missing key", pairs: map[string]any{"a": "1"}, want: false},
		{name: "extra key", pairs: map[string]any{"a": "1", "b": "3", "c": "4"}, want: false},
		{name: "swapped key", pairs: map[string]any{"a": "1", "c": "3"}, want: false},
		{name: "nothing submitted", pairs: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Practice(item, Submission{Pairs: tt.pairs})
			assert.Equal(t, models.PracticeMatching, result.Type)
			assert.Equal(t, tt.want, result.IsCorrect)
		})
	}
}

func TestPracticeMatchingWithoutExpectedPairs(t *testing.T) {
	item := models.PracticeItem{Type: "matching"}

	result := Practice(item, Submission{Pairs: map[string]any{}})
	assert.False(t, result.IsCorrect)
}

func TestPracticeUnsupportedType(t *testing.T) {
	item := models.PracticeItem{Type: "tracing", CorrectAnswer: models.NewValue("x")}

	result := Practice(item, Submission{Answer: "x"})
	assert.Equal(t, models.PracticeUnsupported, result.Type)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, "x", result.UserAnswer)

	result = Practice(item, Submission{Pairs: map[string]any{"k": "v"}})
	assert.Equal(t, map[string]any{"k": "v"}, result.UserAnswer)
}
