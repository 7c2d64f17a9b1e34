package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMatchingExerciseColumns(t *testing.T) {
	item := PracticeItem{
		Type:         "matching",
		CorrectPairs: map[string]any{"木": "林", "氵": "河", "口": "吃"},
	}

	ex, ok := item.Exercise().(MatchingExercise)
	if !ok {
		t.Fatalf("Exercise() = %T, want MatchingExercise", item.Exercise())
	}
	if got := ex.Radicals; len(got) != 3 || got[0] != "口" || got[1] != "木" || got[2] != "氵" {
		t.Errorf("Radicals = %v, want sorted pair keys", got)
	}
	if got := ex.Characters; len(got) != 3 {
		t.Errorf("Characters = %v, want the three pair values", got)
	}

	data, err := json.Marshal(ex)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var view map[string]any
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, leaked := view["Pairs"]; leaked {
		t.Error("the expected pairs must not be serialized")
	}

	explicit := PracticeItem{Type: "matching", Radicals: []string{"氵"}, Characters: []string{"河", "海"}}
	ex = explicit.Exercise().(MatchingExercise)
	if len(ex.Characters) != 2 {
		t.Errorf("explicit columns should be kept, got %v", ex.Characters)
	}
}

func TestPracticeItemExercise(t *testing.T) {
	tests := []struct {
		name string
		item PracticeItem
		want PracticeType
	}{
		{
			name: "recall",
			item: PracticeItem{Type: "recall", CorrectAnswer: NewValue("water")},
			want: PracticeRecall,
		},
		{
			name: "matching",
			item: PracticeItem{Type: "matching", CorrectPairs: map[string]any{"氵": "河"}},
			want: PracticeMatching,
		},
		{
			name: "unknown type",
			item: PracticeItem{Type: "tracing"},
			want: PracticeUnsupported,
		},
		{
			name: "empty type",
			item: PracticeItem{},
			want: PracticeUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.item.Exercise().Kind()
			if got != tt.want {
				t.Errorf("Exercise().Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatalogLookupsAreOneBased(t *testing.T) {
	catalog := &Catalog{
		Radicals: []Radical{{Radical: "氵"}, {Radical: "木"}},
		Quiz:     []QuizQuestion{{Question: "q1"}},
		Practice: []PracticeItem{{Type: "recall"}},
	}

	tests := []struct {
		name string
		id   int
		want bool
	}{
		{name: "zero", id: 0, want: false},
		{name: "first", id: 1, want: true},
		{name: "last", id: 2, want: true},
		{name: "past end", id: 3, want: false},
		{name: "negative", id: -1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := catalog.Lesson(tt.id); ok != tt.want {
				t.Errorf("Lesson(%d) ok = %v, want %v", tt.id, ok, tt.want)
			}
		})
	}

	if r, _ := catalog.Lesson(2); r.Radical != "木" {
		t.Errorf("Lesson(2) = %q, want 木", r.Radical)
	}
	if _, ok := catalog.Question(2); ok {
		t.Error("Question(2) should be out of range")
	}
	if _, ok := catalog.PracticeByID(1); !ok {
		t.Error("PracticeByID(1) should be in range")
	}
}

func TestValueDistinguishesAbsentFromNull(t *testing.T) {
	var absent QuizQuestion
	if err := json.Unmarshal([]byte(`{"question":"q"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.CorrectAnswer.Set {
		t.Error("absent correct_answer should not be set")
	}

	var null QuizQuestion
	if err := json.Unmarshal([]byte(`{"question":"q","correct_answer":null}`), &null); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !null.CorrectAnswer.Set || null.CorrectAnswer.V != nil {
		t.Errorf("null correct_answer = %+v, want set nil", null.CorrectAnswer)
	}

	var number QuizQuestion
	if err := json.Unmarshal([]byte(`{"question":"q","correct_answer":3}`), &number); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if number.CorrectAnswer.V != float64(3) {
		t.Errorf("numeric correct_answer = %#v, want float64(3)", number.CorrectAnswer.V)
	}
	if _, ok := number.CorrectAnswer.AsString(); ok {
		t.Error("numeric value should not report as string")
	}
}

func TestSessionStateResets(t *testing.T) {
	state := NewSessionState()
	now := time.Now()
	state.Learning = append(state.Learning, LearningEvent{LessonID: 1, Event: EventEntry, Timestamp: now})
	state.QuizAnswers = append(state.QuizAnswers, QuizAnswer{QuestionID: 1, IsCorrect: true, Timestamp: now})
	state.PracticeAnswers = append(state.PracticeAnswers, PracticeAnswer{PracticeID: 1, Timestamp: now})

	state.ResetQuiz()
	state.ResetPractice()

	if len(state.QuizAnswers) != 0 {
		t.Errorf("QuizAnswers len = %d, want 0", len(state.QuizAnswers))
	}
	if len(state.PracticeAnswers) != 0 {
		t.Errorf("PracticeAnswers len = %d, want 0", len(state.PracticeAnswers))
	}
	if len(state.Learning) != 1 {
		t.Errorf("Learning len = %d, want 1", len(state.Learning))
	}
}

func TestSessionStateNormalize(t *testing.T) {
	var state SessionState
	if err := json.Unmarshal([]byte(`{"start_time":null}`), &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	state.Normalize()

	if state.SessionID == "" {
		t.Error("Normalize should assign a session id")
	}
	if state.Learning == nil || state.QuizAnswers == nil || state.PracticeAnswers == nil {
		t.Error("Normalize should allocate empty logs")
	}

	data, err := json.Marshal(&state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, key := range []string{"session_id", "start_time", "learning", "quiz_answers", "practice_answers"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("document is missing %q", key)
		}
	}
}

func TestSessionStateCloneIsIndependent(t *testing.T) {
	state := NewSessionState()
	state.QuizAnswers = append(state.QuizAnswers, QuizAnswer{QuestionID: 1})

	clone := state.Clone()
	state.QuizAnswers = append(state.QuizAnswers, QuizAnswer{QuestionID: 2})
	state.ResetPractice()

	if len(clone.QuizAnswers) != 1 {
		t.Errorf("clone QuizAnswers len = %d, want 1", len(clone.QuizAnswers))
	}
	if clone.SessionID != state.SessionID {
		t.Error("clone should keep the session id")
	}
}
