package models

import (
	"time"

	"github.com/google/uuid"
)

// EventKind is the kind of a lesson interaction
type EventKind string

const (
	EventEntry     EventKind = "entry"
	EventNextClick EventKind = "next_click"
)

// SessionState is the persisted progress document of the learner
type SessionState struct {
	SessionID       string           `json:"session_id"`
	StartTime       *time.Time       `json:"start_time"`
	Learning        []LearningEvent  `json:"learning"`
	QuizAnswers     []QuizAnswer     `json:"quiz_answers"`
	PracticeAnswers []PracticeAnswer `json:"practice_answers"`
}

// LearningEvent records one visit to, or advance from, a lesson page
type LearningEvent struct {
	LessonID   int            `json:"lesson_id"`
	Part       *int           `json:"part,omitempty"`
	Event      EventKind      `json:"event"`
	Timestamp  time.Time      `json:"timestamp"`
	Selections map[string]any `json:"selections,omitempty"`
}

// QuizAnswer is one recorded quiz submission
type QuizAnswer struct {
	QuestionID    int       `json:"question_id"`
	UserAnswer    any       `json:"user_answer"`
	CorrectAnswer any       `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	Timestamp     time.Time `json:"timestamp"`
}

// PracticeAnswer is one recorded practice submission
type PracticeAnswer struct {
	PracticeID int          `json:"practice_id"`
	Type       PracticeType `json:"type"`
	UserAnswer any          `json:"user_answer"`
	IsCorrect  bool         `json:"is_correct"`
	Timestamp  time.Time    `json:"timestamp"`
}

// NewSessionState returns an empty document with a fresh session id
func NewSessionState() *SessionState {
	return &SessionState{
		SessionID:       uuid.NewString(),
		Learning:        []LearningEvent{},
		QuizAnswers:     []QuizAnswer{},
		PracticeAnswers: []PracticeAnswer{},
	}
}

// Normalize fills in fields a hand-edited or older document may lack
func (s *SessionState) Normalize() {
	if s.SessionID == "" {
		s.SessionID = uuid.NewString()
	}
	if s.Learning == nil {
		s.Learning = []LearningEvent{}
	}
	if s.QuizAnswers == nil {
		s.QuizAnswers = []QuizAnswer{}
	}
	if s.PracticeAnswers == nil {
		s.PracticeAnswers = []PracticeAnswer{}
	}
}

// ResetQuiz clears the quiz answer log
func (s *SessionState) ResetQuiz() {
	s.QuizAnswers = []QuizAnswer{}
}

// ResetPractice clears the practice answer log
func (s *SessionState) ResetPractice() {
	s.PracticeAnswers = []PracticeAnswer{}
}

// Clone returns a deep enough copy for readers that must not observe later
// appends. Answer payloads are shared; they are never mutated.
func (s *SessionState) Clone() *SessionState {
	c := *s
	if s.StartTime != nil {
		t := *s.StartTime
		c.StartTime = &t
	}
	c.Learning = append([]LearningEvent(nil), s.Learning...)
	c.QuizAnswers = append([]QuizAnswer(nil), s.QuizAnswers...)
	c.PracticeAnswers = append([]PracticeAnswer(nil), s.PracticeAnswers...)
	c.Normalize()
	return &c
}
