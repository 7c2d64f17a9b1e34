package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"radicaltutor/internal/grading"
	"radicaltutor/internal/metrics"
	"radicaltutor/internal/models"
	"radicaltutor/internal/progression"
	"radicaltutor/internal/session"
)

var (
	// ErrNotFound is returned for a lesson, practice or quiz id outside the catalog
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedType is returned when rendering a practice item of unknown type
	ErrUnsupportedType = errors.New("unsupported practice type")
)

// Response messages returned with a redirect
const (
	MsgSessionStarted      = "Session started"
	MsgInteractionRecorded = "Interaction recorded"
	MsgLessonComplete      = "Lesson complete"
	MsgAnswerRecorded      = "Answer recorded"
	MsgQuizComplete        = "Quiz complete"
)

// CatalogSource provides the current content catalog
type CatalogSource interface {
	Catalog() *models.Catalog
}

// Outcome tells the client where to go after a submission
type Outcome struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// TutorService runs the tutorial: lessons, practice, quiz and results
type TutorService struct {
	content  CatalogSource
	sessions *session.Manager
	parts    int
	now      func() time.Time
}

// NewTutorService creates a new tutor service. parts is the number of
// pages per lesson.
func NewTutorService(content CatalogSource, sessions *session.Manager, parts int) *TutorService {
	return &TutorService{
		content:  content,
		sessions: sessions,
		parts:    parts,
		now:      time.Now,
	}
}

// snapshot returns the catalog and the policy for one request. Taking both
// once keeps a concurrent reload from changing sizes mid-operation.
func (s *TutorService) snapshot() (*models.Catalog, progression.Policy) {
	catalog := s.content.Catalog()
	return catalog, progression.NewPolicy(catalog, s.parts)
}

// CheckLesson reports ErrNotFound for a lesson reference outside the catalog
func (s *TutorService) CheckLesson(id, part int) error {
	_, policy := s.snapshot()
	if !policy.ValidLesson(id, part) {
		return fmt.Errorf("%w: lesson %d part %d", ErrNotFound, id, part)
	}
	return nil
}

// CheckPractice reports ErrNotFound for a practice id outside the catalog
func (s *TutorService) CheckPractice(id int) error {
	_, policy := s.snapshot()
	if !policy.ValidPractice(id) {
		return fmt.Errorf("%w: practice %d", ErrNotFound, id)
	}
	return nil
}

// CheckQuiz reports ErrNotFound for a question id outside the catalog
func (s *TutorService) CheckQuiz(id int) error {
	_, policy := s.snapshot()
	if !policy.ValidQuiz(id) {
		return fmt.Errorf("%w: question %d", ErrNotFound, id)
	}
	return nil
}

// HomeView is the landing page
type HomeView struct {
	SessionID string           `json:"session_id"`
	Radicals  []models.Radical `json:"radicals"`
}

// Home clears the quiz and practice logs of the previous attempt
func (s *TutorService) Home(ctx context.Context) (*HomeView, error) {
	catalog, _ := s.snapshot()

	state, err := s.sessions.Update(ctx, func(state *models.SessionState) error {
		state.ResetQuiz()
		state.ResetPractice()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	metrics.ObserveReset("home")

	return &HomeView{SessionID: state.SessionID, Radicals: catalog.Radicals}, nil
}

// Start begins a new attempt and points at the first step
func (s *TutorService) Start(ctx context.Context) (Outcome, error) {
	_, policy := s.snapshot()

	_, err := s.sessions.Update(ctx, func(state *models.SessionState) error {
		state.ResetQuiz()
		state.ResetPractice()
		started := s.now()
		state.StartTime = &started
		return nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to start session: %w", err)
	}
	metrics.ObserveReset("start")

	return Outcome{Message: MsgSessionStarted, Redirect: policy.Path(policy.Start())}, nil
}

// LessonView is one page of a lesson
type LessonView struct {
	ID      int            `json:"lesson_id"`
	Part    int            `json:"part"`
	Parts   int            `json:"parts"`
	Total   int            `json:"total"`
	Lesson  models.Radical `json:"lesson"`
	PostURL string         `json:"post_url"`
}

// ViewLesson records an entry event and returns the lesson page
func (s *TutorService) ViewLesson(ctx context.Context, id, part int) (*LessonView, error) {
	catalog, policy := s.snapshot()
	if !policy.ValidLesson(id, part) {
		return nil, fmt.Errorf("%w: lesson %d part %d", ErrNotFound, id, part)
	}

	if err := s.recordLessonEvent(ctx, id, part, models.EventEntry, nil); err != nil {
		return nil, err
	}

	lesson, _ := catalog.Lesson(id)
	return &LessonView{
		ID:      id,
		Part:    part,
		Parts:   policy.Parts,
		Total:   policy.Lessons,
		Lesson:  lesson,
		PostURL: policy.Path(progression.Lesson(id, part)),
	}, nil
}

// AdvanceLesson records a next click and returns the following step
func (s *TutorService) AdvanceLesson(ctx context.Context, id, part int, selections map[string]any) (Outcome, error) {
	_, policy := s.snapshot()
	if !policy.ValidLesson(id, part) {
		return Outcome{}, fmt.Errorf("%w: lesson %d part %d", ErrNotFound, id, part)
	}

	if err := s.recordLessonEvent(ctx, id, part, models.EventNextClick, selections); err != nil {
		return Outcome{}, err
	}

	next := policy.Next(progression.Lesson(id, part))
	message := MsgInteractionRecorded
	if next.Phase != progression.PhaseLesson {
		message = MsgLessonComplete
	}
	return Outcome{Message: message, Redirect: policy.Path(next)}, nil
}

func (s *TutorService) recordLessonEvent(ctx context.Context, id, part int, kind models.EventKind, selections map[string]any) error {
	event := models.LearningEvent{
		LessonID:   id,
		Event:      kind,
		Timestamp:  s.now(),
		Selections: selections,
	}
	if s.parts > 1 {
		event.Part = &part
	}

	_, err := s.sessions.Update(ctx, func(state *models.SessionState) error {
		state.Learning = append(state.Learning, event)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record lesson event: %w", err)
	}
	metrics.ObserveLessonEvent(kind)
	return nil
}

// PracticeView is one practice exercise
type PracticeView struct {
	ID       int                 `json:"practice_id"`
	Total    int                 `json:"total"`
	Type     models.PracticeType `json:"type"`
	Exercise models.Exercise     `json:"exercise"`
	PostURL  string              `json:"post_url"`
}

// ViewPractice returns a practice exercise. Items of unknown type cannot be
// rendered and yield ErrUnsupportedType.
func (s *TutorService) ViewPractice(ctx context.Context, id int) (*PracticeView, error) {
	catalog, policy := s.snapshot()
	item, ok := catalog.PracticeByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: practice %d", ErrNotFound, id)
	}

	exercise := item.Exercise()
	if exercise.Kind() == models.PracticeUnsupported {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, item.Type)
	}

	return &PracticeView{
		ID:       id,
		Total:    policy.Practice,
		Type:     exercise.Kind(),
		Exercise: exercise,
		PostURL:  policy.Path(progression.Practice(id)),
	}, nil
}

// SubmitPractice grades and records a practice answer
func (s *TutorService) SubmitPractice(ctx context.Context, id int, sub grading.Submission) (Outcome, error) {
	catalog, _ := s.snapshot()
	item, ok := catalog.PracticeByID(id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: practice %d", ErrNotFound, id)
	}

	result := grading.Practice(item, sub)
	record := models.PracticeAnswer{
		PracticeID: id,
		Type:       result.Type,
		UserAnswer: result.UserAnswer,
		IsCorrect:  result.IsCorrect,
		Timestamp:  s.now(),
	}

	_, err := s.sessions.Update(ctx, func(state *models.SessionState) error {
		state.PracticeAnswers = append(state.PracticeAnswers, record)
		return nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to record practice answer: %w", err)
	}
	metrics.ObserveAnswer("practice", string(result.Type), result.IsCorrect)

	return Outcome{Message: MsgAnswerRecorded, Redirect: progression.FeedbackPath(id)}, nil
}

// FeedbackView shows the learner's latest answer to a practice item
type FeedbackView struct {
	ID       int                   `json:"practice_id"`
	Prompt   string                `json:"prompt"`
	Answer   models.PracticeAnswer `json:"answer"`
	Expected any                   `json:"expected,omitempty"`
	Next     string                `json:"next"`
}

// PracticeFeedback returns the feedback for the latest submission to a
// practice item. found is false when nothing was submitted yet; redirect
// then points back at the question.
func (s *TutorService) PracticeFeedback(ctx context.Context, id int) (view *FeedbackView, redirect string, err error) {
	catalog, policy := s.snapshot()
	item, ok := catalog.PracticeByID(id)
	if !ok {
		return nil, "", fmt.Errorf("%w: practice %d", ErrNotFound, id)
	}

	state, err := s.sessions.View(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load session: %w", err)
	}

	answer, found := grading.LatestPractice(state.PracticeAnswers, id)
	if !found {
		return nil, policy.Path(progression.Practice(id)), nil
	}

	view = &FeedbackView{
		ID:     id,
		Prompt: item.Prompt,
		Answer: answer,
		Next:   policy.Path(policy.Next(progression.Practice(id))),
	}
	switch ex := item.Exercise().(type) {
	case models.RecallExercise:
		if ex.Answer.Set {
			view.Expected = ex.Answer.V
		}
	case models.MatchingExercise:
		view.Expected = ex.Pairs
	}
	return view, "", nil
}

// QuizView is one quiz question
type QuizView struct {
	ID       int      `json:"question_id"`
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	PostURL  string   `json:"post_url"`
}

// ViewQuiz returns a quiz question. Entering the first question starts a
// fresh attempt.
func (s *TutorService) ViewQuiz(ctx context.Context, id int) (*QuizView, error) {
	catalog, policy := s.snapshot()
	question, ok := catalog.Question(id)
	if !ok {
		return nil, fmt.Errorf("%w: question %d", ErrNotFound, id)
	}

	if id == 1 {
		_, err := s.sessions.Update(ctx, func(state *models.SessionState) error {
			state.ResetQuiz()
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to reset quiz: %w", err)
		}
		metrics.ObserveReset("quiz")
	}

	return &QuizView{
		ID:       id,
		Total:    policy.Quiz,
		Question: question.Question,
		Type:     question.Type,
		Options:  question.Options,
		PostURL:  policy.Path(progression.Quiz(id)),
	}, nil
}

// SubmitQuiz grades and records a quiz answer
func (s *TutorService) SubmitQuiz(ctx context.Context, id int, answer any) (Outcome, error) {
	catalog, policy := s.snapshot()
	question, ok := catalog.Question(id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: question %d", ErrNotFound, id)
	}

	isCorrect, expected := grading.Quiz(question, answer)
	record := models.QuizAnswer{
		QuestionID:    id,
		UserAnswer:    answer,
		CorrectAnswer: expected,
		IsCorrect:     isCorrect,
		Timestamp:     s.now(),
	}

	_, err := s.sessions.Update(ctx, func(state *models.SessionState) error {
		state.QuizAnswers = append(state.QuizAnswers, record)
		return nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to record quiz answer: %w", err)
	}
	metrics.ObserveAnswer("quiz", quizTypeLabel(question.Type), isCorrect)

	next := policy.Next(progression.Quiz(id))
	message := MsgAnswerRecorded
	if next.Phase == progression.PhaseResults {
		message = MsgQuizComplete
	}
	return Outcome{Message: message, Redirect: policy.Path(next)}, nil
}

// ResultsView summarises the current quiz attempt
type ResultsView struct {
	Score          float64             `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	CorrectAnswers int                 `json:"correct_answers"`
	Answers        []models.QuizAnswer `json:"answers"`
}

// Results scores the current quiz attempt
func (s *TutorService) Results(ctx context.Context) (*ResultsView, error) {
	catalog, _ := s.snapshot()

	state, err := s.sessions.View(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	summary := grading.Summarize(state.QuizAnswers, len(catalog.Quiz))
	return &ResultsView{
		Score:          summary.Score,
		TotalQuestions: summary.Attempted,
		CorrectAnswers: summary.Correct,
		Answers:        summary.Answers,
	}, nil
}

// quizTypeLabel keeps the metric label set small whatever the catalog says
func quizTypeLabel(questionType string) string {
	switch questionType {
	case "multiple_choice", "text":
		return questionType
	default:
		return "unknown"
	}
}
