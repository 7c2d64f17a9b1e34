package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"radicaltutor/internal/grading"
	"radicaltutor/internal/models"
	"radicaltutor/internal/progression"
	"radicaltutor/internal/service"
	"radicaltutor/internal/templates"
)

// AudioSource resolves the pronunciation clip of a radical
type AudioSource interface {
	URL(glyph string) string
}

// TutorHandler handles the lesson, practice, quiz and results pages
type TutorHandler struct {
	tutor     *service.TutorService
	templates *template.Template
	audio     AudioSource
}

// NewTutorHandler creates a new tutor handler. audio may be nil.
func NewTutorHandler(tutor *service.TutorService, templates *template.Template, audio AudioSource) *TutorHandler {
	return &TutorHandler{
		tutor:     tutor,
		templates: templates,
		audio:     audio,
	}
}

// Routes registers the tutor routes. limit wraps every submission.
func (h *TutorHandler) Routes(mux *http.ServeMux, limit func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /{$}", limit(h.Start))
	mux.HandleFunc("GET /learn/{ref}", h.ShowLesson)
	mux.HandleFunc("POST /learn/{ref}", limit(h.AdvanceLesson))
	mux.HandleFunc("GET /practice/{id}", h.ShowPractice)
	mux.HandleFunc("POST /practice/{id}", limit(h.SubmitPractice))
	mux.HandleFunc("GET /practice/feedback/{id}", h.ShowFeedback)
	mux.HandleFunc("GET /quiz/{id}", h.ShowQuiz)
	mux.HandleFunc("POST /quiz/{id}", limit(h.SubmitQuiz))
	mux.HandleFunc("GET /results", h.ShowResults)
}

// Home shows the landing page and clears the previous attempt's answers
func (h *TutorHandler) Home(w http.ResponseWriter, r *http.Request) {
	view, err := h.tutor.Home(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error preparing home page", err)
		return
	}

	h.render(w, r, templates.Home, HomeViewData{Title: "Radical Tutor", HomeView: view}, view)
}

// Start begins a new attempt
func (h *TutorHandler) Start(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.tutor.Start(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error starting session", err)
		return
	}
	respondWithJSON(w, http.StatusOK, outcome)
}

// ShowLesson displays one lesson page
func (h *TutorHandler) ShowLesson(w http.ResponseWriter, r *http.Request) {
	id, part, err := progression.ParseLessonRef(r.PathValue("ref"))
	if err != nil {
		http.Error(w, ErrInvalidLessonID, http.StatusNotFound)
		return
	}

	view, err := h.tutor.ViewLesson(r.Context(), id, part)
	if err != nil {
		h.serviceError(w, err, ErrInvalidLessonID)
		return
	}

	data := LessonViewData{
		Title:      fmt.Sprintf("Lesson %d - %s", view.ID, view.Lesson.Radical),
		LessonView: view,
	}
	if h.audio != nil {
		data.AudioURL = h.audio.URL(view.Lesson.Radical)
	}
	h.render(w, r, templates.Learn, data, view)
}

// AdvanceLesson records the next click and returns where to go
func (h *TutorHandler) AdvanceLesson(w http.ResponseWriter, r *http.Request) {
	id, part, err := progression.ParseLessonRef(r.PathValue("ref"))
	if err != nil {
		http.Error(w, ErrInvalidLessonID, http.StatusNotFound)
		return
	}

	if err := h.tutor.CheckLesson(id, part); err != nil {
		h.serviceError(w, err, ErrInvalidLessonID)
		return
	}

	var payload struct {
		Selections map[string]any `json:"selections"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		http.Error(w, ErrInvalidJSON, http.StatusBadRequest)
		return
	}

	outcome, err := h.tutor.AdvanceLesson(r.Context(), id, part, payload.Selections)
	if err != nil {
		h.serviceError(w, err, ErrInvalidLessonID)
		return
	}
	respondWithJSON(w, http.StatusOK, outcome)
}

// ShowPractice displays a recall or matching exercise
func (h *TutorHandler) ShowPractice(w http.ResponseWriter, r *http.Request) {
	id, err := progression.ParseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, ErrInvalidPracticeID, http.StatusNotFound)
		return
	}

	view, err := h.tutor.ViewPractice(r.Context(), id)
	if err != nil {
		h.serviceError(w, err, ErrInvalidPracticeID)
		return
	}

	name := templates.PracticeRecall
	if view.Type == models.PracticeMatching {
		name = templates.PracticeMatching
	}
	h.render(w, r, name, PracticeViewData{Title: fmt.Sprintf("Practice %d", id), PracticeView: view}, view)
}

// SubmitPractice records a practice answer
func (h *TutorHandler) SubmitPractice(w http.ResponseWriter, r *http.Request) {
	id, err := progression.ParseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, ErrInvalidPracticeID, http.StatusNotFound)
		return
	}

	if err := h.tutor.CheckPractice(id); err != nil {
		h.serviceError(w, err, ErrInvalidPracticeID)
		return
	}

	var sub grading.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		http.Error(w, ErrInvalidJSON, http.StatusBadRequest)
		return
	}

	outcome, err := h.tutor.SubmitPractice(r.Context(), id, sub)
	if err != nil {
		h.serviceError(w, err, ErrInvalidPracticeID)
		return
	}
	respondWithJSON(w, http.StatusOK, outcome)
}

// ShowFeedback displays the latest answer to a practice item, or sends the
// learner back to the question when there is none
func (h *TutorHandler) ShowFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := progression.ParseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, ErrInvalidPracticeID, http.StatusNotFound)
		return
	}

	view, redirect, err := h.tutor.PracticeFeedback(r.Context(), id)
	if err != nil {
		h.serviceError(w, err, ErrInvalidPracticeID)
		return
	}
	if view == nil {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	h.render(w, r, templates.Feedback, FeedbackViewData{Title: fmt.Sprintf("Practice %d feedback", id), FeedbackView: view}, view)
}

// ShowQuiz displays a quiz question
func (h *TutorHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := progression.ParseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, ErrInvalidQuestionID, http.StatusNotFound)
		return
	}

	view, err := h.tutor.ViewQuiz(r.Context(), id)
	if err != nil {
		h.serviceError(w, err, ErrInvalidQuestionID)
		return
	}

	h.render(w, r, templates.Quiz, QuizViewData{Title: fmt.Sprintf("Question %d", id), QuizView: view}, view)
}

// SubmitQuiz records a quiz answer
func (h *TutorHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := progression.ParseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, ErrInvalidQuestionID, http.StatusNotFound)
		return
	}

	if err := h.tutor.CheckQuiz(id); err != nil {
		h.serviceError(w, err, ErrInvalidQuestionID)
		return
	}

	var payload struct {
		Answer any `json:"answer"`
	}
	if err := decodeJSON(w, r, &payload); err != nil {
		http.Error(w, ErrInvalidJSON, http.StatusBadRequest)
		return
	}

	outcome, err := h.tutor.SubmitQuiz(r.Context(), id, payload.Answer)
	if err != nil {
		h.serviceError(w, err, ErrInvalidQuestionID)
		return
	}
	respondWithJSON(w, http.StatusOK, outcome)
}

// ShowResults displays the score of the current attempt
func (h *TutorHandler) ShowResults(w http.ResponseWriter, r *http.Request) {
	view, err := h.tutor.Results(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error computing results", err)
		return
	}

	h.render(w, r, templates.Results, ResultsViewData{Title: "Results", ResultsView: view}, view)
}

// Healthz reports that the server is up
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// serviceError maps service errors onto responses
func (h *TutorHandler) serviceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, notFoundMsg, http.StatusNotFound)
	case errors.Is(err, service.ErrUnsupportedType):
		http.Error(w, ErrUnsupportedPractice, http.StatusBadRequest)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error handling request", err)
	}
}

// render writes the page, or the view model when the client asked for JSON
func (h *TutorHandler) render(w http.ResponseWriter, r *http.Request, name string, data, view any) {
	if wantsJSON(r) {
		respondWithJSON(w, http.StatusOK, view)
		return
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Error rendering %s template: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
