package handlers

import "radicaltutor/internal/service"

type HomeViewData struct {
	Title string
	*service.HomeView
}

type LessonViewData struct {
	Title    string
	AudioURL string
	*service.LessonView
}

type PracticeViewData struct {
	Title string
	*service.PracticeView
}

type FeedbackViewData struct {
	Title string
	*service.FeedbackView
}

type QuizViewData struct {
	Title string
	*service.QuizView
}

type ResultsViewData struct {
	Title string
	*service.ResultsView
}
