package grading

import "radicaltutor/internal/models"

// Summary is the results view of the current quiz attempt
type Summary struct {
	Score     float64
	Attempted int
	Correct   int
	Answers   []models.QuizAnswer
}

// Summarize scores the current attempt, taken as the last min(quizLen,
// len(answers)) records of the log. This assumes attempts do not
// interleave; a reset on quiz entry keeps that true in practice.
func Summarize(answers []models.QuizAnswer, quizLen int) Summary {
	window := min(max(quizLen, 0), len(answers))
	current := answers[len(answers)-window:]

	correct := 0
	for _, answer := range current {
		if answer.IsCorrect {
			correct++
		}
	}

	var score float64
	if window > 0 {
		score = float64(correct) / float64(window) * 100
	}

	return Summary{
		Score:     score,
		Attempted: window,
		Correct:   correct,
		Answers:   append([]models.QuizAnswer{}, current...),
	}
}

// LatestPractice returns the most recent submission for a practice item
func LatestPractice(answers []models.PracticeAnswer, practiceID int) (models.PracticeAnswer, bool) {
	for i := len(answers) - 1; i >= 0; i-- {
		if answers[i].PracticeID == practiceID {
			return answers[i], true
		}
	}
	return models.PracticeAnswer{}, false
}
