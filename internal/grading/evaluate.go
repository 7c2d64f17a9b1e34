// Package grading scores submitted answers and summarises attempts.
package grading

import (
	"reflect"
	"strings"

	"golang.org/x/text/cases"

	"radicaltutor/internal/models"
)

// MissingAnswer is stored as the expected answer of a quiz question that
// has no correct_answer
const MissingAnswer = "N/A"

// Submission is a practice answer as posted by the client: a free-text
// Answer for recall items or a Pairs mapping for matching items
type Submission struct {
	Answer any            `json:"answer"`
	Pairs  map[string]any `json:"pairs"`
}

// Result is the outcome of grading a practice submission
type Result struct {
	Type       models.PracticeType
	UserAnswer any
	IsCorrect  bool
}

// Quiz grades a quiz answer by exact, type-sensitive equality. It returns
// the expected value to record alongside the answer.
func Quiz(question models.QuizQuestion, submitted any) (isCorrect bool, expected any) {
	if !question.CorrectAnswer.Set {
		return false, MissingAnswer
	}
	expected = question.CorrectAnswer.V
	return reflect.DeepEqual(submitted, expected), expected
}

// Practice grades a practice submission according to the item's variant.
// Unsupported items are never correct but still produce a record.
func Practice(item models.PracticeItem, sub Submission) Result {
	switch ex := item.Exercise().(type) {
	case models.RecallExercise:
		answer, ok := sub.Answer.(string)
		if !ok {
			return Result{Type: models.PracticeRecall, UserAnswer: sub.Answer}
		}
		answer = strings.TrimSpace(answer)
		return Result{
			Type:       models.PracticeRecall,
			UserAnswer: answer,
			IsCorrect:  recallMatches(answer, ex.Answer),
		}

	case models.MatchingExercise:
		return Result{
			Type:       models.PracticeMatching,
			UserAnswer: sub.Pairs,
			IsCorrect:  pairsMatch(sub.Pairs, ex.Pairs),
		}

	default:
		var answer any = sub.Answer
		if sub.Pairs != nil {
			answer = sub.Pairs
		}
		return Result{Type: models.PracticeUnsupported, UserAnswer: answer}
	}
}

// recallMatches compares case-insensitively using Unicode case folding.
// Only the submitted answer is trimmed.
func recallMatches(answer string, expected models.Value) bool {
	want, ok := expected.AsString()
	if !ok {
		return false
	}
	fold := cases.Fold()
	return fold.String(answer) == fold.String(want)
}

// pairsMatch requires the same keys with the same values; there is no
// partial credit
func pairsMatch(got, want map[string]any) bool {
	if got == nil || want == nil || len(got) != len(want) {
		return false
	}
	for key, wantValue := range want {
		gotValue, ok := got[key]
		if !ok || !reflect.DeepEqual(gotValue, wantValue) {
			return false
		}
	}
	return true
}
