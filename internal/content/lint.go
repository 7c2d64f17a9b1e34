package content

import (
	"fmt"
	"strings"

	"radicaltutor/internal/models"
)

// Lint reports catalog entries that load fine but behave poorly at runtime:
// practice items that cannot be shown and questions that can never be
// answered correctly.
func Lint(c *models.Catalog) []string {
	var issues []string

	for i, radical := range c.Radicals {
		if strings.TrimSpace(radical.Radical) == "" {
			issues = append(issues, fmt.Sprintf("radical %d has no glyph", i+1))
		}
	}

	for i, item := range c.Practice {
		id := i + 1
		switch ex := item.Exercise().(type) {
		case models.RecallExercise:
			if _, ok := ex.Answer.AsString(); !ok {
				issues = append(issues, fmt.Sprintf("practice %d: recall item has no string correct_answer", id))
			}
		case models.MatchingExercise:
			if len(ex.Pairs) == 0 {
				issues = append(issues, fmt.Sprintf("practice %d: matching item has no correct_pairs", id))
			}
		case models.UnsupportedExercise:
			issues = append(issues, fmt.Sprintf("practice %d: unsupported type %q", id, ex.Type))
		}
	}

	for i, question := range c.Quiz {
		id := i + 1
		if !question.CorrectAnswer.Set {
			issues = append(issues, fmt.Sprintf("quiz %d: no correct_answer", id))
			continue
		}
		if len(question.Options) > 0 && !hasOption(question.Options, question.CorrectAnswer.V) {
			issues = append(issues, fmt.Sprintf("quiz %d: correct_answer is not one of the options", id))
		}
	}

	return issues
}

func hasOption(options []string, answer any) bool {
	s, ok := answer.(string)
	if !ok {
		return false
	}
	for _, option := range options {
		if option == s {
			return true
		}
	}
	return false
}
