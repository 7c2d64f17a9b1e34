// Package progression decides where the learner goes next in the forward
// only pipeline Lesson -> Practice -> Quiz -> Results.
package progression

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"radicaltutor/internal/models"
)

// Phase is a stage of the tutorial
type Phase int

const (
	PhaseLesson Phase = iota
	PhasePractice
	PhaseQuiz
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseLesson:
		return "lesson"
	case PhasePractice:
		return "practice"
	case PhaseQuiz:
		return "quiz"
	case PhaseResults:
		return "results"
	default:
		return "unknown"
	}
}

// Step is one position in the pipeline. ID is 1-based; Part is only
// meaningful for lessons.
type Step struct {
	Phase Phase
	ID    int
	Part  int
}

// Lesson returns the lesson step for id and part
func Lesson(id, part int) Step { return Step{Phase: PhaseLesson, ID: id, Part: part} }

// Practice returns the practice step for id
func Practice(id int) Step { return Step{Phase: PhasePractice, ID: id} }

// Quiz returns the quiz step for id
func Quiz(id int) Step { return Step{Phase: PhaseQuiz, ID: id} }

// Results is the terminal step of an attempt
var Results = Step{Phase: PhaseResults}

// Policy holds the sizes the state machine needs
type Policy struct {
	Lessons  int
	Practice int
	Quiz     int
	// Parts is the number of parts per lesson, 1 or 2
	Parts int
}

// NewPolicy builds a policy from the catalog sizes
func NewPolicy(catalog *models.Catalog, parts int) Policy {
	if parts < 1 {
		parts = 1
	}
	return Policy{
		Lessons:  len(catalog.Radicals),
		Practice: len(catalog.Practice),
		Quiz:     len(catalog.Quiz),
		Parts:    parts,
	}
}

// Start is the first step of a fresh run
func (p Policy) Start() Step {
	if p.Lessons > 0 {
		return Lesson(1, 0)
	}
	return p.enterPractice()
}

// Next returns the step after s. Phases without content are skipped.
func (p Policy) Next(s Step) Step {
	switch s.Phase {
	case PhaseLesson:
		if s.Part+1 < p.Parts {
			return Lesson(s.ID, s.Part+1)
		}
		if s.ID+1 <= p.Lessons {
			return Lesson(s.ID+1, 0)
		}
		return p.enterPractice()
	case PhasePractice:
		if s.ID+1 <= p.Practice {
			return Practice(s.ID + 1)
		}
		return p.enterQuiz()
	case PhaseQuiz:
		if s.ID+1 <= p.Quiz {
			return Quiz(s.ID + 1)
		}
		return Results
	default:
		return Results
	}
}

func (p Policy) enterPractice() Step {
	if p.Practice > 0 {
		return Practice(1)
	}
	return p.enterQuiz()
}

func (p Policy) enterQuiz() Step {
	if p.Quiz > 0 {
		return Quiz(1)
	}
	return Results
}

// ValidLesson reports whether id and part address an existing lesson page
func (p Policy) ValidLesson(id, part int) bool {
	return id >= 1 && id <= p.Lessons && part >= 0 && part < p.Parts
}

// ValidPractice reports whether id addresses an existing practice item
func (p Policy) ValidPractice(id int) bool {
	return id >= 1 && id <= p.Practice
}

// ValidQuiz reports whether id addresses an existing quiz question
func (p Policy) ValidQuiz(id int) bool {
	return id >= 1 && id <= p.Quiz
}

// Path returns the URL path of a step
func (p Policy) Path(s Step) string {
	switch s.Phase {
	case PhaseLesson:
		if p.Parts > 1 {
			return fmt.Sprintf("/learn/%d-%d", s.ID, s.Part)
		}
		return fmt.Sprintf("/learn/%d", s.ID)
	case PhasePractice:
		return fmt.Sprintf("/practice/%d", s.ID)
	case PhaseQuiz:
		return fmt.Sprintf("/quiz/%d", s.ID)
	default:
		return "/results"
	}
}

// FeedbackPath returns the feedback page of a practice item
func FeedbackPath(practiceID int) string {
	return fmt.Sprintf("/practice/feedback/%d", practiceID)
}

// ErrMalformedRef is returned for a lesson reference that is not "id" or "id-part"
var ErrMalformedRef = errors.New("malformed lesson reference")

// ParseLessonRef parses the {id} or {id}-{part} path segment of a lesson
// URL. A missing part means part 0.
func ParseLessonRef(ref string) (id, part int, err error) {
	idStr, partStr, hasPart := strings.Cut(ref, "-")

	id, err = strconv.Atoi(idStr)
	if err != nil || idStr == "" || idStr[0] == '+' {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}

	if hasPart {
		part, err = strconv.Atoi(partStr)
		if err != nil || partStr == "" || partStr[0] == '+' {
			return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
		}
	}

	return id, part, nil
}

// ParseID parses an integer path segment; range checks are left to the
// policy
func ParseID(s string) (int, error) {
	if s == "" || s[0] == '+' {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
