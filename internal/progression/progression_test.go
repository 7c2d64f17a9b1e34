package progression

import (
	"errors"
	"testing"
)

func TestNextTwoPartLessons(t *testing.T) {
	p := Policy{Lessons: 2, Practice: 2, Quiz: 3, Parts: 2}

	tests := []struct {
		name string
		from Step
		want Step
	}{
		{name: "first part to second part", from: Lesson(1, 0), want: Lesson(1, 1)},
		{name: "second part to next lesson", from: Lesson(1, 1), want: Lesson(2, 0)},
		{name: "last lesson to practice", from: Lesson(2, 1), want: Practice(1)},
		{name: "practice to practice", from: Practice(1), want: Practice(2)},
		{name: "last practice to quiz", from: Practice(2), want: Quiz(1)},
		{name: "quiz to quiz", from: Quiz(2), want: Quiz(3)},
		{name: "last quiz to results", from: Quiz(3), want: Results},
		{name: "results is terminal", from: Results, want: Results},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Next(tt.from); got != tt.want {
				t.Errorf("Next(%+v) = %+v, want %+v", tt.from, got, tt.want)
			}
		})
	}
}

func TestNextSinglePartLessons(t *testing.T) {
	p := Policy{Lessons: 2, Practice: 1, Quiz: 1, Parts: 1}

	if got := p.Next(Lesson(1, 0)); got != Lesson(2, 0) {
		t.Errorf("Next(Lesson 1) = %+v, want Lesson 2", got)
	}
	if got := p.Next(Lesson(2, 0)); got != Practice(1) {
		t.Errorf("Next(Lesson 2) = %+v, want Practice 1", got)
	}
}

func TestNextSkipsEmptyPhases(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		from   Step
		want   Step
	}{
		{name: "no practice", policy: Policy{Lessons: 1, Quiz: 2, Parts: 1}, from: Lesson(1, 0), want: Quiz(1)},
		{name: "no practice no quiz", policy: Policy{Lessons: 1, Parts: 1}, from: Lesson(1, 0), want: Results},
		{name: "no quiz", policy: Policy{Practice: 1, Parts: 1}, from: Practice(1), want: Results},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Next(tt.from); got != tt.want {
				t.Errorf("Next(%+v) = %+v, want %+v", tt.from, got, tt.want)
			}
		})
	}
}

func TestStart(t *testing.T) {
	if got := (Policy{Lessons: 3, Parts: 2}).Start(); got != Lesson(1, 0) {
		t.Errorf("Start() = %+v, want Lesson(1, 0)", got)
	}
	if got := (Policy{Quiz: 1, Parts: 2}).Start(); got != Quiz(1) {
		t.Errorf("Start() without lessons = %+v, want Quiz(1)", got)
	}
	if got := (Policy{Parts: 2}).Start(); got != Results {
		t.Errorf("Start() on empty catalog = %+v, want Results", got)
	}
}

func TestValidation(t *testing.T) {
	p := Policy{Lessons: 5, Practice: 3, Quiz: 5, Parts: 2}

	lessonTests := []struct {
		id, part int
		want     bool
	}{
		{1, 0, true},
		{5, 1, true},
		{0, 0, false},
		{6, 0, false},
		{1, 2, false},
		{1, -1, false},
	}
	for _, tt := range lessonTests {
		if got := p.ValidLesson(tt.id, tt.part); got != tt.want {
			t.Errorf("ValidLesson(%d, %d) = %v, want %v", tt.id, tt.part, got, tt.want)
		}
	}

	if p.ValidPractice(0) || p.ValidPractice(4) || !p.ValidPractice(3) {
		t.Error("ValidPractice range is wrong")
	}
	if p.ValidQuiz(0) || p.ValidQuiz(6) || !p.ValidQuiz(1) {
		t.Error("ValidQuiz range is wrong")
	}

	single := Policy{Lessons: 5, Parts: 1}
	if single.ValidLesson(1, 1) {
		t.Error("part 1 must be rejected when lessons have one part")
	}

	empty := Policy{Parts: 2}
	if empty.ValidLesson(1, 0) || empty.ValidPractice(1) || empty.ValidQuiz(1) {
		t.Error("an empty catalog must reject every id")
	}
}

func TestPath(t *testing.T) {
	two := Policy{Parts: 2}
	one := Policy{Parts: 1}

	tests := []struct {
		name   string
		policy Policy
		step   Step
		want   string
	}{
		{name: "two part lesson", policy: two, step: Lesson(3, 1), want: "/learn/3-1"},
		{name: "single part lesson", policy: one, step: Lesson(3, 0), want: "/learn/3"},
		{name: "practice", policy: two, step: Practice(2), want: "/practice/2"},
		{name: "quiz", policy: two, step: Quiz(4), want: "/quiz/4"},
		{name: "results", policy: one, step: Results, want: "/results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Path(tt.step); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := FeedbackPath(2); got != "/practice/feedback/2" {
		t.Errorf("FeedbackPath(2) = %q", got)
	}
}

func TestParseLessonRef(t *testing.T) {
	tests := []struct {
		ref      string
		id, part int
		wantErr  bool
	}{
		{ref: "1", id: 1, part: 0},
		{ref: "12-1", id: 12, part: 1},
		{ref: "3-0", id: 3, part: 0},
		{ref: "abc", wantErr: true},
		{ref: "", wantErr: true},
		{ref: "1-", wantErr: true},
		{ref: "-1", wantErr: true},
		{ref: "1-x", wantErr: true},
		{ref: "+1", wantErr: true},
		{ref: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			id, part, err := ParseLessonRef(tt.ref)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedRef) {
					t.Errorf("ParseLessonRef(%q) error = %v, want ErrMalformedRef", tt.ref, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLessonRef(%q) error = %v", tt.ref, err)
			}
			if id != tt.id || part != tt.part {
				t.Errorf("ParseLessonRef(%q) = %d, %d, want %d, %d", tt.ref, id, part, tt.id, tt.part)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("7"); err != nil || id != 7 {
		t.Errorf("ParseID(7) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "x", "+3", "2.0"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("ParseID(%q) should fail", bad)
		}
	}
}
