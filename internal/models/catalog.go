package models

import (
	"encoding/json"
	"sort"
)

// Catalog is the static lesson content: radicals to learn, practice
// exercises and quiz questions. It is never mutated after loading.
type Catalog struct {
	Radicals []Radical      `json:"radicals"`
	Quiz     []QuizQuestion `json:"quiz"`
	Practice []PracticeItem `json:"practice"`
}

// Radical is one learning item; its 1-based position is the lesson id
type Radical struct {
	Radical  string   `json:"radical"`
	Name     string   `json:"name,omitempty"`
	Meaning  string   `json:"meaning,omitempty"`
	Pinyin   string   `json:"pinyin,omitempty"`
	Strokes  int      `json:"strokes,omitempty"`
	Examples []string `json:"examples,omitempty"`
	Mnemonic string   `json:"mnemonic,omitempty"`
}

// QuizQuestion is one quiz item. CorrectAnswer may be absent.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer Value    `json:"correct_answer"`
}

// PracticeType tags the variant of a practice item
type PracticeType string

const (
	PracticeRecall      PracticeType = "recall"
	PracticeMatching    PracticeType = "matching"
	PracticeUnsupported PracticeType = "unsupported"
)

// PracticeItem is the stored form of an exercise. Use Exercise to get the
// typed variant instead of probing fields.
type PracticeItem struct {
	Type          string         `json:"type"`
	Prompt        string         `json:"prompt,omitempty"`
	Hint          string         `json:"hint,omitempty"`
	CorrectAnswer Value          `json:"correct_answer"`
	CorrectPairs  map[string]any `json:"correct_pairs,omitempty"`
	Radicals      []string       `json:"radicals,omitempty"`
	Characters    []string       `json:"characters,omitempty"`
}

// Exercise is one of RecallExercise, MatchingExercise or UnsupportedExercise
type Exercise interface {
	Kind() PracticeType
}

// RecallExercise expects a free-text answer
type RecallExercise struct {
	Prompt string `json:"prompt"`
	Hint   string `json:"hint,omitempty"`
	Answer Value  `json:"-"`
}

// MatchingExercise expects every key of Pairs to be matched to its value
type MatchingExercise struct {
	Prompt     string         `json:"prompt"`
	Pairs      map[string]any `json:"-"`
	Radicals   []string       `json:"radicals"`
	Characters []string       `json:"characters"`
}

// UnsupportedExercise carries an item whose type tag is not recognised
type UnsupportedExercise struct {
	Type string `json:"type"`
}

func (RecallExercise) Kind() PracticeType      { return PracticeRecall }
func (MatchingExercise) Kind() PracticeType    { return PracticeMatching }
func (UnsupportedExercise) Kind() PracticeType { return PracticeUnsupported }

// Exercise returns the typed variant for the item
func (p PracticeItem) Exercise() Exercise {
	switch PracticeType(p.Type) {
	case PracticeRecall:
		return RecallExercise{Prompt: p.Prompt, Hint: p.Hint, Answer: p.CorrectAnswer}
	case PracticeMatching:
		radicals, characters := p.Radicals, p.Characters
		if len(radicals) == 0 {
			radicals = pairKeys(p.CorrectPairs)
		}
		if len(characters) == 0 {
			characters = pairValues(p.CorrectPairs)
		}
		return MatchingExercise{
			Prompt:     p.Prompt,
			Pairs:      p.CorrectPairs,
			Radicals:   radicals,
			Characters: characters,
		}
	default:
		return UnsupportedExercise{Type: p.Type}
	}
}

// pairKeys lists the left column of a matching exercise in stable order
func pairKeys(pairs map[string]any) []string {
	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// pairValues lists the string values of the right column in stable order
func pairValues(pairs map[string]any) []string {
	values := make([]string, 0, len(pairs))
	for _, value := range pairs {
		if s, ok := value.(string); ok {
			values = append(values, s)
		}
	}
	sort.Strings(values)
	return values
}

// Lesson returns the radical for a 1-based lesson id
func (c *Catalog) Lesson(id int) (Radical, bool) {
	if id < 1 || id > len(c.Radicals) {
		return Radical{}, false
	}
	return c.Radicals[id-1], true
}

// Question returns the quiz question for a 1-based id
func (c *Catalog) Question(id int) (QuizQuestion, bool) {
	if id < 1 || id > len(c.Quiz) {
		return QuizQuestion{}, false
	}
	return c.Quiz[id-1], true
}

// PracticeByID returns the practice item for a 1-based id
func (c *Catalog) PracticeByID(id int) (PracticeItem, bool) {
	if id < 1 || id > len(c.Practice) {
		return PracticeItem{}, false
	}
	return c.Practice[id-1], true
}

// Value is an optional JSON value. Set is false when the field was absent
// from the document, which is different from an explicit null.
type Value struct {
	V   any
	Set bool
}

// NewValue returns a present value
func NewValue(v any) Value {
	return Value{V: v, Set: true}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	v.Set = true
	return json.Unmarshal(data, &v.V)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// AsString returns the value when it is a JSON string
func (v Value) AsString() (string, bool) {
	if !v.Set {
		return "", false
	}
	s, ok := v.V.(string)
	return s, ok
}
