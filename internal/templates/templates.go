// Package templates holds the HTML pages of the tutor.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
)

//go:embed *.tmpl
var embedded embed.FS

// Page template names
const (
	Home             = "home.tmpl"
	Learn            = "learn.tmpl"
	PracticeRecall   = "practice_recall.tmpl"
	PracticeMatching = "practice_matching.tmpl"
	Feedback         = "feedback.tmpl"
	Quiz             = "quiz.tmpl"
	Results          = "results.tmpl"
)

// Load parses the page templates. When dir is set, templates are read from
// that directory instead of the embedded copies.
func Load(dir string) (*template.Template, error) {
	var source fs.FS = embedded
	if dir != "" {
		source = os.DirFS(dir)
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(source, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

var funcMap = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
	"percent": func(score float64) string {
		return fmt.Sprintf("%.0f%%", score)
	},
	"display": func(v any) string {
		if v == nil {
			return "(no answer)"
		}
		return fmt.Sprint(v)
	},
}
