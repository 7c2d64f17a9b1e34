package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	tmpl, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, name := range []string{Home, Learn, PracticeRecall, PracticeMatching, Feedback, Quiz, Results} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("template %s not loaded", name)
		}
	}
}

func TestResultsTemplateRenders(t *testing.T) {
	tmpl, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	data := map[string]any{
		"Title":          "Results",
		"Score":          60.0,
		"CorrectAnswers": 3,
		"TotalQuestions": 5,
		"Answers":        []map[string]any{{"QuestionID": 1, "UserAnswer": "氵", "CorrectAnswer": "N/A", "IsCorrect": false}},
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, Results, data); err != nil {
		t.Fatalf("ExecuteTemplate() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"60%", "3 of 5 correct", "氵", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered results missing %q", want)
		}
	}
}

func TestLoadOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "home.tmpl"), []byte(`custom {{.Title}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, Home, map[string]string{"Title": "x"}); err != nil {
		t.Fatalf("ExecuteTemplate() error = %v", err)
	}
	if buf.String() != "custom x" {
		t.Errorf("override rendered %q", buf.String())
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Load() expected error for a directory without templates")
	}
}

func TestFuncMapHelpersAreUsed(t *testing.T) {
	var source strings.Builder
	entries, err := embedded.ReadDir(".")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, entry := range entries {
		data, err := embedded.ReadFile(entry.Name())
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", entry.Name(), err)
		}
		source.Write(data)
	}

	for name := range funcMap {
		if !strings.Contains(source.String(), name+" ") {
			t.Errorf("template helper %q is not used by any page", name)
		}
	}
}
