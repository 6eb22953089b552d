package feature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/karyoviz/karyoplot/pkg/errors"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultRules())

	tests := []struct {
		name      string
		wantLabel string
		wantOK    bool
	}{
		{"Gr23a", "GRs", true},
		{"gr5b", "GRs", true},
		{"Ir75e", "IRs", true},
		{"Obp56h", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := c.Classify(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && rule.Label != tt.wantLabel {
				t.Errorf("Classify(%q) label = %q, want %q", tt.name, rule.Label, tt.wantLabel)
			}
		})
	}
}

func TestApply(t *testing.T) {
	c := NewClassifier(DefaultRules())
	features := []Feature{
		{Name: "Gr23a", Position: 1},
		{Name: "Obp56h", Position: 2},
		{Name: "Ir8a", Position: 3},
	}

	classified := c.Apply(features)
	if len(classified) != 2 {
		t.Fatalf("got %d classified features, want 2", len(classified))
	}
	if classified[0].Class.Color != "#b326ff" {
		t.Errorf("color = %q, want #b326ff", classified[0].Class.Color)
	}
	if classified[1].Class.Label != "IRs" {
		t.Errorf("label = %q, want IRs", classified[1].Class.Label)
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.toml")
	content := `
[[class]]
prefix = "or"
label  = "ORs"
color  = "#3366cc"

[[class]]
prefix = "obp"
label  = "OBPs"
color  = "green"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Prefix != "or" || rules[0].Color != "#3366cc" {
		t.Errorf("unexpected first rule: %+v", rules[0])
	}
}

func TestLoadRulesMissingColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.toml")
	if err := os.WriteFile(path, []byte("[[class]]\nprefix = \"or\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadRules(path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
}
