package feature

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/karyoviz/karyoplot/pkg/errors"
)

// ClassRule maps a feature-name prefix to a display class.
// Matching is case-insensitive on the prefix.
type ClassRule struct {
	Prefix string `toml:"prefix" json:"prefix"`
	Label  string `toml:"label" json:"label"`
	Color  string `toml:"color" json:"color"`
}

// DefaultRules returns the stock classification: gustatory receptors in
// purple, ionotropic receptors in orange.
func DefaultRules() []ClassRule {
	return []ClassRule{
		{Prefix: "gr", Label: "GRs", Color: "#b326ff"},
		{Prefix: "ir", Label: "IRs", Color: "orange"},
	}
}

// Classifier assigns features to display classes by name prefix.
// Features matching no rule are dropped from the figure.
type Classifier struct {
	rules []ClassRule
}

// NewClassifier creates a classifier from the given rules.
// Rules are tried in order; the first matching prefix wins.
func NewClassifier(rules []ClassRule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the class for name, or ok=false if no rule matches.
func (c *Classifier) Classify(name string) (ClassRule, bool) {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if strings.HasPrefix(lower, strings.ToLower(r.Prefix)) {
			return r, true
		}
	}
	return ClassRule{}, false
}

// Apply classifies every feature and returns the ones that matched a rule.
func (c *Classifier) Apply(features []Feature) []Classified {
	var out []Classified
	for _, f := range features {
		if rule, ok := c.Classify(f.Name); ok {
			out = append(out, Classified{Feature: f, Class: rule})
		}
	}
	return out
}

// rulesFile is the TOML schema for a class-rule config:
//
//	[[class]]
//	prefix = "gr"
//	label  = "GRs"
//	color  = "#b326ff"
type rulesFile struct {
	Class []ClassRule `toml:"class"`
}

// LoadRules reads classification rules from a TOML file.
func LoadRules(path string) ([]ClassRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}

	var rf rulesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if len(rf.Class) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: no [[class]] entries", path)
	}
	for _, r := range rf.Class {
		if r.Prefix == "" || r.Color == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s: class entries need both prefix and color", path)
		}
	}
	return rf.Class, nil
}
