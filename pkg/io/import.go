package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
)

// ReadJSON decodes classified features from r.
//
// Each record needs a chromosome, a non-negative position_mb, a name, a
// category of "gene" or "pseudogene", and a strand of "+" or "-". The class
// and color fields are optional; records without them render in the default
// ink. Validation errors name the offending record.
//
// The returned slice is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]feature.Classified, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode features")
	}

	features := make([]feature.Classified, 0, len(doc.Features))
	for i, rec := range doc.Features {
		f, err := rec.toFeature(i)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

// ImportJSON reads a JSON file at path and returns the decoded features.
// It returns the same validation errors as [ReadJSON].
func ImportJSON(path string) ([]feature.Classified, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

func (rec record) toFeature(i int) (feature.Classified, error) {
	var zero feature.Classified
	if rec.Chromosome == "" {
		return zero, errors.New(errors.ErrCodeInvalidRecord, "feature %d: missing chromosome", i)
	}
	if rec.Name == "" {
		return zero, errors.New(errors.ErrCodeInvalidRecord, "feature %d: missing name", i)
	}
	if rec.PositionMb < 0 {
		return zero, errors.New(errors.ErrCodeInvalidRecord,
			"feature %d (%s): negative position", i, rec.Name)
	}

	var category feature.Category
	switch rec.Category {
	case "gene":
		category = feature.CategoryGene
	case "pseudogene":
		category = feature.CategoryPseudogene
	default:
		return zero, errors.New(errors.ErrCodeInvalidRecord,
			"feature %d (%s): category %q, want \"gene\" or \"pseudogene\"", i, rec.Name, rec.Category)
	}

	var strand feature.Strand
	switch rec.Strand {
	case "+":
		strand = feature.StrandPlus
	case "-":
		strand = feature.StrandMinus
	default:
		return zero, errors.New(errors.ErrCodeInvalidRecord,
			"feature %d (%s): strand %q, want \"+\" or \"-\"", i, rec.Name, rec.Strand)
	}

	return feature.Classified{
		Feature: feature.Feature{
			Chromosome: rec.Chromosome,
			Position:   rec.PositionMb,
			Category:   category,
			Strand:     strand,
			Name:       rec.Name,
		},
		Class: feature.ClassRule{Label: rec.Class, Color: rec.Color},
	}, nil
}
