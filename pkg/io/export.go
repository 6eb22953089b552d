// Package io provides JSON import and export for classified features.
//
// The format is the interchange point between the parse and render stages:
// `karyoplot parse` writes it, `karyoplot render` accepts it in place of a raw
// annotation table, and external tools can produce it to plot features that
// never came from GFF3. Round trips preserve every field.
//
//	{
//	  "features": [
//	    {
//	      "chromosome": "CM027410.1",
//	      "position_mb": 1.223,
//	      "category": "gene",
//	      "strand": "+",
//	      "name": "Gr23a",
//	      "class": "GRs",
//	      "color": "#b326ff"
//	    }
//	  ]
//	}
package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
)

type document struct {
	Features []record `json:"features"`
}

type record struct {
	Chromosome string  `json:"chromosome"`
	PositionMb float64 `json:"position_mb"`
	Category   string  `json:"category"`
	Strand     string  `json:"strand"`
	Name       string  `json:"name"`
	Class      string  `json:"class,omitempty"`
	Color      string  `json:"color,omitempty"`
}

// WriteJSON encodes classified features as JSON and writes them to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(features []feature.Classified, w io.Writer) error {
	doc := document{Features: make([]record, len(features))}
	for i, f := range features {
		doc.Features[i] = record{
			Chromosome: f.Chromosome,
			PositionMb: f.Position,
			Category:   f.Category.String(),
			Strand:     f.Strand.String(),
			Name:       f.Name,
			Class:      f.Class.Label,
			Color:      f.Class.Color,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode features")
	}
	return nil
}

// ExportJSON writes classified features to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(features []feature.Classified, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(features, f)
}
