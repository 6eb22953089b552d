package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
)

func sampleFeatures() []feature.Classified {
	return []feature.Classified{
		{
			Feature: feature.Feature{
				Chromosome: "CM027410.1",
				Position:   1.223,
				Category:   feature.CategoryGene,
				Strand:     feature.StrandPlus,
				Name:       "Gr23a",
			},
			Class: feature.ClassRule{Label: "GRs", Color: "#b326ff"},
		},
		{
			Feature: feature.Feature{
				Chromosome: "CM027411.1",
				Position:   45.9,
				Category:   feature.CategoryPseudogene,
				Strand:     feature.StrandMinus,
				Name:       "Ir75e",
			},
			Class: feature.ClassRule{Label: "IRs", Color: "orange"},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	features := sampleFeatures()

	var buf bytes.Buffer
	if err := WriteJSON(features, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	// The prefix is not part of the interchange format.
	want := sampleFeatures()
	for i := range want {
		want[i].Class.Prefix = ""
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestWriteJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleFeatures(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`"chromosome": "CM027410.1"`,
		`"position_mb": 1.223`,
		`"category": "pseudogene"`,
		`"strand": "-"`,
		`"class": "GRs"`,
		`"color": "orange"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteJSON() missing %q\nGot:\n%s", want, out)
		}
	}
}

func TestReadJSONValidation(t *testing.T) {
	tests := []struct {
		name string
		json string
		code errors.Code
	}{
		{
			name: "malformed document",
			json: `{"features": [`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "missing chromosome",
			json: `{"features": [{"position_mb": 1, "category": "gene", "strand": "+", "name": "Gr1a"}]}`,
			code: errors.ErrCodeInvalidRecord,
		},
		{
			name: "missing name",
			json: `{"features": [{"chromosome": "chr1", "position_mb": 1, "category": "gene", "strand": "+"}]}`,
			code: errors.ErrCodeInvalidRecord,
		},
		{
			name: "negative position",
			json: `{"features": [{"chromosome": "chr1", "position_mb": -1, "category": "gene", "strand": "+", "name": "Gr1a"}]}`,
			code: errors.ErrCodeInvalidRecord,
		},
		{
			name: "unknown category",
			json: `{"features": [{"chromosome": "chr1", "position_mb": 1, "category": "exon", "strand": "+", "name": "Gr1a"}]}`,
			code: errors.ErrCodeInvalidRecord,
		},
		{
			name: "unknown strand",
			json: `{"features": [{"chromosome": "chr1", "position_mb": 1, "category": "gene", "strand": "?", "name": "Gr1a"}]}`,
			code: errors.ErrCodeInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.json))
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadJSONEmptyDocument(t *testing.T) {
	features, err := ReadJSON(strings.NewReader(`{"features": []}`))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(features) != 0 {
		t.Errorf("got %d features, want 0", len(features))
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.json")
	features := sampleFeatures()

	if err := ExportJSON(features, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if len(got) != len(features) {
		t.Errorf("got %d features, want %d", len(got), len(features))
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
}
