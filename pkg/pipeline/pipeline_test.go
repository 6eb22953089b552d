package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/karyoviz/karyoplot/pkg/cache"
	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
	"github.com/karyoviz/karyoplot/pkg/genome"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

const sampleGFF = "##gff-version 3\n" +
	"chr1\tRefSeq\tgene\t1000000\t1002000\t.\t+\t.\tID=g1;Name=Gr23a\n" +
	"chr1\tRefSeq\tpseudogene\t2500000\t2501000\t.\t-\t.\tID=g2;Name=Gr5aP\n" +
	"chr1\tRefSeq\tgene\t4000000\t4001000\t.\t+\t.\tID=g3;Name=Obp56h\n" +
	"chr2\tRefSeq\tgene\t500000\t502000\t.\t+\t.\tID=g4;Name=Ir8a\n"

const sampleAssembly = `
[[chromosome]]
name       = "chr1"
label      = "Chr. 1"
length     = 30000000
centromere = 12000000

[[chromosome]]
name       = "chr2"
label      = "Chr. 2"
length     = 20000000
centromere = 8000000
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOptions(t *testing.T) Options {
	dir := t.TempDir()
	return Options{
		Input:    writeFile(t, dir, "features.gff3", sampleGFF),
		Assembly: writeFile(t, dir, "assembly.toml", sampleAssembly),
		Formats:  []string{FormatSVG, FormatJSON},
		Logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing input", Options{Assembly: "a.toml"}, errors.ErrCodeInvalidInput},
		{"missing assembly", Options{Input: "f.gff3"}, errors.ErrCodeInvalidInput},
		{
			"bad format",
			Options{Input: "f.gff3", Assembly: "a.toml", Formats: []string{"bmp"}},
			errors.ErrCodeInvalidFormat,
		},
		{
			"bad style",
			Options{Input: "f.gff3", Assembly: "a.toml", Style: "sepia"},
			errors.ErrCodeInvalidStyle,
		},
		{
			"negative marker height",
			Options{Input: "f.gff3", Assembly: "a.toml", Geometry: layout.Geometry{MarkerHeight: -1, Slope: 1}},
			errors.ErrCodeInvalidGeometry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "f.gff3", Assembly: "a.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Geometry != layout.DefaultGeometry() {
		t.Errorf("Geometry = %+v, want defaults", opts.Geometry)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != StyleClassic {
		t.Errorf("Style = %q, want classic", opts.Style)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale = %v, want %v", opts.PNGScale, DefaultPNGScale)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	result, err := runner.Execute(context.Background(), testOptions(t))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.RunID == uuid.Nil {
		t.Error("RunID not assigned")
	}
	// Obp56h matches no class rule and is dropped.
	if result.Stats.FeatureCount != 3 {
		t.Errorf("FeatureCount = %d, want 3", result.Stats.FeatureCount)
	}
	if result.Stats.TrackCount != 2 {
		t.Errorf("TrackCount = %d, want 2", result.Stats.TrackCount)
	}
	if result.Stats.MarkerCount != 3 {
		t.Errorf("MarkerCount = %d, want 3", result.Stats.MarkerCount)
	}
	if result.FeatureHash == "" {
		t.Error("FeatureHash not set")
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "Chr. 1") {
		t.Errorf("svg artifact malformed: %.120s", svg)
	}
	jsonOut := string(result.Artifacts[FormatJSON])
	if !strings.Contains(jsonOut, `"label": "Chr. 2"`) {
		t.Errorf("json artifact missing track: %.120s", jsonOut)
	}

	// Tracks come back in assembly (top to bottom) order, placed.
	if result.Tracks[0].Label != "Chr. 1" || result.Tracks[1].Label != "Chr. 2" {
		t.Errorf("track order: %q, %q", result.Tracks[0].Label, result.Tracks[1].Label)
	}
	if result.Tracks[0].Extent == 0 {
		t.Error("first track not placed")
	}
}

func TestExecuteCaching(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fileCache, nil, log.NewWithOptions(io.Discard, log.Options{}))
	opts := testOptions(t)
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.ParseHit {
		t.Error("second run should hit the feature cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses both caches.
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute() error = %v", err)
	}
	if third.CacheInfo.ParseHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not report cache hits")
	}
}

func TestExecuteMissingInput(t *testing.T) {
	runner := NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	opts := testOptions(t)
	opts.Input = filepath.Join(t.TempDir(), "absent.gff3")

	_, err := runner.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
}

func TestBuildTracks(t *testing.T) {
	asm := &genome.Assembly{Chromosomes: []genome.Chromosome{
		{Name: "chr1", Label: "Chr. 1", Length: 30000000, Centromere: 12000000},
		{Name: "chr2", Length: 20000000, Centromere: 8000000},
	}}
	features := []feature.Classified{
		{
			Feature: feature.Feature{Chromosome: "chr1", Position: 1, Strand: feature.StrandMinus,
				Category: feature.CategoryPseudogene, Name: "Gr5aP"},
			Class: feature.ClassRule{Label: "GRs", Color: "#b326ff"},
		},
		{
			Feature: feature.Feature{Chromosome: "chrX", Position: 2, Name: "Ir8a"},
			Class:   feature.ClassRule{Label: "IRs", Color: "orange"},
		},
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	tracks := BuildTracks(features, asm, logger)

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	// Unlabeled chromosomes fall back to the sequence name.
	if tracks[1].Label != "chr2" {
		t.Errorf("label = %q, want chr2", tracks[1].Label)
	}
	if len(tracks[0].Markers) != 1 {
		t.Fatalf("chr1 has %d markers, want 1 (chrX feature skipped)", len(tracks[0].Markers))
	}

	m := tracks[0].Markers[0]
	if m.Direction != layout.Left {
		t.Error("minus strand should face left")
	}
	if m.Filled {
		t.Error("pseudogene should be unfilled")
	}
	if m.Color != "#b326ff" {
		t.Errorf("color = %q, want class color", m.Color)
	}
}

func TestKeyEntries(t *testing.T) {
	rules := []feature.ClassRule{
		{Prefix: "gr", Label: "GRs", Color: "#b326ff"},
		{Prefix: "ir", Label: "IRs", Color: "orange"},
	}
	features := []feature.Classified{
		{Class: feature.ClassRule{Label: "IRs", Color: "orange"}},
		{Class: feature.ClassRule{Label: "ORs", Color: "green"}},
		{Class: feature.ClassRule{Label: "IRs", Color: "orange"}},
	}

	entries := keyEntries(rules, features)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Rule order first, then unlisted classes.
	if entries[0].Label != "IRs" || entries[1].Label != "ORs" {
		t.Errorf("entries = %+v", entries)
	}
	// GRs never appeared in the features and is left out.
	for _, e := range entries {
		if e.Label == "GRs" {
			t.Error("unused class listed in key")
		}
	}
}
