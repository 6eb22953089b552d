// Package pipeline provides the core plotting pipeline for karyoplot.
//
// This package implements the complete parse → layout → render pipeline used
// by every CLI entry point. Centralizing it keeps behavior consistent and the
// caching logic in one place.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read an annotation table (GFF3) or a features JSON file and
//     classify features into display classes
//  2. Layout: group features into per-chromosome tracks and place their
//     markers into non-overlapping lanes
//  3. Render: compose the figure and generate output formats (SVG, PNG, PDF,
//     JSON)
//
// Parse results and rendered artifacts are cached by content hash; layout is
// recomputed every run since placement is fast and deterministic.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:    "annotations.gff3",
//	    Assembly: "assembly.toml",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/karyoviz/karyoplot/pkg/cache"
	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
	"github.com/karyoviz/karyoplot/pkg/plot/compose"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Style constants for visual styles.
const (
	StyleClassic = "classic"
	StyleMono    = "mono"
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleClassic

// DefaultPNGScale is the default PNG resolution multiplier.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleClassic: true,
	StyleMono:    true,
}

// Options contains all configuration for the plotting pipeline.
// The struct supports JSON serialization for job queues and debugging.
type Options struct {
	// Parse options
	Input   string `json:"input"`             // GFF3 annotation table or features JSON
	Rules   string `json:"rules,omitempty"`   // class rules TOML; empty means built-in defaults
	Refresh bool   `json:"refresh,omitempty"` // bypass the cache and re-parse

	// Layout options
	Assembly string          `json:"assembly,omitempty"` // assembly TOML, required for layout and render
	Geometry layout.Geometry `json:"geometry,omitzero"`  // zero value means DefaultGeometry

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	NoKey    bool     `json:"no_key,omitempty"` // omit the color key from the figure

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs and hooks.
	RunID uuid.UUID

	// Features are the classified features, in input order.
	Features []feature.Classified

	// FeatureHash is the content hash of the classified feature set.
	FeatureHash string

	// Tracks are the placed per-chromosome tracks, in figure order
	// (top to bottom).
	Tracks []*layout.Track

	// Figure is the composed figure the artifacts were rendered from.
	Figure *compose.Figure

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FeatureCount int
	TrackCount   int
	MarkerCount  int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for the cacheable pipeline stages.
type CacheInfo struct {
	ParseHit  bool // whether the feature set came from cache
	RenderHit bool // whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: classic, mono)", style)
	}
	return nil
}

// ValidateGeometry checks that marker geometry constants are usable.
func ValidateGeometry(g layout.Geometry) error {
	if g.MarkerHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "marker height must be positive")
	}
	if g.Slope <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "slope must be positive")
	}
	if g.SmallGap < 0 || g.LargeGap < 0 || g.TinyGap < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "gaps must be non-negative")
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForLayout checks required fields and applies defaults for layout.
func (o *Options) ValidateForLayout() error {
	if o.Assembly == "" {
		return errors.New(errors.ErrCodeInvalidInput, "assembly file is required")
	}
	if (o.Geometry == layout.Geometry{}) {
		o.Geometry = layout.DefaultGeometry()
	}
	o.setLoggerDefault()
	return ValidateGeometry(o.Geometry)
}

// ValidateForRender validates and applies defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.setLoggerDefault()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// FeatureKeyOpts returns cache key options for the parse stage.
func (o *Options) FeatureKeyOpts(rulesHash string) cache.FeatureKeyOpts {
	return cache.FeatureKeyOpts{RulesHash: rulesHash}
}

// ArtifactKeyOpts returns cache key options for one rendered artifact.
// paramsHash fingerprints everything besides the feature set that shapes the
// figure: geometry, assembly, and the key flag.
func (o *Options) ArtifactKeyOpts(format, paramsHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Style:        o.Style,
		Scale:        o.PNGScale,
		GeometryHash: paramsHash,
	}
}
