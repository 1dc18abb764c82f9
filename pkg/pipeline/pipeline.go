// Package pipeline provides the core diagram pipeline for Rosette.
//
// This package implements the complete layout → render pipeline shared by
// the CLI and the HTTP API. Centralizing it keeps behavior consistent
// across entry points and avoids duplicating the caching logic.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: map the document's magnitude series onto wedge geometry
//  2. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	lf, err := runner.ComputeLayout(ctx, doc, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, lf, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlenz/rosette/pkg/cache"
	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/rose"
	"github.com/mlenz/rosette/pkg/rose/layout"
	"github.com/mlenz/rosette/pkg/rose/styles"
)

// Default values shared by CLI and API.
const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultPNGScale is the default PNG resolution multiplier.
	DefaultPNGScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = rose.StyleClassic

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests. Zero values
// select the documented defaults, so an empty Options is valid.
type Options struct {
	// Layout options
	Scale            float64 `json:"scale,omitempty"`
	Counterclockwise bool    `json:"counterclockwise,omitempty"`
	LengthMode       bool    `json:"length_mode,omitempty"`
	CenterInset      float64 `json:"center_inset,omitempty"`
	Bins             int     `json:"bins,omitempty"`
	Separators       bool    `json:"separators,omitempty"`
	NoStats          bool    `json:"no_stats,omitempty"`
	DP               int     `json:"dp,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Legend    *bool    `json:"legend,omitempty"` // nil means on iff two series
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	PNGScale  float64  `json:"png_scale,omitempty"`
	VectorPNG bool     `json:"vector_png,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the input dataset.
	Document rose.Document

	// DocHash is the content hash of the document.
	DocHash string

	// Layout is the computed layout plus render metadata.
	Layout rose.LayoutFile

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Bins       int
	Warnings   []string
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
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
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: classic, ink)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Scale == 0 {
		o.Scale = layout.DefaultScale
	}
	if o.CenterInset == 0 {
		o.CenterInset = layout.DefaultCenterInset
	}
	if o.DP == 0 {
		o.DP = layout.DefaultDP
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// LayoutOptions converts the pipeline options to layout engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Scale:       o.Scale,
		Clockwise:   !o.Counterclockwise,
		LengthMode:  o.LengthMode,
		CenterInset: o.CenterInset,
		Bins:        o.Bins,
		Separators:  o.Separators,
		Stats:       !o.NoStats,
		DP:          o.DP,
	}
}

// WantLegend resolves the legend setting: explicit when set, otherwise on
// exactly when the document carries a comparison series.
func (o *Options) WantLegend(doc rose.Document) bool {
	if o.Legend != nil {
		return *o.Legend
	}
	return doc.HasSecondary()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Scale:       o.Scale,
		Clockwise:   !o.Counterclockwise,
		LengthMode:  o.LengthMode,
		CenterInset: o.CenterInset,
		Bins:        o.Bins,
		Separators:  o.Separators,
		Stats:       !o.NoStats,
		DP:          o.DP,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// PNG-only options are zeroed for other formats so they do not fragment
// the key space.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	scale := o.PNGScale
	vector := o.VectorPNG
	if format != FormatPNG {
		scale = 0
		vector = false
	}
	return cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		Colors:    o.Colors,
		Legend:    o.Legend != nil && *o.Legend,
		Width:     o.Width,
		Height:    o.Height,
		Scale:     scale,
		VectorPNG: vector,
	}
}
