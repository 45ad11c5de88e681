// Package pipeline provides the parse → validate → layout → render pipeline
// for RoomML documents.
//
// This package is the single place where the stages are wired together, so
// the CLI, the HTTP server and the live-reload watcher behave identically.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: decode JSON (with comments) or YAML into a node tree
//  2. Validate: collect errors and warnings for the whole tree
//  3. Layout: compute a box for every layout participant
//  4. Render: build room geometry and write it in the requested formats
//
// A parse failure is reported as a single error issue at the root path and
// stops the pipeline after stage 1. Validation errors stop it after stage 3:
// the layout is still returned so that tools can show where the problem is.
// Neither case is a Go error.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, source, pipeline.Options{
//	    Source:  "house.json",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	if result.Blocked() {
//	    // result.Issues explains why
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/roomml/roomml/pkg/cache"
	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/roomml"
	"github.com/roomml/roomml/pkg/scene"
	"github.com/roomml/roomml/pkg/scene/sink"
	"github.com/roomml/roomml/pkg/validate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Watcher
// =============================================================================

// DefaultMeshCells is the default marching cubes resolution for mesh output.
const DefaultMeshCells = sink.DefaultMeshCells

// Format constants for output formats.
const (
	FormatJSON = "json" // box tree, issues and scene geometry
	FormatSVG  = "svg"  // top-down floor plan
	FormatDOT  = "dot"  // box tree as Graphviz source
	FormatTree = "tree" // box tree rendered by Graphviz
	FormatMesh = "mesh" // triangle meshes as JSON
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatTree: true,
	FormatMesh: true,
}

// FormatNames lists the supported formats in display order.
var FormatNames = []string{FormatJSON, FormatSVG, FormatDOT, FormatTree, FormatMesh}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source names the document, usually its file path. A name ending in
	// .yaml or .yml selects the YAML parser.
	Source string `json:"source,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	MeshCells int      `json:"mesh_cells,omitempty"`

	// Refresh ignores cached results (they are still written).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the parsed document, nil when parsing failed.
	Root *roomml.Node

	// Issues are the validation issues, or the single parse error.
	Issues []validate.Issue

	// Box is the layout tree, nil when parsing failed.
	Box *layout.Box

	// Scene is the room geometry, nil when rendering was blocked or no
	// format was requested.
	Scene *scene.Scene

	// SourceHash is the content hash of the source document.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Blocked reports whether the document has errors that prevent rendering.
func (r *Result) Blocked() bool { return validate.HasErrors(r.Issues) }

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes        int
	Rooms        int
	Furniture    int
	Openings     int
	Boxes        int
	Errors       int
	Warnings     int
	ParseTime    time.Duration
	ValidateTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalysisHit bool // Whether parse, validation and layout came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames, ", "))
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

// ValidateMeshCells checks that a mesh resolution is usable.
func ValidateMeshCells(cells int) error {
	if cells < 1 || cells > 1000 {
		return fmt.Errorf("invalid mesh_cells: %d (must be between 1 and 1000)", cells)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
// Formats are left empty: a run without formats stops after layout.
func (o *Options) SetRenderDefaults() {
	if o.MeshCells == 0 {
		o.MeshCells = DefaultMeshCells
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
	return ValidateMeshCells(o.MeshCells)
}

// IsYAML reports whether the source should be parsed as YAML.
func (o *Options) IsYAML() bool {
	return o.Source != "" && roomml.IsYAMLPath(o.Source)
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// LayoutKeyOpts returns cache key options for the analysis stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Schema: analysisSchema}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Only the mesh depends on the resolution.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatMesh {
		opts.MeshCells = o.MeshCells
	}
	return opts
}
