package sink

import (
	"encoding/json"

	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/scene"
	"github.com/roomml/roomml/pkg/validate"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	source string
	issues []validate.Issue
	scene  *scene.Scene
}

// WithJSONSource records the document name (usually a file path).
func WithJSONSource(name string) JSONOption { return func(r *jsonRenderer) { r.source = name } }

// WithJSONIssues includes the validation issues. The output always carries
// an "issues" array, empty when this option is not given.
func WithJSONIssues(issues []validate.Issue) JSONOption {
	return func(r *jsonRenderer) { r.issues = issues }
}

// WithJSONScene includes the room geometry built by [scene.Build].
func WithJSONScene(s *scene.Scene) JSONOption { return func(r *jsonRenderer) { r.scene = s } }

type jsonOutput struct {
	Source   string           `json:"source,omitempty"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
	Issues   []validate.Issue `json:"issues"`
	Box      *layout.Box      `json:"box,omitempty"`
	Scene    *scene.Scene     `json:"scene,omitempty"`
}

// RenderJSON exports the box tree and its diagnostics as a pretty-printed
// JSON document. box may be nil when the document failed to parse.
//
// It does not modify its inputs and is safe to call concurrently.
func RenderJSON(box *layout.Box, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Source: r.source,
		Issues: r.issues,
		Box:    box,
		Scene:  r.scene,
	}
	if out.Issues == nil {
		out.Issues = []validate.Issue{}
	}
	out.Errors, out.Warnings = validate.Count(r.issues)

	return json.MarshalIndent(out, "", "  ")
}
