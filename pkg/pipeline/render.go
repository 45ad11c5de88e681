package pipeline

import (
	"context"
	"fmt"

	"github.com/roomml/roomml/pkg/scene"
	"github.com/roomml/roomml/pkg/scene/sink"
)

// Render generates output artifacts in the requested formats without
// caching. The scene must have been built from the same analysis.
func Render(ctx context.Context, a *Analysis, s *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, format, a, s, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(ctx context.Context, format string, a *Analysis, s *scene.Scene, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return sink.RenderJSON(a.Box,
			sink.WithJSONSource(opts.Source),
			sink.WithJSONIssues(a.Issues),
			sink.WithJSONScene(s),
		)
	case FormatSVG:
		return sink.RenderSVG(s), nil
	case FormatDOT:
		return []byte(sink.ToDOT(a.Box)), nil
	case FormatTree:
		return sink.RenderTreeSVG(ctx, a.Box)
	case FormatMesh:
		return sink.RenderMesh(s, sink.WithMeshCells(opts.MeshCells))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
