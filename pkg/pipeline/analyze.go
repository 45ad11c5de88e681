package pipeline

import (
	"context"
	"time"

	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/observability"
	"github.com/roomml/roomml/pkg/roomml"
	"github.com/roomml/roomml/pkg/validate"
)

// analysisSchema versions the cached form of [Analysis].
const analysisSchema = 1

// Analysis is the outcome of the parse, validate and layout stages.
//
// Root and Box are nil when the source failed to parse; Issues then holds a
// single error at [roomml.RootPath].
type Analysis struct {
	Root   *roomml.Node     `json:"root,omitempty"`
	Issues []validate.Issue `json:"issues"`
	Box    *layout.Box      `json:"box,omitempty"`

	// Hash is the content hash of the encoded analysis. Artifacts are
	// cached under it.
	Hash string `json:"-"`

	ParseTime    time.Duration `json:"-"`
	ValidateTime time.Duration `json:"-"`
	LayoutTime   time.Duration `json:"-"`
}

// Parsed reports whether the source was a well-formed document.
func (a *Analysis) Parsed() bool { return a.Root != nil }

// Analyze runs parse, validate and layout on source without caching.
// Problems with the document are returned as issues, never as an error.
func Analyze(ctx context.Context, source []byte, opts Options) *Analysis {
	a := &Analysis{}
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnParseStart(ctx, len(source))
	root, err := parse(source, opts)
	a.ParseTime = time.Since(start)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, a.ParseTime, err)
		a.Issues = []validate.Issue{ParseIssue(err)}
		return a
	}
	a.Root = root
	nodes := countNodes(root)
	hooks.OnParseComplete(ctx, nodes, a.ParseTime, nil)

	start = time.Now()
	a.Issues = validate.Validate(root)
	a.ValidateTime = time.Since(start)
	errs, warns := validate.Count(a.Issues)
	hooks.OnValidateComplete(ctx, errs, warns, a.ValidateTime)

	start = time.Now()
	hooks.OnLayoutStart(ctx, nodes)
	a.Box = layout.Tree(root)
	a.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, a.Box.Count(), a.LayoutTime)

	return a
}

// ParseIssue converts a parse failure into the issue reported for it.
func ParseIssue(err error) validate.Issue {
	return validate.Issue{
		Level:   validate.LevelError,
		Path:    roomml.RootPath,
		Message: apperr.UserMessage(err),
	}
}

func parse(source []byte, opts Options) (*roomml.Node, error) {
	if opts.IsYAML() {
		return roomml.ParseYAML(source)
	}
	return roomml.Parse(source)
}

func countNodes(root *roomml.Node) int {
	n := 0
	for _, c := range root.Count() {
		n += c
	}
	return n
}
