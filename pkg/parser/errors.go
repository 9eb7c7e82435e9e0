package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies which of the two compiler JSON shapes a document uses.
type Format string

const (
	FormatCompact Format = "compact"
	FormatLegacy  Format = "legacy"
)

// Category sentinels carried in a NodeError's cause chain; match with
// errors.Is.
var (
	// ErrUnsupportedNode: the dispatch table has no extraction function
	// for the encountered kind tag.
	ErrUnsupportedNode = errors.New("unsupported node kind")

	// ErrMalformedNode: a required field is missing or mistyped, or a
	// recursively parsed child is of the wrong capability group for the
	// position it occupies.
	ErrMalformedNode = errors.New("malformed node")

	// ErrAmbiguousChildList: a legacy flat child list has fewer elements
	// than the node kind's minimum arity, or the elements present cannot
	// be attributed to grammar slots unambiguously.
	ErrAmbiguousChildList = errors.New("ambiguous child list")

	// ErrMaxDepth: the recursion guard tripped on pathologically nested
	// input.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// NodeError is the single structured parse error. Every failure, however
// deep, is wrapped into one of these exactly once, at the dispatch boundary
// of the node being extracted when the failure occurred; outer boundaries
// pass it through unchanged. Fields and Children carry enough raw context
// to reproduce and add support for an unhandled construct.
type NodeError struct {
	Format   Format
	Kind     string   // raw kind tag ("" when the tag itself is missing)
	Fields   []string // the raw node's field names, sorted
	Children []string // legacy only: tags of the immediate children
	Err      error
}

func (e *NodeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parser: could not parse %s node of kind %q", e.Format, e.Kind)
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (fields: %s)", strings.Join(e.Fields, " "))
	}
	if len(e.Children) > 0 {
		fmt.Fprintf(&b, " (children: %s)", strings.Join(e.Children, " "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *NodeError) Unwrap() error { return e.Err }
