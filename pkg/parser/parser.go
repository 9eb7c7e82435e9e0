// Package parser turns the two JSON AST shapes emitted by the Solidity
// compiler into the node model of pkg/ast.
//
// solc has produced two shapes over its lifetime: the compact form
// (available from 0.4.12, the only form from 0.8.0 on), where every node
// carries a "nodeType" tag and named fields, and the legacy form (up to
// 0.7.6), where every node carries a "name" tag, an "attributes" object of
// scalars and a flat "children" list whose meaning depends on the kind.
// The two dispatchers here share the node model and nothing else; each
// format is handled by its own closed switch with a default arm, so adding
// a kind to one format never silently changes the other.
package parser

import (
	"encoding/json"
	"fmt"

	"solast/pkg/ast"
)

// DefaultMaxDepth bounds recursive descent. Real contract ASTs stay well
// under a few hundred levels; anything deeper is treated as hostile input
// and rejected with ErrMaxDepth instead of exhausting the stack.
const DefaultMaxDepth = 1024

// DetectFormat inspects a decoded document root and reports which AST
// shape it uses. Compact roots carry "nodeType", legacy roots carry "name".
func DetectFormat(raw map[string]any) (Format, error) {
	if _, ok := raw["nodeType"]; ok {
		return FormatCompact, nil
	}
	if _, ok := raw["name"]; ok {
		return FormatLegacy, nil
	}
	return "", fmt.Errorf("parser: document root has neither %q nor %q, cannot detect AST format", "nodeType", "name")
}

// Parse decodes data, detects the AST format from the root and routes to
// the matching dispatcher. The root must be a SourceUnit in either format.
func Parse(data []byte) (*ast.SourceUnit, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	format, err := DetectFormat(raw)
	if err != nil {
		return nil, err
	}
	if format == FormatLegacy {
		return legacyUnit(raw)
	}
	return compactUnit(raw)
}

// ParseCompact parses a compact-format AST document rooted at a SourceUnit.
func ParseCompact(data []byte) (*ast.SourceUnit, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return compactUnit(raw)
}

// ParseLegacy parses a legacy-format AST document rooted at a SourceUnit.
func ParseLegacy(data []byte) (*ast.SourceUnit, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return legacyUnit(raw)
}

// ParseCompactNode parses a single decoded compact node of any kind.
func ParseCompactNode(raw map[string]any) (ast.Node, error) {
	p := &compactParser{maxDepth: DefaultMaxDepth}
	return p.parseNode(rawNode(raw))
}

// ParseLegacyNode parses a single decoded legacy node of any kind.
func ParseLegacyNode(raw map[string]any) (ast.Node, error) {
	p := &legacyParser{maxDepth: DefaultMaxDepth}
	return p.parseNode(rawNode(raw))
}

func decodeDocument(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parser: decode AST document: %w", err)
	}
	return raw, nil
}

func compactUnit(raw map[string]any) (*ast.SourceUnit, error) {
	p := &compactParser{maxDepth: DefaultMaxDepth}
	node, err := p.parseNode(rawNode(raw))
	if err != nil {
		return nil, err
	}
	unit, ok := node.(*ast.SourceUnit)
	if !ok {
		return nil, fmt.Errorf("parser: document root is %s, want %s", node.NodeType(), ast.NodeSourceUnit)
	}
	return unit, nil
}

func legacyUnit(raw map[string]any) (*ast.SourceUnit, error) {
	p := &legacyParser{maxDepth: DefaultMaxDepth}
	node, err := p.parseNode(rawNode(raw))
	if err != nil {
		return nil, err
	}
	unit, ok := node.(*ast.SourceUnit)
	if !ok {
		return nil, fmt.Errorf("parser: document root is %s, want %s", node.NodeType(), ast.NodeSourceUnit)
	}
	return unit, nil
}
