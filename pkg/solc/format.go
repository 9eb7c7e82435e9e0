package solc

import (
	"fmt"

	"solast/pkg/parser"
)

// The AST surface moved twice over the compiler's lifetime: the compact
// writer shipped in 0.4.12 and the legacy writer was dropped in 0.8.0.
const (
	compactSince = "0.4.12"
	legacyUntil  = "0.8.0"
)

// SelectFormat picks the AST flavor to request from a compiler release.
// An explicit request wins when the release can produce that flavor and
// fails when it cannot; an empty request resolves to the compact form
// wherever the release supports it. An empty version, possible only when
// the caller pinned both binary and format, skips the release checks.
func SelectFormat(version string, requested parser.Format) (parser.Format, error) {
	version = normalizeVersion(version)
	switch requested {
	case parser.FormatCompact:
		if version != "" && CompareVersions(version, compactSince) < 0 {
			return "", fmt.Errorf("solc: release %s predates the compact AST (added in %s)", version, compactSince)
		}
		return parser.FormatCompact, nil
	case parser.FormatLegacy:
		if version != "" && CompareVersions(version, legacyUntil) >= 0 {
			return "", fmt.Errorf("solc: release %s no longer emits the legacy AST (removed in %s)", version, legacyUntil)
		}
		return parser.FormatLegacy, nil
	case "":
		if version != "" && CompareVersions(version, compactSince) < 0 {
			return parser.FormatLegacy, nil
		}
		return parser.FormatCompact, nil
	default:
		return "", fmt.Errorf("solc: unknown AST format %q", requested)
	}
}

// astFlag maps an AST flavor to the compiler flag that requests it.
func astFlag(format parser.Format) string {
	if format == parser.FormatLegacy {
		return "--ast-json"
	}
	return "--ast-compact-json"
}
