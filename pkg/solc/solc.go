// Package solc locates Solidity compiler binaries, invokes them and turns
// what they print into typed syntax trees.
//
// A compiler release is chosen from an explicit pin or from the pragma
// lines of the input, a binary for that release is resolved from the
// solc-select and py-solc-x artifact caches (or $PATH), and the AST flavor
// is picked per release: the legacy form for releases that predate the
// compact writer, the compact form everywhere else. The compiler's stdout
// is then demultiplexed into per-unit JSON documents and handed to
// pkg/parser.
package solc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"solast/pkg/ast"
	"solast/pkg/parser"
)

// Runner drives a compiler binary over Solidity sources. The zero value
// resolves the release, the binary and the AST flavor per input file.
type Runner struct {
	// Version pins the compiler release ("0.8.19"). Empty means derive it
	// from the pragma lines of each input.
	Version string
	// Binary is an explicit compiler path. Empty means search the
	// artifact caches and $PATH for the resolved release.
	Binary string
	// Format forces an AST flavor. Empty means pick one for the release.
	Format parser.Format
	// Remappings are import remappings in "prefix=target" form, passed to
	// the compiler verbatim.
	Remappings []string
}

// Unit is one source unit recovered from a compiler run.
type Unit struct {
	Path string
	AST  *ast.SourceUnit
}

// AST compiles file and parses every source unit the compiler prints.
func (r *Runner) AST(ctx context.Context, file string) ([]Unit, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("solc: read %s: %w", file, err)
	}
	version := normalizeVersion(r.Version)
	if version == "" && (r.Binary == "" || r.Format == "") {
		version, err = ExtractPragmaVersion(string(source))
		if err != nil {
			return nil, fmt.Errorf("%w in %s", ErrNoPragma, file)
		}
	}
	format, err := SelectFormat(version, r.Format)
	if err != nil {
		return nil, err
	}
	binary := r.Binary
	if binary == "" {
		binary, err = LocateBinary(version)
		if err != nil {
			return nil, err
		}
	}
	output, err := r.compile(ctx, binary, astFlag(format), file)
	if err != nil {
		return nil, err
	}
	return parseOutput(file, output, format)
}

// compile runs the binary and returns its stdout. Compiler diagnostics go
// to stderr and are folded into the error on failure.
func (r *Runner) compile(ctx context.Context, binary, flag, file string) (string, error) {
	args := append([]string{}, r.Remappings...)
	args = append(args, flag, file)
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return "", fmt.Errorf("solc: compile %s: %v: %s", file, err, detail)
		}
		return "", fmt.Errorf("solc: compile %s: %w", file, err)
	}
	return stdout.String(), nil
}

// parseOutput carves compiler stdout into source-unit documents and
// parses each one. Output without section banners is treated as a single
// document covering file.
func parseOutput(file, output string, format parser.Format) ([]Unit, error) {
	sections := splitSections(output)
	if len(sections) == 0 {
		body := strings.TrimSpace(output)
		if !strings.HasPrefix(body, "{") {
			return nil, fmt.Errorf("solc: no source units in compiler output for %s", file)
		}
		sections = []section{{path: file, body: body}}
	}
	units := make([]Unit, 0, len(sections))
	for _, sec := range sections {
		var (
			root *ast.SourceUnit
			err  error
		)
		if format == parser.FormatLegacy {
			root, err = parser.ParseLegacy([]byte(sec.body))
		} else {
			root, err = parser.ParseCompact([]byte(sec.body))
		}
		if err != nil {
			return nil, fmt.Errorf("solc: source unit %s: %w", sec.path, err)
		}
		units = append(units, Unit{Path: sec.path, AST: root})
	}
	return units, nil
}

// section is one "======= path =======" block of compiler stdout.
type section struct {
	path string
	body string
}

// splitSections demultiplexes compiler stdout. Every source unit is
// introduced by a banner line naming its path; the JSON body starts at
// the first "{" after the banner and runs to the next banner. Anything
// before the first banner and chatter between banner and body, such as
// "JSON AST (compact format):", is skipped.
func splitSections(output string) []section {
	var (
		sections []section
		current  *section
		body     []string
	)
	flush := func() {
		if current == nil {
			return
		}
		current.body = strings.Join(body, "\n")
		if strings.TrimSpace(current.body) != "" {
			sections = append(sections, *current)
		}
		current = nil
		body = nil
	}
	for _, line := range strings.Split(output, "\n") {
		if path, ok := sectionBanner(line); ok {
			flush()
			current = &section{path: path}
			continue
		}
		if current == nil {
			continue
		}
		if len(body) == 0 && !strings.HasPrefix(strings.TrimSpace(line), "{") {
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}

func sectionBanner(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "=======") || !strings.HasSuffix(trimmed, "=======") {
		return "", false
	}
	path := strings.TrimSpace(strings.Trim(trimmed, "="))
	if path == "" {
		return "", false
	}
	return path, true
}
