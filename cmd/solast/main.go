package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"solast/pkg/ast"
	"solast/pkg/driver"
	"solast/pkg/parser"
	"solast/pkg/sig"
	"solast/pkg/solc"
)

const cliToolVersion = "solast 0.1.0-dev"

var errManifestNotFound = errors.New("solast.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "parse":
		return runParse(args[1:])
	case "check":
		return runCheck(args[1:])
	case "selectors":
		return runSelectors(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func runParse(args []string) int {
	flags := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	format := flags.String("format", "auto", "AST flavor: auto, compact or legacy")
	binary := flags.String("solc", "", "compiler binary for .sol inputs")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "solast parse requires exactly one .sol or .json file")
		return 1
	}

	units, err := loadUnits(flags.Arg(0), *format, *binary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for _, unit := range units {
		printOutline(os.Stdout, unit)
	}
	return 0
}

func runCheck(args []string) int {
	start := "."
	if len(args) == 1 {
		start = args[0]
	} else if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, err := loadManifestFrom(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	runner, err := manifest.Runner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
		return 1
	}
	sources, err := collectSources(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to collect sources: %v\n", err)
		return 1
	}
	if len(sources) == 0 {
		fmt.Fprintf(os.Stderr, "no Solidity sources found for %s\n", manifest.Path)
		return 1
	}

	root := filepath.Dir(manifest.Path)
	failed := 0
	for _, file := range sources {
		units, err := runner.AST(context.Background(), file)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stdout, "error %s: %v\n", displayPath(root, file), err)
			continue
		}
		fmt.Fprintf(os.Stdout, "ok    %s (%d units)\n", displayPath(root, file), len(units))
	}
	fmt.Fprintf(os.Stdout, "checked %d files, %d failed\n", len(sources), failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func runSelectors(args []string) int {
	flags := flag.NewFlagSet("selectors", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	format := flags.String("format", "auto", "AST flavor: auto, compact or legacy")
	binary := flags.String("solc", "", "compiler binary for .sol inputs")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "solast selectors requires exactly one .sol or .json file")
		return 1
	}

	units, err := loadUnits(flags.Arg(0), *format, *binary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for _, unit := range units {
		printSelectors(os.Stdout, unit)
	}
	return 0
}

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "solast deps requires a subcommand (install, update)")
		return 1
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintf(os.Stderr, "solast deps install does not take arguments (received %s)\n", strings.Join(args[1:], " "))
			return 1
		}
		return runDepsInstall()
	case "update":
		return runDepsUpdate(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return 1
	}
}

// loadUnits turns a command line argument into parsed source units. A .json
// argument is read as compiler output directly; anything else is handed to
// the compiler.
func loadUnits(path, formatName, binary string) ([]solc.Unit, error) {
	format, err := resolveFormat(formatName)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var unit *ast.SourceUnit
		switch format {
		case parser.FormatCompact:
			unit, err = parser.ParseCompact(data)
		case parser.FormatLegacy:
			unit, err = parser.ParseLegacy(data)
		default:
			unit, err = parser.Parse(data)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []solc.Unit{{Path: path, AST: unit}}, nil
	}

	runner := &solc.Runner{Binary: binary, Format: format}
	return runner.AST(context.Background(), path)
}

func resolveFormat(name string) (parser.Format, error) {
	switch name {
	case "", "auto":
		return "", nil
	case "compact":
		return parser.FormatCompact, nil
	case "legacy":
		return parser.FormatLegacy, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, compact or legacy)", name)
	}
}

// printOutline writes a two level summary of a unit: its top level
// declarations, and the members of each contract.
func printOutline(w io.Writer, unit solc.Unit) {
	fmt.Fprintf(w, "%s: %s\n", unit.Path, nodeRef(unit.AST))
	for _, node := range unit.AST.Nodes {
		fmt.Fprintf(w, "  %s\n", nodeLine(node))
		if contract, ok := node.(*ast.ContractDefinition); ok {
			for _, member := range contract.Nodes {
				fmt.Fprintf(w, "    %s\n", nodeLine(member))
			}
		}
	}
}

func nodeLine(node ast.Node) string {
	ref := nodeRef(node)
	if label := nodeLabel(node); label != "" {
		return ref + " " + label
	}
	return ref
}

// nodeRef renders "Kind #id"; a legacy root has no id of its own and is
// rendered bare.
func nodeRef(node ast.Node) string {
	if id := node.Meta().ID; id != ast.RootID {
		return fmt.Sprintf("%s #%d", node.NodeType(), id)
	}
	return string(node.NodeType())
}

// nodeLabel picks the most recognisable name a node carries.
func nodeLabel(node ast.Node) string {
	switch n := node.(type) {
	case *ast.PragmaDirective:
		return strings.Join(n.Literals, " ")
	case *ast.ImportDirective:
		return n.Path
	case *ast.ContractDefinition:
		return strings.TrimSpace(n.Kind + " " + n.Name)
	case *ast.FunctionDefinition:
		if n.Name == "" {
			return n.Kind
		}
		return n.Name
	}
	if decl, ok := node.(ast.Declaration); ok {
		return decl.DeclName()
	}
	return ""
}

// printSelectors lists the ABI surface of every contract in a unit: 4-byte
// selectors for public and external functions, topic hashes for events.
// Members whose parameter types have no canonical ABI form are reported as
// warnings rather than failing the whole listing.
func printSelectors(w io.Writer, unit solc.Unit) {
	for _, node := range unit.AST.Nodes {
		contract, ok := node.(*ast.ContractDefinition)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", contract.Kind, contract.Name)
		for _, member := range contract.Nodes {
			switch n := member.(type) {
			case *ast.FunctionDefinition:
				if !hasSelector(n) {
					continue
				}
				signature, err := sig.Function(n)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: %s.%s: %v\n", contract.Name, n.Name, err)
					continue
				}
				selector, err := sig.Selector(n)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: %s.%s: %v\n", contract.Name, n.Name, err)
					continue
				}
				fmt.Fprintf(w, "  %x  %s\n", selector, signature)
			case *ast.EventDefinition:
				if n.Anonymous {
					continue
				}
				signature, err := sig.Event(n)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: %s.%s: %v\n", contract.Name, n.Name, err)
					continue
				}
				topic, err := sig.EventTopic(n)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: %s.%s: %v\n", contract.Name, n.Name, err)
					continue
				}
				fmt.Fprintf(w, "  %s  %s\n", topic.Hex(), signature)
			}
		}
	}
}

// hasSelector reports whether a function occupies a slot in the contract's
// external dispatch table. Constructors, fallback and receive functions do
// not; neither do internal and private functions. An empty visibility is an
// old-compiler default meaning public.
func hasSelector(fn *ast.FunctionDefinition) bool {
	if fn.Kind != "" && fn.Kind != "function" {
		return false
	}
	if fn.Name == "" {
		return false
	}
	switch fn.Visibility {
	case "public", "external", "":
		return true
	}
	return false
}

// collectSources walks the manifest's source directories for .sol files.
// Hidden directories and the checkout targets of declared dependencies are
// skipped so vendored libraries are not checked as project sources.
func collectSources(manifest *driver.Manifest) ([]string, error) {
	skip := make(map[string]struct{}, len(manifest.DependencyOrder))
	for _, name := range manifest.DependencyOrder {
		skip[filepath.Clean(manifest.DependencyDir(name))] = struct{}{}
	}

	var files []string
	seen := make(map[string]struct{})
	for _, dir := range manifest.SourceDirs() {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if path != dir && strings.HasPrefix(entry.Name(), ".") {
					return filepath.SkipDir
				}
				if _, ok := skip[filepath.Clean(path)]; ok {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".sol") {
				return nil
			}
			if _, ok := seen[path]; ok {
				return nil
			}
			seen[path] = struct{}{}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func runDepsInstall() int {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	if len(manifest.DependencyOrder) == 0 {
		fmt.Fprintln(os.Stdout, "No dependencies declared.")
		return 0
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	for _, name := range manifest.DependencyOrder {
		line, err := installDependency(manifest, name, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to install %s: %v\n", name, err)
			return 1
		}
		fmt.Fprintln(os.Stdout, line)
	}
	fmt.Fprintln(os.Stdout, "Dependencies installed.")
	return 0
}

func runDepsUpdate(targets []string) int {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}

	update := manifest.DependencyOrder
	if len(targets) > 0 {
		update = make([]string, 0, len(targets))
		for _, target := range targets {
			if _, ok := manifest.Dependencies[target]; !ok {
				fmt.Fprintf(os.Stderr, "dependency %q not declared in manifest\n", target)
				return 1
			}
			update = append(update, target)
		}
	}
	if len(update) == 0 {
		fmt.Fprintln(os.Stdout, "No dependencies declared.")
		return 0
	}

	for _, name := range update {
		line, err := installDependency(manifest, name, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to update %s: %v\n", name, err)
			return 1
		}
		fmt.Fprintln(os.Stdout, line)
	}
	fmt.Fprintln(os.Stdout, "Dependencies updated.")
	return 0
}

// installDependency brings one dependency checkout into place and returns a
// log line describing the result. With refresh set, an existing checkout is
// replaced by a fresh clone so floating branches pick up new commits.
func installDependency(manifest *driver.Manifest, name string, refresh bool) (string, error) {
	spec := manifest.Dependencies[name]
	if spec == nil {
		return "", fmt.Errorf("dependency %q has no descriptor", name)
	}
	dir := manifest.DependencyDir(name)
	root := filepath.Dir(manifest.Path)

	if spec.Git == "" {
		// Path-only dependencies are linked in place, never fetched.
		info, err := os.Stat(dir)
		if err != nil {
			return "", fmt.Errorf("path dependency %s: %w", name, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("path dependency %s: %s is not a directory", name, dir)
		}
		return fmt.Sprintf("linked %s (%s)", name, displayPath(root, dir)), nil
	}

	if !refresh {
		if _, err := os.Stat(dir); err == nil {
			return fmt.Sprintf("%s already installed (%s)", name, displayPath(root, dir)), nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	commit, err := cloneDependency(dir, spec)
	if err != nil {
		return "", err
	}
	verb := "installed"
	if refresh {
		verb = "updated"
	}
	return fmt.Sprintf("%s %s %s (%s)", verb, name, pinnedVersion(spec.Reference(), commit), displayPath(root, dir)), nil
}

// cloneDependency clones into a temporary sibling of the target directory,
// checks out the pinned revision when one is declared, then swaps the
// checkout into place.
func cloneDependency(dir string, spec *driver.DependencySpec) (string, error) {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", err
	}
	tmpDir, err := os.MkdirTemp(parent, ".fetch-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               spec.Git,
		Depth:             0,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git clone %s: %w", spec.Git, err)
	}

	var commit string
	if ref := spec.Reference(); ref != "" {
		hash, err := repo.ResolveRevision(gitRevision(spec))
		if err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", fmt.Errorf("resolve revision %s: %w", ref, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", err
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", fmt.Errorf("git checkout %s: %w", ref, err)
		}
		commit = hash.String()
	} else {
		head, err := repo.Head()
		if err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", err
		}
		commit = head.Hash().String()
	}

	if err := os.RemoveAll(dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := os.Rename(tmpDir, dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return commit, nil
}

// gitRevision maps the manifest pin onto a git revision expression.
func gitRevision(spec *driver.DependencySpec) plumbing.Revision {
	switch {
	case spec.Rev != "":
		return plumbing.Revision(spec.Rev)
	case spec.Tag != "":
		return plumbing.Revision("refs/tags/" + spec.Tag)
	case spec.Branch != "":
		return plumbing.Revision("refs/heads/" + spec.Branch)
	}
	return ""
}

func pinnedVersion(reference, commit string) string {
	short := commit
	if len(short) > 12 {
		short = short[:12]
	}
	if reference == "" || reference == commit {
		return short
	}
	return fmt.Sprintf("%s@%s", reference, short)
}

func displayPath(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		start = cwd
	}
	absStart, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest search path %q: %w", start, err)
	}
	if info, statErr := os.Stat(absStart); statErr == nil && !info.IsDir() {
		absStart = filepath.Dir(absStart)
	}
	manifestPath, err := findManifest(absStart)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, driver.ManifestName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", driver.ManifestName, origin, errManifestNotFound)
		}
		dir = parent
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  solast parse [--format auto|compact|legacy] [--solc path] <file.sol|file.json>")
	fmt.Fprintln(os.Stderr, "  solast check [path]")
	fmt.Fprintln(os.Stderr, "  solast selectors [--format auto|compact|legacy] [--solc path] <file.sol|file.json>")
	fmt.Fprintln(os.Stderr, "  solast deps install")
	fmt.Fprintln(os.Stderr, "  solast deps update [dependency ...]")
	fmt.Fprintln(os.Stderr, "  solast version")
}
