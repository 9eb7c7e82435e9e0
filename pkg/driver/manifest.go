// Package driver loads and validates the solast.yml project manifest and
// turns it into configured compiler runs.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"solast/pkg/parser"
	"solast/pkg/solc"
)

// ManifestName is the file name looked up when locating a project.
const ManifestName = "solast.yml"

// Manifest represents the parsed contents of solast.yml.
type Manifest struct {
	Path            string
	Project         string
	Solc            SolcSpec
	Sources         []string
	Remappings      map[string]string
	RemappingOrder  []string
	Dependencies    map[string]*DependencySpec
	DependencyOrder []string
}

// SolcSpec pins how the compiler is invoked for this project.
type SolcSpec struct {
	Version string // release pin; empty means per-file pragma detection
	Binary  string // explicit compiler path; empty means artifact-cache search
	Format  string // auto, compact or legacy; empty means auto
}

// DependencySpec describes one contract library dependency.
type DependencySpec struct {
	Git    string // clone URL
	Rev    string // commit to check out
	Tag    string
	Branch string
	Path   string // checkout directory relative to the manifest; empty means lib/<name>
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses solast.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Project == "" {
		errs.Issues = append(errs.Issues, "project must be provided")
	}
	switch m.Solc.Format {
	case "", "auto", "compact", "legacy":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("solc.format must be auto, compact or legacy, not %q", m.Solc.Format))
	}
	if m.Solc.Version != "" && !isValidVersionConstraint(m.Solc.Version) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("solc.version %q is not a version constraint", m.Solc.Version))
	}
	for i, source := range m.Sources {
		if source == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources[%d] must be a non-empty path", i))
		}
	}
	for _, prefix := range m.RemappingOrder {
		if m.Remappings[prefix] == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("remapping %q must name a target directory", prefix))
		}
	}
	for _, name := range m.DependencyOrder {
		dep := m.Dependencies[name]
		if dep == nil {
			continue
		}
		for _, issue := range dep.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (d *DependencySpec) validate() []string {
	var errs []string
	if d.Git == "" && d.Path == "" {
		errs = append(errs, "must specify git or path")
	}
	refs := 0
	for _, ref := range []string{d.Rev, d.Tag, d.Branch} {
		if ref != "" {
			refs++
		}
	}
	if refs > 1 {
		errs = append(errs, "rev, tag and branch are mutually exclusive")
	}
	if d.Git == "" && refs > 0 {
		errs = append(errs, "rev, tag and branch apply only to git dependencies")
	}
	return errs
}

// Reference names the single revision selector of a git dependency, or
// "" when the default branch head is wanted.
func (d *DependencySpec) Reference() string {
	switch {
	case d.Rev != "":
		return d.Rev
	case d.Tag != "":
		return d.Tag
	default:
		return d.Branch
	}
}

// SourceDirs resolves the configured source directories against the
// manifest's directory. An empty sources list means the project root.
func (m *Manifest) SourceDirs() []string {
	root := filepath.Dir(m.Path)
	if len(m.Sources) == 0 {
		return []string{root}
	}
	dirs := make([]string, 0, len(m.Sources))
	for _, source := range m.Sources {
		dirs = append(dirs, filepath.Join(root, source))
	}
	return dirs
}

// RemappingArgs renders the remappings in declaration order as the
// "prefix=target" arguments solc takes on its command line.
func (m *Manifest) RemappingArgs() []string {
	if len(m.RemappingOrder) == 0 {
		return nil
	}
	args := make([]string, 0, len(m.RemappingOrder))
	for _, prefix := range m.RemappingOrder {
		args = append(args, prefix+"="+m.Remappings[prefix])
	}
	return args
}

// DependencyDir resolves the checkout directory of a dependency: its path
// override when set, else lib/<name>, both relative to the manifest's
// directory.
func (m *Manifest) DependencyDir(name string) string {
	dir := filepath.Join("lib", name)
	if dep := m.Dependencies[name]; dep != nil && dep.Path != "" {
		dir = dep.Path
	}
	return filepath.Join(filepath.Dir(m.Path), dir)
}

// Runner builds a compiler runner honoring the manifest's solc section
// and remappings.
func (m *Manifest) Runner() (*solc.Runner, error) {
	runner := &solc.Runner{
		Version:    m.Solc.Version,
		Binary:     m.Solc.Binary,
		Remappings: m.RemappingArgs(),
	}
	switch m.Solc.Format {
	case "", "auto":
	case "compact":
		runner.Format = parser.FormatCompact
	case "legacy":
		runner.Format = parser.FormatLegacy
	default:
		return nil, fmt.Errorf("manifest: unknown solc.format %q", m.Solc.Format)
	}
	return runner, nil
}

var versionConstraintPattern = regexp.MustCompile(`^(~>|>=|<=|>|<|=|\^)?\s*[0-9]+(\.[0-9]+){0,2}([0-9A-Za-z\-\+\.]*)?$`)

func isValidVersionConstraint(input string) bool {
	s := strings.TrimSpace(input)
	if s == "" {
		return false
	}
	if s == "*" {
		return true
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || !versionConstraintPattern.MatchString(part) {
			return false
		}
	}
	return true
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "-", "_")
	return seg
}

type manifestFile struct {
	Project      string        `yaml:"project"`
	Solc         solcYAML      `yaml:"solc"`
	Sources      stringList    `yaml:"sources"`
	Remappings   remappingMap  `yaml:"remappings"`
	Dependencies dependencyMap `yaml:"dependencies"`
}

type solcYAML struct {
	Version string `yaml:"version"`
	Binary  string `yaml:"binary"`
	Format  string `yaml:"format"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:    path,
		Project: sanitizeSegment(strings.TrimSpace(mf.Project)),
		Solc: SolcSpec{
			Version: strings.TrimSpace(mf.Solc.Version),
			Binary:  strings.TrimSpace(mf.Solc.Binary),
			Format:  strings.TrimSpace(mf.Solc.Format),
		},
		Sources:         mf.Sources.Clone(),
		Remappings:      make(map[string]string, len(mf.Remappings.items)),
		RemappingOrder:  make([]string, 0, len(mf.Remappings.items)),
		Dependencies:    make(map[string]*DependencySpec, len(mf.Dependencies.items)),
		DependencyOrder: make([]string, 0, len(mf.Dependencies.items)),
	}

	for _, item := range mf.Remappings.items {
		prefix := strings.TrimSpace(item.prefix)
		if prefix == "" {
			continue
		}
		if _, exists := result.Remappings[prefix]; !exists {
			result.RemappingOrder = append(result.RemappingOrder, prefix)
		}
		result.Remappings[prefix] = strings.TrimSpace(item.target)
	}

	for _, item := range mf.Dependencies.items {
		name := strings.TrimSpace(item.name)
		if name == "" || item.spec == nil {
			continue
		}
		if _, exists := result.Dependencies[name]; !exists {
			result.DependencyOrder = append(result.DependencyOrder, name)
		}
		result.Dependencies[name] = item.spec.clone()
	}
	return result
}

func (d *DependencySpec) clone() *DependencySpec {
	if d == nil {
		return nil
	}
	copy := *d
	return &copy
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

// remappingMap preserves the declaration order of remappings; when two
// prefixes overlap, solc honors the first match, so order is meaning.
type remappingMap struct {
	items []remappingEntry
}

type remappingEntry struct {
	prefix string
	target string
}

func (rm *remappingMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		rm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		rm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: remappings must be a mapping")
	}
	items := make([]remappingEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var prefix string
		if err := keyNode.Decode(&prefix); err != nil {
			return err
		}
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			return fmt.Errorf("manifest: remappings must not use empty prefixes")
		}
		var target string
		if err := valueNode.Decode(&target); err != nil {
			return fmt.Errorf("manifest: remapping %q: %w", prefix, err)
		}
		items = append(items, remappingEntry{
			prefix: prefix,
			target: target,
		})
	}
	rm.items = items
	return nil
}

// dependencyMap preserves declaration order so installs happen in the
// order the manifest lists them.
type dependencyMap struct {
	items []dependencyEntry
}

type dependencyEntry struct {
	name string
	spec *DependencySpec
}

func (dm *dependencyMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		dm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		dm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: dependencies must be a mapping")
	}
	items := make([]dependencyEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: dependency names must be non-empty")
		}
		var dep DependencySpec
		if err := dep.unmarshalYAML(valNode); err != nil {
			return fmt.Errorf("manifest: dependency %q: %w", key, err)
		}
		items = append(items, dependencyEntry{
			name: key,
			spec: dep.clone(),
		})
	}
	dm.items = items
	return nil
}

func (d *DependencySpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		// scalar shorthand: the value is the clone URL
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*d = DependencySpec{}
			return nil
		}
		*d = DependencySpec{Git: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
			Path   string `yaml:"path"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*d = DependencySpec{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Path:   strings.TrimSpace(raw.Path),
		}
		return nil
	case yaml.AliasNode:
		return d.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}
