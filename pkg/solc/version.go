package solc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoPragma reports source text with no solidity version pragma to
// derive a compiler release from.
var ErrNoPragma = errors.New("solc: no solidity version pragma found")

var (
	pragmaPattern  = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)
	releasePattern = regexp.MustCompile(`\d+\.\d+\.\d+`)
)

// ExtractPragmaVersion scans source text for solidity version pragmas and
// returns the highest release any of them mentions, so that one compiler
// run can satisfy every constraint in a flattened file. Range constraints
// such as ">=0.8.0 <0.9.0" contribute each release they name.
func ExtractPragmaVersion(source string) (string, error) {
	var releases []string
	for _, match := range pragmaPattern.FindAllStringSubmatch(source, -1) {
		releases = append(releases, releasePattern.FindAllString(match[1], -1)...)
	}
	if len(releases) == 0 {
		return "", ErrNoPragma
	}
	best := releases[0]
	for _, release := range releases[1:] {
		if CompareVersions(release, best) > 0 {
			best = release
		}
	}
	return best, nil
}

// CompareVersions orders two release strings numerically by their
// major.minor.patch components. The result is negative when a predates b,
// zero when they name the same release and positive when a is newer.
// Constraint operators and a leading "v" are ignored; missing components
// count as zero.
func CompareVersions(a, b string) int {
	aParts := strings.Split(normalizeVersion(a), ".")
	bParts := strings.Split(normalizeVersion(b), ".")
	for i := 0; i < 3; i++ {
		var aNum, bNum int
		if i < len(aParts) {
			fmt.Sscanf(aParts[i], "%d", &aNum)
		}
		if i < len(bParts) {
			fmt.Sscanf(bParts[i], "%d", &bNum)
		}
		if aNum != bNum {
			return aNum - bNum
		}
	}
	return 0
}

// normalizeVersion strips constraint operators and surrounding noise:
// "^0.8.19", " v0.8.19 " and "=0.8.19" all come back as "0.8.19".
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "v")
	for _, op := range []string{"^", ">=", "<=", ">", "<", "~", "="} {
		version = strings.TrimPrefix(version, op)
	}
	return strings.TrimSpace(version)
}
