package solc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// EnvHome, when set, replaces the user home directory as the root under
// which the compiler artifact caches are searched.
const EnvHome = "SOLAST_HOME"

// ErrNoCompiler reports that no usable compiler binary could be located.
var ErrNoCompiler = errors.New("solc: no compiler binary found")

// LocateBinary resolves a compiler binary for the given release. It
// searches the solc-select artifact cache, then the py-solc-x cache, then
// falls back to whatever solc is on $PATH. Both caches live under the
// user home directory unless EnvHome points somewhere else.
func LocateBinary(version string) (string, error) {
	version = normalizeVersion(version)
	if version == "" {
		return "", fmt.Errorf("%w: no release to look for", ErrNoCompiler)
	}
	if home, err := cacheRoot(); err == nil {
		candidates := []string{
			filepath.Join(home, ".solc-select", "artifacts", "solc-"+version, "solc-"+version),
			filepath.Join(home, ".solc-select", "artifacts", version, "solc-"+version),
			filepath.Join(home, ".solcx", "solc-v"+version),
			filepath.Join(home, ".solcx", "solc-v"+version, "solc-v"+version),
		}
		for _, candidate := range candidates {
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}
	if path, err := exec.LookPath("solc"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w for release %s (try: solc-select install %s)", ErrNoCompiler, version, version)
}

func cacheRoot() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
