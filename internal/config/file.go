// Package config loads and resolves the proxy's configuration: the layered
// TOML config file search, variable expansion, and the merge with CLI
// flags into the immutable session.Config the core runs from.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/richardhapb/lspdock/internal/lspdockerr"
)

// FileConfig is the decoded shape of <proxy>.toml. Fields absent from the
// file are left at their zero value; the caller's resolution order decides
// what, if anything, backfills them.
type FileConfig struct {
	Container          string   `toml:"container"`
	DockerInternalPath string   `toml:"docker_internal_path"`
	LocalPath          string   `toml:"local_path"`
	Executable         string   `toml:"executable"`
	Pattern            string   `toml:"pattern"`
	PatchPID           []string `toml:"patch_pid"`
	LogLevel           string   `toml:"log_level"`
	// Runtime is the host container CLI binary ("docker" or "podman")
	// driven in Docker mode; an [ADDED] key beyond spec.md's base table,
	// letting the same core target either toolchain without code changes.
	Runtime string `toml:"runtime"`
}

// Load searches, in order, <cwd>/<proxyName>.toml then
// ~/.config/<proxyName>/<proxyName>.toml, decoding the first one found in
// isolation — fields missing from that file are not backfilled from the
// other candidate. A nil, nil return means neither file exists, which is
// not itself an error.
func Load(proxyName, cwd string) (*FileConfig, error) {
	candidates := []string{filepath.Join(cwd, proxyName+".toml")}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", proxyName, proxyName+".toml"))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, lspdockerr.New(lspdockerr.Config, errors.Wrapf(err, "reading config file %s", path))
		}

		var fc FileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, lspdockerr.New(lspdockerr.Config, errors.Wrapf(err, "parsing config file %s", path))
		}
		expand(&fc, cwd)
		return &fc, nil
	}

	return nil, nil
}

// expand applies the proxy's three-variable substitution ($CWD, $PARENT,
// $HOME) to every string field, once, right after decode. A flat
// strings.NewReplacer pass is all this needs — nothing in this corpus
// reaches for text/template for a fixed, tiny variable set like this.
func expand(fc *FileConfig, cwd string) {
	repl := newExpander(cwd)
	fc.Container = repl.Replace(fc.Container)
	fc.DockerInternalPath = repl.Replace(fc.DockerInternalPath)
	fc.LocalPath = repl.Replace(fc.LocalPath)
	fc.Executable = repl.Replace(fc.Executable)
	fc.Pattern = repl.Replace(fc.Pattern)
	fc.Runtime = repl.Replace(fc.Runtime)
	for i, p := range fc.PatchPID {
		fc.PatchPID[i] = repl.Replace(p)
	}
}
