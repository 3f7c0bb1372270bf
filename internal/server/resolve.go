package server

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/richardhapb/lspdock/internal/lspdockerr"
)

// windowsExecutableExts mirrors what os/exec.LookPath consults via
// PATHEXT, used here to compare names with a platform executable
// extension stripped off — needed both for the argv0-symlink trick and for
// the same stripped comparison on the configured executable name.
var windowsExecutableExts = []string{".exe", ".com", ".bat", ".cmd"}

// StripExecutableExt removes a trailing platform executable extension
// (case-insensitive) from name, on Windows only; on other platforms it is
// the identity function.
func StripExecutableExt(name string) string {
	if runtime.GOOS != "windows" {
		return name
	}
	lower := strings.ToLower(name)
	for _, ext := range windowsExecutableExts {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// ResolveExecutable implements the startup resolution order from spec §4.3:
//  1. --exec flag value, if supplied.
//  2. argv[0]'s basename (extension-stripped), if it differs from the
//     proxy's own canonical name (the symlink trick).
//  3. The configured `executable` value.
//
// proxyName is the proxy's canonical binary name (e.g. "lspdock"); argv0 is
// os.Args[0]. An empty result at every step is a ResolutionError.
func ResolveExecutable(execFlag, argv0, proxyName, configured string) (string, error) {
	if execFlag != "" {
		return execFlag, nil
	}

	base := StripExecutableExt(filepath.Base(argv0))
	if base != "" && base != proxyName {
		return base, nil
	}

	if configured != "" {
		return configured, nil
	}

	return "", lspdockerr.New(lspdockerr.Resolution,
		errors.New("no server executable configured: set --exec, symlink the proxy under the server's name, or set executable in the config file"))
}

// LookupLocal resolves name to an absolute path on the host's PATH for
// local-mode spawning. On Windows a trailing platform extension is
// stripped first and the bare name is looked up, so exec.LookPath tries
// each PATHEXT extension; this treats a configured "gopls.exe" and a bare
// "gopls" handed over by ResolveExecutable's argv0 trick alike.
func LookupLocal(name string) (string, error) {
	path, err := exec.LookPath(StripExecutableExt(name))
	if err != nil {
		return "", lspdockerr.New(lspdockerr.Resolution, errors.Wrapf(err, "resolving %q on PATH", name))
	}
	return path, nil
}
