package rewrite

import (
	"net/url"
	"path/filepath"
	"strings"
)

// PathMapping is a bijection between a local path prefix and a container
// path prefix: any path beginning with LocalRoot maps to the same suffix
// under ContainerRoot, and vice versa. Paths under neither prefix pass
// through unchanged.
type PathMapping struct {
	LocalRoot     string
	ContainerRoot string
}

func trimPrefix(path, prefix string) (suffix string, ok bool) {
	if prefix == "" {
		return "", false
	}
	clean := filepath.ToSlash(path)
	cleanPrefix := filepath.ToSlash(prefix)
	cleanPrefix = strings.TrimRight(cleanPrefix, "/")

	if clean == cleanPrefix {
		return "", true
	}
	if strings.HasPrefix(clean, cleanPrefix+"/") {
		return clean[len(cleanPrefix):], true
	}
	return "", false
}

// ToContainer rewrites a path beginning with LocalRoot to the equivalent
// path under ContainerRoot. It returns the input unchanged, and false, if
// path is not under LocalRoot.
func (m PathMapping) ToContainer(path string) (string, bool) {
	suffix, ok := trimPrefix(path, m.LocalRoot)
	if !ok {
		return path, false
	}
	return m.ContainerRoot + suffix, true
}

// ToLocal rewrites a path beginning with ContainerRoot to the equivalent
// path under LocalRoot. It returns the input unchanged, and false, if path
// is not under ContainerRoot.
func (m PathMapping) ToLocal(path string) (string, bool) {
	suffix, ok := trimPrefix(path, m.ContainerRoot)
	if !ok {
		return path, false
	}
	return m.LocalRoot + suffix, true
}

// extractPath returns the path component of a file:// URI, or the input
// unchanged if it doesn't parse as one.
func extractPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return raw
	}
	return u.Path
}

// toFileURI builds a file:// URI from a local filesystem path.
func toFileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// rewriteURI applies fn to the path component of a file:// URI, operating
// on url.URL.Path (already decoded) and letting url.URL.String re-encode
// it. The rewritten path uses url.URL's standard escaping, so an escape the
// input used where that escaping would not (for example %7E for ~) is not
// preserved. Non-file schemes, and URIs that fail to parse, are returned
// unchanged with ok=false.
func rewriteURI(raw string, fn func(string) (string, bool)) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return raw, false
	}
	newPath, changed := fn(u.Path)
	if !changed {
		return raw, false
	}
	u.Path = newPath
	return u.String(), true
}
