// Package pathglob implements the Path & Glob service (spec.md §4.A):
// absolute/relative path algebra and glob pattern expansion with
// "non-existent root" errors. Pattern matching uses doublestar so `**`
// (recursive descent) behaves the way manifests expect.
package pathglob

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arnavsurve/xcgen/internal/xcerrors"
)

// metaChars are the glob metacharacters that mark where a pattern stops
// being a plain path prefix.
const metaChars = "*{}"

// NonWildcardPrefix returns the longest prefix of pattern containing no
// wildcard metacharacter, split on path separators so the prefix is
// itself a valid path component sequence.
func NonWildcardPrefix(pattern string) string {
	parts := strings.Split(filepath.ToSlash(pattern), "/")
	var prefix []string
	for _, p := range parts {
		if strings.ContainsAny(p, metaChars) {
			break
		}
		prefix = append(prefix, p)
	}
	return filepath.FromSlash(strings.Join(prefix, "/"))
}

// Glob expands pattern relative to root, returning absolute paths. It
// never errors on a missing root — callers that need the strict fatal
// behavior from spec.md §4.A use ThrowingGlob.
func Glob(root, pattern string) ([]string, error) {
	full := filepath.Join(root, pattern)
	return expand(full)
}

// ThrowingGlob is Glob's strict sibling: if the pattern's non-wildcard
// prefix does not resolve to an existing directory, it fails with
// xcerrors.NonExistentGlobDirectory rather than silently returning no
// matches.
func ThrowingGlob(root, pattern string) ([]string, error) {
	full := filepath.Join(root, pattern)
	resolvedPrefix := NonWildcardPrefix(full)

	info, err := os.Stat(resolvedPrefix)
	if err != nil || !info.IsDir() {
		return nil, &xcerrors.NonExistentGlobDirectory{Pattern: pattern, ResolvedRoot: resolvedPrefix}
	}

	return expand(full)
}

func expand(fullPattern string) ([]string, error) {
	slashPattern := filepath.ToSlash(fullPattern)
	matches, err := doublestar.FilepathGlob(slashPattern)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		abs, err := filepath.Abs(m)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	return out, nil
}

// CommonAncestor returns the deepest directory that is a prefix of both a
// and b.
func CommonAncestor(a, b string) string {
	aParts := strings.Split(filepath.ToSlash(filepath.Clean(a)), "/")
	bParts := strings.Split(filepath.ToSlash(filepath.Clean(b)), "/")

	n := len(aParts)
	if len(bParts) < n {
		n = len(bParts)
	}

	var common []string
	for i := 0; i < n; i++ {
		if aParts[i] != bParts[i] {
			break
		}
		common = append(common, aParts[i])
	}
	if len(common) == 0 {
		return string(filepath.Separator)
	}
	return filepath.FromSlash(strings.Join(common, "/"))
}

// RemoveLastComponent returns path with its final path component removed
// (i.e. its parent directory).
func RemoveLastComponent(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

// IsFolder reports whether path exists and is a directory.
func IsFolder(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ExtractTargetAndConfigurationName splits a filename shaped
// "Target.Config.ext" into (target, config). It returns ok=false unless
// exactly two dot-separated components precede the extension.
func ExtractTargetAndConfigurationName(filename string) (target, configuration string, ok bool) {
	base := filename
	ext := filepath.Ext(base)
	if ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	parts := strings.Split(base, ".")
	if len(parts) != 2 {
		return "", "", false
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
