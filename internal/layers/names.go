package layers

import (
	"regexp"
	"strings"

	"github.com/ik-hxr/cms-backend/internal/config"
)

var separatorRun = regexp.MustCompile(`[-_.]+`)

// NormalizeName returns the canonical form of a Python distribution name:
// lowercase, with runs of "-", "_", and "." collapsed to "-". Extras are dropped.
func NormalizeName(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// DistInfoDir is the metadata directory an installer writes for pkg,
// e.g. python_dotenv-1.0.0.dist-info.
func DistInfoDir(pkg config.Package) string {
	return strings.ReplaceAll(NormalizeName(pkg.Name), "-", "_") + "-" + pkg.Version + ".dist-info"
}

// distInfo is a dist-info directory found in an archive.
type distInfo struct {
	Name    string
	Version string
}

// parseDistInfo extracts the distribution name and version from a
// "<name>-<version>.dist-info" path segment.
func parseDistInfo(segment string) (distInfo, bool) {
	base, ok := strings.CutSuffix(segment, ".dist-info")
	if !ok {
		return distInfo{}, false
	}
	i := strings.LastIndexByte(base, '-')
	if i <= 0 || i == len(base)-1 {
		return distInfo{}, false
	}
	return distInfo{Name: NormalizeName(base[:i]), Version: base[i+1:]}, true
}
