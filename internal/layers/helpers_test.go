package layers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/testutil"
)

// fakeInstaller mimics `pip install --target DIR name==ver...` by writing a
// module directory and a dist-info directory for every requirement.
const fakeInstaller = `target=""
reqs=""
while [ $# -gt 0 ]; do
  case "$1" in
    --target) target="$2"; shift 2; continue ;;
    *==*) reqs="$reqs $1" ;;
  esac
  shift
done
for req in $reqs; do
  name=${req%%==*}
  ver=${req##*==}
  mod=$(echo "$name" | tr 'A-Z-' 'a-z_')
  mkdir -p "$target/$mod-$ver.dist-info" "$target/$mod"
  echo "Name: $name" > "$target/$mod-$ver.dist-info/METADATA"
  echo "VERSION = '$ver'" > "$target/$mod/__init__.py"
done
`

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("installer stubs require /bin/sh")
	}
}

func installFakePip(t *testing.T) {
	t.Helper()
	requireShell(t)
	bin := t.TempDir()
	testutil.WriteScript(t, bin, "pip", fakeInstaller)
	testutil.PrependPath(t, bin)
}

func authLayer() config.Layer {
	return config.Layer{
		Name:    "auth-dependencies",
		Dir:     "src/layers/auth-dependencies",
		Target:  "python",
		Archive: "src/layers/auth-dependencies/auth-dependencies.zip",
		Packages: []config.Package{
			{Name: "PyJWT", Version: "2.8.0"},
			{Name: "cryptography", Version: "41.0.7"},
		},
	}
}

func commonLayer() config.Layer {
	return config.Layer{
		Name:    "common-dependencies",
		Dir:     "src/layers/common-dependencies",
		Target:  "python",
		Archive: "src/layers/common-dependencies/common-dependencies.zip",
		Packages: []config.Package{
			{Name: "python-dotenv", Version: "1.0.0"},
		},
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
