package pyext

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/magefile/mage/sh"
)

// Platform constants
const (
	platformWindows = "windows"
	platformDarwin  = "darwin"
)

// sysconfig query for the platform extension-module suffix, e.g.
// ".cpython-312-x86_64-linux-gnu.so" or ".pyd".
const extSuffixQuery = "import sysconfig; print(sysconfig.get_config_var('EXT_SUFFIX'))"

// FindPython locates the Python interpreter the extension targets.
//
// Resolution order: the explicit path when given, the PYTHON environment
// variable, then python3 and python on PATH.
func FindPython(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if env := os.Getenv("PYTHON"); env != "" {
		return env, nil
	}

	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no python interpreter found in PATH")
}

// ExtensionSuffix returns the extension-module filename suffix for the
// given interpreter by asking sysconfig. Query failures fall back to the
// bare platform default so that staging still produces a loadable name.
func ExtensionSuffix(python string) string {
	if python != "" {
		out, err := sh.Output(python, "-c", extSuffixQuery)
		out = strings.TrimSpace(out)
		if err == nil && strings.HasPrefix(out, ".") {
			return out
		}
	}

	return defaultExtensionSuffix()
}

// defaultExtensionSuffix is the suffix used when no interpreter can be
// queried: .pyd on Windows, .so everywhere else (including macOS, where
// CPython loads .so modules rather than .dylib).
func defaultExtensionSuffix() string {
	if runtime.GOOS == platformWindows {
		return ".pyd"
	}
	return ".so"
}

// ExtensionFilename returns the importable module filename for a package,
// e.g. ExtensionFilename("lief", ".cpython-312-x86_64-linux-gnu.so").
func ExtensionFilename(pkg, suffix string) string {
	return pkg + suffix
}
