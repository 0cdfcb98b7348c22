package dablenutil

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
)

// PackageName is the package name used by ExecutableName. It is normally
// set at link time with -ldflags "-X github.com/dablenparty/dablenutil.PackageName=name";
// when left empty the main module path is used instead.
var PackageName string

var executableName = sync.OnceValue(func() string {
	return FormatExecutableName(packageName(), runtime.GOOS, runtime.GOARCH, ExeSuffix)
})

// ExecutableName returns "{package}_{GOOS}_{GOARCH}{ExeSuffix}" for the
// running binary, e.g. "myapp_linux_amd64" or "myapp_windows_amd64.exe".
// Every input is fixed when the binary is built, so the value is computed
// once and reused for the life of the process.
func ExecutableName() string {
	return executableName()
}

// FormatExecutableName joins the parts of an executable name with no extra
// separators around the suffix.
func FormatExecutableName(pkg, goos, goarch, suffix string) string {
	return pkg + "_" + goos + "_" + goarch + suffix
}

// packageName resolves the package name from, in order: PackageName, the
// main module path recorded in the build info, and the binary's file name.
func packageName() string {
	if PackageName != "" {
		return PackageName
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Path != "" {
		return moduleBase(info.Main.Path)
	}
	base := filepath.Base(os.Args[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// moduleBase returns the last element of a module path, skipping a major
// version suffix: "example.com/app/v2" yields "app".
func moduleBase(modPath string) string {
	dir, last := path.Split(modPath)
	if dir != "" && isMajorVersion(last) {
		return path.Base(dir)
	}
	return last
}

// isMajorVersion reports whether elem is a "vN" path element with N >= 2.
func isMajorVersion(elem string) bool {
	digits, ok := strings.CutPrefix(elem, "v")
	if !ok || digits == "" || digits[0] == '0' {
		return false
	}
	n, err := strconv.Atoi(digits)
	return err == nil && n >= 2
}
