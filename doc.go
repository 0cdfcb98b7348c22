// Package dablenutil is a small collection of helpers shared across
// dablenparty's Go programs.
//
// # Executable Names
//
// [ExecutableName] returns a platform-specific name for the running program,
// built from the package name and the GOOS/GOARCH the binary was compiled
// for:
//
//	name := dablenutil.ExecutableName() // "myapp_linux_amd64", "myapp_windows_amd64.exe"
//
// The package name can be pinned at link time:
//
//	go build -ldflags "-X github.com/dablenparty/dablenutil.PackageName=myapp"
//
// # Directories
//
// [EnsureDir] creates a directory and all of its parents, treating a
// directory that already exists as success. [EnsureDirAsync] does the same
// work on a separate goroutine and reports the result on a channel, and
// [EnsureDirFs] runs against any [afero.Fs].
//
// # Errors
//
// Every error returned by this module (including the logging subpackage) is
// an [*Error] carrying a [Kind]: [KindIO] for filesystem and compression
// failures, [KindLogging] for logger registration failures. Use errors.As to
// inspect it, or errors.Is with [ErrLoggerAlreadyInstalled] and the io/fs
// sentinels.
package dablenutil
