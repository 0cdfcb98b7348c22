//go:build windows

package dablenutil

// ExeSuffix is the conventional executable file suffix of the build target.
const ExeSuffix = ".exe"
