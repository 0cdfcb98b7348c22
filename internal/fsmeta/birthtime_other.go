//go:build !linux && !darwin && !freebsd && !windows

package fsmeta

import (
	"os"
	"time"
)

func birthTime(string, os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
