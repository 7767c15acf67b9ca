//go:build !linux

package platform

import (
	"fmt"
	"runtime"
)

// Open reports that no pointer backend exists for this OS.
func Open(display string) (Backend, error) {
	return nil, fmt.Errorf("pointer watching is not supported on %s", runtime.GOOS)
}
