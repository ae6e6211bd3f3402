//go:build !windows

package output

import "os"

// enableANSI is a no-op on Unix-like systems, where terminals render ANSI
// sequences without setup
func enableANSI(_ *os.File) bool {
	return true
}
