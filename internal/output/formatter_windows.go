//go:build windows

package output

import (
	"os"
	"syscall"
	"unsafe"
)

const enableVirtualTerminalProcessing = 0x0004

var (
	kernel32           = syscall.NewLazyDLL("kernel32.dll")
	procGetConsoleMode = kernel32.NewProc("GetConsoleMode")
	procSetConsoleMode = kernel32.NewProc("SetConsoleMode")
)

// enableANSI turns on virtual terminal processing for the console behind f
// (Windows 10+). It reports false when the console refuses.
func enableANSI(f *os.File) bool {
	handle := f.Fd()

	var mode uint32
	if ret, _, _ := procGetConsoleMode.Call(handle, uintptr(unsafe.Pointer(&mode))); ret == 0 {
		return false
	}
	if mode&enableVirtualTerminalProcessing != 0 {
		return true
	}

	ret, _, _ := procSetConsoleMode.Call(handle, uintptr(mode|enableVirtualTerminalProcessing))
	return ret != 0
}
