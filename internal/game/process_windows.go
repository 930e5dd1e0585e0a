//go:build windows

package game

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// runningProcess walks a Toolhelp32 snapshot of all processes and matches
// executable names case-insensitively.
func runningProcess(names []string) (string, bool) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return "", false
	}
	defer windows.CloseHandle(snapshot)

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))

	if err := windows.Process32First(snapshot, &pe); err != nil {
		return "", false
	}
	for {
		exe := windows.UTF16ToString(pe.ExeFile[:])
		for _, name := range names {
			if strings.EqualFold(exe, name) {
				return exe, true
			}
		}
		if err := windows.Process32Next(snapshot, &pe); err != nil {
			return "", false
		}
	}
}
