// Package game detects whether the game is running and whether the
// profile file is in use, so saves never race the game's own writes.
package game

import (
	"errors"
	"fmt"
	"os"
)

// Guard errors, surfaced through the store's pre-save checks.
var (
	// ErrRunning indicates a game process was found.
	ErrRunning = errors.New("game is running")

	// ErrLocked indicates the profile file is held by another process.
	ErrLocked = errors.New("profile file is locked")
)

// DefaultProcessNames are the executable names the game is known to run
// under across store launchers.
func DefaultProcessNames() []string {
	return []string{
		"bf6.exe",
		"bf6_x64.exe",
		"bf6_x86.exe",
		"battlefield6.exe",
		"battlefield6_x64.exe",
		"battlefield6_x86.exe",
	}
}

// Running reports whether any of the named processes is running, and the
// name of the first match. Detection failures count as not running.
func Running(names []string) (string, bool) {
	return runningProcess(names)
}

// GuardRunning returns a pre-save check that refuses while the game runs.
func GuardRunning(names []string) func() error {
	return func() error {
		if name, ok := Running(names); ok {
			return fmt.Errorf("%w (%s)", ErrRunning, name)
		}
		return nil
	}
}

// Locked reports whether the file at path cannot be opened for writing,
// which on Windows means the game still holds it. A missing file is not
// locked.
func Locked(path string) bool {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return !os.IsNotExist(err)
	}
	f.Close()
	return false
}

// GuardLock returns a pre-save check that refuses while path is locked.
func GuardLock(path string) func() error {
	return func() error {
		if Locked(path) {
			return fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil
	}
}
