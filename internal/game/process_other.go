//go:build !windows && !linux

package game

// runningProcess has no implementation on this platform; the game is
// assumed not to be running.
func runningProcess([]string) (string, bool) {
	return "", false
}
