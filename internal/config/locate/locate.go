// Package locate finds the game profile on disk.
//
// The locator walks an ordered list of candidate paths supplied by the
// caller and returns the first that exists as a regular, readable file.
// A missing profile is a normal outcome, not an error.
package locate

import (
	"bytes"
	"io"
	"os"
)

// Size bounds used by Validate. Anything outside this range is not a
// plausible profile file.
const (
	minProfileSize = 100
	maxProfileSize = 10 * 1024 * 1024
)

// sniffLen is how much of the file Validate reads when looking for
// profile signatures.
const sniffLen = 1024

// signatures are byte sequences that identify a game profile. A file
// containing any of them within its first kilobyte is accepted.
var signatures = [][]byte{
	[]byte("PROFSAVE"),
	[]byte("GstRender"),
	[]byte("GstInput"),
	[]byte("GstAudio"),
}

// Locate returns the first candidate that exists as a regular file, and
// true. When no candidate exists it returns "", false. It never returns an
// error: unreadable or absent candidates are simply skipped.
func Locate(candidates []string) (string, bool) {
	for _, path := range candidates {
		if isRegularFile(path) {
			return path, true
		}
	}
	return "", false
}

// Detect behaves like Locate but additionally requires each candidate to
// pass Validate, so that a stray empty or foreign file at a candidate
// location does not shadow the real profile further down the list.
func Detect(candidates []string) (string, bool) {
	for _, path := range candidates {
		if isRegularFile(path) && Validate(path) {
			return path, true
		}
	}
	return "", false
}

// Validate reports whether path looks like a real game profile: a regular
// file of plausible size whose first kilobyte carries a known signature.
func Validate(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if info.Size() < minProfileSize || info.Size() > maxProfileSize {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return false
	}
	head = head[:n]

	for _, sig := range signatures {
		if bytes.Contains(head, sig) {
			return true
		}
	}
	return false
}

// isRegularFile reports whether path exists, is a regular file, and can be
// opened for reading.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
