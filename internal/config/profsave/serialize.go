package profsave

import (
	"bytes"
	"strings"
)

// Serialize reconstructs profile content from the original bytes with the
// given entries substituted in place. It walks original line by line; a line
// whose key field matches an entry has its value portion replaced, keeping
// the key, the separator style, and any quoting found in the original line.
// Every other line, including comments and lines no parsing strategy
// understood, is reproduced byte-for-byte. With no entries the output equals
// the input.
//
// Serialize never invents lines: keys absent from original are ignored
// (see AppendMissing for the caller-driven path that adds them).
func Serialize(original []byte, entries map[string]string) []byte {
	if len(entries) == 0 || len(original) == 0 {
		return original
	}

	var out bytes.Buffer
	out.Grow(len(original))

	rest := original
	for len(rest) > 0 {
		line, tail := splitLine(rest)
		rest = tail
		out.Write(rewriteLine(line, entries))
	}

	return out.Bytes()
}

// rewriteLine returns the line (including its terminator) with the value
// substituted when its key has a differing entry, or the line unchanged.
// Emitting unchanged lines verbatim, rather than re-rendering them, is what
// makes an edit-free save an exact round-trip.
func rewriteLine(line []byte, entries map[string]string) []byte {
	content, term := trimTerminator(line)

	sl, ok := parseSettingLine(content)
	if !ok {
		return line
	}
	val, ok := entries[sl.key]
	if !ok || val == sl.val {
		return line
	}

	var b strings.Builder
	b.Grow(len(content) + len(val))
	b.WriteString(content[:sl.valStart])
	if sl.quote != 0 {
		b.WriteByte(sl.quote)
		b.WriteString(val)
		b.WriteByte(sl.quote)
	} else {
		b.WriteString(val)
	}

	return append([]byte(b.String()), term...)
}

// AppendMissing appends "key value" lines for entries whose keys do not
// occur in original, in the given order. It is used when a profile is being
// regenerated from scratch (no usable original content), and by callers
// that explicitly want to introduce new settings; Serialize itself never
// adds keys. A non-empty original that does not end in a newline gets one
// before the first appended line.
func AppendMissing(original []byte, entries map[string]string, order []string) []byte {
	existing, _ := parseText(original)

	var b bytes.Buffer
	b.Write(original)

	for _, key := range order {
		val, ok := entries[key]
		if !ok {
			continue
		}
		if _, present := existing[key]; present {
			continue
		}
		if b.Len() > 0 && b.Bytes()[b.Len()-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(val)
		b.WriteByte('\n')
	}

	return b.Bytes()
}

// splitLine splits data into its first line (terminator included) and the
// remainder.
func splitLine(data []byte) (line, rest []byte) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i+1], data[i+1:]
	}
	return data, nil
}

// trimTerminator splits a line into its content and its terminator
// ("\n", "\r\n", or empty for a final unterminated line).
func trimTerminator(line []byte) (content string, term []byte) {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		if n > 1 && line[n-2] == '\r' {
			return string(line[:n-2]), line[n-2:]
		}
		return string(line[:n-1]), line[n-1:]
	}
	return string(line), nil
}
