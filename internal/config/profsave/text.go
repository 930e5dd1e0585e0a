package profsave

import "strings"

// settingLine is one line of a text profile that parsed as a setting.
type settingLine struct {
	key string
	val string

	// valStart is the byte offset within the line content where the value
	// portion begins (after the key and separator).
	valStart int

	// quote is the quote rune wrapping the value in the original line, or 0.
	quote byte

	// equals is true for "key=value" lines, false for "key value" lines.
	equals bool
}

// parseText extracts settings from line-oriented text content. Blank lines
// and comment lines are skipped; lines matching neither supported shape are
// left unparsed, which is not an error. Returns entries and first-seen key
// order.
func parseText(raw []byte) (map[string]string, []string) {
	entries := make(map[string]string)
	var order []string

	for _, line := range strings.Split(string(raw), "\n") {
		sl, ok := parseSettingLine(strings.TrimSuffix(line, "\r"))
		if !ok {
			continue
		}
		if _, seen := entries[sl.key]; !seen {
			order = append(order, sl.key)
		}
		entries[sl.key] = sl.val
	}

	return entries, order
}

// parseFallback is the last-resort scanner: the same two line shapes with
// fewer checks, and no comment handling beyond "#".
func parseFallback(raw []byte) (map[string]string, []string) {
	entries := make(map[string]string)
	var order []string

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var key, val string
		if i := strings.IndexByte(line, '='); i >= 0 {
			key = strings.TrimSpace(line[:i])
			val = strings.TrimSpace(line[i+1:])
		} else if i := strings.IndexByte(line, ' '); i >= 0 {
			key = line[:i]
			val = strings.TrimSpace(line[i+1:])
		}
		if key == "" || val == "" {
			continue
		}

		if _, seen := entries[key]; !seen {
			order = append(order, key)
		}
		entries[key] = val
	}

	return entries, order
}

// parseSettingLine parses one line of text content (without its line
// terminator) into a settingLine. It returns false for blank lines,
// comments, and lines matching neither supported shape.
func parseSettingLine(line string) (settingLine, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
		return settingLine{}, false
	}

	if i := strings.IndexByte(line, '='); i >= 0 {
		return parseEqualsLine(line, i)
	}
	return parseSpaceLine(line)
}

// parseSpaceLine handles the "key value" shape: key is the first
// whitespace-delimited field, value is the remainder of the line.
func parseSpaceLine(line string) (settingLine, bool) {
	keyStart := indexNonSpace(line, 0)
	if keyStart < 0 {
		return settingLine{}, false
	}
	keyEnd := indexSpace(line, keyStart)
	if keyEnd < 0 {
		return settingLine{}, false // no separator, no value
	}
	valStart := indexNonSpace(line, keyEnd)
	if valStart < 0 {
		return settingLine{}, false
	}

	key := line[keyStart:keyEnd]
	val := strings.TrimRight(line[valStart:], " \t")
	if key == "" || val == "" {
		return settingLine{}, false
	}

	return settingLine{key: key, val: val, valStart: valStart}, true
}

// parseEqualsLine handles the "key=value" shape. Matching quotes around the
// value are stripped from the parsed value but remembered so serialization
// can restore them.
func parseEqualsLine(line string, eq int) (settingLine, bool) {
	key := strings.TrimSpace(line[:eq])
	if key == "" || strings.ContainsAny(key, " \t") {
		return settingLine{}, false
	}

	valStart := indexNonSpace(line, eq+1)
	if valStart < 0 {
		return settingLine{}, false
	}
	val := strings.TrimRight(line[valStart:], " \t")

	var quote byte
	if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
		quote = val[0]
		val = val[1 : len(val)-1]
	}
	if val == "" {
		return settingLine{}, false
	}

	return settingLine{key: key, val: val, valStart: valStart, quote: quote, equals: true}, true
}

// indexNonSpace returns the index of the first non-space, non-tab byte at
// or after start, or -1.
func indexNonSpace(s string, start int) int {
	for i := start; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return -1
}

// indexSpace returns the index of the first space or tab at or after start,
// or -1.
func indexSpace(s string, start int) int {
	for i := start; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return i
		}
	}
	return -1
}
