// Package profsave parses and serializes the game's on-disk settings
// profile.
//
// The profile format is not reliably self-describing: a given file may be
// line-oriented text ("key value" or "key=value"), or a length-prefixed
// binary record stream with a fixed magic header. Parsing therefore runs an
// ordered cascade of strategies; each strategy is total (it never fails with
// an error, only with an empty result) so the cascade can always proceed.
//
// Serialization is deliberately conservative: it substitutes updated values
// into the original bytes line by line, so comments, unknown settings, and
// formatting the parser did not understand survive a save byte-for-byte.
package profsave

// Strategy identifies which parsing strategy produced a result.
type Strategy int

const (
	// StrategyNone means no strategy yielded any entries.
	StrategyNone Strategy = iota

	// StrategyText is the line-oriented text parser.
	StrategyText

	// StrategyBinary is the length-prefixed binary record parser.
	StrategyBinary

	// StrategyHybrid is the text-then-binary combination.
	StrategyHybrid

	// StrategyFallback is the minimal last-resort line scanner.
	StrategyFallback
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyText:
		return "text"
	case StrategyBinary:
		return "binary"
	case StrategyHybrid:
		return "hybrid"
	case StrategyFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is the outcome of a parse. Entries maps setting keys to values,
// all represented as strings; Order records first-seen key order so a
// caller can keep serialization deterministic. Partial is true when the
// binary parser stopped before decoding every declared record (truncation,
// corruption, or an unknown type tag): the entries are then a strict
// subset of what the file holds, and a caller regenerating the file from
// them would destroy the undecoded records.
type Result struct {
	Entries  map[string]string
	Order    []string
	Strategy Strategy
	Partial  bool
}

// Len returns the number of parsed entries.
func (r Result) Len() int {
	return len(r.Entries)
}

// Parse runs the strategy cascade over raw and returns the first result
// that yields at least one entry. When every strategy comes back empty the
// returned Result has no entries and StrategyNone; that is a degraded
// outcome, not an error, and the caller keeps the raw bytes for
// round-tripping.
func Parse(raw []byte) Result {
	if entries, order := parseText(raw); len(entries) > 0 {
		return Result{Entries: entries, Order: order, Strategy: StrategyText}
	}
	if entries, order, complete := parseBinary(raw); len(entries) > 0 {
		return Result{Entries: entries, Order: order, Strategy: StrategyBinary, Partial: !complete}
	}
	if entries, order, complete := parseHybrid(raw); len(entries) > 0 {
		return Result{Entries: entries, Order: order, Strategy: StrategyHybrid, Partial: !complete}
	}
	if entries, order := parseFallback(raw); len(entries) > 0 {
		return Result{Entries: entries, Order: order, Strategy: StrategyFallback}
	}
	return Result{Entries: map[string]string{}, Strategy: StrategyNone}
}

// parseHybrid tries the text parser and falls back to binary when text
// finds nothing.
func parseHybrid(raw []byte) (map[string]string, []string, bool) {
	entries, order := parseText(raw)
	if len(entries) > 0 {
		return entries, order, true
	}
	return parseBinary(raw)
}
