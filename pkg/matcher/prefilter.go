package matcher

// ContainsAny reports whether any pattern occurs in data. It stops at the
// first raw hit, before whole-word gating, so with WholeWord set it is
// only a cheap pre-filter: a true result means a full scan is worth
// running, not that a gated match necessarily survives.
func (t *TextMatcher) ContainsAny(data []byte) bool {
	return t.ac.Contains(data)
}

// MatchedPatterns returns the distinct patterns that match in data, in
// ordinal order, without positions. Deduplication makes this suitable for
// keyword routing over large inputs.
func (t *TextMatcher) MatchedPatterns(data []byte) []string {
	seen := make([]bool, len(t.patterns))
	for _, m := range t.MatchBytes(data) {
		seen[m.Index] = true
	}
	var out []string
	for i, s := range seen {
		if s {
			out = append(out, t.patterns[i])
		}
	}
	return out
}
