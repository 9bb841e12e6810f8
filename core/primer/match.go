// core/primer/match.go
package primer

// FindMatches returns the start of every window of seq that pat pairs with
// base for base under BaseMatch, so ambiguous primer bases are honoured and
// template N never pairs. Overlapping windows are all reported.
func FindMatches(seq, pat []byte) []int {
	pl := len(pat)
	if pl == 0 || len(seq) < pl {
		return nil
	}
	var out []int
window:
	for pos := 0; pos+pl <= len(seq); pos++ {
		for j := 0; j < pl; j++ {
			if !BaseMatch(seq[pos+j], pat[j]) {
				continue window
			}
		}
		out = append(out, pos)
	}
	return out
}
