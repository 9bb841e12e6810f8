// core/anneal/scan.go
package anneal

// Aho–Corasick over A/C/G/T: every primer contributes its 3' anchor and the
// reverse complement of it, and one pass over the template finds them all.

type seed struct {
	primer  int
	reverse bool
	pat     []byte
}

type acNode struct {
	next [4]int // -1 = no edge during construction
	fail int
	out  []int // seed indices ending here
}

type seedHit struct {
	seed int
	pos  int // start of the seed match in the template
}

func baseIdx(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	default:
		return -1
	}
}

func isACGT(p []byte) bool {
	for _, c := range p {
		if baseIdx(c) < 0 {
			return false
		}
	}
	return true
}

func newNode() acNode {
	n := acNode{}
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

// buildAC builds the automaton. Seeds must be A/C/G/T only.
func buildAC(seeds []seed) []acNode {
	nodes := []acNode{newNode()}
	for si, s := range seeds {
		state := 0
		for _, b := range s.pat {
			ix := baseIdx(b)
			if nodes[state].next[ix] == -1 {
				nodes[state].next[ix] = len(nodes)
				nodes = append(nodes, newNode())
			}
			state = nodes[state].next[ix]
		}
		nodes[state].out = append(nodes[state].out, si)
	}

	queue := make([]int, 0, len(nodes))
	for ch := 0; ch < 4; ch++ {
		if nx := nodes[0].next[ch]; nx != -1 {
			nodes[nx].fail = 0
			queue = append(queue, nx)
		} else {
			nodes[0].next[ch] = 0
		}
	}
	for qh := 0; qh < len(queue); qh++ {
		r := queue[qh]
		for ch := 0; ch < 4; ch++ {
			s := nodes[r].next[ch]
			if s == -1 {
				nodes[r].next[ch] = nodes[nodes[r].fail].next[ch]
				continue
			}
			queue = append(queue, s)
			nodes[s].fail = nodes[nodes[r].fail].next[ch]
			nodes[s].out = append(nodes[s].out, nodes[nodes[s].fail].out...)
		}
	}
	return nodes
}

// scanAC reports every seed occurrence in tmpl (upper case). Non-ACGT
// template bases reset the automaton.
func scanAC(tmpl []byte, nodes []acNode, seeds []seed) []seedHit {
	var hits []seedHit
	state := 0
	for i := 0; i < len(tmpl); i++ {
		ix := baseIdx(tmpl[i])
		if ix < 0 {
			state = 0
			continue
		}
		state = nodes[state].next[ix]
		for _, si := range nodes[state].out {
			hits = append(hits, seedHit{seed: si, pos: i - (len(seeds[si].pat) - 1)})
		}
	}
	return hits
}
