// core/thermo/qc.go
package thermo

import "math"

// Hairpin scores the strongest self-annealing stem (≥3 bp) in seq5to3.
// Stems close to the 3' end weigh up to twice as much. Zero means none.
func Hairpin(seq5to3 string) float64 {
	b := []byte(seq5to3)
	n := len(b)
	maxStem, max3Prox := 0, 0
	for i := 0; i < n; i++ {
		for j := i + 3; j < n; j++ {
			k := 0
			for i+k < j-k && j+k < n {
				if !isWCPair(b[i+k], b[j-k]) {
					break
				}
				k++
			}
			if k < 3 {
				continue
			}
			p := (n - 1) - (j - k)
			switch {
			case k > maxStem:
				maxStem, max3Prox = k, p
			case k == maxStem && p > max3Prox:
				max3Prox = p
			}
		}
	}
	if maxStem == 0 {
		return 0
	}
	return float64(maxStem) * (1.0 + math.Min(float64(max3Prox)/8.0, 1.0))
}

// Dimer scores complementarity between the 3' ends of two primers, looking
// at up to eight terminal bases. Runs shorter than 3 bp score zero.
func Dimer(a, b string) float64 {
	win := min(8, len(a), len(b))
	if win < 3 {
		return 0
	}
	run := 0
	for i := 0; i < win; i++ {
		if !isWCPair(a[len(a)-1-i], b[len(b)-1-i]) {
			break
		}
		run++
	}
	if run < 3 {
		return 0
	}
	return float64(run*run) * 0.8
}

func isWCPair(p, t byte) bool {
	switch p {
	case 'A', 'a':
		return t == 'T' || t == 't'
	case 'T', 't':
		return t == 'A' || t == 'a'
	case 'C', 'c':
		return t == 'G' || t == 'g'
	case 'G', 'g':
		return t == 'C' || t == 'c'
	default:
		return false
	}
}
