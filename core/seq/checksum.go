// core/seq/checksum.go
package seq

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

// Checksum returns a strand independent digest of the record. With circular
// set, the digest is also independent of the origin, so two rotations of one
// plasmid compare equal.
func (r Record) Checksum(circular bool) string {
	fwd := strings.ToUpper(r.Seq)
	rev := RevCompString(fwd)
	if circular {
		fwd, rev = minRotation(fwd), minRotation(rev)
	}
	key := fwd
	if rev < key {
		key = rev
	}
	sum := sha1.Sum([]byte(key))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// minRotation returns the lexicographically smallest rotation of s (Booth).
func minRotation(s string) string {
	n := len(s)
	if n == 0 {
		return s
	}
	ss := s + s
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		c := ss[j]
		i := f[j-k-1]
		for i != -1 && c != ss[k+i+1] {
			if c < ss[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if c != ss[k+i+1] {
			if c < ss[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}
	return ss[k : k+n]
}
