// core/primer/loader.go
package primer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"primertail-core/oligo"
)

// LoadTSV reads an oligo list: one primer per line as "seq" or "id seq".
// Blank lines and lines starting with '#' are skipped. Unnamed rows get
// sequential ids P1, P2, ...
func LoadTSV(path string) ([]Primer, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var list []Primer
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		var id, raw string
		switch len(f) {
		case 1:
			id, raw = fmt.Sprintf("P%d", len(list)+1), f[0]
		case 2:
			id, raw = f[0], f[1]
		default:
			return nil, fmt.Errorf("%s:%d: expected 1 or 2 columns (id seq), got %d", path, ln, len(f))
		}
		s, err := oligo.Validate(raw)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, ln, err)
		}
		list = append(list, Named(id, s))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
