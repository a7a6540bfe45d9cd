package trace

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/strata-data/fracture.report/internal/monitoring"
)

// ParseStats is the census of one parse: how much was read and how much
// had to be tolerated. Malformed rows never abort a load; they are logged
// and counted here.
type ParseStats struct {
	Traces          int // traces stored, degenerate ones included
	Vertices        int // vertices stored
	DegenerateLines int // lines yielding fewer than 2 vertices
	TruncatedLines  int // lines with an odd token count (trailing value dropped)
	SkippedLines    int // lines with no parseable coordinates
}

// ParseReader reads node lines from r into a new Store. The format is one
// fracture trace per line, whitespace-delimited, alternating x y x y …
// values. Policy for malformed rows, preserved from the field workflow:
//   - an odd token count drops the trailing unpaired value (logged, counted);
//   - a line with fewer than 2 complete vertex pairs is stored as a
//     degenerate trace (it contributes zero segments) rather than rejected;
//   - a line with no numeric tokens at all is skipped;
//   - a non-numeric token invalidates the whole line (logged, skipped).
func ParseReader(r io.Reader) (*Store, ParseStats, error) {
	store := NewStore()
	var stats ParseStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		vals := make([]float64, 0, len(fields))
		bad := false
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				monitoring.Logf("line %d: unparseable token %q, skipping line", lineNo, f)
				bad = true
				break
			}
			vals = append(vals, v)
		}
		if bad {
			stats.SkippedLines++
			continue
		}

		if len(vals)%2 != 0 {
			monitoring.Logf("line %d: odd coordinate count %d, dropping trailing value", lineNo, len(vals))
			stats.TruncatedLines++
			vals = vals[:len(vals)-1]
		}
		if len(vals) == 0 {
			stats.SkippedLines++
			continue
		}

		t := Trace{Vertices: make([]Point, 0, len(vals)/2)}
		for i := 0; i+1 < len(vals); i += 2 {
			t.Vertices = append(t.Vertices, Point{X: vals[i], Y: vals[i+1]})
		}
		if t.Degenerate() {
			stats.DegenerateLines++
		}
		store.Add(t)
		stats.Traces++
		stats.Vertices += len(t.Vertices)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read node data: %w", err)
	}

	return store, stats, nil
}

// LoadFile parses the named node file and logs the census.
func LoadFile(path string) (*Store, ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("failed to open node file: %w", err)
	}
	defer f.Close()

	log.Printf("reading node file %s", path)
	store, stats, err := ParseReader(f)
	if err != nil {
		return nil, stats, err
	}
	log.Printf("read %d traces, %d vertices (%d degenerate, %d truncated, %d skipped lines)",
		stats.Traces, stats.Vertices, stats.DegenerateLines, stats.TruncatedLines, stats.SkippedLines)
	return store, stats, nil
}
