// Package asciipoints reads whitespace-separated vector datasets in the
// ascii format used by the SISAP metric-space library test collections
// (one point per line, one float per dimension).
package asciipoints

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads r line by line and returns one []float64 per non-blank line.
// Every point must carry the same dimensionality; a mismatched line returns
// an error naming the offending line number.
func Parse(r io.Reader) ([][]float64, error) {
	scanner := bufio.NewScanner(r)
	// sisap-data's larger collections (Colors, NASA) pack long rows; grow the
	// buffer past bufio's 64KiB default line limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var points [][]float64
	dim := -1
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		v := make([]float64, len(fields))
		for i, f := range fields {
			val, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("asciipoints: line %d: parse field %d (%q): %w", line, i, f, err)
			}
			v[i] = val
		}
		if dim == -1 {
			dim = len(v)
		} else if len(v) != dim {
			return nil, fmt.Errorf("asciipoints: line %d: got %d dimensions, want %d", line, len(v), dim)
		}
		points = append(points, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("asciipoints: %w", err)
	}
	return points, nil
}

// ParseString is a convenience wrapper over Parse for in-memory fixtures.
func ParseString(s string) ([][]float64, error) {
	return Parse(strings.NewReader(s))
}
