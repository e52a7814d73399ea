package node

import (
	"fmt"
	"strconv"
	"strings"
)

// parseVec3 parses a "x,y,z" flag value into a [3]float64.
func parseVec3(s string) ([3]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("expected 3 comma-separated values, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("invalid component %q: %w", p, err)
		}
		v[i] = f
	}
	return v, nil
}

func formatVec3(v [3]float64) string {
	return fmt.Sprintf("%.4f, %.4f, %.4f", v[0], v[1], v[2])
}

func formatVec6(v [6]float64) string {
	return fmt.Sprintf("%.4f, %.4f, %.4f, %.4f, %.4f, %.4f", v[0], v[1], v[2], v[3], v[4], v[5])
}

func formatMat3(v [9]float64) string {
	return fmt.Sprintf("[%.4f %.4f %.4f; %.4f %.4f %.4f; %.4f %.4f %.4f]",
		v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8])
}
