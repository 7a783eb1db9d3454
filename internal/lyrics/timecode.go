package lyrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTime converts an SRT timestamp ("HH:MM:SS,mmm" or "HH:MM:SS.mmm") into
// seconds. Malformed input yields NaN rather than an error.
func ParseTime(ts string) float64 {
	parts := strings.Split(strings.Replace(ts, ",", ".", 1), ":")
	if len(parts) != 3 {
		return math.NaN()
	}

	var total float64
	for i, mult := range []float64{3600, 60, 1} {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return math.NaN()
		}
		total += v * mult
	}
	return total
}

// FormatTime renders seconds as m:ss, or h:mm:ss past the hour.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	h, m, sec := s/3600, (s%3600)/60, s%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
