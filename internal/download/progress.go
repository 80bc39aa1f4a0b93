package download

import (
	"math"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/ytget/ytdownloader/internal/model"
)

// ParsePercent converts engine progress text such as " 55.3%" into an
// integer percentage. Fractions are truncated and the value is clamped to
// [0,100]. ok is false when the text carries no number (e.g. "N/A").
func ParsePercent(s string) (percent int, ok bool) {
	s = strings.TrimSpace(stripansi.Strip(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}

	switch {
	case f < model.MinPercent:
		return model.MinPercent, true
	case f > model.MaxPercent:
		return model.MaxPercent, true
	}
	return int(f), true
}
