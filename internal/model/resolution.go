package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is the target video height in pixels
type Resolution int

// Supported resolutions, highest first
const (
	Res1080 Resolution = 1080
	Res720  Resolution = 720
	Res480  Resolution = 480
	Res360  Resolution = 360
	Res240  Resolution = 240
	Res144  Resolution = 144
)

// DefaultResolution is used when the user made no explicit choice
const DefaultResolution = Res1080

var resolutions = []Resolution{Res1080, Res720, Res480, Res360, Res240, Res144}

// Resolutions returns the selectable resolutions ordered from highest to lowest
func Resolutions() []Resolution {
	out := make([]Resolution, len(resolutions))
	copy(out, resolutions)
	return out
}

// Valid reports whether r is one of the supported resolutions
func (r Resolution) Valid() bool {
	for _, v := range resolutions {
		if v == r {
			return true
		}
	}
	return false
}

// Label returns the display form, e.g. "720p"
func (r Resolution) Label() string {
	return strconv.Itoa(int(r)) + "p"
}

// String implements fmt.Stringer
func (r Resolution) String() string {
	return r.Label()
}

// ParseResolution accepts "720" or "720p" (case-insensitive)
func ParseResolution(s string) (Resolution, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "p")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	r := Resolution(n)
	if !r.Valid() {
		return 0, fmt.Errorf("unsupported resolution %d", n)
	}
	return r, nil
}
