package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest is returned when a request misses a mandatory field
var ErrInvalidRequest = errors.New("invalid download request")

// Request describes a single download. It is immutable once built.
type Request struct {
	url         string
	destination string
	resolution  Resolution
}

// NewRequest validates and builds a Request. URL and destination are trimmed.
func NewRequest(url, destination string, res Resolution) (Request, error) {
	url = strings.TrimSpace(url)
	destination = strings.TrimSpace(destination)

	if url == "" {
		return Request{}, fmt.Errorf("%w: url is empty", ErrInvalidRequest)
	}
	if destination == "" {
		return Request{}, fmt.Errorf("%w: destination is empty", ErrInvalidRequest)
	}
	if !res.Valid() {
		return Request{}, fmt.Errorf("%w: unsupported resolution %d", ErrInvalidRequest, int(res))
	}

	return Request{url: url, destination: destination, resolution: res}, nil
}

// URL returns the video URL
func (r Request) URL() string { return r.url }

// Destination returns the target directory
func (r Request) Destination() string { return r.destination }

// Resolution returns the requested video height
func (r Request) Resolution() Resolution { return r.resolution }
