// Package header provides the kind/apiVersion/metadata envelope written at
// the top of every bbinstall report.
package header

import (
	"fmt"
	"strings"
	"time"
)

const (
	APIVersionDomain = "bbinstall.backbee.com"
	APIVersionV1     = "v1"

	// MetadataTimestamp is the metadata key holding the report time.
	MetadataTimestamp = "timestamp"
)

// Header identifies a report document.
type Header struct {
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option is a functional option for New.
type Option func(*Header)

// WithKind sets the kind and derives the API version from it.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
		h.APIVersion = APIVersion(kind)
	}
}

// WithMetadata adds a metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		h.Metadata[key] = value
	}
}

// WithTimestamp records t, in UTC, under MetadataTimestamp.
func WithTimestamp(t time.Time) Option {
	return func(h *Header) {
		h.Metadata[MetadataTimestamp] = t.UTC().Format(time.RFC3339)
	}
}

// New returns a header stamped with the current time, then applies opts.
func New(opts ...Option) *Header {
	h := &Header{Metadata: map[string]string{}}
	WithTimestamp(time.Now())(h)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// APIVersion returns "<kind>.bbinstall.backbee.com/v1" with kind lowercased.
func APIVersion(kind string) string {
	return fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), APIVersionDomain, APIVersionV1)
}
