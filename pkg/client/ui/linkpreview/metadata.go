// Package linkpreview decides how a fetched URL preview is shown under a
// message (YouTube player, image card, or plain link card) and renders that
// decision for the terminal and for HTML export.
package linkpreview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Raw preview response keys
const (
	KeyTitle       = "og:title"
	KeyDescription = "og:description"
	KeySiteName    = "og:site_name"
	KeyImage       = "og:image"
	KeyImageWidth  = "og:image:width"
	KeyImageHeight = "og:image:height"
	KeyImageSize   = "matrix:image:size"
	KeyType        = "og:type"
	KeyURL         = "og:url"
)

// Metadata is a URL preview record. Every field is optional; nil means the
// server did not supply it (or supplied something unusable).
type Metadata struct {
	Title       *string
	Description *string
	SiteName    *string
	Image       *string // mxc:// reference or plain URL
	ImageWidth  *int
	ImageHeight *int
	ImageSize   *int64 // bytes
	Type        *string
	URL         *string
}

// IsEmpty reports whether no recognised field is set
func (m *Metadata) IsEmpty() bool {
	return m == nil || (m.Title == nil && m.Description == nil && m.SiteName == nil &&
		m.Image == nil && m.ImageWidth == nil && m.ImageHeight == nil &&
		m.ImageSize == nil && m.Type == nil && m.URL == nil)
}

// ParseMetadata builds a Metadata from a raw preview response. Unknown keys
// are ignored and malformed values are dropped. Empty strings and
// non-positive numbers count as absent, so a response made only of such
// values yields an empty record and no preview is shown.
func ParseMetadata(raw map[string]any) *Metadata {
	if len(raw) == 0 {
		return &Metadata{}
	}
	return &Metadata{
		Title:       stringField(raw, KeyTitle),
		Description: stringField(raw, KeyDescription),
		SiteName:    stringField(raw, KeySiteName),
		Image:       stringField(raw, KeyImage),
		ImageWidth:  intField(raw, KeyImageWidth),
		ImageHeight: intField(raw, KeyImageHeight),
		ImageSize:   int64Field(raw, KeyImageSize),
		Type:        stringField(raw, KeyType),
		URL:         stringField(raw, KeyURL),
	}
}

// DecodeMetadata parses a JSON preview response
func DecodeMetadata(data []byte) (*Metadata, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode preview: %w", err)
	}
	return ParseMetadata(raw), nil
}

func stringField(raw map[string]any, key string) *string {
	s, ok := raw[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func int64Field(raw map[string]any, key string) *int64 {
	var n int64
	switch v := raw[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n = i
		} else if f, err := v.Float64(); err == nil {
			n = int64(math.Round(f))
		}
	case float64:
		n = int64(math.Round(v))
	case int:
		n = int64(v)
	case int64:
		n = v
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			n = i
		}
	}
	if n <= 0 {
		return nil
	}
	return &n
}

func intField(raw map[string]any, key string) *int {
	n := int64Field(raw, key)
	if n == nil || *n > math.MaxInt32 {
		return nil
	}
	i := int(*n)
	return &i
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
