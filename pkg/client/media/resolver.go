// Package media maps content-addressed media references (mxc://server/id)
// onto the homeserver's HTTP download and thumbnail endpoints.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ContentScheme prefixes every content-addressed media reference
const ContentScheme = "mxc://"

const (
	downloadPath  = "/_matrix/media/v3/download/"
	thumbnailPath = "/_matrix/media/v3/thumbnail/"
)

// ErrInvalidContentRef is returned for references that are not well-formed mxc URIs
var ErrInvalidContentRef = errors.New("invalid content reference")

// ResizeMethod is how the server fits a thumbnail into the requested box
type ResizeMethod string

const (
	// MethodScale preserves aspect ratio and fits within the box without cropping
	MethodScale ResizeMethod = "scale"
	MethodCrop  ResizeMethod = "crop"
)

// SafeURL drops control characters (C0, DEL and C1) from an untrusted URL.
// ESC and BEL in particular would let a link end an OSC 8 hyperlink early and
// smuggle its own escape sequences into the terminal.
func SafeURL(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}

// IsContentRef reports whether ref is content-addressed and needs resolving
func IsContentRef(ref string) bool {
	return strings.HasPrefix(ref, ContentScheme)
}

// ParseContentRef splits an mxc URI into its server name and media ID
func ParseContentRef(ref string) (server, mediaID string, err error) {
	if !IsContentRef(ref) {
		return "", "", fmt.Errorf("%w: %q has no %s prefix", ErrInvalidContentRef, ref, ContentScheme)
	}

	rest := strings.TrimPrefix(ref, ContentScheme)
	server, mediaID, found := strings.Cut(rest, "/")
	if !found || server == "" || mediaID == "" || strings.Contains(mediaID, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidContentRef, ref)
	}

	return server, mediaID, nil
}

// Resolver builds HTTP URLs for content references against a homeserver
type Resolver struct {
	baseURL string
}

// NewResolver creates a resolver for the homeserver at baseURL
func NewResolver(baseURL string) *Resolver {
	return &Resolver{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// BaseURL returns the homeserver base URL without a trailing slash
func (r *Resolver) BaseURL() string {
	return r.baseURL
}

// Resolve parses ref into a Media handle
func (r *Resolver) Resolve(ref string) (Media, error) {
	server, mediaID, err := ParseContentRef(ref)
	if err != nil {
		return Media{}, err
	}
	return Media{
		baseURL: r.baseURL,
		server:  server,
		mediaID: mediaID,
	}, nil
}

// Media is a resolved content reference
type Media struct {
	baseURL string
	server  string
	mediaID string
}

// SrcMXC returns the content reference as given
func (m Media) SrcMXC() string {
	return ContentScheme + m.server + "/" + m.mediaID
}

// SrcHTTP returns the full-resolution download URL
func (m Media) SrcHTTP() string {
	return m.baseURL + downloadPath + url.PathEscape(m.server) + "/" + url.PathEscape(m.mediaID)
}

// ThumbnailHTTP returns a thumbnail URL bounded by width x height
func (m Media) ThumbnailHTTP(width, height int, method ResizeMethod) string {
	q := url.Values{}
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	q.Set("method", string(method))
	return m.baseURL + thumbnailPath + url.PathEscape(m.server) + "/" + url.PathEscape(m.mediaID) + "?" + q.Encode()
}
