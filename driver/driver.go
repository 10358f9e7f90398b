package driver

import (
	"net/url"
	"strings"
)

// Content types attached to every parsed record.
const (
	TypeVideo = "video"
	TypeGif   = "gif"
)

// Video is the normalized record every driver emits. ID, Title, URL,
// Thumbnail, Source and Type are mandatory; a driver must drop any item
// it cannot fill them for. Views stays nil when the site exposes no
// views column, which is not the same as "0".
type Video struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Thumbnail    string   `json:"thumbnail"`
	Duration     string   `json:"duration,omitempty"`
	Views        *string  `json:"views,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Source       string   `json:"source"`
	Type         string   `json:"type"`
	UploadDate   string   `json:"upload_date,omitempty"`
	Channel      string   `json:"channel,omitempty"`
	PreviewVideo string   `json:"preview_video,omitempty"`
}

// Driver is the per-source capability contract. Implementations are
// stateless and safe for concurrent use; one instance per external site
// is constructed at startup and lives in the Registry for the process
// lifetime.
type Driver interface {
	// Name returns the stable display name, used as the Source field on
	// every record the driver produces.
	Name() string

	// FirstPage returns the site's native pagination origin (0 or 1).
	// Callers must not assume a universal origin.
	FirstPage() int

	// VideoURL builds the search URL for a query and page. Pure
	// function; page is clamped to the site's first page.
	VideoURL(query string, page int) string

	// ParseVideos extracts records from one fetched results page.
	// Best-effort: a malformed item is skipped, an unparseable document
	// yields an empty list, never an error.
	ParseVideos(html string) []Video
}

// GifSearcher is the optional gif capability. Drivers without it are
// video-only.
type GifSearcher interface {
	GifURL(query string, page int) string
	ParseGifs(html string) []Video
}

// MakeAbsolute resolves a scraped URL against the site's base URL.
// Already-absolute and data: URLs pass through, protocol-relative URLs
// get https:, anything else is resolved relative to base. Returns ""
// on unresolvable input.
func MakeAbsolute(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "data:") {
		return raw
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// NormalizeDuration trims a scraped duration, substituting "N/A" when
// the site exposes none.
func NormalizeDuration(duration string) string {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return "N/A"
	}
	return duration
}

// NormalizeViews trims a scraped views count, substituting "0" when
// empty. This conflates "absent" with "zero"; callers needing the
// distinction keep Video.Views as a pointer instead.
func NormalizeViews(views string) string {
	views = strings.TrimSpace(views)
	if views == "" {
		return "0"
	}
	return views
}

// firstNonEmpty returns the first candidate that is non-empty after
// trimming. Title extraction tries several page locations in order.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// clampPage keeps page at or above the driver's native first page.
func clampPage(page, firstPage int) int {
	if page < firstPage {
		return firstPage
	}
	return page
}
