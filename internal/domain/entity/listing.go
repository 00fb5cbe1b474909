package entity

import (
	"strings"
)

// PlaceholderMediaURL is substituted when a listing ends up with no media so
// the catalog never has to special-case an empty list.
const PlaceholderMediaURL = "https://via.placeholder.com/300x200?text=No+Media"

// Listing is one sellable game account record. The ID is the opaque key the
// database assigns on creation and is the path segment for update/delete.
type Listing struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	ShortDesc   string   `json:"shortDesc"`
	PlayerInfo  string   `json:"playerInfo"`
	UserContact string   `json:"userContact,omitempty"`
	MediaUrls   []string `json:"mediaUrls"`
	StockOut    bool     `json:"stockOut"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// Snapshot is the full current value of the products collection as delivered
// by the database subscription, keyed by listing id.
type Snapshot map[string]Listing

// Thumbnail returns the first media URL, or the placeholder when the listing
// has none.
func (l Listing) Thumbnail() string {
	if len(l.MediaUrls) == 0 {
		return PlaceholderMediaURL
	}
	return l.MediaUrls[0]
}

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

var videoMarkers = []string{".mp4", ".mov", ".webm", "/video/upload/"}

// MediaKind classifies a URL as image or video by filename suffix or upload
// path marker. The source of truth never stores a type field, so a misnamed
// URL classifies wrong; that is an accepted limitation of the data, not
// something to fix here.
func MediaKind(url string) string {
	lower := strings.ToLower(url)
	for _, marker := range videoMarkers {
		if strings.Contains(lower, marker) {
			return MediaKindVideo
		}
	}
	return MediaKindImage
}
