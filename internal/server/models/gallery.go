package models

import "time"

// GalleryItem is one saved portrait. Image holds the full data URI so the
// record is self-contained; ArchiveKey is set when the original bytes were
// also uploaded to object storage.
type GalleryItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Image      string    `json:"image"`
	StyleID    string    `json:"style_id"`
	StyleName  string    `json:"style_name"`
	ArchiveKey string    `json:"archive_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
