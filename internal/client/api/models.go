package api

// User is the account record as returned by the server.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Premium  bool   `json:"premium"`
	JoinedAt string `json:"joined_at"`
}

// Style is one selectable portrait style.
type Style struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Premium     bool   `json:"premium"`
}

// StyleGroup is a catalog category with its styles.
type StyleGroup struct {
	Category string  `json:"category"`
	Options  []Style `json:"options"`
}

// GalleryItem is one saved portrait. Image is a data URI.
type GalleryItem struct {
	ID        string `json:"id"`
	Image     string `json:"image"`
	StyleID   string `json:"style_id"`
	StyleName string `json:"style_name"`
	CreatedAt string `json:"created_at"`
}

// GenerateResult is a freshly generated portrait.
type GenerateResult struct {
	Item       GalleryItem `json:"item"`
	ArchiveURL string      `json:"archive_url,omitempty"`
}
