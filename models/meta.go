package models

// Trailer points at a YouTube video key.
type Trailer struct {
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Video is one episode entry of a series meta.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	Released  string `json:"released,omitempty"`
	Overview  string `json:"overview,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// DisplayMeta is the display-ready item returned to addon clients.
// It is built fresh for every request.
type DisplayMeta struct {
	ID          string    `json:"id"`
	Type        MediaKind `json:"type"`
	Name        string    `json:"name"`
	Poster      string    `json:"poster,omitempty"`
	Background  string    `json:"background,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Description string    `json:"description"`
	ReleaseInfo string    `json:"releaseInfo"`
	IMDBRating  string    `json:"imdbRating,omitempty"`
	Runtime     string    `json:"runtime,omitempty"`
	Genres      []string  `json:"genres"`
	Trailers    []Trailer `json:"trailers,omitempty"`
	Videos      []Video   `json:"videos,omitempty"`
}

// CatalogRequest describes one addon catalog call.
type CatalogRequest struct {
	CatalogID string
	Kind      MediaKind
	Skip      int
	Search    string
	Genre     string
}
