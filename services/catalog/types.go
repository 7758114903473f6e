package catalog

// Types mirroring the Board Game Atlas API responses. Only the fields the
// site displays are decoded; the rest of the payload is ignored.

type CategoryRef struct {
	ID string `json:"id"`
}

type Game struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description_preview,omitempty"`
	Price         string        `json:"price"`
	YearPublished int           `json:"year_published"`
	MinPlayers    int           `json:"min_players"`
	MaxPlayers    int           `json:"max_players"`
	ImageURL      string        `json:"image_url"`
	ThumbURL      string        `json:"thumb_url"`
	Rank          int           `json:"rank"`
	Categories    []CategoryRef `json:"categories"`
}

type CategoryEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Video struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	// EmbedURL is the YouTube embed form of URL, filled in by the client.
	EmbedURL string `json:"embed_url,omitempty"`
}

type Image struct {
	ID       string `json:"id"`
	Thumb    string `json:"thumb"`
	Small    string `json:"small"`
	Medium   string `json:"medium"`
	Large    string `json:"large"`
	Original string `json:"original"`
}

type searchResponse struct {
	Games []Game `json:"games"`
	Count int    `json:"count"`
}

type categoriesResponse struct {
	Categories []CategoryEntry `json:"categories"`
}

type videosResponse struct {
	Videos []Video `json:"videos"`
}

type imagesResponse struct {
	Images []Image `json:"images"`
}
