package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.boardgameatlas.com/api"

// Client talks to the Board Game Atlas API. Every call is a single attempt:
// an upstream failure is returned as-is, with no retry or backoff.
type Client struct {
	BaseURL    string
	ClientID   string
	HTTPClient *http.Client
}

// NewClient creates a catalog client for the given BGA client id.
func NewClient(clientID string) *Client {
	return &Client{
		BaseURL:  DefaultBaseURL,
		ClientID: clientID,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Filters are the search parameters the site exposes. Zero values are
// omitted from the query string.
type Filters struct {
	IDs        []string
	Name       string
	Fuzzy      bool
	CategoryID string
	MinPlayers int
	MaxPlayers int
	OrderBy    string
	Limit      int
	Skip       int
}

func (f Filters) values() url.Values {
	q := url.Values{}
	if len(f.IDs) > 0 {
		q.Set("ids", strings.Join(f.IDs, ","))
	}
	if f.Name != "" {
		q.Set("name", f.Name)
		if f.Fuzzy {
			q.Set("fuzzy_match", "true")
		}
	}
	if f.CategoryID != "" {
		q.Set("categories", f.CategoryID)
	}
	if f.MinPlayers > 0 {
		q.Set("min_players", strconv.Itoa(f.MinPlayers))
	}
	if f.MaxPlayers > 0 {
		q.Set("max_players", strconv.Itoa(f.MaxPlayers))
	}
	if f.OrderBy != "" {
		q.Set("order_by", f.OrderBy)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	return q
}

// Search returns the games matching the filters plus the upstream total count.
func (c *Client) Search(ctx context.Context, f Filters) ([]Game, int, error) {
	var resp searchResponse
	if err := c.get(ctx, "/search", f.values(), &resp); err != nil {
		return nil, 0, err
	}
	return resp.Games, resp.Count, nil
}

// Categories fetches the full category list, used to seed the local table.
func (c *Client) Categories(ctx context.Context) ([]CategoryEntry, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "/game/categories", url.Values{}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Videos returns the most recent videos for a game, with YouTube watch
// links rewritten to their embed form.
func (c *Client) Videos(ctx context.Context, gameID string, limit int) ([]Video, error) {
	q := url.Values{}
	q.Set("game_id", gameID)
	q.Set("limit", strconv.Itoa(limit))

	var resp videosResponse
	if err := c.get(ctx, "/game/videos", q, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Videos {
		resp.Videos[i].EmbedURL = EmbedURL(resp.Videos[i].URL)
	}
	return resp.Videos, nil
}

// Images retrieves alternate images for a game.
func (c *Client) Images(ctx context.Context, gameID string, limit int) ([]Image, error) {
	q := url.Values{}
	q.Set("id", gameID)
	q.Set("limit", strconv.Itoa(limit))

	var resp imagesResponse
	if err := c.get(ctx, "/game/images", q, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// EmbedURL converts a YouTube watch URL into the embed URL format that can
// be placed in an iframe. Non-watch URLs are returned unchanged.
func EmbedURL(link string) string {
	idx := strings.Index(link, "watch?v=")
	if idx == -1 {
		return link
	}
	id := link[idx+len("watch?v="):]
	if amp := strings.IndexByte(id, '&'); amp != -1 {
		id = id[:amp]
	}
	return "https://www.youtube.com/embed/" + id
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, dest interface{}) error {
	q.Set("client_id", c.ClientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("catalog: building request: %v", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog: upstream returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("catalog: decoding response: %v", err)
	}
	return nil
}
