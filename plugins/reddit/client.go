package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/TheBunnyMan123/bunny-bot/bot"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview/transport"
)

// Client fetches post listings from Reddit's public JSON endpoints.
type Client struct {
	http   *transport.Client
	logger bot.Logger
}

// New returns a Reddit client.
func New(logger bot.Logger, opts transport.Options) *Client {
	if logger == nil {
		logger = bot.NopLogger{}
	}
	if opts.Name == "" {
		opts.Name = "reddit-api"
	}
	return &Client{http: transport.New(opts), logger: logger}
}

// ListingURL turns a post link into its JSON listing URL by dropping one
// trailing slash and appending ".json".
func ListingURL(raw string) string {
	return strings.TrimSuffix(raw, "/") + ".json"
}

// FetchPost fetches the first post of the listing behind u.
func (c *Client) FetchPost(ctx context.Context, u preview.ResolvedURL) (*Post, error) {
	endpoint := ListingURL(u.Raw)
	c.logger.Debug("reddit: fetching listing", "url", endpoint)

	resp, err := c.http.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, preview.NewTransportError(preview.KindReddit, endpoint, err)
	}
	if !resp.OK() {
		return nil, preview.NewStatusError(preview.KindReddit, endpoint, resp.StatusCode)
	}
	return decodePost(endpoint, resp.Body)
}

// decodePost reads the post listing, element 0 of the body. The comments
// listing that follows is left raw.
func decodePost(endpoint string, body []byte) (*Post, error) {
	var listings []json.RawMessage
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, preview.NewDecodeError(preview.KindReddit, endpoint, err)
	}
	if len(listings) == 0 {
		return nil, preview.NewEmptyListingError(preview.KindReddit, endpoint)
	}

	var first listing
	if err := json.Unmarshal(listings[0], &first); err != nil {
		return nil, preview.NewDecodeError(preview.KindReddit, endpoint, err)
	}
	if len(first.Data.Children) == 0 {
		return nil, preview.NewEmptyListingError(preview.KindReddit, endpoint)
	}

	post := first.Data.Children[0].Data
	switch {
	case post.Title == "":
		return nil, preview.NewDecodeError(preview.KindReddit, endpoint, errors.New("missing title"))
	case post.Permalink == "":
		return nil, preview.NewDecodeError(preview.KindReddit, endpoint, errors.New("missing permalink"))
	}
	return &post, nil
}
