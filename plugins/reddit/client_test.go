package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postLink = "https://www.reddit.com/r/golang/comments/abc123/go_is_fun/"

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = rt.target.Scheme
	clone.URL.Host = rt.target.Host
	clone.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	return New(nil, transport.Options{
		UserAgent: "bunny-test",
		Timeout:   time.Second,
		Transport: rewriteTransport{target: target},
	})
}

func listingBody(post string) string {
	return `[{"kind":"Listing","data":{"children":[{"kind":"t3","data":` + post + `}]}},{"kind":"Listing","data":{"children":[]}}]`
}

func resolved(raw string) preview.ResolvedURL {
	return preview.ResolvedURL{Raw: raw, Host: "www.reddit.com"}
}

func TestListingURL(t *testing.T) {
	assert.Equal(t, "https://www.reddit.com/r/x/comments/1/t.json", ListingURL("https://www.reddit.com/r/x/comments/1/t/"))
	assert.Equal(t, "https://www.reddit.com/r/x/comments/1/t.json", ListingURL("https://www.reddit.com/r/x/comments/1/t"))
	assert.Equal(t, "https://www.reddit.com/r/x/comments/1/t/.json", ListingURL("https://www.reddit.com/r/x/comments/1/t//"))
}

func TestFetchPost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/golang/comments/abc123/go_is_fun.json", r.URL.Path)
		assert.Equal(t, "bunny-test", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Accept"))
		_, _ = w.Write([]byte(listingBody(`{
			"subreddit": "golang",
			"title": "Go is fun",
			"score": 42,
			"num_comments": 7,
			"permalink": "/r/golang/comments/abc123/go_is_fun/",
			"selftext": "body",
			"author": "gopher",
			"url": "https://www.reddit.com/r/golang/comments/abc123/go_is_fun/",
			"is_self": true,
			"media": null,
			"secure_media": {"type": "youtube.com", "oembed": {"provider_url": "https://www.youtube.com/", "provider_name": "YouTube"}},
			"preview": {"images": [{"source": {"url": "https://preview.redd.it/a.jpg", "width": 640, "height": 480}, "resolutions": []}]}
		}`)))
	})

	post, err := client.FetchPost(context.Background(), resolved(postLink))
	require.NoError(t, err)
	assert.Equal(t, "Go is fun", post.Title)
	assert.Equal(t, int64(42), post.Score)
	assert.Equal(t, uint32(7), post.NumComments)
	assert.True(t, post.IsSelf)
	assert.False(t, post.IsVideo)
	assert.Empty(t, post.Thumbnail)
	assert.Nil(t, post.PostHint)
	require.NotNil(t, post.SecureMedia, "embed-only secure_media still decodes")
	assert.Nil(t, post.SecureMedia.RedditVideo)

	_, ok := post.FallbackURL()
	assert.False(t, ok)
}

func TestFetchPostIgnoresCommentsListing(t *testing.T) {
	body := `[{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"title":"t","permalink":"/r/x/comments/1/t/"}}]}},` +
		`{"kind":"Listing","data":{"children":[{"kind":"t1","data":{"score":"lots","replies":""}}]}}]`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	post, err := client.FetchPost(context.Background(), resolved(postLink))
	require.NoError(t, err)
	assert.Equal(t, "t", post.Title)
	assert.Equal(t, "/r/x/comments/1/t/", post.Permalink)
}

func TestFetchPostEmptyListing(t *testing.T) {
	bodies := map[string]string{
		"empty array":    `[]`,
		"empty children": `[{"kind":"Listing","data":{"children":[]}}]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			post, err := client.FetchPost(context.Background(), resolved(postLink))
			assert.Nil(t, post)
			var fe *preview.FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, preview.ReasonEmptyListing, fe.Reason)
			assert.Equal(t, preview.KindReddit, fe.Provider)
		})
	}
}

func TestFetchPostDecodeErrors(t *testing.T) {
	bodies := map[string]string{
		"object body":   `{"kind":"Listing","data":{"children":[]}}`,
		"not json":      `<html>blocked</html>`,
		"type mismatch": listingBody(`{"title":"t","permalink":"/r/x/","score":"lots"}`),
		"missing title": listingBody(`{"permalink":"/r/x/"}`),
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.FetchPost(context.Background(), resolved(postLink))
			var fe *preview.FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, preview.ReasonDecode, fe.Reason)
		})
	}
}

func TestFetchPostStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchPost(context.Background(), resolved(postLink))
	require.Error(t, err)
	assert.True(t, errors.Is(err, preview.ErrFetch))

	var fe *preview.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusTooManyRequests, fe.StatusCode)
}
