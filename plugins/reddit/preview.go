package reddit

import (
	"fmt"
	"strings"

	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
)

// Color is Reddit's orange-red brand color.
const Color = 0xFF5700

const siteBase = "https://www.reddit.com"

// BuildDocument normalizes post into a preview for category. link is the URL
// the user supplied and is the document URL unless a category overrides it.
func BuildDocument(link string, post *Post, category Category) *preview.Document {
	doc := &preview.Document{
		Provider: preview.KindReddit,
		Category: category.String(),
		Title:    post.Title,
		URL:      link,
		Color:    Color,
		Fields: []preview.Field{
			{Value: fmt.Sprintf("r/%s • ⬆ %d • 💬 %d", post.Subreddit, post.Score, post.NumComments)},
		},
	}

	switch category {
	case CategorySelfPost:
		doc.Description = post.Selftext
		doc.URL = siteBase + post.Permalink
	case CategoryImage:
		doc.URL = siteBase + post.Permalink
		doc.ImageURL = imageURL(post)
	case CategoryVideo:
		if fallback, ok := post.FallbackURL(); ok {
			doc.URL = fallback
		} else {
			doc.URL = post.URL
		}
		doc.ThumbnailURL = thumbnailURL(post)
	case CategoryLink:
		doc.URL = post.URL
		doc.Description = fmt.Sprintf("[Link to original content](%s)", post.URL)
		doc.ThumbnailURL = thumbnailURL(post)
	}
	return doc
}

// imageURL routes bare i.redd.it links through the gallery path.
func imageURL(post *Post) string {
	u := post.URL
	if strings.Contains(u, "i.redd.it/") && !strings.Contains(u, "/gallery/") && post.Hint() == "image" {
		u = strings.Replace(u, "i.redd.it/", "i.redd.it/gallery/", 1)
	}
	return u
}

// thumbnailURL returns the post thumbnail when it is a real URL. Reddit uses
// placeholders like "default", "self" and "nsfw" otherwise.
func thumbnailURL(post *Post) string {
	t := post.Thumbnail
	if strings.HasPrefix(t, "http") && t != "default" && t != "nsfw" {
		return t
	}
	return ""
}
