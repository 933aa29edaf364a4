package reddit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hint(s string) *string { return &s }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want Category
	}{
		{"self wins over everything", Post{IsSelf: true, IsVideo: true, PostHint: hint("image"), URL: "https://i.redd.it/a.png"}, CategorySelfPost},
		{"is_video", Post{IsVideo: true, PostHint: hint("image")}, CategoryVideo},
		{"hint image", Post{PostHint: hint("image"), URL: "https://example.com/page"}, CategoryImage},
		{"hosted video hint", Post{PostHint: hint("hosted:video")}, CategoryVideo},
		{"rich video hint", Post{PostHint: hint("rich:video"), URL: "https://youtube.com/watch?v=1"}, CategoryVideo},
		{"hint link", Post{PostHint: hint("link"), URL: "https://example.com/a.png"}, CategoryLink},
		{"image suffix upper case", Post{URL: "https://example.com/cat.JPEG"}, CategoryImage},
		{"webp suffix", Post{URL: "https://example.com/cat.webp"}, CategoryImage},
		{"external url", Post{URL: "https://example.com/article", Permalink: "/r/x/comments/1/t/"}, CategoryLink},
		{"url equals permalink", Post{URL: "/r/x/comments/1/t/", Permalink: "/r/x/comments/1/t/"}, CategoryUnknown},
		{"empty url", Post{Permalink: "/r/x/comments/1/t/"}, CategoryUnknown},
		{"unrecognized hint falls through", Post{PostHint: hint("self"), URL: "https://example.com/a.gif"}, CategoryImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(&tt.post))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "self_post", CategorySelfPost.String())
	assert.Equal(t, "image", CategoryImage.String())
	assert.Equal(t, "video", CategoryVideo.String())
	assert.Equal(t, "link", CategoryLink.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestClassifyFirstMatchWins(t *testing.T) {
	post := Post{PostHint: hint("image"), URL: "https://example.com/cat.png"}
	category, rule := classify(&post)
	assert.Equal(t, CategoryImage, category)
	assert.Equal(t, "hint_image", rule)

	post = Post{IsSelf: true, IsVideo: true}
	category, rule = classify(&post)
	assert.Equal(t, CategorySelfPost, category)
	assert.Equal(t, "is_self", rule)

	category, rule = classify(&Post{})
	assert.Equal(t, CategoryUnknown, category)
	assert.Empty(t, rule)
}
