package reddit

// Post is the data block of the first child of a Reddit post listing.
type Post struct {
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Score       int64   `json:"score"`
	NumComments uint32  `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	URL         string  `json:"url"`
	Thumbnail   string  `json:"thumbnail"`
	IsVideo     bool    `json:"is_video"`
	IsSelf      bool    `json:"is_self"`
	SecureMedia *Media  `json:"secure_media"`
	PostHint    *string `json:"post_hint"`
}

// Media is the secure_media block of a post. Only hosted video is read;
// embed details such as oembed are left undecoded.
type Media struct {
	RedditVideo *RedditVideo `json:"reddit_video"`
}

// RedditVideo describes a video hosted on v.redd.it.
type RedditVideo struct {
	FallbackURL *string `json:"fallback_url"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []child `json:"children"`
	} `json:"data"`
}

type child struct {
	Kind string `json:"kind"`
	Data Post   `json:"data"`
}

// Hint returns post_hint or "" when absent.
func (p *Post) Hint() string {
	if p.PostHint == nil {
		return ""
	}
	return *p.PostHint
}

// FallbackURL returns secure_media.reddit_video.fallback_url if every link of
// the chain is present.
func (p *Post) FallbackURL() (string, bool) {
	if p.SecureMedia == nil || p.SecureMedia.RedditVideo == nil || p.SecureMedia.RedditVideo.FallbackURL == nil {
		return "", false
	}
	return *p.SecureMedia.RedditVideo.FallbackURL, true
}
