package reddit

import "strings"

// Category is the content category of a Reddit post.
type Category int

const (
	CategoryUnknown Category = iota
	CategorySelfPost
	CategoryImage
	CategoryVideo
	CategoryLink
)

func (c Category) String() string {
	switch c {
	case CategorySelfPost:
		return "self_post"
	case CategoryImage:
		return "image"
	case CategoryVideo:
		return "video"
	case CategoryLink:
		return "link"
	default:
		return "unknown"
	}
}

type rule struct {
	name     string
	match    func(*Post) bool
	category Category
}

var imageSuffixes = []string{".jpg", ".png", ".gif", ".jpeg", ".webp"}

// rules are evaluated top to bottom; the first match wins.
var rules = []rule{
	{"is_self", func(p *Post) bool { return p.IsSelf }, CategorySelfPost},
	{"is_video", func(p *Post) bool { return p.IsVideo }, CategoryVideo},
	{"hint_image", func(p *Post) bool { return p.Hint() == "image" }, CategoryImage},
	{"hint_video", func(p *Post) bool { return strings.Contains(p.Hint(), "video") }, CategoryVideo},
	{"hint_link", func(p *Post) bool { return p.Hint() == "link" }, CategoryLink},
	{"image_suffix", hasImageSuffix, CategoryImage},
	{"external_url", func(p *Post) bool { return p.URL != "" && p.URL != p.Permalink }, CategoryLink},
}

func hasImageSuffix(p *Post) bool {
	lower := strings.ToLower(p.URL)
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Classify assigns exactly one category to post.
func Classify(post *Post) Category {
	category, _ := classify(post)
	return category
}

// classify also reports the name of the matching rule, for logging.
func classify(post *Post) (Category, string) {
	for _, r := range rules {
		if r.match(post) {
			return r.category, r.name
		}
	}
	return CategoryUnknown, ""
}
