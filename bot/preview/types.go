package preview

// Kind identifies a content provider. The set is closed; see ResolveKind.
type Kind int

const (
	KindUnsupported Kind = iota
	KindGitHub
	KindReddit
)

// String returns the provider identifier used in config sections and logs.
func (k Kind) String() string {
	switch k {
	case KindGitHub:
		return "github"
	case KindReddit:
		return "reddit"
	default:
		return "unsupported"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ResolvedURL is an input URL that parsed as absolute and carries a host.
type ResolvedURL struct {
	// Raw is the input string after surrounding whitespace is trimmed.
	Raw string `json:"raw"`

	// Host is the lower-cased host without port.
	Host string `json:"host"`
}

// Field is one labelled line of auxiliary stats. Label may be empty.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Author is the byline shown above the title.
type Author struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// Document is the provider-agnostic preview handed to the presentation layer.
// It is built once by a provider and not modified afterwards.
type Document struct {
	// Provider is the provider that produced the document.
	Provider Kind `json:"provider"`

	// Category is the content category for polymorphic providers (Reddit).
	Category string `json:"category,omitempty"`

	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`

	// Color is a 24-bit RGB brand color.
	Color int `json:"color"`

	// At most one of ThumbnailURL and ImageURL is set.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`

	Author *Author `json:"author,omitempty"`
	Fields []Field `json:"fields"`
}
