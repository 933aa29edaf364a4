package preview

import "context"

// Provider turns a resolved URL of one site into a preview document.
//
// Implementations make at most one outbound call per Preview and hold no
// request-scoped state, so they are safe for concurrent use.
type Provider interface {
	// Kind returns the provider this implementation serves.
	Kind() Kind

	// Preview fetches metadata for u and normalizes it.
	//
	// Returns a *FetchError when the provider call or its decoding fails.
	// A non-nil error is never accompanied by a document.
	Preview(ctx context.Context, u ResolvedURL) (*Document, error)
}
