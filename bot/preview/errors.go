package preview

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks at the presentation layer.
var (
	// ErrInvalidURL is returned when the input does not parse as an absolute URL with a host.
	ErrInvalidURL = errors.New("preview: invalid url")

	// ErrUnsupported matches every *UnsupportedProviderError.
	ErrUnsupported = errors.New("preview: unsupported provider")

	// ErrFetch matches every *FetchError.
	ErrFetch = errors.New("preview: fetch failed")
)

// UnsupportedProviderError reports a host no registered provider handles.
type UnsupportedProviderError struct {
	Host string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("preview: unsupported host %q", e.Host)
}

// Is makes errors.Is(err, ErrUnsupported) true.
func (e *UnsupportedProviderError) Is(target error) bool {
	return target == ErrUnsupported
}

// FetchReason classifies why a provider fetch failed.
type FetchReason int

const (
	// ReasonTransport covers network failures and cancelled contexts.
	ReasonTransport FetchReason = iota
	// ReasonStatus is a non-2xx HTTP response; StatusCode is set.
	ReasonStatus
	// ReasonDecode is a response body that does not match the expected schema.
	ReasonDecode
	// ReasonEmptyListing is a Reddit listing without a post in it.
	ReasonEmptyListing
	// ReasonMalformedURL is a provider URL the fetcher cannot turn into a request.
	ReasonMalformedURL
)

func (r FetchReason) String() string {
	switch r {
	case ReasonTransport:
		return "transport"
	case ReasonStatus:
		return "status"
	case ReasonDecode:
		return "decode"
	case ReasonEmptyListing:
		return "empty listing"
	case ReasonMalformedURL:
		return "malformed url"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// FetchError wraps a provider fetch failure with the provider, URL and cause.
type FetchError struct {
	Provider   Kind
	URL        string
	Reason     FetchReason
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Reason == ReasonStatus:
		return fmt.Sprintf("%s: fetch %s: unexpected status %d", e.Provider, e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: fetch %s: %s: %v", e.Provider, e.URL, e.Reason, e.Err)
	default:
		return fmt.Sprintf("%s: fetch %s: %s", e.Provider, e.URL, e.Reason)
	}
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) true.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// NewStatusError creates a FetchError for a non-2xx response.
func NewStatusError(provider Kind, url string, status int) error {
	return &FetchError{Provider: provider, URL: url, Reason: ReasonStatus, StatusCode: status}
}

// NewTransportError creates a FetchError for a failed round trip.
func NewTransportError(provider Kind, url string, err error) error {
	return &FetchError{Provider: provider, URL: url, Reason: ReasonTransport, Err: err}
}

// NewDecodeError creates a FetchError for a response that failed to decode.
func NewDecodeError(provider Kind, url string, err error) error {
	return &FetchError{Provider: provider, URL: url, Reason: ReasonDecode, Err: err}
}

// NewEmptyListingError creates a FetchError for a listing that holds no post.
func NewEmptyListingError(provider Kind, url string) error {
	return &FetchError{Provider: provider, URL: url, Reason: ReasonEmptyListing}
}

// NewMalformedURLError creates a FetchError for a URL that cannot be mapped to an API request.
func NewMalformedURLError(provider Kind, url string, err error) error {
	return &FetchError{Provider: provider, URL: url, Reason: ReasonMalformedURL, Err: err}
}
