package preview

import (
	"context"
	"errors"

	"github.com/TheBunnyMan123/bunny-bot/bot"
	logpkg "github.com/TheBunnyMan123/bunny-bot/bot/logger"
)

// Resolver runs the URL to preview pipeline: inspect, resolve the provider,
// fetch and normalize. Any failing stage ends the pipeline.
type Resolver struct {
	providers *providerSet
	logger    bot.Logger
}

// NewResolver creates a Resolver with no providers.
func NewResolver(logger bot.Logger) *Resolver {
	if logger == nil {
		logger = bot.NopLogger{}
	}
	return &Resolver{providers: newProviderSet(), logger: logger}
}

// Register adds a provider. Each Kind can be served by one provider only.
func (r *Resolver) Register(p Provider) error {
	return r.providers.add(p)
}

// Kinds returns the kinds that currently have a provider, in registration order.
func (r *Resolver) Kinds() []Kind {
	return r.providers.kinds()
}

// Lookup returns the provider serving host, if one is registered.
func (r *Resolver) Lookup(host string) (Provider, bool) {
	kind := ResolveKind(host)
	if kind == KindUnsupported {
		return nil, false
	}
	return r.providers.get(kind)
}

// Resolve turns raw into a preview document.
//
// Errors: ErrInvalidURL, *UnsupportedProviderError carrying the host, or the
// provider's *FetchError.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Document, error) {
	u, err := Inspect(raw)
	if err != nil {
		r.logger.Debug("preview: invalid url", "input", raw)
		return nil, err
	}

	provider, ok := r.Lookup(u.Host)
	if !ok {
		r.logger.Debug("preview: unsupported host", logpkg.KeyHost, u.Host)
		return nil, &UnsupportedProviderError{Host: u.Host}
	}

	log := logpkg.ForResolution(r.logger, provider.Kind().String(), u.Host)
	doc, err := provider.Preview(ctx, u)
	if err != nil {
		log.Warn("preview: fetch failed", logpkg.KeyURL, u.Raw, "error", err)
		return nil, err
	}
	if doc == nil {
		err := &FetchError{Provider: provider.Kind(), URL: u.Raw, Reason: ReasonDecode, Err: errors.New("provider returned no document")}
		log.Warn("preview: fetch failed", logpkg.KeyURL, u.Raw, "error", err)
		return nil, err
	}

	log.Debug("preview: resolved", logpkg.KeyURL, u.Raw, logpkg.KeyCategory, doc.Category)
	return doc, nil
}
