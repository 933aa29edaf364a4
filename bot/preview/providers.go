package preview

import (
	"fmt"
	"sync"
)

// providerSet holds at most one Provider per Kind. Lookups are by Kind, the
// closed set ResolveKind produces, so no name mapping sits in between.
type providerSet struct {
	mu     sync.RWMutex
	byKind map[Kind]Provider
	order  []Kind
}

func newProviderSet() *providerSet {
	return &providerSet{byKind: make(map[Kind]Provider, 2)}
}

func (s *providerSet) add(p Provider) error {
	if p == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	kind := p.Kind()
	if kind == KindUnsupported {
		return fmt.Errorf("provider %T serves no kind", p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byKind[kind]; exists {
		return fmt.Errorf("provider already registered for %s", kind)
	}
	s.byKind[kind] = p
	s.order = append(s.order, kind)
	return nil
}

func (s *providerSet) get(kind Kind) (Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byKind[kind]
	return p, ok
}

// kinds returns the served kinds in registration order as a fresh slice.
func (s *providerSet) kinds() []Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Kind, len(s.order))
	copy(out, s.order)
	return out
}
