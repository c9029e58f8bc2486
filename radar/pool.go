package radar

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNoTemplate is returned when a marker is needed but neither a template
// nor a fallback shape is configured.
var ErrNoTemplate = errors.New("radar: no marker template or fallback shape configured")

// MarkerState is the radar's bookkeeping for one tracked entity.
type MarkerState struct {
	Visual Visual

	// BaseSize is the marker's natural size, resolved once at creation.
	BaseSize r2.Vec
}

// MarkerPool maps tracked-entity keys to marker visuals, instantiating on
// demand and destroying on removal. At most one state exists per key.
type MarkerPool[K comparable] struct {
	markers     map[K]*MarkerState
	defaultSize r2.Vec
}

// NewMarkerPool creates an empty pool. defaultSize is the configured base
// size for visuals that cannot report their own.
func NewMarkerPool[K comparable](defaultSize r2.Vec) *MarkerPool[K] {
	return &MarkerPool[K]{
		markers:     make(map[K]*MarkerState),
		defaultSize: defaultSize,
	}
}

// GetOrCreate returns the marker for key, creating it from tmpl if there is
// none or if the existing visual was invalidated out-of-band.
func (p *MarkerPool[K]) GetOrCreate(key K, tmpl Template) (*MarkerState, error) {
	if ms, ok := p.markers[key]; ok {
		if ms.Visual != nil && ms.Visual.Alive() {
			return ms, nil
		}
		// The handle died underneath us; drop it and rebuild.
		delete(p.markers, key)
	}

	if tmpl == nil {
		return nil, ErrNoTemplate
	}
	v := tmpl.Instantiate()
	if v == nil {
		return nil, ErrNoTemplate
	}
	v.SetOffset(r2.Vec{})

	ms := &MarkerState{
		Visual:   v,
		BaseSize: ResolveBaseSize(v, p.defaultSize),
	}
	p.markers[key] = ms
	return ms, nil
}

// Get returns the marker for key without creating one.
func (p *MarkerPool[K]) Get(key K) (*MarkerState, bool) {
	ms, ok := p.markers[key]
	return ms, ok
}

// Prune destroys and removes every marker whose key is not in live, and
// returns the number of markers destroyed.
func (p *MarkerPool[K]) Prune(live map[K]struct{}) int {
	n := 0
	for key, ms := range p.markers {
		if _, ok := live[key]; ok {
			continue
		}
		destroy(ms)
		delete(p.markers, key)
		n++
	}
	return n
}

// ClearAll destroys every marker and empties the pool.
func (p *MarkerPool[K]) ClearAll() int {
	n := len(p.markers)
	for key, ms := range p.markers {
		destroy(ms)
		delete(p.markers, key)
	}
	return n
}

// Len returns the number of markers in the pool.
func (p *MarkerPool[K]) Len() int {
	return len(p.markers)
}

// Keys returns the pool's keys in no particular order.
func (p *MarkerPool[K]) Keys() []K {
	keys := make([]K, 0, len(p.markers))
	for key := range p.markers {
		keys = append(keys, key)
	}
	return keys
}

func destroy(ms *MarkerState) {
	if ms.Visual != nil && ms.Visual.Alive() {
		ms.Visual.Destroy()
	}
}
