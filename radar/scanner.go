package radar

import "math"

const (
	// DefaultRescanInterval is the time between full contact rescans.
	DefaultRescanInterval = 0.5

	// MinRescanInterval floors the rescan interval so a misconfigured
	// value cannot trigger a rescan every frame.
	MinRescanInterval = 0.05
)

// ContactFilter restricts which contacts are tracked. Zero values disable
// the corresponding filter.
type ContactFilter struct {
	// Tag, if non-empty, must match the contact's tag exactly.
	Tag string

	// Kinds, if non-empty, lists the classifications to track. Unclassified
	// contacts fail a non-empty kind filter.
	Kinds []TrackKind
}

func (f ContactFilter) accepts(c Contact) bool {
	if f.Tag != "" && c.Tag() != f.Tag {
		return false
	}
	if len(f.Kinds) == 0 {
		return true
	}
	kind, ok := c.Kind()
	if !ok {
		return false
	}
	for _, k := range f.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ContactScanner periodically resynchronizes the tracked-contact list with
// the world. Between rescans the list is reused as-is.
type ContactScanner struct {
	filter     ContactFilter
	interval   float64
	nextRescan float64
	forced     bool
	contacts   []Contact
}

// NewContactScanner creates a scanner that rescans on its first update.
func NewContactScanner(interval float64, filter ContactFilter) *ContactScanner {
	s := &ContactScanner{filter: filter, forced: true}
	s.SetInterval(interval)
	return s
}

// SetInterval sets the rescan interval in seconds, floored at
// MinRescanInterval.
func (s *ContactScanner) SetInterval(seconds float64) {
	s.interval = math.Max(seconds, MinRescanInterval)
}

// Interval returns the effective rescan interval.
func (s *ContactScanner) Interval() float64 {
	return s.interval
}

// SetFilter replaces the inclusion filter and forces a rescan.
func (s *ContactScanner) SetFilter(filter ContactFilter) {
	s.filter = filter
	s.ForceRescan()
}

// ForceRescan makes the next Update discover contacts regardless of the
// timer.
func (s *ContactScanner) ForceRescan() {
	s.forced = true
}

// Due reports whether a rescan should run at time now.
func (s *ContactScanner) Due(now float64) bool {
	return s.forced || now >= s.nextRescan
}

// Discover replaces the tracked-contact list with every contact in src
// that passes the exclusion rules and the filter.
func (s *ContactScanner) Discover(src ContactSource, observerID EntityID) []Contact {
	var all []Contact
	if src != nil {
		all = src.Contacts()
	}

	tracked := make([]Contact, 0, len(all))
	for _, c := range all {
		if c == nil || c.IsPlayer() || c.IsDead() {
			continue
		}
		if observerID != InvalidEntityID && c.ID() == observerID {
			continue
		}
		if !s.filter.accepts(c) {
			continue
		}
		tracked = append(tracked, c)
	}
	s.contacts = tracked
	return tracked
}

// Update runs a discover-and-reconcile cycle if one is due, pruning pool
// entries for contacts that are no longer tracked. It reports whether a
// rescan happened and how many markers were pruned.
func (s *ContactScanner) Update(now float64, src ContactSource, observerID EntityID, pool *MarkerPool[EntityID]) (rescanned bool, pruned int) {
	if !s.Due(now) {
		return false, 0
	}
	s.forced = false
	s.nextRescan = now + s.interval

	tracked := s.Discover(src, observerID)
	live := make(map[EntityID]struct{}, len(tracked))
	for _, c := range tracked {
		live[c.ID()] = struct{}{}
	}
	return true, pool.Prune(live)
}

// Contacts returns the tracked-contact list from the last rescan.
func (s *ContactScanner) Contacts() []Contact {
	return s.contacts
}

// Reset drops the tracked list and forces a rescan on the next update.
func (s *ContactScanner) Reset() {
	s.contacts = nil
	s.ForceRescan()
}
