package radar

import "math"

// Keys read from the persisted settings store.
const (
	KeyShowContacts = "radar.show_contacts"
	KeyShowMissiles = "radar.show_missiles"
	KeyMarkerSize   = "radar.marker_size"
	KeyRange        = "radar.range"
)

const (
	// DefaultSettingsInterval is the time between settings polls.
	DefaultSettingsInterval = 0.5

	// MinSettingsInterval bounds how often the store may be polled.
	MinSettingsInterval = 0.5

	// DefaultRange is the radar range in meters when the store has none.
	DefaultRange = 2000.0
)

// SettingsStore is the externally persisted configuration. Missing keys
// yield the supplied default.
type SettingsStore interface {
	Bool(key string, def bool) bool
	Float(key string, def float64) float64
}

// Snapshot is an immutable view of the radar's user settings.
type Snapshot struct {
	Range        float64
	MarkerScale  float64
	ShowContacts bool
	ShowMissiles bool
}

// DefaultSnapshot returns the values used for keys missing from the store.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Range:        DefaultRange,
		MarkerScale:  1,
		ShowContacts: true,
		ShowMissiles: true,
	}
}

// SettingsAdapter polls a SettingsStore on its own timer and caches the
// result, so the store is read at most once per interval.
type SettingsAdapter struct {
	store    SettingsStore
	defaults Snapshot
	interval float64
	nextPoll float64
	polled   bool

	snap Snapshot

	fixedRange    float64
	hasFixedRange bool

	// Contact and missile detection share one range; they are held
	// separately so the fixed override can be applied to both at once.
	contactRange float64
	missileRange float64
}

// NewSettingsAdapter creates an adapter that polls store every interval
// seconds (floored at MinSettingsInterval). A nil store leaves the
// defaults in effect.
func NewSettingsAdapter(store SettingsStore, defaults Snapshot, interval float64) *SettingsAdapter {
	a := &SettingsAdapter{
		store:    store,
		defaults: defaults,
		interval: math.Max(interval, MinSettingsInterval),
		snap:     defaults,
	}
	a.applyRange()
	return a
}

// Refresh polls the store if the interval has elapsed. It reports whether
// the store was read.
func (a *SettingsAdapter) Refresh(now float64) bool {
	if a.polled && now < a.nextPoll {
		return false
	}
	a.polled = true
	a.nextPoll = now + a.interval

	if a.store != nil {
		d := a.defaults
		a.snap = Snapshot{
			Range:        a.store.Float(KeyRange, d.Range),
			MarkerScale:  a.store.Float(KeyMarkerSize, d.MarkerScale),
			ShowContacts: a.store.Bool(KeyShowContacts, d.ShowContacts),
			ShowMissiles: a.store.Bool(KeyShowMissiles, d.ShowMissiles),
		}
	}
	a.applyRange()
	return true
}

// Snapshot returns the settings as of the last poll, with the fixed range
// override applied.
func (a *SettingsAdapter) Snapshot() Snapshot {
	s := a.snap
	s.Range = a.contactRange
	return s
}

// SetFixedRange pins the range, overriding the polled value until
// ClearFixedRange is called. It takes effect immediately.
func (a *SettingsAdapter) SetFixedRange(meters float64) {
	a.fixedRange = meters
	a.hasFixedRange = true
	a.applyRange()
}

// ClearFixedRange returns control of the range to the settings store.
func (a *SettingsAdapter) ClearFixedRange() {
	a.hasFixedRange = false
	a.applyRange()
}

// FixedRange returns the pinned range, if any.
func (a *SettingsAdapter) FixedRange() (float64, bool) {
	return a.fixedRange, a.hasFixedRange
}

// ContactRange returns the effective contact detection range.
func (a *SettingsAdapter) ContactRange() float64 { return a.contactRange }

// MissileRange returns the effective missile detection range.
func (a *SettingsAdapter) MissileRange() float64 { return a.missileRange }

func (a *SettingsAdapter) applyRange() {
	r := a.snap.Range
	if a.hasFixedRange {
		r = a.fixedRange
	}
	a.contactRange = r
	a.missileRange = r
}
