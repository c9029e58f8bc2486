package radar

import (
	"errors"
	"log/slog"

	"flightradar/log"

	"gonum.org/v1/gonum/spatial/r2"
)

// Config holds the radar's static configuration. User-tunable values
// (range, marker size, visibility) come from the settings store instead.
type Config struct {
	// RadiusPixels is the radius of the radar display.
	RadiusPixels float64

	// RotateWithObserver keeps the display heading-up.
	RotateWithObserver bool

	// ClampToEdge pins out-of-range markers to the rim instead of hiding
	// them.
	ClampToEdge bool

	RescanInterval   float64
	SettingsInterval float64

	Filter ContactFilter

	// DefaultMarkerSize is the base size for visuals that cannot report
	// their own.
	DefaultMarkerSize r2.Vec

	// MissileHalfAngle is the threat cone half-angle in degrees.
	MissileHalfAngle float64

	Style StyleConfig

	// Defaults are used for keys missing from the settings store.
	Defaults Snapshot

	ContactTemplate Template
	MissileTemplate Template

	// FallbackShape builds a minimal marker when a template is missing.
	FallbackShape Template
}

// DefaultConfig returns a default configuration without templates.
func DefaultConfig() Config {
	return Config{
		RadiusPixels:       100,
		RotateWithObserver: true,
		ClampToEdge:        true,
		RescanInterval:     DefaultRescanInterval,
		SettingsInterval:   DefaultSettingsInterval,
		DefaultMarkerSize:  r2.Vec{X: 12, Y: 12},
		MissileHalfAngle:   DefaultTrackingHalfAngle,
		Style:              DefaultStyleConfig(),
		Defaults:           DefaultSnapshot(),
	}
}

// Radar is the per-frame radar and threat-detection engine. It is not safe
// for concurrent use; call every method from the frame loop.
type Radar struct {
	cfg Config
	lg  *log.Logger

	contacts ContactSource
	missiles MissileSource

	observer observerSlot
	settings *SettingsAdapter
	scanner  *ContactScanner
	threats  *ThreatDetector

	contactMarkers *MarkerPool[EntityID]
	missileMarkers *MarkerPool[EntityID]

	warned map[string]bool
}

// New creates a radar reading entities from contacts and missiles and user
// settings from store.
func New(cfg Config, contacts ContactSource, missiles MissileSource, store SettingsStore, lg *log.Logger) *Radar {
	return &Radar{
		cfg:            cfg,
		lg:             lg.With(slog.String("component", "radar")),
		contacts:       contacts,
		missiles:       missiles,
		settings:       NewSettingsAdapter(store, cfg.Defaults, cfg.SettingsInterval),
		scanner:        NewContactScanner(cfg.RescanInterval, cfg.Filter),
		threats:        NewThreatDetector(cfg.MissileHalfAngle),
		contactMarkers: NewMarkerPool[EntityID](cfg.DefaultMarkerSize),
		missileMarkers: NewMarkerPool[EntityID](cfg.DefaultMarkerSize),
		warned:         make(map[string]bool),
	}
}

// SetPlayer assigns the observer explicitly.
func (r *Radar) SetPlayer(o Observer) {
	r.observer.player = o
	r.observerChanged()
}

// SetPlayerSource assigns an observer that also reports weapon state. It
// takes precedence over SetPlayer.
func (r *Radar) SetPlayerSource(o WeaponObserver) {
	r.observer.source = o
	r.observerChanged()
}

// SetObserverResolver installs a fallback used only when no observer has
// been assigned or the assigned one has become invalid.
func (r *Radar) SetObserverResolver(fn func() Observer) {
	r.observer.resolver = fn
	r.observerChanged()
}

func (r *Radar) observerChanged() {
	r.observer.invalidate()
	r.threats.Reset()
	r.scanner.ForceRescan()
}

// SetFixedRange pins the radar range, overriding the settings store.
func (r *Radar) SetFixedRange(meters float64) {
	r.settings.SetFixedRange(meters)
}

// ClearFixedRange returns range control to the settings store.
func (r *Radar) ClearFixedRange() {
	r.settings.ClearFixedRange()
}

// ForceRescan makes the next tick rediscover contacts.
func (r *Radar) ForceRescan() {
	r.scanner.ForceRescan()
}

// SetFilter replaces the contact inclusion filter.
func (r *Radar) SetFilter(f ContactFilter) {
	r.scanner.SetFilter(f)
}

// SetDisplayRadius updates the display radius, e.g. after a layout change.
func (r *Radar) SetDisplayRadius(px float64) {
	r.cfg.RadiusPixels = px
}

// ThreatCount returns the number of missiles currently flagged as threats.
func (r *Radar) ThreatCount() int {
	return r.threats.Count()
}

// TrackedContacts returns the contacts tracked by the last rescan.
func (r *Radar) TrackedContacts() []Contact {
	return r.scanner.Contacts()
}

// Settings returns the effective user settings.
func (r *Radar) Settings() Snapshot {
	return r.settings.Snapshot()
}

// ContactMarkers returns the number of live contact markers.
func (r *Radar) ContactMarkers() int { return r.contactMarkers.Len() }

// MissileMarkers returns the number of live missile markers.
func (r *Radar) MissileMarkers() int { return r.missileMarkers.Len() }

// Disable destroys every marker and forgets all tracking state so that no
// visuals leak across enable/disable cycles.
func (r *Radar) Disable() {
	r.contactMarkers.ClearAll()
	r.missileMarkers.ClearAll()
	r.scanner.Reset()
	r.threats.Reset()
}

// Tick runs one frame of radar work. now is accumulated unscaled time in
// seconds.
func (r *Radar) Tick(now float64) {
	obs := r.observer.resolve()
	if obs == nil {
		return
	}
	frame := obs.Frame()

	if r.settings.Refresh(now) {
		r.lg.Debug("radar settings polled", slog.Any("settings", r.settings.Snapshot()))
	}
	snap := r.settings.Snapshot()

	if snap.ShowContacts {
		if tmpl := r.template(r.cfg.ContactTemplate, "contact"); tmpl != nil {
			if rescanned, pruned := r.scanner.Update(now, r.contacts, obs.ID(), r.contactMarkers); rescanned {
				r.lg.Debug("radar rescan",
					slog.Int("contacts", len(r.scanner.Contacts())),
					slog.Int("pruned", pruned))
			}
			r.styleContacts(obs, frame, snap, tmpl)
		}
	} else if r.contactMarkers.Len() > 0 || len(r.scanner.Contacts()) > 0 {
		r.contactMarkers.ClearAll()
		r.scanner.Reset()
	}

	if snap.ShowMissiles {
		if tmpl := r.template(r.cfg.MissileTemplate, "missile"); tmpl != nil {
			if n := r.threats.Scan(r.missiles, obs.ID(), frame, r.settings.MissileRange(), r.missileMarkers); n > 0 {
				r.lg.Debug("radar missile threats", slog.Int("new", n), slog.Int("tracked", r.threats.Count()))
			}
			r.styleMissiles(frame, snap, tmpl, now)
		}
	} else if r.missileMarkers.Len() > 0 || r.threats.Count() > 0 {
		r.missileMarkers.ClearAll()
		r.threats.Reset()
	}
}

// template picks the configured template or the fallback shape. With
// neither available the pass is skipped, and the condition is logged once.
func (r *Radar) template(t Template, kind string) Template {
	if t != nil {
		return t
	}
	if r.cfg.FallbackShape != nil {
		return r.cfg.FallbackShape
	}
	r.warnNoTemplate(kind, ErrNoTemplate)
	return nil
}

func (r *Radar) warnNoTemplate(kind string, err error) {
	if r.warned[kind] {
		return
	}
	r.warned[kind] = true
	r.lg.Warn("radar has no marker template", slog.String("kind", kind), slog.Any("err", err))
}

// marker returns the pooled marker for id. A template that yields no
// visual is replaced by the fallback shape.
func (r *Radar) marker(pool *MarkerPool[EntityID], id EntityID, tmpl Template, kind string) (*MarkerState, error) {
	ms, err := pool.GetOrCreate(id, tmpl)
	if errors.Is(err, ErrNoTemplate) && r.cfg.FallbackShape != nil {
		ms, err = pool.GetOrCreate(id, r.cfg.FallbackShape)
	}
	if err != nil {
		r.warnNoTemplate(kind, err)
	}
	return ms, err
}

func (r *Radar) styleContacts(obs Observer, frame ObserverFrame, snap Snapshot, tmpl Template) {
	rng := r.settings.ContactRange()
	target, hasTarget, locked := weaponState(obs)

	for _, c := range r.scanner.Contacts() {
		if c.IsDead() {
			// Pruned at the next rescan; until then keep it off screen.
			if ms, ok := r.contactMarkers.Get(c.ID()); ok && ms.Visual.Alive() {
				ms.Visual.SetVisible(false)
			}
			continue
		}

		ms, err := r.marker(r.contactMarkers, c.ID(), tmpl, "contact")
		if err != nil {
			return
		}

		polar := Project(frame, c.Position(), r.cfg.RotateWithObserver)
		offset, visible := ToDisplayOffset(polar, rng, r.cfg.RadiusPixels, r.cfg.ClampToEdge)
		if !visible {
			ms.Visual.SetVisible(false)
			continue
		}

		isTarget := hasTarget && target == c.ID()
		st := r.cfg.Style.Contact(NormalizedDistance(r2.Norm(polar), rng), isTarget, isTarget && locked, snap.MarkerScale)
		apply(ms, offset, st)
	}
}

func (r *Radar) styleMissiles(frame ObserverFrame, snap Snapshot, tmpl Template, now float64) {
	rng := r.settings.MissileRange()
	st := r.cfg.Style.Missile(now, snap.MarkerScale)

	for _, m := range r.threats.Tracked() {
		ms, err := r.marker(r.missileMarkers, m.ID(), tmpl, "missile")
		if err != nil {
			return
		}

		polar := Project(frame, m.Position(), r.cfg.RotateWithObserver)
		offset, visible := ToDisplayOffset(polar, rng, r.cfg.RadiusPixels, r.cfg.ClampToEdge)
		if !visible {
			ms.Visual.SetVisible(false)
			continue
		}
		apply(ms, offset, st)
	}
}

func apply(ms *MarkerState, offset r2.Vec, st Style) {
	ms.Visual.SetOffset(offset)
	ms.Visual.SetSize(r2.Scale(st.SizeMult, ms.BaseSize))
	ms.Visual.SetColor(st.Color)
	ms.Visual.SetVisible(true)
}
