package radar

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTrackingHalfAngle is the half-angle, in degrees, of the cone in
// which a missile's heading must point at the observer to count as a
// threat.
const DefaultTrackingHalfAngle = 60.0

// IsThreat reports whether m is an incoming threat to the observer. All of
// the following must hold: the observer did not launch it, it is within
// rangeMeters, its heading is within halfAngleDeg of the direction to the
// observer, and the separation is shrinking.
func IsThreat(m Missile, observerID EntityID, frame ObserverFrame, rangeMeters, halfAngleDeg float64) bool {
	if m == nil || !m.Valid() {
		return false
	}
	if observerID != InvalidEntityID && m.OwnerID() == observerID {
		return false
	}

	toObserver := r3.Sub(frame.Position, m.Position())
	dist := r3.Norm(toObserver)
	if dist > rangeMeters {
		return false
	}
	if dist == 0 {
		// Heading and closing rate are undefined at zero separation.
		return false
	}
	dir := r3.Scale(1/dist, toObserver)

	fwd := m.Forward()
	if r3.Norm(fwd) == 0 {
		return false
	}
	cos := r3.Dot(r3.Unit(fwd), dir)
	if cos < math.Cos(halfAngleDeg*math.Pi/180) {
		return false
	}

	closing := r3.Dot(r3.Sub(m.Velocity(), frame.Velocity), dir)
	return closing > 0
}

// ThreatDetector maintains the set of missiles currently flagged as
// threats. The predicate is only evaluated for missiles that are not yet
// tracked; a tracked missile stays tracked until it leaves the world.
type ThreatDetector struct {
	HalfAngle float64

	tracked map[EntityID]Missile
}

// NewThreatDetector creates a detector with the given tracking half-angle
// in degrees.
func NewThreatDetector(halfAngleDeg float64) *ThreatDetector {
	return &ThreatDetector{
		HalfAngle: halfAngleDeg,
		tracked:   make(map[EntityID]Missile),
	}
}

// Scan runs one detection pass and reconciles the missile marker pool. It
// returns the number of newly flagged missiles.
func (d *ThreatDetector) Scan(src MissileSource, observerID EntityID, frame ObserverFrame, rangeMeters float64, pool *MarkerPool[EntityID]) int {
	for id, m := range d.tracked {
		if m == nil || !m.Valid() {
			delete(d.tracked, id)
		}
	}

	var world []Missile
	if src != nil {
		world = src.Missiles()
	}

	inWorld := make(map[EntityID]struct{}, len(world))
	added := 0
	for _, m := range world {
		if m == nil || !m.Valid() {
			continue
		}
		id := m.ID()
		inWorld[id] = struct{}{}
		if _, ok := d.tracked[id]; ok {
			continue
		}
		if IsThreat(m, observerID, frame, rangeMeters, d.HalfAngle) {
			d.tracked[id] = m
			added++
		}
	}

	live := make(map[EntityID]struct{}, len(d.tracked))
	for id := range d.tracked {
		if _, ok := inWorld[id]; !ok {
			delete(d.tracked, id)
			continue
		}
		live[id] = struct{}{}
	}
	if pool != nil {
		pool.Prune(live)
	}
	return added
}

// Count returns the number of tracked threats.
func (d *ThreatDetector) Count() int {
	return len(d.tracked)
}

// IsTracked reports whether the missile with the given ID is flagged.
func (d *ThreatDetector) IsTracked(id EntityID) bool {
	_, ok := d.tracked[id]
	return ok
}

// Tracked returns the tracked missiles ordered by ID.
func (d *ThreatDetector) Tracked() []Missile {
	ids := make([]EntityID, 0, len(d.tracked))
	for id := range d.tracked {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Missile, len(ids))
	for i, id := range ids {
		out[i] = d.tracked[id]
	}
	return out
}

// Reset forgets every tracked missile.
func (d *ThreatDetector) Reset() {
	clear(d.tracked)
}
