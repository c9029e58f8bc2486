package radar

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// EntityID is a stable handle for a world entity. The radar keys all of its
// bookkeeping by ID instead of holding on to entity references, so a
// destroyed entity can never be kept alive by a stale pool entry.
type EntityID uint64

// InvalidEntityID represents an unset or invalidated entity reference.
const InvalidEntityID EntityID = 0

// TrackKind is the optional classification of a contact, used for filtering.
type TrackKind int

const (
	KindEnemy TrackKind = iota
	KindFriendly
	KindNeutral
)

func (k TrackKind) String() string {
	switch k {
	case KindEnemy:
		return "enemy"
	case KindFriendly:
		return "friendly"
	case KindNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Contact is a trackable world entity, typically an aircraft. The radar
// never owns contacts; it only observes them during rescans.
type Contact interface {
	ID() EntityID
	Position() r3.Vec
	IsPlayer() bool
	IsDead() bool
	// Kind reports the contact's classification; ok is false when the
	// contact is unclassified.
	Kind() (kind TrackKind, ok bool)
	Tag() string
}

// Missile is a guided weapon in flight.
type Missile interface {
	ID() EntityID
	Position() r3.Vec
	// Forward is the missile's heading. It need not be normalized.
	Forward() r3.Vec
	Velocity() r3.Vec
	OwnerID() EntityID
	// Valid is false once the missile has been destroyed.
	Valid() bool
}

// ContactSource enumerates every contact currently in the world.
type ContactSource interface {
	Contacts() []Contact
}

// MissileSource enumerates every missile currently in flight.
type MissileSource interface {
	Missiles() []Missile
}

// ObserverFrame is the projection origin: the player's position, heading
// and velocity for the current tick.
type ObserverFrame struct {
	Position r3.Vec
	Forward  r3.Vec
	Velocity r3.Vec
}

// Observer is the player the radar is centered on.
type Observer interface {
	ID() EntityID
	Frame() ObserverFrame
	Valid() bool
}

// WeaponObserver is an observer that also exposes its weapon state, which
// drives current-target and lock highlighting.
type WeaponObserver interface {
	Observer
	CurrentTarget() (EntityID, bool)
	WeaponLocked() bool
}

// Visual is a marker handle: a node that can be positioned, sized and
// colored. Implementations may be invalidated out-of-band, in which case
// Alive reports false and the pool rebuilds the marker.
type Visual interface {
	Alive() bool
	Destroy()
	SetOffset(offset r2.Vec)
	SetSize(size r2.Vec)
	SetColor(c color.NRGBA)
	SetVisible(visible bool)
}

// Sizer is implemented by visuals that know their natural dimensions.
type Sizer interface {
	// FixedSize is an explicit, non-stretched size; ok is false when the
	// visual is laid out by its container instead.
	FixedSize() (size r2.Vec, ok bool)
	BoundsSize() r2.Vec
	PreferredSize() r2.Vec
}

// Template instantiates marker visuals.
type Template interface {
	Instantiate() Visual
}

// TemplateFunc adapts a plain function to a Template.
type TemplateFunc func() Visual

func (f TemplateFunc) Instantiate() Visual { return f() }
