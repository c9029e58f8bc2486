package radar

// observerSlot resolves the player the radar is centered on. An explicitly
// assigned weapon source wins over an explicitly assigned player, which
// wins over the resolver fallback. The result is cached until it becomes
// invalid.
type observerSlot struct {
	source   WeaponObserver
	player   Observer
	resolver func() Observer

	cached Observer
}

func (s *observerSlot) resolve() Observer {
	if s.cached != nil && s.cached.Valid() {
		return s.cached
	}
	s.cached = nil

	switch {
	case s.source != nil && s.source.Valid():
		s.cached = s.source
	case s.player != nil && s.player.Valid():
		s.cached = s.player
	case s.resolver != nil:
		if o := s.resolver(); o != nil && o.Valid() {
			s.cached = o
		}
	}
	return s.cached
}

func (s *observerSlot) invalidate() {
	s.cached = nil
}

// weaponState extracts target and lock state when the observer exposes it.
func weaponState(o Observer) (target EntityID, hasTarget, locked bool) {
	wo, ok := o.(WeaponObserver)
	if !ok {
		return InvalidEntityID, false, false
	}
	target, hasTarget = wo.CurrentTarget()
	return target, hasTarget, wo.WeaponLocked()
}
