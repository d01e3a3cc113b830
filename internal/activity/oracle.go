package activity

import "time"

// Oracle answers whether a player counts as active. A player is active when
// they were seen within maxAge of now. A non-positive maxAge disables the
// window entirely: every player is active and the inactive-owners rule can
// never fire.
type Oracle struct {
	lastSeen map[string]time.Time
	maxAge   time.Duration
	now      func() time.Time
}

// NewOracle builds an oracle over a last-seen table. now may be nil, in
// which case time.Now is used.
func NewOracle(lastSeen map[string]time.Time, maxAge time.Duration, now func() time.Time) *Oracle {
	if now == nil {
		now = time.Now
	}
	return &Oracle{lastSeen: lastSeen, maxAge: maxAge, now: now}
}

// IsActive reports whether the named player was seen recently enough. A
// player absent from the logs is inactive.
func (o *Oracle) IsActive(name string) bool {
	if o.maxAge <= 0 {
		return true
	}
	seen, ok := o.lastSeen[name]
	if !ok {
		return false
	}
	return o.now().Sub(seen) <= o.maxAge
}

// LastSeen returns the underlying table, for reporting.
func (o *Oracle) LastSeen() map[string]time.Time {
	return o.lastSeen
}
