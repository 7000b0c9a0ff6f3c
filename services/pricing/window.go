package pricing

import (
	"strings"
	"time"
)

// IsActive reports whether now falls inside the schedule's daily window in
// the resolver's zone. Bounds are inclusive. A window whose end is not after
// its start runs past midnight, so it is checked both as starting today and
// as having started yesterday.
//
// Incomplete or unparsable schedules are never active.
func (r *Resolver) IsActive(s Schedule, now time.Time) bool {
	if !s.Complete() || r.loc == nil {
		return false
	}
	fromH, fromM, ok := parseClock(s.Value.ActiveFrom)
	if !ok {
		return false
	}
	toH, toM, ok := parseClock(s.Value.ActiveTo)
	if !ok {
		return false
	}

	y, m, d := now.In(r.loc).Date()
	for _, offset := range []int{0, -1} {
		from := time.Date(y, m, d+offset, fromH, fromM, 0, 0, r.loc)
		to := time.Date(y, m, d+offset, toH, toM, 0, 0, r.loc)
		if !to.After(from) {
			to = time.Date(y, m, d+offset+1, toH, toM, 0, 0, r.loc)
		}
		if !now.Before(from) && !now.After(to) {
			return true
		}
	}
	return false
}

// parseClock reads a wall-clock "HH:MM".
func parseClock(v string) (int, int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(v))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}
