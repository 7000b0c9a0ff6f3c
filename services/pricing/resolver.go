// Package pricing decides what a menu item costs at a given instant.
//
// Items may carry a recurring daily window ("22:00"-"02:00") expressed in the
// hotel's local time. Inside the window the base price applies, outside it
// the item resolves to 0. Items without a window always cost their base
// price, and so do items whose window is incomplete (fail-open).
package pricing

import (
	"math"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
)

// ReferenceTimeZone is the zone every schedule is read in.
const ReferenceTimeZone = "Europe/Istanbul"

// Resolver evaluates schedules in one fixed zone. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	zone   string
	loc    *time.Location
	logger *zap.Logger
}

// New builds a Resolver for zone tz. If the zone cannot be loaded the
// resolver still works, but reports every window as inactive.
func New(tz string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Error("pricing: failed to load time zone, scheduled prices will read as inactive",
			zap.String("zone", tz), zap.Error(err))
		loc = nil
	}
	return &Resolver{zone: tz, loc: loc, logger: logger}
}

// Default builds a Resolver for ReferenceTimeZone.
func Default(logger *zap.Logger) *Resolver {
	return New(ReferenceTimeZone, logger)
}

// Zone returns the configured zone name.
func (r *Resolver) Zone() string { return r.zone }

// Location returns the loaded zone, or UTC when it could not be loaded.
func (r *Resolver) Location() *time.Location {
	if r.loc == nil {
		return time.UTC
	}
	return r.loc
}

// Resolve returns the price to charge at now.
func (r *Resolver) Resolve(price float64, raw any, now time.Time) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0
	}
	s := Normalize(raw)
	if !s.Complete() {
		return price
	}
	if r.IsActive(s, now) {
		return price
	}
	return 0
}

// SafeResolve is Resolve with a per-item error boundary for listings: a
// panic while resolving is logged with the item id and yields 0.
func (r *Resolver) SafeResolve(id string, price float64, raw any, now time.Time) (resolved float64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("pricing: failed to resolve item price",
				zap.String("id", id), zap.Any("error", rec))
			resolved = 0
		}
	}()
	return r.Resolve(price, raw, now)
}
