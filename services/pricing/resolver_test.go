package pricing

import (
	"math"
	"testing"
	"time"

	"roomservice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func istanbul(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(ReferenceTimeZone)
	require.NoError(t, err)
	return time.Date(2025, time.June, 10, hour, minute, 0, 0, loc)
}

func TestResolveNonPositivePriceIsZero(t *testing.T) {
	r := Default(nil)
	now := istanbul(t, 12, 0)
	schedules := []any{
		nil,
		"",
		`{"activeFrom":"09:00","activeTo":"18:00"}`,
		`{"activeFrom":"20:00","activeTo":"21:00"}`,
		models.PriceSchedule{ActiveFrom: "09:00"},
	}
	for _, price := range []float64{0, -1, -0.01, math.NaN(), math.Inf(1)} {
		for _, raw := range schedules {
			assert.Zero(t, r.Resolve(price, raw, now), "price %v schedule %v", price, raw)
		}
	}
}

func TestResolveWithoutCompleteScheduleChargesBasePrice(t *testing.T) {
	r := Default(nil)
	for _, hour := range []int{0, 6, 12, 23} {
		now := istanbul(t, hour, 0)
		assert.Equal(t, 45.5, r.Resolve(45.5, nil, now))
		assert.Equal(t, 45.5, r.Resolve(45.5, "not json", now))
		assert.Equal(t, 45.5, r.Resolve(45.5, models.PriceSchedule{}, now))
		assert.Equal(t, 45.5, r.Resolve(45.5, models.PriceSchedule{ActiveFrom: "09:00"}, now))
		assert.Equal(t, 45.5, r.Resolve(45.5, `{"activeTo":"18:00"}`, now))
	}
}

func TestResolveFollowsWindow(t *testing.T) {
	r := Default(nil)
	raw := `{"activeFrom":"09:00","activeTo":"18:00"}`

	assert.Equal(t, 120.0, r.Resolve(120, raw, istanbul(t, 9, 0)))
	assert.Equal(t, 120.0, r.Resolve(120, raw, istanbul(t, 18, 0)))
	assert.Zero(t, r.Resolve(120, raw, istanbul(t, 18, 1)))
	assert.Zero(t, r.Resolve(120, raw, istanbul(t, 8, 59)))
}

func TestResolveUnknownZoneFallsToInactive(t *testing.T) {
	r := New("Nowhere/Invalid", nil)
	now := istanbul(t, 12, 0)

	assert.Zero(t, r.Resolve(10, models.PriceSchedule{ActiveFrom: "00:00", ActiveTo: "23:59"}, now))
	assert.Equal(t, 10.0, r.Resolve(10, nil, now))
}

type corruptSchedule struct{}

func (corruptSchedule) MarshalJSON() ([]byte, error) {
	panic("corrupt record")
}

func TestCorruptScheduleFailsOpen(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := Default(zap.New(core))
	now := istanbul(t, 12, 0)

	require.NotPanics(t, func() {
		assert.Equal(t, 99.0, r.SafeResolve("sub-1", 99, corruptSchedule{}, now))
	})
	assert.Equal(t, 99.0, r.SafeResolve("sub-2", 99, nil, now))
	assert.Zero(t, logs.Len())
}

func TestResolverZone(t *testing.T) {
	r := Default(nil)
	assert.Equal(t, "Europe/Istanbul", r.Zone())
	assert.Equal(t, "Europe/Istanbul", r.Location().String())
}
