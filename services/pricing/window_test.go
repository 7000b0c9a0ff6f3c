package pricing

import (
	"testing"
	"time"

	"roomservice/models"

	"github.com/stretchr/testify/suite"
)

type windowSuite struct {
	suite.Suite
	resolver *Resolver
	loc      *time.Location
}

func TestWindowSuite(t *testing.T) {
	suite.Run(t, new(windowSuite))
}

func (s *windowSuite) SetupSuite() {
	s.resolver = Default(nil)
	loc, err := time.LoadLocation(ReferenceTimeZone)
	s.Require().NoError(err)
	s.loc = loc
}

func (s *windowSuite) at(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, 0, 0, s.loc)
}

func window(from, to string) Schedule {
	return Normalize(models.PriceSchedule{ActiveFrom: from, ActiveTo: to})
}

func (s *windowSuite) TestSameDayWindow() {
	w := window("09:00", "18:00")

	s.True(s.resolver.IsActive(w, s.at(10, 9, 0)), "start is inclusive")
	s.True(s.resolver.IsActive(w, s.at(10, 13, 30)))
	s.True(s.resolver.IsActive(w, s.at(10, 18, 0)), "end is inclusive")
	s.False(s.resolver.IsActive(w, s.at(10, 8, 59)))
	s.False(s.resolver.IsActive(w, s.at(10, 18, 1)))
	s.False(s.resolver.IsActive(w, s.at(10, 0, 30)))
}

func (s *windowSuite) TestCrossMidnightWindow() {
	w := window("22:00", "02:00")

	s.True(s.resolver.IsActive(w, s.at(10, 22, 0)))
	s.True(s.resolver.IsActive(w, s.at(10, 23, 30)))
	s.True(s.resolver.IsActive(w, s.at(11, 0, 0)))
	s.True(s.resolver.IsActive(w, s.at(11, 1, 30)), "early morning belongs to the window opened the day before")
	s.True(s.resolver.IsActive(w, s.at(11, 2, 0)))
	s.False(s.resolver.IsActive(w, s.at(11, 2, 1)))
	s.False(s.resolver.IsActive(w, s.at(10, 12, 0)))
	s.False(s.resolver.IsActive(w, s.at(10, 21, 59)))
}

func (s *windowSuite) TestEqualBoundsSpanWholeDay() {
	w := window("10:00", "10:00")

	s.True(s.resolver.IsActive(w, s.at(10, 10, 0)))
	s.True(s.resolver.IsActive(w, s.at(10, 3, 0)))
	s.True(s.resolver.IsActive(w, s.at(10, 20, 0)))
}

func (s *windowSuite) TestUsesReferenceZoneNotServerZone() {
	w := window("09:00", "18:00")

	// 06:00 UTC is 09:00 in Istanbul.
	s.True(s.resolver.IsActive(w, time.Date(2025, time.June, 10, 6, 0, 0, 0, time.UTC)))
	s.False(s.resolver.IsActive(w, time.Date(2025, time.June, 10, 5, 59, 0, 0, time.UTC)))
	// 20:30 UTC on the 9th is 23:30 on the 9th in Istanbul, but already the
	// 10th in Tokyo.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	s.Require().NoError(err)
	now := time.Date(2025, time.June, 10, 5, 30, 0, 0, tokyo)
	s.True(s.resolver.IsActive(window("22:00", "02:00"), now))
}

func (s *windowSuite) TestIncompleteOrUnparsableIsInactive() {
	now := s.at(10, 12, 0)

	s.False(s.resolver.IsActive(Absent, now))
	s.False(s.resolver.IsActive(Schedule{Value: models.PriceSchedule{ActiveFrom: "09:00"}, Present: true}, now))
	s.False(s.resolver.IsActive(Schedule{Value: models.PriceSchedule{ActiveFrom: "noon", ActiveTo: "18:00"}, Present: true}, now))
	s.False(s.resolver.IsActive(Schedule{Value: models.PriceSchedule{ActiveFrom: "09:00", ActiveTo: "25:00"}, Present: true}, now))
}

func (s *windowSuite) TestDaylightSavingTransition() {
	ny := New("America/New_York", nil)
	w := window("01:00", "04:00")

	// 2025-03-09: clocks jump from 02:00 EST to 03:00 EDT, so the window is
	// 06:00Z to 08:00Z that day.
	s.False(ny.IsActive(w, time.Date(2025, time.March, 9, 5, 59, 0, 0, time.UTC)))
	s.True(ny.IsActive(w, time.Date(2025, time.March, 9, 6, 0, 0, 0, time.UTC)))
	s.True(ny.IsActive(w, time.Date(2025, time.March, 9, 8, 0, 0, 0, time.UTC)))
	s.False(ny.IsActive(w, time.Date(2025, time.March, 9, 8, 30, 0, 0, time.UTC)))

	// A day earlier the same wall-clock window is 06:00Z to 09:00Z.
	s.True(ny.IsActive(w, time.Date(2025, time.March, 8, 8, 30, 0, 0, time.UTC)))
}

func (s *windowSuite) TestUnknownZoneIsInactive() {
	broken := New("Mars/Olympus_Mons", nil)

	s.False(broken.IsActive(window("00:00", "23:59"), s.at(10, 12, 0)))
	s.Equal(time.UTC, broken.Location())
}
