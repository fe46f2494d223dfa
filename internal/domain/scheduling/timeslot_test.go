package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlot_OverlapIsSymmetric(t *testing.T) {
	a := mustSlot(t, 1, 9, 11)
	b := mustSlot(t, 1, 10, 12)

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestTimeSlot_NoOverlapAcrossDates(t *testing.T) {
	a := mustSlot(t, 1, 9, 11)
	b := mustSlot(t, 2, 9, 11)

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestTimeSlot_TouchingBoundariesDoNotOverlap(t *testing.T) {
	morning := mustSlot(t, 1, 9, 11)
	noon := mustSlot(t, 1, 11, 13)

	// Half-open intervals: 11:00 belongs only to the second slot.
	assert.False(t, morning.Overlaps(noon))
	assert.False(t, noon.Overlaps(morning))

	// Touching is a separate condition, and it is symmetric too.
	assert.True(t, morning.Consecutive(noon))
	assert.True(t, noon.Consecutive(morning))
}

func TestTimeSlot_ConsecutiveRequiresSameDate(t *testing.T) {
	a := mustSlot(t, 1, 9, 11)
	b := mustSlot(t, 2, 11, 13)

	assert.False(t, a.Consecutive(b))
}

func TestTimeSlot_NilIsNeverOverlappingNorConsecutive(t *testing.T) {
	var none *TimeSlot
	a := mustSlot(t, 1, 9, 11)

	assert.False(t, none.Overlaps(a))
	assert.False(t, a.Overlaps(nil))
	assert.False(t, none.Consecutive(a))
	assert.False(t, a.Consecutive(nil))
}

func TestNewTimeSlot_RejectsInvalidWindows(t *testing.T) {
	start, err := NewTimeOfDay(11, 0)
	require.NoError(t, err)
	end, err := NewTimeOfDay(9, 0)
	require.NoError(t, err)

	_, err = NewTimeSlot(NewDate(2026, time.June, 1), start, end)
	assert.Error(t, err, "end before start")

	_, err = NewTimeSlot(NewDate(2026, time.June, 1), start, start)
	assert.Error(t, err, "empty window")

	_, err = NewTimeSlot(Date{}, start, start+60)
	assert.Error(t, err, "zero date")
}

func TestTimeSlot_CloneIsIndependent(t *testing.T) {
	a := mustSlot(t, 1, 9, 11)
	clone := a.Clone()

	require.NotSame(t, a, clone)
	assert.Equal(t, a.Date(), clone.Date())
	assert.Equal(t, a.Start(), clone.Start())
	assert.Equal(t, a.End(), clone.End())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.June, 15), d)
	assert.Equal(t, "2026-06-15", d.String())

	_, err = ParseDate("15.06.2026")
	assert.Error(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "09:30", tod.String())

	_, err = ParseTimeOfDay("9:30pm")
	assert.Error(t, err)
}

func TestTimeSlot_DurationAndWindow(t *testing.T) {
	slot := mustSlot(t, 1, 9, 11)

	assert.Equal(t, 2*time.Hour, slot.Duration())
	assert.Equal(t, "09:00-11:00", slot.Window())
}
