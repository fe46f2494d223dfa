package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRule struct {
	name   string
	result []string
}

func (r stubRule) Name() string                  { return r.name }
func (r stubRule) Description() string           { return r.name }
func (r stubRule) Validate(_ *Schedule) []string { return r.result }

func TestSchedule_AddSessionRejectsNilAndDuplicates(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 10))
	schedule := NewSchedule("run-1")

	assert.False(t, schedule.AddSession(nil))
	assert.True(t, schedule.AddSession(sess))
	assert.False(t, schedule.AddSession(sess))
	assert.Equal(t, 1, schedule.SessionCount())
}

func TestSchedule_ValidateConcatenatesInRegistrationOrder(t *testing.T) {
	schedule := NewSchedule("run-1")
	schedule.RegisterValidator(stubRule{name: "first", result: []string{"a", "b"}})
	schedule.RegisterValidator(stubRule{name: "second", result: []string{"c"}})
	schedule.RegisterValidator(nil)

	assert.Equal(t, []string{"a", "b", "c"}, schedule.Validate())
	assert.Equal(t, []string{"a", "b", "c"}, schedule.Validate(), "repeated validation is identical")
}

func TestSchedule_StudentsFirstAppearanceOrderNoDuplicates(t *testing.T) {
	course := mustCourse(t, "C1")
	room := mustRoom(t, "R1", 10)
	st1 := mustStudent(t, "st1")
	st2 := mustStudent(t, "st2")

	sessA := mustSession(t, "E1-S1", mustExam(t, "E1", course), mustSlot(t, 1, 9, 11), room)
	sessB := mustSession(t, "E2-S1", mustExam(t, "E2", course), mustSlot(t, 2, 9, 11), room)
	require.True(t, sessA.AssignStudent(st2))
	require.True(t, sessA.AssignStudent(st1))
	require.True(t, sessB.AssignStudent(st1))

	schedule := NewSchedule("run-1")
	require.True(t, schedule.AddSession(sessA))
	require.True(t, schedule.AddSession(sessB))

	students := schedule.Students()
	require.Len(t, students, 2)
	assert.Same(t, st2, students[0])
	assert.Same(t, st1, students[1])
}

func TestSchedule_DatesSortedNoDuplicates(t *testing.T) {
	course := mustCourse(t, "C1")
	room := mustRoom(t, "R1", 10)

	schedule := NewSchedule("run-1")
	require.True(t, schedule.AddSession(mustSession(t, "E1-S1", mustExam(t, "E1", course), mustSlot(t, 3, 9, 11), room)))
	require.True(t, schedule.AddSession(mustSession(t, "E2-S1", mustExam(t, "E2", course), mustSlot(t, 1, 9, 11), room)))
	require.True(t, schedule.AddSession(mustSession(t, "E3-S1", mustExam(t, "E3", course), mustSlot(t, 3, 13, 15), room)))
	require.True(t, schedule.AddSession(mustSession(t, "E4-S1", mustExam(t, "E4", course), nil, room)))

	dates := schedule.Dates()
	require.Len(t, dates, 2)
	assert.Equal(t, NewDate(2026, 6, 1), dates[0])
	assert.Equal(t, NewDate(2026, 6, 3), dates[1])
}

func TestSchedule_SessionsForStudent(t *testing.T) {
	course := mustCourse(t, "C1")
	room := mustRoom(t, "R1", 10)
	st := mustStudent(t, "st1")

	mine := mustSession(t, "E1-S1", mustExam(t, "E1", course), mustSlot(t, 1, 9, 11), room)
	other := mustSession(t, "E2-S1", mustExam(t, "E2", course), mustSlot(t, 1, 13, 15), room)
	require.True(t, mine.AssignStudent(st))
	require.True(t, other.AssignStudent(mustStudent(t, "st2")))

	schedule := NewSchedule("run-1")
	require.True(t, schedule.AddSession(mine))
	require.True(t, schedule.AddSession(other))

	sessions := schedule.SessionsForStudent(st)
	require.Len(t, sessions, 1)
	assert.Same(t, mine, sessions[0])
}
