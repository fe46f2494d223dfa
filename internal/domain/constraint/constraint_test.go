package constraint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examdesk/exam-scheduler/internal/domain/scheduling"
)

// fixture builds the object graph shared by the rule tests: one student
// enrolled in one course, with sessions attached on demand.
type fixture struct {
	t        *testing.T
	course   *scheduling.Course
	student  *scheduling.Student
	schedule *scheduling.Schedule
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	course, err := scheduling.NewCourse("C1", "CS101", "Algorithms", 5)
	require.NoError(t, err)
	student, err := scheduling.NewStudent(scheduling.NewStudentParams{
		ID: "st1", FirstName: "Aida", LastName: "Nurlanova",
	})
	require.NoError(t, err)
	_, err = scheduling.NewEnrollment("en1", student, course)
	require.NoError(t, err)
	return &fixture{
		t:        t,
		course:   course,
		student:  student,
		schedule: scheduling.NewSchedule("run-1"),
	}
}

func (f *fixture) slot(day, startHour, endHour int) *scheduling.TimeSlot {
	f.t.Helper()
	start, err := scheduling.NewTimeOfDay(startHour, 0)
	require.NoError(f.t, err)
	end, err := scheduling.NewTimeOfDay(endHour, 0)
	require.NoError(f.t, err)
	slot, err := scheduling.NewTimeSlot(scheduling.NewDate(2026, time.June, day), start, end)
	require.NoError(f.t, err)
	return slot
}

// addSession creates a session for a fresh exam over the fixture course,
// assigns the fixture student to it and adds it to the schedule.
func (f *fixture) addSession(id string, slot *scheduling.TimeSlot, room *scheduling.Room) *scheduling.ExamSession {
	f.t.Helper()
	exam, err := scheduling.NewExam(scheduling.ExamID("exam-"+id), f.course, "Exam "+id, 2*time.Hour)
	require.NoError(f.t, err)
	sess, err := scheduling.NewExamSession(scheduling.SessionID(id), exam, slot, room)
	require.NoError(f.t, err)
	require.True(f.t, sess.AssignStudent(f.student))
	require.True(f.t, f.schedule.AddSession(sess))
	return sess
}

func (f *fixture) room(id string, capacity int) *scheduling.Room {
	f.t.Helper()
	room, err := scheduling.NewRoom(scheduling.RoomID(id), "Room "+id, capacity)
	require.NoError(f.t, err)
	return room
}

// ─────────────────────────────────────────────────────────────────────────────
// NoOverlap
// ─────────────────────────────────────────────────────────────────────────────

func TestNoOverlap_ReportsOverlappingPairOnce(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 50)
	f.addSession("S1", f.slot(1, 9, 11), room)
	f.addSession("S2", f.slot(1, 10, 12), room)

	violations := NewNoOverlap().Validate(f.schedule)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "NO OVERLAP VIOLATION")
	assert.Contains(t, violations[0], "S1")
	assert.Contains(t, violations[0], "S2")
	assert.Contains(t, violations[0], f.student.ID().String())
}

func TestNoOverlap_IgnoresSessionsWithoutSlot(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 50)
	f.addSession("S1", f.slot(1, 9, 11), room)
	f.addSession("S2", nil, room)

	assert.Empty(t, NewNoOverlap().Validate(f.schedule))
}

func TestNoOverlap_NilSchedule(t *testing.T) {
	assert.Empty(t, NewNoOverlap().Validate(nil))
}

// ─────────────────────────────────────────────────────────────────────────────
// Touching boundaries: no overlap, but back-to-back
// ─────────────────────────────────────────────────────────────────────────────

func TestTouchingWindows_NoOverlapButConsecutive(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 50)
	f.addSession("S1", f.slot(1, 9, 11), room)
	f.addSession("S2", f.slot(1, 11, 13), room)

	assert.Empty(t, NewNoOverlap().Validate(f.schedule))

	violations := NewNoConsecutiveExams().Validate(f.schedule)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "NO CONSECUTIVE EXAMS VIOLATION")
	assert.Contains(t, violations[0], "S1")
	assert.Contains(t, violations[0], "S2")
	assert.Contains(t, violations[0], "2026-06-01")
}

func TestNoConsecutiveExams_DifferentDays(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 50)
	f.addSession("S1", f.slot(1, 9, 11), room)
	f.addSession("S2", f.slot(2, 11, 13), room)

	assert.Empty(t, NewNoConsecutiveExams().Validate(f.schedule))
}

// ─────────────────────────────────────────────────────────────────────────────
// MaxExamsPerDay
// ─────────────────────────────────────────────────────────────────────────────

func TestMaxExamsPerDay_ThreeExamsOneDay(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 50)
	f.addSession("S1", f.slot(1, 9, 10), room)
	f.addSession("S2", f.slot(1, 11, 12), room)
	f.addSession("S3", f.slot(1, 14, 15), room)

	violations := NewMaxExamsPerDay(2).Validate(f.schedule)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "MAX EXAMS PER DAY VIOLATION")
	assert.Contains(t, violations[0], "3 exams")
	assert.Contains(t, violations[0], "maximum allowed: 2")
}

func TestMaxExamsPerDay_AtThresholdIsFine(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 50)
	f.addSession("S1", f.slot(1, 9, 10), room)
	f.addSession("S2", f.slot(1, 11, 12), room)

	assert.Empty(t, NewMaxExamsPerDay(2).Validate(f.schedule))
}

func TestNewMaxExamsPerDay_DefaultsNonPositiveThreshold(t *testing.T) {
	assert.Equal(t, DefaultMaxExamsPerDay, NewMaxExamsPerDay(0).Threshold())
	assert.Equal(t, DefaultMaxExamsPerDay, NewMaxExamsPerDay(-3).Threshold())
	assert.Equal(t, 4, NewMaxExamsPerDay(4).Threshold())
}

// ─────────────────────────────────────────────────────────────────────────────
// RoomCapacity
// ─────────────────────────────────────────────────────────────────────────────

func TestRoomCapacity_MissingRoom(t *testing.T) {
	f := newFixture(t)
	exam, err := scheduling.NewExam("E1", f.course, "Algorithms Final", 2*time.Hour)
	require.NoError(t, err)
	sess, err := scheduling.NewExamSession("E1-S1", exam, f.slot(1, 9, 11), nil)
	require.NoError(t, err)
	require.True(t, f.schedule.AddSession(sess))

	violations := NewRoomCapacity().Validate(f.schedule)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "has no room assigned")
}

func TestRoomCapacity_OverfilledRoom(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 2)
	sess := f.addSession("S1", f.slot(1, 9, 11), room)

	st2, err := scheduling.NewStudent(scheduling.NewStudentParams{
		ID: "st2", FirstName: "Daniyar", LastName: "Seitkali",
	})
	require.NoError(t, err)
	require.True(t, sess.AssignStudent(st2))

	// Shrink the room after assignment. Session capacity checks guard
	// assignment time; the rule catches drift like this afterwards.
	require.NoError(t, room.SetCapacity(1))

	violations := NewRoomCapacity().Validate(f.schedule)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "2 students in room R1 with capacity 1 (excess: 1)")
}

func TestRoomCapacity_WithinCapacity(t *testing.T) {
	f := newFixture(t)
	f.addSession("S1", f.slot(1, 9, 11), f.room("R1", 2))

	assert.Empty(t, NewRoomCapacity().Validate(f.schedule))
}

// ─────────────────────────────────────────────────────────────────────────────
// Rule set
// ─────────────────────────────────────────────────────────────────────────────

func TestAll_ReturnsFullRuleSet(t *testing.T) {
	rules := All(2)

	require.Len(t, rules, 4)
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{
		"RoomCapacityConstraint",
		"MaxExamsPerDayConstraint",
		"NoOverlapConstraint",
		"NoConsecutiveExamsConstraint",
	}, names)
}

func TestRules_RepeatedValidationIsIdentical(t *testing.T) {
	f := newFixture(t)
	room := f.room("R1", 50)
	f.addSession("S1", f.slot(1, 9, 11), room)
	f.addSession("S2", f.slot(1, 10, 12), room)
	f.addSession("S3", f.slot(1, 12, 13), room)

	for _, rule := range All(2) {
		first := rule.Validate(f.schedule)
		second := rule.Validate(f.schedule)
		assert.Equal(t, first, second, rule.Name())
	}
}

func TestRules_NilScheduleMeansNothingToCheck(t *testing.T) {
	for _, rule := range All(2) {
		assert.Empty(t, rule.Validate(nil), rule.Name())
	}
}
