package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Test fixtures. Each helper fails the test on construction errors so the
// tests themselves read as plain scenarios.

func mustStudent(t *testing.T, id string) *Student {
	t.Helper()
	st, err := NewStudent(NewStudentParams{
		ID:        StudentID(id),
		FirstName: "Test",
		LastName:  "Student " + id,
	})
	require.NoError(t, err)
	return st
}

func mustCourse(t *testing.T, id string) *Course {
	t.Helper()
	c, err := NewCourse(CourseID(id), "CS101", "Course "+id, 3)
	require.NoError(t, err)
	return c
}

func mustExam(t *testing.T, id string, course *Course) *Exam {
	t.Helper()
	e, err := NewExam(ExamID(id), course, "Exam "+id, 2*time.Hour)
	require.NoError(t, err)
	return e
}

func mustRoom(t *testing.T, id string, capacity int) *Room {
	t.Helper()
	r, err := NewRoom(RoomID(id), "Room "+id, capacity)
	require.NoError(t, err)
	return r
}

func mustSlot(t *testing.T, day int, startHour, endHour int) *TimeSlot {
	t.Helper()
	start, err := NewTimeOfDay(startHour, 0)
	require.NoError(t, err)
	end, err := NewTimeOfDay(endHour, 0)
	require.NoError(t, err)
	slot, err := NewTimeSlot(NewDate(2026, time.June, day), start, end)
	require.NoError(t, err)
	return slot
}

func mustSession(t *testing.T, id string, exam *Exam, slot *TimeSlot, room *Room) *ExamSession {
	t.Helper()
	sess, err := NewExamSession(SessionID(id), exam, slot, room)
	require.NoError(t, err)
	return sess
}

func mustEnroll(t *testing.T, id string, st *Student, c *Course) *Enrollment {
	t.Helper()
	e, err := NewEnrollment(EnrollmentID(id), st, c)
	require.NoError(t, err)
	return e
}
