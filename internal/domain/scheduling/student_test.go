package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudent_Validation(t *testing.T) {
	_, err := NewStudent(NewStudentParams{FirstName: "A", LastName: "B"})
	assert.Error(t, err, "empty id")

	_, err = NewStudent(NewStudentParams{ID: "st1", FirstName: " ", LastName: "B"})
	assert.Error(t, err, "blank first name")

	_, err = NewStudent(NewStudentParams{ID: "st1", FirstName: "A", LastName: "B", Email: "not-an-email"})
	assert.Error(t, err, "malformed email")

	st, err := NewStudent(NewStudentParams{ID: "st1", FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	assert.Equal(t, "A B", st.FullName())
	assert.Empty(t, st.Email(), "email is optional")
}

func TestEnrollment_ReachableFromBothSides(t *testing.T) {
	st := mustStudent(t, "st1")
	course := mustCourse(t, "C1")

	enr := mustEnroll(t, "en1", st, course)

	require.Len(t, st.Enrollments(), 1)
	require.Len(t, course.Enrollments(), 1)
	assert.Same(t, enr, st.Enrollments()[0])
	assert.Same(t, enr, course.Enrollments()[0])
	assert.Equal(t, EnrollmentActive, enr.Status())
}

func TestCourse_EnrolledStudentsIgnoresStatus(t *testing.T) {
	course := mustCourse(t, "C1")
	st1 := mustStudent(t, "st1")
	st2 := mustStudent(t, "st2")
	mustEnroll(t, "en1", st1, course)
	enr2 := mustEnroll(t, "en2", st2, course)
	require.NoError(t, enr2.SetStatus(EnrollmentDropped))

	// Exam participation is derived from the fact of enrollment.
	assert.Len(t, course.EnrolledStudents(), 2)
	assert.Len(t, course.ActiveStudents(), 1)
}

func TestCourse_EnrolledStudentsDeduplicates(t *testing.T) {
	course := mustCourse(t, "C1")
	st := mustStudent(t, "st1")
	mustEnroll(t, "en1", st, course)
	mustEnroll(t, "en2", st, course)

	assert.Len(t, course.EnrolledStudents(), 1)
}

func TestStudent_DailyExamCount(t *testing.T) {
	course := mustCourse(t, "C1")
	st := mustStudent(t, "st1")
	room := mustRoom(t, "R1", 10)

	day1a := mustSession(t, "E1-S1", mustExam(t, "E1", course), mustSlot(t, 1, 9, 11), room)
	day1b := mustSession(t, "E2-S1", mustExam(t, "E2", course), mustSlot(t, 1, 13, 15), room)
	day2 := mustSession(t, "E3-S1", mustExam(t, "E3", course), mustSlot(t, 2, 9, 11), room)
	require.True(t, day1a.AssignStudent(st))
	require.True(t, day1b.AssignStudent(st))
	require.True(t, day2.AssignStudent(st))

	assert.Equal(t, 2, st.DailyExamCount(day1a.TimeSlot().Date()))
	assert.Equal(t, 1, st.DailyExamCount(day2.TimeSlot().Date()))
	assert.Equal(t, 0, st.DailyExamCount(NewDate(2026, 7, 1)))
	assert.Equal(t, 0, st.DailyExamCount(Date{}))
}

func TestStudent_HasExamOverlap(t *testing.T) {
	course := mustCourse(t, "C1")
	st := mustStudent(t, "st1")
	room := mustRoom(t, "R1", 10)

	existing := mustSession(t, "E1-S1", mustExam(t, "E1", course), mustSlot(t, 1, 9, 11), room)
	require.True(t, existing.AssignStudent(st))

	clashing := mustSession(t, "E2-S1", mustExam(t, "E2", course), mustSlot(t, 1, 10, 12), room)
	touching := mustSession(t, "E3-S1", mustExam(t, "E3", course), mustSlot(t, 1, 11, 13), room)
	otherDay := mustSession(t, "E4-S1", mustExam(t, "E4", course), mustSlot(t, 2, 9, 11), room)
	unscheduled := mustSession(t, "E5-S1", mustExam(t, "E5", course), nil, room)

	assert.True(t, st.HasExamOverlap(clashing))
	assert.False(t, st.HasExamOverlap(touching), "touching boundaries are not an overlap")
	assert.False(t, st.HasExamOverlap(otherDay))
	assert.False(t, st.HasExamOverlap(unscheduled))
	assert.False(t, st.HasExamOverlap(nil))
}

func TestStudent_EnrollmentsReturnsDefensiveCopy(t *testing.T) {
	st := mustStudent(t, "st1")
	mustEnroll(t, "en1", st, mustCourse(t, "C1"))

	list := st.Enrollments()
	list[0] = nil

	require.Len(t, st.Enrollments(), 1)
	assert.NotNil(t, st.Enrollments()[0])
}
