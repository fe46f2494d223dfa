package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignStudent_CapacityIsNeverExceeded(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 2))

	assert.True(t, sess.AssignStudent(mustStudent(t, "st1")))
	assert.True(t, sess.AssignStudent(mustStudent(t, "st2")))
	assert.False(t, sess.AssignStudent(mustStudent(t, "st3")), "third student must be rejected")
	assert.Len(t, sess.AssignedStudents(), 2)
}

func TestAssignStudent_DuplicateIsRejected(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 10))
	st := mustStudent(t, "st1")

	assert.True(t, sess.AssignStudent(st))
	assert.False(t, sess.AssignStudent(st))
	assert.Len(t, sess.AssignedStudents(), 1)
	assert.Len(t, st.AssignedSessions(), 1)
}

func TestAssignStudent_LinksBothSides(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 10))
	st := mustStudent(t, "st1")

	require.True(t, sess.AssignStudent(st))

	assert.True(t, sess.ContainsStudent(st))
	require.Len(t, st.AssignedSessions(), 1)
	assert.Same(t, sess, st.AssignedSessions()[0])
}

func TestRemoveStudent_UnlinksBothSides(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 10))
	st := mustStudent(t, "st1")
	require.True(t, sess.AssignStudent(st))

	sess.RemoveStudent(st)

	assert.False(t, sess.ContainsStudent(st))
	assert.Empty(t, st.AssignedSessions())
}

func TestNewExamSession_WithoutRoomHasZeroCapacity(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), nil)

	assert.Equal(t, 0, sess.MaxCapacity())
	assert.False(t, sess.AssignStudent(mustStudent(t, "st1")))
}

func TestAssignRoom_RecalculatesCapacity(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 2))

	require.NoError(t, sess.AssignRoom(mustRoom(t, "R2", 30)))
	assert.Equal(t, 30, sess.MaxCapacity())
}

func TestAssignRoom_RejectsRoomSmallerThanRoster(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 3))
	require.True(t, sess.AssignStudent(mustStudent(t, "st1")))
	require.True(t, sess.AssignStudent(mustStudent(t, "st2")))

	err := sess.AssignRoom(mustRoom(t, "tiny", 1))
	assert.Error(t, err)
	assert.Equal(t, 3, sess.MaxCapacity(), "capacity must stay with the old room")

	err = sess.AssignRoom(nil)
	assert.Error(t, err, "room cannot be removed while students are assigned")
}

func TestAssignedStudents_ReturnsDefensiveCopy(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 10))
	require.True(t, sess.AssignStudent(mustStudent(t, "st1")))

	roster := sess.AssignedStudents()
	roster[0] = nil

	require.Len(t, sess.AssignedStudents(), 1)
	assert.NotNil(t, sess.AssignedStudents()[0])
}

func TestExam_AddSessionRejectsForeignAndDuplicate(t *testing.T) {
	course := mustCourse(t, "C1")
	exam := mustExam(t, "E1", course)
	other := mustExam(t, "E2", course)
	sess := mustSession(t, "E1-S1", exam, mustSlot(t, 1, 9, 11), mustRoom(t, "R1", 10))

	assert.True(t, exam.AddSession(sess))
	assert.False(t, exam.AddSession(sess), "duplicate")
	assert.False(t, other.AddSession(sess), "session belongs to another exam")
	assert.Len(t, exam.Sessions(), 1)
	assert.Empty(t, other.Sessions())
}
